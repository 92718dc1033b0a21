package internal

import "math/rand/v2"

// RandomName returns prefix followed by n random alphanumeric characters. It is used to give
// every in-memory database its own name, so that two caches never share one.
func RandomName(prefix string, n int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, len(prefix), len(prefix)+n)
	copy(b, prefix)
	for range n {
		b = append(b, charset[rand.IntN(len(charset))])
	}
	return string(b)
}
