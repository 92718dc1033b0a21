// Package retry contains the [Policy] interface and its implementations. The spill cache uses a
// policy to retry storage writes that fail, e.g. while another connection holds the database.
package retry

import (
	"context"
)

// Policy decides whether, and when, a failed operation is attempted again.
//
// Implementations are not considered thread-safe. Each operation derives its own instance.
type Policy interface {
	// Attempt reports whether another attempt should be made.
	//
	// The first call returns true immediately. Subsequent calls block for the policy's interval
	// and return false once attempts are exhausted or the context is done.
	Attempt(ctx context.Context) bool
	// Derive returns a fresh Policy with the same settings and no attempts made.
	Derive() Policy
}
