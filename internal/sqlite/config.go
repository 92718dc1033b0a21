package sqlite

import (
	"strings"
)

// Config configures a [Storage].
type Config struct {
	file    string
	timeout int
}

type ConfigFunc = func(c *Config)

// File sets the database file. ":memory:" keeps the database in memory.
func (c *Config) File(file string) {
	file = strings.TrimSpace(file)
	if file == "" {
		panic("file can't be blank")
	}
	if strings.Contains(file, "?") {
		panic("file can't contain ?")
	}
	c.file = file
}

// BusyTimeout sets how long, in milliseconds, a connection waits for a lock held by another
// connection before failing with "database is locked".
func (c *Config) BusyTimeout(timeout int) {
	if timeout < 0 {
		panic("busy timeout can't be < 0")
	}
	c.timeout = timeout
}
