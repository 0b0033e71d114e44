package app

import "time"

// IDGenerator returns unique identifiers for drag sessions.
type IDGenerator func() string

// Clock returns the current time.
type Clock func() time.Time

// Logger is the structured logging surface the board reports lifecycle events to.
type Logger interface {
	Debug(msg string, keyvals ...any)
	Info(msg string, keyvals ...any)
	Warn(msg string, keyvals ...any)
}

// nopLogger discards every event.
type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
