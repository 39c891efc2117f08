package database

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned from a session when the requested row is absent.
// It is a recoverable outcome, kept distinct from storage failures so that
// callers can never conflate the two.
var ErrNotFound = errors.New("record not found")

// SessionError wraps any failure raised by the storage layer inside a
// session. The enclosing transaction has already been rolled back and the
// cause logged by the time a SessionError is returned; the cause stays
// reachable through Unwrap for callers that need it.
type SessionError struct {
	Err error
}

func (e *SessionError) Error() string {
	return "database session error: " + e.Err.Error()
}

func (e *SessionError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is the absent-row outcome, from either this
// package's sentinel or GORM's own.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}
