package session

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by a Store when a key has no value.
var ErrNotFound = errors.New("session key not found")

// ErrCorrupt matches every CorruptError.
var ErrCorrupt = errors.New("session data is corrupt")

// ErrNoKey is returned when the token is read or written without a session key.
var ErrNoKey = errors.New("session key is not configured")

// CorruptError reports persisted data that cannot be decoded.
type CorruptError struct {
	Key   string
	Cause error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("session data for %q is corrupt: %v", e.Key, e.Cause)
}

func (e *CorruptError) Unwrap() error {
	return e.Cause
}

// Is makes errors.Is(err, ErrCorrupt) true for every CorruptError.
func (e *CorruptError) Is(target error) bool {
	return target == ErrCorrupt
}
