package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound          = errors.New("session not found")
	ErrCorruptCache      = errors.New("corrupt session cache")
	ErrDuplicateSession  = errors.New("session already cached")
	ErrNoAdjacentSession = errors.New("no adjacent session")
	ErrRemoteUnavailable = errors.New("remote service unavailable")
	ErrStaleBounds       = errors.New("walk bounds are stale")
)

// CorruptCacheError reports a cache file that exists but cannot be parsed
// into the expected shape. The cache is never auto-repaired.
type CorruptCacheError struct {
	Path   string
	Reason string
}

func (e *CorruptCacheError) Error() string {
	return fmt.Sprintf("cache file %s is corrupt: %s", e.Path, e.Reason)
}

func (e *CorruptCacheError) Is(target error) bool {
	return target == ErrCorruptCache
}

// DuplicateSessionError reports an insert of an id the cache already holds.
// The walker's own call pattern can never trigger it; seeing one means a
// caller bug.
type DuplicateSessionError struct {
	ID int
}

func (e *DuplicateSessionError) Error() string {
	return fmt.Sprintf("session %d is already cached", e.ID)
}

func (e *DuplicateSessionError) Is(target error) bool {
	return target == ErrDuplicateSession
}

// RemoteError reports a remote call that kept failing after the bounded
// retries were exhausted.
type RemoteError struct {
	Endpoint string
	Attempts int
	Err      error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote call %s failed after %d attempts: %v", e.Endpoint, e.Attempts, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

func (e *RemoteError) Is(target error) bool {
	return target == ErrRemoteUnavailable
}

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
