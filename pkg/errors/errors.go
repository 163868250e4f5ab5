package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	ErrTrackLoadFailed    = errors.New("track failed to load")
	ErrEmptyCatalog       = errors.New("catalog is empty")
	ErrTrackNotFound      = errors.New("track not found")
	ErrInvalidFormat      = errors.New("unsupported audio format")
	ErrInvalidVolume      = errors.New("volume must be between 0 and 100")
	ErrHandleNotReady     = errors.New("audio handle is not ready")
)

// PlayerError wraps errors with additional context
type PlayerError struct {
	Op    string // Operation that failed
	Track string // Track name if applicable
	Err   error  // Underlying error
}

func (e *PlayerError) Error() string {
	if e.Track != "" {
		return fmt.Sprintf("%s failed for track %s: %v", e.Op, e.Track, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *PlayerError) Unwrap() error {
	return e.Err
}

// NewPlayerError creates a new PlayerError
func NewPlayerError(op, track string, err error) *PlayerError {
	return &PlayerError{Op: op, Track: track, Err: err}
}

// CatalogError describes a failed catalog fetch. It always matches
// ErrCatalogUnavailable with errors.Is.
type CatalogError struct {
	Slug   string
	URL    string
	Status int // HTTP status, 0 when the request never completed
	Err    error
}

func (e *CatalogError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *CatalogError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrCatalogUnavailable}
	}
	return []error{ErrCatalogUnavailable, e.Err}
}
