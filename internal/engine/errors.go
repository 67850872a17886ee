package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrCopyFailure indicates a file could not be copied and the export stopped.
	ErrCopyFailure = errors.New("copy failed")

	// ErrValidation indicates a malformed request.
	ErrValidation = errors.New("validation failed")
)

// CopyError reports the entry that aborted an export.
// It matches ErrCopyFailure under errors.Is and unwraps to the cause.
type CopyError struct {
	// Source is the file being copied
	Source string

	// Target is the destination path that was being written
	Target string

	// Err is the underlying cause
	Err error
}

// Error implements the error interface.
func (e *CopyError) Error() string {
	return fmt.Sprintf("%s: %s -> %s: %v", ErrCopyFailure, e.Source, e.Target, e.Err)
}

// Unwrap returns the underlying cause.
func (e *CopyError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrCopyFailure.
func (e *CopyError) Is(target error) bool {
	return target == ErrCopyFailure
}

// DeleteFailure records an original that could not be deleted after a
// successful copy. Delete failures never abort an export.
type DeleteFailure struct {
	// Path is the source file that remains on disk
	Path string `json:"path"`

	// Reason is the error text
	Reason string `json:"reason"`

	// Err is the underlying cause
	Err error `json:"-"`
}

// Error implements the error interface.
func (f DeleteFailure) Error() string {
	return fmt.Sprintf("could not delete original %s: %s", f.Path, f.Reason)
}

// Unwrap returns the underlying cause.
func (f DeleteFailure) Unwrap() error {
	return f.Err
}
