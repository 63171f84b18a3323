package common

import (
	"errors"
	"fmt"
)

// Sentinel errors classifying every failure the service layer can return.
// Callers branch with errors.Is; detail is attached by wrapping with
// fmt.Errorf("%w: ...").
var (
	// ErrValidation marks malformed or unsafe input, such as a filename
	// containing path separators. Nothing has been mutated.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized marks an operation on a project the acting user does
	// not own. Nothing has been mutated.
	ErrUnauthorized = errors.New("not authorized")

	// ErrNotFound marks a missing project, image or stored file.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a filename already occupied within a project.
	ErrConflict = errors.New("already exists")

	// ErrStorage marks an underlying filesystem or object-store failure.
	ErrStorage = errors.New("storage failure")
)

// ConsistencyError reports that one phase of a two-phase mutation succeeded,
// the other failed, and compensation could not restore the pre-operation
// state. It carries enough detail to reconcile the file and the record
// out-of-band.
type ConsistencyError struct {
	Op        string // "upload", "rename" or "delete"
	ImageID   string
	ProjectID uint
	// Expected is the filename the metadata record refers to; Actual is the
	// name the file is believed to have on disk ("" when the file is gone).
	Expected string
	Actual   string
	Cause    error
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("%s left image %s in project %d inconsistent (record %q, on disk %q): %v",
		e.Op, e.ImageID, e.ProjectID, e.Expected, e.Actual, e.Cause)
}

func (e *ConsistencyError) Unwrap() error { return e.Cause }
