package resumes

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by stores when no record matches the identity.
var ErrNotFound = errors.New("not found")

// MalformedExtractionError reports provider output that could not be
// repaired into a structured record. Raw carries the original provider text
// for operator diagnosis; the pipeline never substitutes a default record.
type MalformedExtractionError struct {
	Raw string
	Err error
}

func (e *MalformedExtractionError) Error() string {
	return fmt.Sprintf("malformed extraction: %v", e.Err)
}

func (e *MalformedExtractionError) Unwrap() error { return e.Err }

// PersistenceError wraps a failed store write. The submission is considered
// entirely failed since no record exists to return.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// StageError tags a pipeline failure with the stage it originated in.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("pipeline failed at %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

const (
	ErrorCodeExtraction  = "EXTRACTION_ERROR"
	ErrorCodeProvider    = "PROVIDER_ERROR"
	ErrorCodeMalformed   = "MALFORMED_EXTRACTION"
	ErrorCodePersistence = "PERSISTENCE_ERROR"
	ErrorCodeInternal    = "INTERNAL_ERROR"
)
