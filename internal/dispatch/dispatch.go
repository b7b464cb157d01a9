// Package dispatch sends fire-and-forget enrichment notifications to the
// downstream embedding worker. The pipeline's contract ends at "dispatch
// accepted"; no task state is tracked after the send.
package dispatch

import (
	"context"
	"fmt"
)

// Dispatcher notifies the enrichment worker that an owner's resume is ready
// for embedding computation and returns the worker's tracking token.
type Dispatcher interface {
	Dispatch(ctx context.Context, owner string) (string, error)
}

// DispatchError reports an enrichment notification that could not be
// delivered or was rejected by the worker. It never invalidates an already
// persisted record.
type DispatchError struct {
	Endpoint string
	Status   int
	Err      error
}

func (e *DispatchError) Error() string {
	switch {
	case e.Status != 0:
		return fmt.Sprintf("dispatch to %s: status %d", e.Endpoint, e.Status)
	case e.Endpoint != "":
		return fmt.Sprintf("dispatch to %s: %v", e.Endpoint, e.Err)
	default:
		return fmt.Sprintf("dispatch: %v", e.Err)
	}
}

func (e *DispatchError) Unwrap() error { return e.Err }
