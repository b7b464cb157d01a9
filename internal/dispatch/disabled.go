package dispatch

import (
	"context"
	"errors"
)

// Disabled is used when no worker endpoint is configured. Every dispatch
// fails, which the pipeline reports without failing the submission.
type Disabled struct{}

// Dispatch always fails with a DispatchError.
func (Disabled) Dispatch(ctx context.Context, owner string) (string, error) {
	_ = ctx
	_ = owner
	return "", &DispatchError{Err: errors.New("enrichment worker not configured")}
}

var _ Dispatcher = Disabled{}
