package async

import (
	"context"
	"errors"
	"time"
)

// ErrClosed is returned by Trigger after Shutdown.
var ErrClosed = errors.New("queue is shutting down")

// Request asks the worker for one processing run.
type Request struct {
	SubmittedAt time.Time
	TraceID     string
}

type Queue interface {
	// Trigger schedules a run. It reports false when a run was already queued.
	Trigger(ctx context.Context) (bool, error)
	Shutdown(ctx context.Context)
}
