package async

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/joseph-ayodele/contracts-extractor/internal/common"
	"github.com/joseph-ayodele/contracts-extractor/internal/tracker"
)

// PendingProcessor runs every pending job once.
type PendingProcessor interface {
	ProcessPending(ctx context.Context) (tracker.Summary, error)
}

// Runner is a single-worker queue of processing runs. Triggers arriving while
// a run is already queued are coalesced into it.
type Runner struct {
	proc   PendingProcessor
	logger *slog.Logger

	ch     chan Request
	wg     sync.WaitGroup
	once   sync.Once
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool
}

var _ Queue = (*Runner)(nil)

func NewRunner(proc PendingProcessor, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	r := &Runner{
		proc:   proc,
		logger: logger,
		ch:     make(chan Request, 1),
		ctx:    ctx,
		cancel: cancel,
	}
	r.start()
	return r
}

func (r *Runner) start() {
	r.once.Do(func() {
		r.wg.Add(1)
		go func() {
			defer r.wg.Done()
			r.logger.Info("runner.worker.started")

			for req := range r.ch {
				ctx := r.ctx
				if req.TraceID != "" {
					ctx = common.WithRequestID(ctx, req.TraceID)
				}
				sum, err := r.proc.ProcessPending(ctx)
				switch {
				case errors.Is(err, common.ErrBusy):
					r.logger.Warn("runner.run.busy", "trace_id", req.TraceID)
				case err != nil:
					r.logger.Error("runner.run.failed", "trace_id", req.TraceID, "error", err)
				default:
					r.logger.Info("runner.run.ok",
						"trace_id", req.TraceID,
						"processed", sum.Processed,
						"succeeded", sum.Succeeded,
						"failed", sum.Failed,
						"queued_ms", time.Since(req.SubmittedAt).Milliseconds(),
					)
				}
			}

			r.logger.Info("runner.worker.stopped")
		}()
	})
}

// Trigger queues a run unless one is already waiting.
func (r *Runner) Trigger(ctx context.Context) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		r.logger.Warn("runner.trigger.closed")
		return false, ErrClosed
	}
	req := Request{SubmittedAt: time.Now(), TraceID: common.RequestIDFromContext(ctx)}
	select {
	case r.ch <- req:
		r.logger.Info("runner.trigger.queued", "trace_id", req.TraceID)
		return true, nil
	default:
		r.logger.Info("runner.trigger.coalesced", "trace_id", req.TraceID)
		return false, nil
	}
}

// Shutdown stops accepting triggers and waits for the worker. If ctx ends
// first, the current run is told to stop after its in-flight job.
func (r *Runner) Shutdown(ctx context.Context) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	close(r.ch)
	r.mu.Unlock()

	done := make(chan struct{})
	go func() { defer close(done); r.wg.Wait() }()

	select {
	case <-ctx.Done():
		r.cancel()
		r.logger.Warn("runner.shutdown.interrupted")
	case <-done:
		r.cancel()
		r.logger.Info("runner.shutdown.ok")
	}
}
