// Package tracker holds the ordered job list and drives sequential processing.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/contracts-extractor/constants"
	"github.com/joseph-ayodele/contracts-extractor/internal/common"
	"github.com/joseph-ayodele/contracts-extractor/internal/entity"
	"github.com/joseph-ayodele/contracts-extractor/internal/ingest"
)

// JobProcessor turns one document into a record.
type JobProcessor interface {
	Process(ctx context.Context, name string, src entity.Source) (entity.ContractFields, error)
}

// Summary reports what one ProcessPending call did.
type Summary struct {
	Processed int `json:"processed"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// Tracker is the in-memory job list. Readers get immutable snapshots;
// writers serialize on mu and publish a fresh slice.
type Tracker struct {
	proc   JobProcessor
	logger *slog.Logger

	mu   sync.Mutex
	jobs atomic.Pointer[[]entity.Job]
	busy atomic.Bool
}

func New(proc JobProcessor, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	t := &Tracker{proc: proc, logger: logger}
	empty := []entity.Job{}
	t.jobs.Store(&empty)
	return t
}

func (t *Tracker) load() []entity.Job {
	return *t.jobs.Load()
}

// Enqueue appends one pending job per file, in order, and returns how many
// were added. Nothing is processed and nothing is deduplicated.
func (t *Tracker) Enqueue(files []ingest.File) int {
	if len(files) == 0 {
		return 0
	}
	t.mu.Lock()
	cur := t.load()
	next := make([]entity.Job, len(cur), len(cur)+len(files))
	copy(next, cur)
	for _, f := range files {
		next = append(next, entity.PendingJob{Name: f.Name, Source: f.Source})
	}
	t.jobs.Store(&next)
	t.mu.Unlock()

	t.logger.Info("tracker.enqueue", "added", len(files), "total", len(next))
	return len(files)
}

// ProcessPending processes, one at a time and in list order, every job that
// is pending when the call starts. A failing job never stops the rest.
// Jobs enqueued meanwhile stay pending for the next call.
//
// A second call while one is running returns common.ErrBusy. Cancelling ctx
// stops the loop before the next job starts; the job in flight always
// finishes.
func (t *Tracker) ProcessPending(ctx context.Context) (Summary, error) {
	if !t.busy.CompareAndSwap(false, true) {
		return Summary{}, common.ErrBusy
	}
	defer t.busy.Store(false)

	runID := uuid.New().String()
	jobCtx := common.WithRunID(context.WithoutCancel(ctx), runID)
	start := time.Now()

	indices := t.pendingIndices()
	t.logger.Info("tracker.process.start", "run_id", runID, "pending", len(indices))

	var sum Summary
	for n, i := range indices {
		if err := ctx.Err(); err != nil {
			t.logger.Warn("tracker.process.cancelled", "run_id", runID, "remaining", len(indices)-n, "error", err)
			break
		}
		job, ok := t.start(i)
		if !ok {
			continue
		}

		jobStart := time.Now()
		fields, err := t.runOne(jobCtx, job)
		sum.Processed++
		if err != nil {
			msg := failureMessage(err)
			t.finish(i, entity.FailedJob{Name: job.Name, Message: msg})
			sum.Failed++
			t.logger.Error("tracker.job.error",
				"run_id", runID, "index", i, "file", job.Name, "error", msg,
				"elapsed_ms", time.Since(jobStart).Milliseconds())
			continue
		}
		t.finish(i, entity.CompletedJob{Name: job.Name, Data: fields})
		sum.Succeeded++
		t.logger.Info("tracker.job.success",
			"run_id", runID, "index", i, "file", job.Name,
			"elapsed_ms", time.Since(jobStart).Milliseconds())
	}

	t.logger.Info("tracker.process.done",
		"run_id", runID,
		"processed", sum.Processed,
		"succeeded", sum.Succeeded,
		"failed", sum.Failed,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return sum, nil
}

func (t *Tracker) runOne(ctx context.Context, job entity.ProcessingJob) (fields entity.ContractFields, err error) {
	defer func() {
		if r := recover(); r != nil {
			t.logger.Error("tracker.job.panic", "file", job.Name, "panic", fmt.Sprint(r))
			fields, err = entity.ContractFields{}, errPanicked
		}
	}()
	return t.proc.Process(ctx, job.Name, job.Source)
}

// errPanicked carries no text so the generic failure message is recorded.
var errPanicked = emptyError{}

type emptyError struct{}

func (emptyError) Error() string { return "" }

func failureMessage(err error) string {
	if err == nil {
		return constants.ExtractionFailed
	}
	msg := err.Error()
	var ae *common.AppError
	if errors.As(err, &ae) {
		msg = ae.Detail()
	}
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return constants.ExtractionFailed
	}
	return msg
}

func (t *Tracker) pendingIndices() []int {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []int
	for i, j := range t.load() {
		if j.Status() == constants.JobStatusPending {
			out = append(out, i)
		}
	}
	return out
}

// start moves job i from pending to processing. It reports false when the job
// is no longer pending.
func (t *Tracker) start(i int) (entity.ProcessingJob, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	cur := t.load()
	if i >= len(cur) {
		return entity.ProcessingJob{}, false
	}
	pending, ok := cur[i].(entity.PendingJob)
	if !ok {
		return entity.ProcessingJob{}, false
	}
	job := entity.ProcessingJob{Name: pending.Name, Source: pending.Source}
	t.replace(cur, i, job)
	return job, true
}

// finish moves job i from processing to a terminal state.
func (t *Tracker) finish(i int, terminal entity.Job) {
	t.mu.Lock()
	defer t.mu.Unlock()
	cur := t.load()
	if i >= len(cur) || !cur[i].Status().CanTransition(terminal.Status()) {
		t.logger.Warn("tracker.job.stale_transition", "index", i, "to", terminal.Status())
		return
	}
	t.replace(cur, i, terminal)
}

// replace publishes a copy of cur with job i swapped. Caller holds mu.
func (t *Tracker) replace(cur []entity.Job, i int, job entity.Job) {
	next := make([]entity.Job, len(cur))
	copy(next, cur)
	next[i] = job
	t.jobs.Store(&next)
}

// Clear drops every job. It is refused while a run is in progress.
func (t *Tracker) Clear() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.busy.Load() {
		return common.ErrBusy
	}
	n := len(t.load())
	empty := []entity.Job{}
	t.jobs.Store(&empty)
	t.logger.Info("tracker.clear", "removed", n)
	return nil
}

// Jobs returns the current job list. The slice must not be modified.
func (t *Tracker) Jobs() []entity.Job {
	return t.load()
}

// Snapshot returns the current list as read models.
func (t *Tracker) Snapshot() []entity.JobView {
	jobs := t.load()
	out := make([]entity.JobView, len(jobs))
	for i, j := range jobs {
		out[i] = j.View(i)
	}
	return out
}

func (t *Tracker) Len() int {
	return len(t.load())
}

func (t *Tracker) HasPending() bool {
	return t.hasStatus(constants.JobStatusPending)
}

func (t *Tracker) HasSuccess() bool {
	return t.hasStatus(constants.JobStatusSuccess)
}

// Processing reports whether a ProcessPending call is running.
func (t *Tracker) Processing() bool {
	return t.busy.Load()
}

func (t *Tracker) hasStatus(s constants.JobStatus) bool {
	for _, j := range t.load() {
		if j.Status() == s {
			return true
		}
	}
	return false
}
