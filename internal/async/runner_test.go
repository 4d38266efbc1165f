package async

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/contracts-extractor/internal/common"
	"github.com/joseph-ayodele/contracts-extractor/internal/tracker"
)

// gatedProcessor counts runs and holds each one until release is signalled.
type gatedProcessor struct {
	runs    atomic.Int32
	started chan context.Context
	release chan struct{}
}

func newGatedProcessor() *gatedProcessor {
	return &gatedProcessor{started: make(chan context.Context, 8), release: make(chan struct{}, 8)}
}

func (g *gatedProcessor) ProcessPending(ctx context.Context) (tracker.Summary, error) {
	g.runs.Add(1)
	g.started <- ctx
	<-g.release
	return tracker.Summary{Processed: 1, Succeeded: 1}, nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func waitStarted(t *testing.T, g *gatedProcessor) context.Context {
	t.Helper()
	select {
	case ctx := <-g.started:
		return ctx
	case <-time.After(2 * time.Second):
		t.Fatal("run did not start")
		return nil
	}
}

func TestRunner_Trigger(t *testing.T) {
	t.Run("Success case - trigger runs the processor with the request id", func(t *testing.T) {
		g := newGatedProcessor()
		r := NewRunner(g, quietLogger())

		queued, err := r.Trigger(common.WithRequestID(context.Background(), "req-1"))

		require.NoError(t, err)
		assert.True(t, queued)
		ctx := waitStarted(t, g)
		assert.Equal(t, "req-1", common.RequestIDFromContext(ctx))

		g.release <- struct{}{}
		r.Shutdown(context.Background())
		assert.Equal(t, int32(1), g.runs.Load())
	})

	t.Run("Success case - triggers during a run coalesce into one", func(t *testing.T) {
		g := newGatedProcessor()
		r := NewRunner(g, quietLogger())

		_, err := r.Trigger(context.Background())
		require.NoError(t, err)
		waitStarted(t, g)

		// the worker is busy, so the first of these fills the buffer
		first, err := r.Trigger(context.Background())
		require.NoError(t, err)
		second, err := r.Trigger(context.Background())
		require.NoError(t, err)
		assert.True(t, first)
		assert.False(t, second)

		g.release <- struct{}{}
		waitStarted(t, g)
		g.release <- struct{}{}

		r.Shutdown(context.Background())
		assert.Equal(t, int32(2), g.runs.Load())
	})
}

func TestRunner_Shutdown(t *testing.T) {
	t.Run("Error case - trigger after shutdown", func(t *testing.T) {
		r := NewRunner(newGatedProcessor(), quietLogger())
		r.Shutdown(context.Background())

		queued, err := r.Trigger(context.Background())

		assert.ErrorIs(t, err, ErrClosed)
		assert.False(t, queued)
		// second shutdown is a no-op
		r.Shutdown(context.Background())
	})

	t.Run("Success case - expired deadline cancels the running pass", func(t *testing.T) {
		g := newGatedProcessor()
		r := NewRunner(g, quietLogger())
		_, err := r.Trigger(context.Background())
		require.NoError(t, err)
		runCtx := waitStarted(t, g)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		r.Shutdown(ctx)

		select {
		case <-runCtx.Done():
		case <-time.After(2 * time.Second):
			t.Fatal("run context was not cancelled")
		}
		g.release <- struct{}{}
	})
}
