package worker

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/agbru/numreport/internal/logging"
)

type countingTracker struct {
	started, stopped atomic.Int32
}

func (c *countingTracker) WorkerStarted() { c.started.Add(1) }
func (c *countingTracker) WorkerStopped() { c.stopped.Add(1) }

func TestGo_WaitReturnsResult(t *testing.T) {
	t.Parallel()
	want := errors.New("boom")
	tests := []struct {
		name string
		fn   func(context.Context) error
		want error
	}{
		{"success", func(context.Context) error { return nil }, nil},
		{"failure", func(context.Context) error { return want }, want},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			task := Go(context.Background(), tt.name, tt.fn)
			if err := task.Wait(); !errors.Is(err, tt.want) {
				t.Errorf("Wait() = %v, want %v", err, tt.want)
			}
			if task.Name() != tt.name {
				t.Errorf("Name() = %q, want %q", task.Name(), tt.name)
			}
		})
	}
}

func TestGo_RunsOnSeparateGoroutine(t *testing.T) {
	t.Parallel()
	release := make(chan struct{})
	task := Go(context.Background(), "blocked", func(context.Context) error {
		<-release
		return nil
	})

	select {
	case <-task.Done():
		t.Fatal("task finished before being released")
	default:
	}

	close(release)
	select {
	case <-task.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("task did not finish")
	}
}

func TestGo_RecoversPanic(t *testing.T) {
	t.Parallel()
	task := Go(context.Background(), "panicky", func(context.Context) error {
		panic("bad state")
	})
	err := task.Wait()
	if err == nil || !strings.Contains(err.Error(), "bad state") {
		t.Errorf("expected panic converted to error, got %v", err)
	}
}

func TestGo_PropagatesCancellation(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	task := Go(ctx, "waiter", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	cancel()
	if err := task.Wait(); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestGo_TrackerAndLogger(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	var mu sync.Mutex
	logger := logging.NewZerologAdapter(zerolog.New(&lockedWriter{w: &buf, mu: &mu}).Level(zerolog.DebugLevel))
	tracker := &countingTracker{}

	task := Go(context.Background(), "reporter", func(context.Context) error { return nil },
		WithLogger(logger), WithTracker(tracker))
	if err := task.Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tracker.started.Load() != 1 || tracker.stopped.Load() != 1 {
		t.Errorf("tracker started=%d stopped=%d, want 1/1", tracker.started.Load(), tracker.stopped.Load())
	}
	mu.Lock()
	out := buf.String()
	mu.Unlock()
	for _, want := range []string{"worker started", "worker finished", "reporter"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output should contain %q, got: %s", want, out)
		}
	}
}

func TestTask_WaitIsIdempotent(t *testing.T) {
	t.Parallel()
	want := errors.New("once")
	task := Go(context.Background(), "once", func(context.Context) error { return want })
	for i := 0; i < 3; i++ {
		if err := task.Wait(); !errors.Is(err, want) {
			t.Fatalf("Wait() #%d = %v, want %v", i, err, want)
		}
	}
}

type lockedWriter struct {
	w  *bytes.Buffer
	mu *sync.Mutex
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
