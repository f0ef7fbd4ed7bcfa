package naturals

import (
	"context"
	"errors"
	"strings"
	"testing"

	apperrors "github.com/agbru/numreport/internal/errors"
)

func TestFormatSequence(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		n    int64
		want string
	}{
		{"zero emits nothing", 0, ""},
		{"one", 1, "1 "},
		{"five", 5, "1 2 3 4 5 "},
		{"twelve crosses a digit boundary", 12, "1 2 3 4 5 6 7 8 9 10 11 12 "},
		{"negative yields empty", -1, ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatSequence(tt.n); got != tt.want {
				t.Errorf("FormatSequence(%d) = %q, want %q", tt.n, got, tt.want)
			}
		})
	}
}

func TestWriteSequence_RejectsNegative(t *testing.T) {
	t.Parallel()
	var sb strings.Builder
	err := WriteSequence(context.Background(), &sb, -5)

	var validationErr apperrors.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if validationErr.Field != "n" {
		t.Errorf("Field = %q, want %q", validationErr.Field, "n")
	}
	if sb.Len() != 0 {
		t.Errorf("nothing should be written on invalid input, got %q", sb.String())
	}
}

func TestWriteSequence_Canceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var sb strings.Builder
	err := WriteSequence(ctx, &sb, 10*SequenceFlushInterval)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	// Numbers before the first check are flushed.
	if !strings.HasPrefix(sb.String(), "1 2 3 ") {
		t.Errorf("partial output should start with the sequence, got %.40q", sb.String())
	}
	if strings.Contains(sb.String(), " 5000 ") {
		t.Error("output should stop at the first cancellation check")
	}
}

// cancelingWriter cancels its context once more than limit bytes have
// arrived and fails every write after that.
type cancelingWriter struct {
	cancel  context.CancelFunc
	limit   int
	written int
}

func (w *cancelingWriter) Write(p []byte) (int, error) {
	if w.written > w.limit {
		return 0, errors.New("writer closed")
	}
	w.written += len(p)
	if w.written > w.limit {
		w.cancel()
	}
	return len(p), nil
}

func TestWriteSequence_CanceledFlushFailure(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The text of 1..4095 is 19368 bytes; the buffered writer hands it over
	// in 4096-byte chunks, so the limit trips on the last full chunk and the
	// final flush at the cancellation check fails.
	w := &cancelingWriter{cancel: cancel, limit: 15000}
	err := WriteSequence(ctx, w, 2*SequenceFlushInterval)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

type failingWriter struct{ err error }

func (f failingWriter) Write([]byte) (int, error) { return 0, f.err }

func TestWriteSequence_WriterError(t *testing.T) {
	t.Parallel()
	want := errors.New("disk full")
	if err := WriteSequence(context.Background(), failingWriter{want}, 3); !errors.Is(err, want) {
		t.Errorf("expected %v, got %v", want, err)
	}
}

func TestWriteSequence_Large(t *testing.T) {
	t.Parallel()
	const n = 3 * SequenceFlushInterval
	var sb strings.Builder
	if err := WriteSequence(context.Background(), &sb, n); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fields := strings.Fields(sb.String())
	if len(fields) != n {
		t.Fatalf("got %d numbers, want %d", len(fields), n)
	}
	if fields[n-1] != "12288" {
		t.Errorf("last number = %s, want 12288", fields[n-1])
	}
}
