package format

import (
	"strings"
	"sync"
	"testing"
	"time"
)

// fakeClock is advanced manually by tests.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{500 * time.Nanosecond, "0µs"},
		{10 * time.Microsecond, "10µs"},
		{10 * time.Millisecond, "10ms"},
		{2 * time.Second, "2s"},
	}

	for _, tt := range tests {
		got := FormatExecutionDuration(tt.d)
		if got != tt.expected {
			t.Errorf("FormatExecutionDuration(%v) = %s; want %s", tt.d, got, tt.expected)
		}
	}
}

func TestFormatETA(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name     string
		eta      time.Duration
		expected string
	}{
		{"Zero duration", 0, "calculating..."},
		{"Negative duration", -time.Second, "calculating..."},
		{"Less than a second", 500 * time.Millisecond, "< 1s"},
		{"Multiple seconds", 45 * time.Second, "45s"},
		{"One minute", time.Minute, "1m"},
		{"Minutes and seconds", 2*time.Minute + 30*time.Second, "2m30s"},
		{"Hours and minutes", time.Hour + 15*time.Minute, "1h15m"},
		{"Hours only", 2 * time.Hour, "2h"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatETA(tc.eta); got != tc.expected {
				t.Errorf("FormatETA(%v) = %q, want %q", tc.eta, got, tc.expected)
			}
		})
	}
}

func TestFormatNumberString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"1", "1"},
		{"123", "123"},
		{"1234", "1,234"},
		{"123456", "123,456"},
		{"1234567", "1,234,567"},
		{"-1234", "-1,234"},
		{"-12", "-12"},
		{"50000005000000", "50,000,005,000,000"},
	}

	for _, tt := range tests {
		if got := FormatNumberString(tt.input); got != tt.expected {
			t.Errorf("FormatNumberString(%q) = %q; want %q", tt.input, got, tt.expected)
		}
	}
}

func TestProgressBar(t *testing.T) {
	t.Parallel()
	tests := []struct {
		progress float64
		length   int
		expected string
	}{
		{0.0, 10, "░░░░░░░░░░"},
		{0.5, 10, "█████░░░░░"},
		{1.0, 10, "██████████"},
		{1.2, 10, "██████████"},
		{-0.1, 10, "░░░░░░░░░░"},
	}

	for _, tt := range tests {
		if got := ProgressBar(tt.progress, tt.length); got != tt.expected {
			t.Errorf("ProgressBar(%f, %d) = %s; want %s", tt.progress, tt.length, got, tt.expected)
		}
	}
}

func TestFormatProgressBarWithETA(t *testing.T) {
	t.Parallel()
	got := FormatProgressBarWithETA(0.5, 30*time.Second, 4)
	want := "[██░░]  50.00% ETA: 30s"
	if got != want {
		t.Errorf("FormatProgressBarWithETA() = %q, want %q", got, want)
	}
	if !strings.Contains(FormatProgressBarWithETA(0, 0, 4), "calculating...") {
		t.Error("zero ETA should render as calculating")
	}
}

func TestETAEstimator(t *testing.T) {
	t.Parallel()
	clock := &fakeClock{t: time.Unix(0, 0)}
	e := newETAEstimator(clock.Now)

	if eta := e.ETA(); eta != 0 {
		t.Fatalf("initial ETA = %v, want 0", eta)
	}

	clock.Advance(time.Second)
	progress, eta := e.Update(0.1)
	if progress != 0.1 {
		t.Errorf("progress = %v, want 0.1", progress)
	}
	// 10% per second with 90% left.
	if eta < 8*time.Second || eta > 10*time.Second {
		t.Errorf("ETA = %v, want about 9s", eta)
	}

	clock.Advance(time.Second)
	if _, eta = e.Update(1.0); eta != 0 {
		t.Errorf("ETA at completion = %v, want 0", eta)
	}
}

func TestETAEstimator_EdgeCases(t *testing.T) {
	t.Parallel()

	t.Run("clamps out of range", func(t *testing.T) {
		t.Parallel()
		e := NewETAEstimator()
		if p, _ := e.Update(1.5); p != 1 {
			t.Errorf("progress = %v, want 1", p)
		}
		if p, _ := e.Update(-0.5); p != 0 {
			t.Errorf("progress = %v, want 0", p)
		}
	})

	t.Run("caps very slow progress", func(t *testing.T) {
		t.Parallel()
		clock := &fakeClock{t: time.Unix(0, 0)}
		e := newETAEstimator(clock.Now)
		clock.Advance(1000 * time.Hour)
		_, eta := e.Update(0.001)
		if eta != MaxETA {
			t.Errorf("ETA = %v, want capped at %v", eta, MaxETA)
		}
	})

	t.Run("no time elapsed", func(t *testing.T) {
		t.Parallel()
		clock := &fakeClock{t: time.Unix(0, 0)}
		e := newETAEstimator(clock.Now)
		if _, eta := e.Update(0.5); eta != 0 {
			t.Errorf("ETA = %v, want 0 without a rate sample", eta)
		}
	})
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{10 << 20, "10.0 MiB"},
		{3 << 30, "3.0 GiB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.in); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
