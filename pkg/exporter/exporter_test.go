package exporter

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-sygnea/pkg/clipboard"
	"github.com/goliatone/go-sygnea/pkg/render"
)

type manualClock struct {
	mu      sync.Mutex
	pending []func()
	delays  []time.Duration
}

func (c *manualClock) schedule(d time.Duration, fn func()) func() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := len(c.pending)
	c.pending = append(c.pending, fn)
	c.delays = append(c.delays, d)
	return func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.pending[idx] == nil {
			return false
		}
		c.pending[idx] = nil
		return true
	}
}

func (c *manualClock) fireAll() {
	c.mu.Lock()
	fns := make([]func(), 0, len(c.pending))
	for i, fn := range c.pending {
		if fn != nil {
			fns = append(fns, fn)
			c.pending[i] = nil
		}
	}
	c.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

type transition struct {
	Format render.Format
	From   State
	To     State
}

func newTestExporter(t *testing.T, backend clipboard.Backend) (*Exporter, *manualClock, *[]transition, *observer.ObservedLogs) {
	t.Helper()

	copier, err := clipboard.New(backend)
	if err != nil {
		t.Fatalf("new copier: %v", err)
	}

	clock := &manualClock{}
	var mu sync.Mutex
	var seen []transition
	tracker := NewTracker(
		WithScheduler(clock.schedule),
		WithListener(func(format render.Format, from, to State) {
			mu.Lock()
			defer mu.Unlock()
			seen = append(seen, transition{format, from, to})
		}),
	)

	core, logs := observer.New(zap.DebugLevel)
	exp, err := New(copier, WithTracker(tracker), WithLogger(zap.New(core)))
	if err != nil {
		t.Fatalf("new exporter: %v", err)
	}
	return exp, clock, &seen, logs
}

func TestCopyRejectedCycleThroughError(t *testing.T) {
	mem := clipboard.NewMemory()
	mem.Fail = errors.New("permission denied")
	exp, clock, seen, logs := newTestExporter(t, mem)

	if got := exp.Tracker().Status(render.FormatHTML).State; got != StateIdle {
		t.Fatalf("expected idle before copy, got %s", got)
	}

	status := exp.Copy(context.Background(), render.FormatHTML, clipboard.Payload{HTML: "<b>x</b>", Text: "x"})
	if status.State != StateError || status.Error != "permission denied" {
		t.Fatalf("unexpected status %+v", status)
	}
	if logs.FilterMessage("copy failed").Len() != 1 {
		t.Fatalf("expected failure to be logged")
	}

	clock.fireAll()
	if got := exp.Tracker().Status(render.FormatHTML).State; got != StateIdle {
		t.Fatalf("expected idle after reset, got %s", got)
	}

	want := []transition{
		{render.FormatHTML, StateIdle, StateError},
		{render.FormatHTML, StateError, StateIdle},
	}
	if diff := cmp.Diff(want, *seen); diff != "" {
		t.Fatalf("transitions mismatch (-want +got):\n%s", diff)
	}
	if clock.delays[0] != DefaultResetDelay {
		t.Fatalf("expected default delay, got %s", clock.delays[0])
	}
}

func TestCopySuccessPerFormat(t *testing.T) {
	mem := clipboard.NewMemory()
	exp, clock, _, _ := newTestExporter(t, mem)

	html := exp.Copy(context.Background(), render.FormatHTML, clipboard.Payload{HTML: "<b>x</b>", Text: "x"})
	if html.State != StateSuccess {
		t.Fatalf("unexpected html status %+v", html)
	}
	if got := exp.Tracker().Status(render.FormatText).State; got != StateIdle {
		t.Fatalf("text status changed by html copy: %s", got)
	}

	text := exp.Copy(context.Background(), render.FormatText, clipboard.Payload{Text: "x"})
	if text.State != StateSuccess {
		t.Fatalf("unexpected text status %+v", text)
	}
	if got, _ := mem.Get(clipboard.MIMEText); got != "x" {
		t.Fatalf("unexpected clipboard text %q", got)
	}

	clock.fireAll()
	for _, format := range []render.Format{render.FormatHTML, render.FormatText} {
		if got := exp.Tracker().Status(format).State; got != StateIdle {
			t.Fatalf("%s not reset: %s", format, got)
		}
	}
}

func TestRepeatedCopyRestartsTimer(t *testing.T) {
	clock := &manualClock{}
	tracker := NewTracker(WithScheduler(clock.schedule), WithResetDelay(time.Second))

	if err := tracker.Failed(render.FormatText, errors.New("x")); err != nil {
		t.Fatalf("failed: %v", err)
	}
	if err := tracker.Succeeded(render.FormatText); err != nil {
		t.Fatalf("succeeded: %v", err)
	}

	pending := 0
	for _, fn := range clock.pending {
		if fn != nil {
			pending++
		}
	}
	if pending != 1 {
		t.Fatalf("expected the first timer cancelled, %d pending", pending)
	}
	if clock.delays[1] != time.Second {
		t.Fatalf("expected custom delay, got %s", clock.delays[1])
	}
	if st := tracker.Status(render.FormatText); st.State != StateSuccess || st.Error != "" {
		t.Fatalf("unexpected status %+v", st)
	}
}

func TestResetFromIdleIsRejected(t *testing.T) {
	tracker := NewTracker()
	err := tracker.Reset(render.FormatHTML)

	var noTransition *ErrNoTransition
	if !errors.As(err, &noTransition) {
		t.Fatalf("expected ErrNoTransition, got %v", err)
	}
}

func TestStaleTimerIgnored(t *testing.T) {
	clock := &manualClock{}
	tracker := NewTracker(WithScheduler(clock.schedule))

	_ = tracker.Succeeded(render.FormatHTML)
	stale := clock.pending[0]
	_ = tracker.Reset(render.FormatHTML)
	_ = tracker.Failed(render.FormatHTML, errors.New("boom"))

	stale()
	if st := tracker.Status(render.FormatHTML); st.State != StateError {
		t.Fatalf("stale timer reset the status: %+v", st)
	}
}

func TestRealTimerResets(t *testing.T) {
	tracker := NewTracker(WithResetDelay(10 * time.Millisecond))
	_ = tracker.Succeeded(render.FormatHTML)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if tracker.Status(render.FormatHTML).State == StateIdle {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("status never returned to idle")
}

func TestUnsupportedFormat(t *testing.T) {
	exp, _, _, _ := newTestExporter(t, clipboard.NewMemory())
	status := exp.Copy(context.Background(), render.Format("pdf"), clipboard.Payload{Text: "x"})
	if status.State != StateError {
		t.Fatalf("expected error status, got %+v", status)
	}
}
