package exporter

import (
	"fmt"
	"sync"
	"time"

	"github.com/goliatone/go-sygnea/pkg/render"
)

// State is the visible copy state of one export format.
type State string

const (
	StateIdle    State = "idle"
	StateSuccess State = "success"
	StateError   State = "error"
)

// Event drives state changes.
type Event string

const (
	EventSucceeded Event = "succeeded"
	EventFailed    Event = "failed"
	EventReset     Event = "reset"
)

// DefaultResetDelay is how long success or error stays visible.
const DefaultResetDelay = 2 * time.Second

// ErrNoTransition reports an event that is not valid in the current state.
type ErrNoTransition struct {
	State State
	Event Event
}

func (e *ErrNoTransition) Error() string {
	return fmt.Sprintf("exporter: no transition from %q on %q", e.State, e.Event)
}

// transitions is keyed by [from][event]. A repeated copy while the previous
// result is still visible replaces it and restarts the reset timer.
var transitions = map[State]map[Event]State{
	StateIdle: {
		EventSucceeded: StateSuccess,
		EventFailed:    StateError,
	},
	StateSuccess: {
		EventSucceeded: StateSuccess,
		EventFailed:    StateError,
		EventReset:     StateIdle,
	},
	StateError: {
		EventSucceeded: StateSuccess,
		EventFailed:    StateError,
		EventReset:     StateIdle,
	},
}

// Status is a snapshot for one format.
type Status struct {
	Format render.Format `json:"format"`
	State  State         `json:"state"`
	Error  string        `json:"error,omitempty"`
}

// Scheduler runs fn after d and returns a function cancelling it.
type Scheduler func(d time.Duration, fn func()) (stop func() bool)

func afterFunc(d time.Duration, fn func()) func() bool {
	return time.AfterFunc(d, fn).Stop
}

// Listener observes every transition.
type Listener func(format render.Format, from, to State)

type formatState struct {
	state State
	err   string
	gen   uint64
	stop  func() bool
}

// Tracker keeps the copy state per format and returns each one to idle after
// the reset delay. It is safe for concurrent use.
type Tracker struct {
	mu        sync.Mutex
	states    map[render.Format]*formatState
	delay     time.Duration
	schedule  Scheduler
	listeners []Listener
}

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithResetDelay changes how long a result stays visible.
func WithResetDelay(d time.Duration) TrackerOption {
	return func(t *Tracker) {
		if d > 0 {
			t.delay = d
		}
	}
}

// WithScheduler replaces time.AfterFunc.
func WithScheduler(s Scheduler) TrackerOption {
	return func(t *Tracker) {
		if s != nil {
			t.schedule = s
		}
	}
}

// WithListener registers a transition observer. Listeners run with the
// tracker lock released.
func WithListener(l Listener) TrackerOption {
	return func(t *Tracker) {
		if l != nil {
			t.listeners = append(t.listeners, l)
		}
	}
}

func NewTracker(options ...TrackerOption) *Tracker {
	t := &Tracker{
		states:   make(map[render.Format]*formatState),
		delay:    DefaultResetDelay,
		schedule: afterFunc,
	}
	for _, opt := range options {
		if opt != nil {
			opt(t)
		}
	}
	return t
}

// Status returns the current state of format.
func (t *Tracker) Status(format render.Format) Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	fs := t.get(format)
	return Status{Format: format, State: fs.state, Error: fs.err}
}

// Succeeded records a successful copy.
func (t *Tracker) Succeeded(format render.Format) error {
	return t.fire(format, EventSucceeded, "")
}

// Failed records a failed copy.
func (t *Tracker) Failed(format render.Format, cause error) error {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	return t.fire(format, EventFailed, msg)
}

// Reset returns format to idle immediately.
func (t *Tracker) Reset(format render.Format) error {
	return t.fire(format, EventReset, "")
}

func (t *Tracker) get(format render.Format) *formatState {
	fs, ok := t.states[format]
	if !ok {
		fs = &formatState{state: StateIdle}
		t.states[format] = fs
	}
	return fs
}

func (t *Tracker) fire(format render.Format, event Event, errMsg string) error {
	t.mu.Lock()
	fs := t.get(format)
	from := fs.state
	to, ok := transitions[from][event]
	if !ok {
		t.mu.Unlock()
		return &ErrNoTransition{State: from, Event: event}
	}

	if fs.stop != nil {
		fs.stop()
		fs.stop = nil
	}
	fs.gen++
	fs.state = to
	fs.err = errMsg

	if to != StateIdle {
		gen := fs.gen
		fs.stop = t.schedule(t.delay, func() {
			t.expire(format, gen)
		})
	}
	t.mu.Unlock()

	t.notify(format, from, to)
	return nil
}

// expire resets format unless a newer transition superseded the timer.
func (t *Tracker) expire(format render.Format, gen uint64) {
	t.mu.Lock()
	fs := t.get(format)
	if fs.gen != gen || fs.state == StateIdle {
		t.mu.Unlock()
		return
	}
	from := fs.state
	fs.gen++
	fs.state = StateIdle
	fs.err = ""
	fs.stop = nil
	t.mu.Unlock()

	t.notify(format, from, StateIdle)
}

func (t *Tracker) notify(format render.Format, from, to State) {
	for _, l := range t.listeners {
		l(format, from, to)
	}
}
