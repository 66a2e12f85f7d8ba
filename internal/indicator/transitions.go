package indicator

import (
	"sync"
	"time"
)

// DefaultTransitionDuration is used by TimedTransitions when no duration is set.
const DefaultTransitionDuration = 250 * time.Millisecond

// Element names one of the two visual elements whose transitions the engine
// waits on.
type Element int

const (
	// ElementIndicator is the fill that shows the percentage.
	ElementIndicator Element = iota
	// ElementWrapper is the outer container that fades out.
	ElementWrapper
)

func (e Element) String() string {
	if e == ElementWrapper {
		return "wrapper"
	}
	return "indicator"
}

// TransitionNotifier lets the engine wait for the render layer to finish a
// visual transition. Listeners are one-shot; cancel must be idempotent and
// safe to call after the listener fired. A notifier whose transition already
// ended may call fn before OnTransitionEnd returns; the engine registers
// outside its lock.
type TransitionNotifier interface {
	OnTransitionEnd(el Element, fn func()) (cancel func())
}

// Transitions is a TransitionNotifier driven by the render layer, which calls
// Notify whenever an element finishes animating.
type Transitions struct {
	mu        sync.Mutex
	next      int
	listeners map[Element]map[int]func()
}

// NewTransitions creates an empty hub.
func NewTransitions() *Transitions {
	return &Transitions{
		listeners: make(map[Element]map[int]func()),
	}
}

// OnTransitionEnd implements TransitionNotifier.
func (t *Transitions) OnTransitionEnd(el Element, fn func()) func() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.next++
	id := t.next
	if t.listeners[el] == nil {
		t.listeners[el] = make(map[int]func())
	}
	t.listeners[el][id] = fn

	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		delete(t.listeners[el], id)
	}
}

// Notify fires and removes every listener waiting on el. Listeners run
// outside the hub lock and may register new listeners.
func (t *Transitions) Notify(el Element) int {
	t.mu.Lock()
	fired := t.listeners[el]
	delete(t.listeners, el)
	t.mu.Unlock()

	for _, fn := range fired {
		fn()
	}
	return len(fired)
}

// Pending returns the number of listeners waiting on el.
func (t *Transitions) Pending(el Element) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.listeners[el])
}

// TimedTransitions assumes every transition lasts a fixed duration. It suits
// renderers that draw the final state immediately.
type TimedTransitions struct {
	duration time.Duration
}

// NewTimedTransitions creates a notifier that fires d after registration.
// Negative durations are treated as zero.
func NewTimedTransitions(d time.Duration) *TimedTransitions {
	if d < 0 {
		d = 0
	}
	return &TimedTransitions{duration: d}
}

// OnTransitionEnd implements TransitionNotifier.
func (t *TimedTransitions) OnTransitionEnd(_ Element, fn func()) func() {
	timer := time.AfterFunc(t.duration, fn)
	return func() { timer.Stop() }
}
