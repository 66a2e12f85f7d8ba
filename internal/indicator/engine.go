package indicator

import (
	"maps"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/rileyhilliard/pbar/internal/logger"
)

// Options configures an Engine. Zero values select the defaults.
type Options struct {
	// Frames schedules animation frames.
	// Default: NewTickerScheduler(DefaultFrameInterval)
	Frames FrameScheduler

	// Transitions reports the end of render-layer transitions.
	// Default: NewTimedTransitions(DefaultTransitionDuration)
	Transitions TransitionNotifier

	// Speed is how long the indeterminate curve takes to reach 50%.
	// Default: DefaultSpeed
	Speed time.Duration

	// Logger receives debug output for every transition.
	// Default: logger.Noop()
	Logger logger.Logger
}

// Engine is a progress indicator state machine. All methods are safe for
// concurrent use; none of them block on the render layer.
type Engine struct {
	mu sync.Mutex

	frames      FrameScheduler
	transitions TransitionNotifier
	log         logger.Logger
	halfway     time.Duration

	mode              Mode
	percentage        float64
	active            bool
	visible           bool
	fading            bool
	awaitingIndicator bool
	version           uint64

	// lastFrame is only meaningful when hasLastFrame is set. freshCycle
	// makes the first frame of a cycle reset the percentage.
	lastFrame    time.Time
	hasLastFrame bool
	freshCycle   bool

	frame     slot
	indicator slot
	wrapper   slot
	binding   slot

	disposed     bool
	queued       []Event
	observers    map[int]Observer
	nextObserver int

	// deferred holds collaborator registrations made during the current
	// update. outbox is the ordered work run outside the lock; draining is
	// set while some goroutine is working through it.
	deferred []func()
	outbox   []func()
	draining bool
}

// New creates an idle engine: inactive, invisible, 0%.
func New(opts Options) *Engine {
	if opts.Frames == nil {
		opts.Frames = NewTickerScheduler(DefaultFrameInterval)
	}
	if opts.Transitions == nil {
		opts.Transitions = NewTimedTransitions(DefaultTransitionDuration)
	}
	if opts.Speed <= 0 {
		opts.Speed = DefaultSpeed
	}
	if opts.Logger == nil {
		opts.Logger = logger.Noop()
	}

	return &Engine{
		frames:      opts.Frames,
		transitions: opts.Transitions,
		log:         opts.Logger,
		halfway:     opts.Speed,
		mode:        ModeIndeterminate,
		observers:   make(map[int]Observer),
	}
}

// State returns a snapshot of the current state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Speed returns the current time-to-50% setting.
func (e *Engine) Speed() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.halfway
}

// Subscribe registers an observer and returns a function removing it.
// Observers are called in the order they subscribed, and see events in the
// order the state changed, one event at a time.
func (e *Engine) Subscribe(o Observer) (unsubscribe func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextObserver++
	id := e.nextObserver
	e.observers[id] = o

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.observers, id)
	}
}

// Start activates a new indeterminate cycle. It is a no-op while a cycle is
// already active. Calling it while a previous cycle is still finishing
// abandons that cycle's exit animation.
func (e *Engine) Start() {
	e.update(e.startLocked)
}

// StartWith starts a cycle and binds src to it. Unlike Start, it (re)binds
// src even when a cycle is already active.
func (e *Engine) StartWith(src Source) {
	e.update(func() {
		e.startLocked()
		if !src.IsZero() {
			e.bindLocked(src)
		}
	})
}

// Complete ends the active cycle: the bar animates to 100%, fades out and
// returns to idle. It is a no-op when no cycle is active.
func (e *Engine) Complete() {
	e.update(e.completeLocked)
}

// SetActive is the property-style form of Start/Complete.
func (e *Engine) SetActive(active bool) {
	e.update(func() {
		if active {
			e.startLocked()
		} else {
			e.completeLocked()
		}
	})
}

// SetProgress sets a determinate percentage (0-100, clamped). A nil value
// switches back to indeterminate mode. Reaching 100 completes the cycle.
func (e *Engine) SetProgress(percent *float64) {
	e.update(func() { e.setProgressLocked(percent) })
}

// SetProgressFraction is SetProgress for 0-1 values. The percentage is
// rounded to a whole number; NaN is ignored.
func (e *Engine) SetProgressFraction(fraction *float64) {
	e.update(func() { e.setFractionLocked(fraction) })
}

// SetIndeterminateSpeed changes how long the indeterminate curve takes to
// reach 50%. See ParseSpeed for accepted values; anything else is ignored.
func (e *Engine) SetIndeterminateSpeed(v any) {
	e.update(func() {
		d, ok := ParseSpeed(v)
		if !ok {
			e.log.Debug("indicator: ignoring speed %v", v)
			return
		}
		e.halfway = d
	})
}

// Dispose cancels all pending frames, transition waits and bindings. The
// engine ignores every call afterwards. Dispose never blocks on a source.
func (e *Engine) Dispose() {
	e.mu.Lock()
	if e.disposed {
		e.mu.Unlock()
		return
	}
	e.frame.release()
	e.indicator.release()
	e.wrapper.release()
	e.binding.release()
	e.disposed = true
	e.queue(EventDisposed)

	e.flushLocked()
	e.observers = nil
	e.unlockAndDrain()
}

// update runs fn under the engine lock, then runs the work it produced
// outside it. It does nothing once the engine is disposed.
func (e *Engine) update(fn func()) {
	e.mu.Lock()
	if e.disposed {
		e.mu.Unlock()
		return
	}
	fn()
	e.flushLocked()
	e.unlockAndDrain()
}

// flushLocked moves the queued events, then the deferred registrations, to
// the outbox.
func (e *Engine) flushLocked() {
	events := e.queued
	e.queued = nil
	if len(events) > 0 && len(e.observers) > 0 {
		observers := make([]Observer, 0, len(e.observers))
		for _, id := range slices.Sorted(maps.Keys(e.observers)) {
			observers = append(observers, e.observers[id])
		}
		e.outbox = append(e.outbox, func() { deliver(events, observers) })
	}
	e.outbox = append(e.outbox, e.deferred...)
	e.deferred = nil
}

// unlockAndDrain works through the outbox in order, releasing the lock
// around each item. Only one goroutine drains at a time; updates made while
// it runs (from observers, collaborators firing synchronously or other
// goroutines) append to the outbox and return, and the drainer picks their
// work up after the current item.
func (e *Engine) unlockAndDrain() {
	if e.draining {
		e.mu.Unlock()
		return
	}
	e.draining = true
	for len(e.outbox) > 0 {
		work := e.outbox[0]
		e.outbox = e.outbox[1:]
		e.mu.Unlock()
		work()
		e.mu.Lock()
	}
	e.draining = false
	e.mu.Unlock()
}

// attachLater registers h with a collaborator once the lock is released.
func (e *Engine) attachLater(h *Handle, register func() (cancel func())) {
	e.deferred = append(e.deferred, func() { h.attach(register) })
}

func deliver(events []Event, observers []Observer) {
	for _, ev := range events {
		for _, o := range observers {
			o.OnEvent(ev)
		}
	}
}

func (e *Engine) snapshotLocked() State {
	return State{
		Mode:              e.mode,
		Phase:             phaseOf(e.active, e.visible, e.mode),
		Percentage:        e.percentage,
		Active:            e.active,
		Visible:           e.visible,
		Fading:            e.fading,
		AwaitingIndicator: e.awaitingIndicator,
		Version:           e.version,
	}
}

// touch records a mutation.
func (e *Engine) touch() {
	e.version++
}

func (e *Engine) queue(kind EventKind) {
	e.queueEvent(Event{Kind: kind})
}

func (e *Engine) queueEvent(ev Event) {
	ev.State = e.snapshotLocked()
	e.log.Debug("indicator: %s (%s, %.1f%%)", ev.Kind, ev.State.Phase, ev.State.Percentage)
	e.queued = append(e.queued, ev)
}

// resetCycleLocked drops all pending driver work of the previous cycle.
func (e *Engine) resetCycleLocked() {
	e.frame.release()
	e.indicator.release()
	e.wrapper.release()
	e.fading = false
	e.awaitingIndicator = false
	e.hasLastFrame = false
}

func (e *Engine) startLocked() {
	if e.active {
		return
	}
	e.resetCycleLocked()
	e.active = true
	e.visible = true
	e.percentage = 0
	e.mode = ModeIndeterminate
	e.freshCycle = true
	e.touch()
	e.queue(EventStarted)

	e.startIndeterminateLocked()
}

// startDeterminateLocked opens a cycle directly in determinate mode, for
// progress values that arrive while no cycle is active.
func (e *Engine) startDeterminateLocked(percent float64) {
	e.resetCycleLocked()
	e.active = true
	e.visible = true
	e.mode = ModeDeterminate
	e.percentage = percent
	e.freshCycle = false
	e.touch()
	e.queue(EventStarted)
	e.queue(EventDeterminate)

	if e.percentage >= 100 {
		e.completeLocked()
	}
}

func (e *Engine) completeLocked() {
	if !e.active {
		return
	}
	e.active = false
	e.unbindLocked()
	e.touch()
	e.queue(EventFinishing)

	if e.mode == ModeIndeterminate {
		// The running loop switches to the finishing law on its next frame.
		if !e.frame.live() {
			e.startIndeterminateLocked()
		}
		return
	}

	if e.percentage >= 100 {
		e.fadeOutLocked()
		return
	}
	e.transitionToFullDeterminateLocked()
}

func (e *Engine) setProgressLocked(percent *float64) {
	if percent == nil {
		e.resumeIndeterminateLocked()
		return
	}
	if math.IsNaN(*percent) {
		return
	}
	v := clampPercent(*percent)

	if !e.active {
		e.startDeterminateLocked(v)
		return
	}

	switch {
	case e.mode == ModeIndeterminate:
		e.frame.release()
		e.hasLastFrame = false
		e.mode = ModeDeterminate
		e.percentage = v
		e.touch()
		e.queue(EventDeterminate)
	case v != e.percentage:
		e.percentage = v
		e.touch()
		e.queue(EventProgress)
	}

	if e.percentage >= 100 {
		e.completeLocked()
	}
}

func (e *Engine) setFractionLocked(fraction *float64) {
	if fraction == nil {
		e.setProgressLocked(nil)
		return
	}
	if math.IsNaN(*fraction) {
		return
	}
	percent := math.Round(math.Max(0, math.Min(1, *fraction)) * 100)
	e.setProgressLocked(&percent)
}

// resumeIndeterminateLocked hands a determinate cycle back to the simulated
// curve, continuing from the current percentage.
func (e *Engine) resumeIndeterminateLocked() {
	if e.mode == ModeIndeterminate {
		return
	}
	e.mode = ModeIndeterminate
	e.touch()
	e.queue(EventIndeterminate)

	if !e.active {
		return
	}
	e.hasLastFrame = false
	e.freshCycle = false
	e.startIndeterminateLocked()
}
