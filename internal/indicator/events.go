package indicator

// EventKind identifies what happened inside the engine.
type EventKind int

const (
	// EventStarted: a new cycle became active.
	EventStarted EventKind = iota
	// EventDeterminate: the cycle switched to explicit progress values.
	EventDeterminate
	// EventIndeterminate: the cycle went back to the simulated curve.
	EventIndeterminate
	// EventProgress: a determinate percentage changed.
	EventProgress
	// EventFinishing: Complete took effect. State holds the percentage the
	// finishing transition starts from.
	EventFinishing
	// EventFadeOut: the bar is at 100% and the wrapper fade began.
	EventFadeOut
	// EventIdle: the fade finished and the indicator is hidden.
	EventIdle
	// EventBound: a source was attached.
	EventBound
	// EventUnbound: a live source was detached before it settled.
	EventUnbound
	// EventSettled: the bound source finished. Err carries its failure, if any.
	EventSettled
	// EventStaleSettlement: a source that was already replaced or released
	// finished, and was ignored. A source that merely returns
	// context.Canceled after being released is not reported.
	EventStaleSettlement
	// EventDisposed: the engine was torn down.
	EventDisposed
)

var eventNames = map[EventKind]string{
	EventStarted:         "started",
	EventDeterminate:     "determinate",
	EventIndeterminate:   "indeterminate",
	EventProgress:        "progress",
	EventFinishing:       "finishing",
	EventFadeOut:         "fade-out",
	EventIdle:            "idle",
	EventBound:           "bound",
	EventUnbound:         "unbound",
	EventSettled:         "settled",
	EventStaleSettlement: "stale-settlement",
	EventDisposed:        "disposed",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return "unknown"
}

// Event describes one engine transition.
type Event struct {
	Kind   EventKind
	State  State
	Source SourceKind
	Err    error
}

// Observer receives engine events in the order the state changed, one at a
// time. Observers run outside the engine lock, on whichever goroutine is
// draining the engine's work, and may call back into the engine; events
// caused by such a call are delivered after the current one.
type Observer interface {
	OnEvent(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// OnEvent implements Observer.
func (f ObserverFunc) OnEvent(ev Event) {
	f(ev)
}
