// Package indicator implements the progress indicator engine behind pbar.
//
// An Engine owns a single progress cycle at a time and drives its completion
// percentage from three kinds of signal:
//
//	Start / Complete        - manual activation, percentage simulated
//	SetProgress(Fraction)   - explicit determinate values
//	Bind(Source)            - a Future or Stream tracked automatically
//
// # Modes
//
// In indeterminate mode the percentage follows a decelerating curve that
// crosses 50% after the configured speed (default 500ms) and never reaches
// 100% while active. Once Complete is called, an accelerated finishing law
// races the bar to 100%. In determinate mode the percentage follows the
// caller's values; completion animates straight to 100%.
//
// # Collaborators
//
// The engine never touches a terminal. It asks a FrameScheduler for animation
// frames and a TransitionNotifier to report when the render layer finished
// animating the fill (ElementIndicator) or the fade-out (ElementWrapper).
// TickerScheduler, Transitions and TimedTransitions are the stock
// implementations; internal/indicator/testing provides manual fakes.
//
// # Cancellation
//
// Every pending frame, transition wait and binding sits in one slot per
// category. Replacing a slot cancels its previous occupant first, and every
// callback re-checks that it still owns its slot under the engine lock, so a
// cancelled callback that fires late is a no-op.
//
// # Delivery
//
// Observer events and collaborator registrations are queued under the lock
// and run after it is released, in order, by one goroutine at a time.
// Collaborators may therefore fire callbacks synchronously and observers may
// call back into the engine.
//
//	e := indicator.New(indicator.Options{})
//	defer e.Dispose()
//	e.Bind(indicator.FromFuture(indicator.FutureFunc(func(ctx context.Context) error {
//	    return doWork(ctx)
//	})))
package indicator
