package indicator

import "time"

// DefaultFrameInterval approximates a 60Hz display refresh.
const DefaultFrameInterval = 16 * time.Millisecond

// FrameScheduler delivers "next visual frame" callbacks. Each request fires at
// most once; cancel must be safe to call after the callback ran. The engine
// never holds its lock while calling RequestFrame, so fn may run before
// RequestFrame returns, but each frame should normally wait for the next
// display refresh.
type FrameScheduler interface {
	RequestFrame(fn func(now time.Time)) (cancel func())
}

// FrameSchedulerFunc adapts a function to FrameScheduler.
type FrameSchedulerFunc func(fn func(now time.Time)) (cancel func())

// RequestFrame implements FrameScheduler.
func (f FrameSchedulerFunc) RequestFrame(fn func(now time.Time)) func() {
	return f(fn)
}

// TickerScheduler fires frames on a fixed interval using runtime timers.
type TickerScheduler struct {
	interval time.Duration
}

// NewTickerScheduler creates a scheduler firing each frame interval after it
// was requested. Non-positive intervals fall back to DefaultFrameInterval.
func NewTickerScheduler(interval time.Duration) *TickerScheduler {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &TickerScheduler{interval: interval}
}

// Interval returns the frame interval.
func (s *TickerScheduler) Interval() time.Duration {
	return s.interval
}

// RequestFrame implements FrameScheduler.
func (s *TickerScheduler) RequestFrame(fn func(now time.Time)) func() {
	t := time.AfterFunc(s.interval, func() {
		fn(time.Now())
	})
	return func() { t.Stop() }
}
