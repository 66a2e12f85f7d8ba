// Package testing provides test doubles for the indicator package: a manual
// frame clock and controllable futures and streams.
package testing

import (
	"context"
	"io"
	"sync"
	"time"
)

type pendingFrame struct {
	id int
	fn func(time.Time)
}

// FakeFrames is a FrameScheduler driven by the test. Requested frames only
// fire when Step is called.
type FakeFrames struct {
	mu      sync.Mutex
	now     time.Time
	next    int
	pending []pendingFrame

	// Requested counts every RequestFrame call.
	Requested int
	// Cancelled counts cancellations that removed a pending frame.
	Cancelled int
}

// NewFakeFrames creates a frame clock starting at the Unix epoch.
func NewFakeFrames() *FakeFrames {
	return &FakeFrames{now: time.Unix(0, 0)}
}

// RequestFrame implements indicator.FrameScheduler.
func (f *FakeFrames) RequestFrame(fn func(now time.Time)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.next++
	id := f.next
	f.Requested++
	f.pending = append(f.pending, pendingFrame{id: id, fn: fn})

	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		for i, p := range f.pending {
			if p.id == id {
				f.pending = append(f.pending[:i], f.pending[i+1:]...)
				f.Cancelled++
				return
			}
		}
	}
}

// Step advances the clock by d and fires the frames that were pending before
// the call, in request order. Frames requested by those callbacks wait for
// the next Step. Returns the number of frames fired.
func (f *FakeFrames) Step(d time.Duration) int {
	f.mu.Lock()
	f.now = f.now.Add(d)
	now := f.now
	due := f.pending
	f.pending = nil
	f.mu.Unlock()

	for _, p := range due {
		p.fn(now)
	}
	return len(due)
}

// Run steps the clock in increments of interval until total has elapsed.
func (f *FakeFrames) Run(total, interval time.Duration) {
	for elapsed := time.Duration(0); elapsed < total; elapsed += interval {
		f.Step(interval)
	}
}

// Pending returns the number of frames waiting to fire.
func (f *FakeFrames) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending)
}

// Now returns the fake clock.
func (f *FakeFrames) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// FakeFuture is a Future settled by the test.
type FakeFuture struct {
	// IgnoreCancel makes Await wait for settlement even after its context
	// is cancelled, like a task that cannot be interrupted.
	IgnoreCancel bool

	once     sync.Once
	settled  chan struct{}
	err      error
	returned chan struct{}
}

// NewFakeFuture creates an unsettled future.
func NewFakeFuture() *FakeFuture {
	return &FakeFuture{
		settled:  make(chan struct{}),
		returned: make(chan struct{}, 1),
	}
}

// Await implements indicator.Future.
func (f *FakeFuture) Await(ctx context.Context) error {
	defer func() {
		select {
		case f.returned <- struct{}{}:
		default:
		}
	}()

	if f.IgnoreCancel {
		<-f.settled
		return f.err
	}
	select {
	case <-f.settled:
		return f.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Resolve settles the future successfully.
func (f *FakeFuture) Resolve() {
	f.once.Do(func() { close(f.settled) })
}

// Reject settles the future with err.
func (f *FakeFuture) Reject(err error) {
	f.once.Do(func() {
		f.err = err
		close(f.settled)
	})
}

// Returned is signalled once Await has returned.
func (f *FakeFuture) Returned() <-chan struct{} {
	return f.returned
}

type streamItem struct {
	value float64
	err   error
}

// FakeStream is a Stream fed by the test. Values and termination are
// delivered in the order they were pushed.
type FakeStream struct {
	items chan streamItem
}

// NewFakeStream creates a stream with room for a few pending items.
func NewFakeStream() *FakeStream {
	return &FakeStream{items: make(chan streamItem, 64)}
}

// Emit queues a progress fraction.
func (s *FakeStream) Emit(v float64) {
	s.items <- streamItem{value: v}
}

// Close ends the stream normally.
func (s *FakeStream) Close() {
	s.items <- streamItem{err: io.EOF}
}

// Fail ends the stream with err.
func (s *FakeStream) Fail(err error) {
	s.items <- streamItem{err: err}
}

// Next implements indicator.Stream.
func (s *FakeStream) Next(ctx context.Context) (float64, error) {
	select {
	case it := <-s.items:
		return it.value, it.err
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// Recorder collects engine events for assertions. Its OnEvent method
// satisfies indicator.Observer.
type Recorder[E any] struct {
	mu     sync.Mutex
	events []E
}

// OnEvent records ev.
func (r *Recorder[E]) OnEvent(ev E) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

// Events returns a copy of the recorded events.
func (r *Recorder[E]) Events() []E {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]E, len(r.events))
	copy(out, r.events)
	return out
}

// Len returns the number of recorded events.
func (r *Recorder[E]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}
