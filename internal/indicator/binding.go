package indicator

import (
	"context"
	"errors"
	"io"
)

// Bind attaches src to the engine, replacing any previous binding. A future
// completes the cycle when it settles; a stream feeds SetProgressFraction
// with each value and completes the cycle when it ends. Failures complete
// the cycle too. Binding starts a cycle if none is active; binding an empty
// Source completes the active cycle.
func (e *Engine) Bind(src Source) {
	e.update(func() { e.bindLocked(src) })
}

func (e *Engine) bindLocked(src Source) {
	e.unbindLocked()

	if src.IsZero() {
		e.completeLocked()
		return
	}

	if !e.active {
		e.startLocked()
	}

	ctx, cancel := context.WithCancel(context.Background())
	h := newHandle()
	h.cancel = cancel
	e.binding.set(h)
	e.queueEvent(Event{Kind: EventBound, Source: src.kind})

	switch src.kind {
	case SourceFuture:
		go e.awaitFuture(ctx, h, src.future)
	case SourceStream:
		go e.consumeStream(ctx, h, src.stream)
	}
}

// unbindLocked cancels the live binding, if any. Its goroutine will still
// finish, but finds its handle stale.
func (e *Engine) unbindLocked() {
	if e.binding.release() {
		e.queue(EventUnbound)
	}
}

func (e *Engine) awaitFuture(ctx context.Context, h *Handle, f Future) {
	err := f.Await(ctx)
	e.settle(h, err)
}

func (e *Engine) consumeStream(ctx context.Context, h *Handle, s Stream) {
	for {
		v, err := s.Next(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = nil
			}
			e.settle(h, err)
			return
		}
		if !e.emit(h, v) {
			return
		}
	}
}

// emit applies one stream value, reporting whether the binding is still live.
func (e *Engine) emit(h *Handle, fraction float64) bool {
	live := false
	e.update(func() {
		if !e.binding.holds(h) {
			return
		}
		live = true
		e.setFractionLocked(&fraction)
	})
	return live
}

func (e *Engine) settle(h *Handle, err error) {
	e.update(func() {
		if !e.binding.take(h) {
			// The engine released the binding itself and the source only
			// reported that cancellation.
			if errors.Is(err, context.Canceled) {
				return
			}
			e.queueEvent(Event{Kind: EventStaleSettlement, Err: err})
			return
		}
		h.Cancel()
		e.queueEvent(Event{Kind: EventSettled, Err: err})
		e.completeLocked()
	})
}
