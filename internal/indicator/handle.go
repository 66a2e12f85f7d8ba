package indicator

import "sync"

// Handle is the cancellation token for one piece of pending engine work: an
// animation frame, a transition-end wait or a source binding.
type Handle struct {
	mu     sync.Mutex
	done   bool
	cancel func()
}

func newHandle() *Handle {
	return &Handle{}
}

// Cancel revokes the pending work. Calling it again, or on a nil Handle, is a
// no-op.
func (h *Handle) Cancel() {
	if h == nil {
		return
	}
	h.mu.Lock()
	if h.done {
		h.mu.Unlock()
		return
	}
	h.done = true
	cancel := h.cancel
	h.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// attach runs register and keeps the cancel func it returns. register is
// skipped when h is already cancelled. It runs without h's lock held, since
// the callback it registers may fire right away; a Cancel that lands while
// it runs is applied once it returns.
func (h *Handle) attach(register func() (cancel func())) {
	h.mu.Lock()
	if h.done {
		h.mu.Unlock()
		return
	}
	h.mu.Unlock()

	cancel := register()

	h.mu.Lock()
	if !h.done {
		h.cancel = cancel
		h.mu.Unlock()
		return
	}
	h.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// slot holds at most one live Handle. All methods are called with the engine
// lock held.
type slot struct {
	h *Handle
}

// set cancels the current occupant and installs h.
func (s *slot) set(h *Handle) {
	s.h.Cancel()
	s.h = h
}

// release cancels the current occupant, reporting whether there was one.
func (s *slot) release() bool {
	if s.h == nil {
		return false
	}
	s.h.Cancel()
	s.h = nil
	return true
}

// live reports whether the slot has an occupant.
func (s *slot) live() bool {
	return s.h != nil
}

// holds reports whether h is the current occupant.
func (s *slot) holds(h *Handle) bool {
	return h != nil && s.h == h
}

// take clears the slot if h is the current occupant. Callbacks use it to
// claim their own slot when they fire; a false result means h went stale.
func (s *slot) take(h *Handle) bool {
	if !s.holds(h) {
		return false
	}
	s.h = nil
	return true
}
