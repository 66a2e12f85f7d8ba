package indicator

import "time"

// startIndeterminateLocked requests the next simulation frame, replacing any
// frame already pending.
func (e *Engine) startIndeterminateLocked() {
	h := newHandle()
	e.frame.set(h)
	e.attachLater(h, func() func() {
		return e.frames.RequestFrame(func(now time.Time) {
			e.onFrame(h, now)
		})
	})
}

func (e *Engine) onFrame(h *Handle, now time.Time) {
	e.update(func() {
		if !e.frame.take(h) {
			return
		}
		e.stepLocked(now)
	})
}

// stepLocked advances the indeterminate simulation by one frame.
func (e *Engine) stepLocked(now time.Time) {
	if e.mode != ModeIndeterminate {
		return
	}

	if !e.hasLastFrame {
		if e.freshCycle {
			e.percentage = 0
			e.freshCycle = false
		}
		e.lastFrame = now
		e.hasLastFrame = true
		e.touch()
		e.startIndeterminateLocked()
		return
	}

	delta := now.Sub(e.lastFrame).Seconds()
	if delta < 0 {
		delta = 0
	}
	e.lastFrame = now

	switch {
	case e.active:
		e.percentage = clampPercent(e.percentage + indeterminateStep(e.percentage, delta, speedFactor(e.halfway)))
	case e.percentage < 100:
		e.percentage = clampPercent(e.percentage + finishingStep(delta, normalizedSpeed(e.halfway)))
	default:
		e.fadeOutLocked()
		return
	}

	e.touch()
	e.startIndeterminateLocked()
}

// transitionToFullDeterminateLocked jumps a determinate cycle to 100% and
// waits for the fill to finish animating before fading out.
func (e *Engine) transitionToFullDeterminateLocked() {
	e.percentage = 100
	e.awaitingIndicator = true
	e.touch()

	h := newHandle()
	e.indicator.set(h)
	e.attachLater(h, func() func() {
		return e.transitions.OnTransitionEnd(ElementIndicator, func() {
			e.onIndicatorEnd(h)
		})
	})
}

func (e *Engine) onIndicatorEnd(h *Handle) {
	e.update(func() {
		if !e.indicator.take(h) {
			return
		}
		e.awaitingIndicator = false
		e.fadeOutLocked()
	})
}

// fadeOutLocked stops the simulation and waits for the wrapper fade-out.
func (e *Engine) fadeOutLocked() {
	e.frame.release()
	e.fading = true
	e.touch()
	e.queue(EventFadeOut)

	h := newHandle()
	e.wrapper.set(h)
	e.attachLater(h, func() func() {
		return e.transitions.OnTransitionEnd(ElementWrapper, func() {
			e.onWrapperEnd(h)
		})
	})
}

func (e *Engine) onWrapperEnd(h *Handle) {
	e.update(func() {
		if !e.wrapper.take(h) {
			return
		}
		e.fading = false
		e.visible = false
		e.percentage = 0
		e.mode = ModeIndeterminate
		e.hasLastFrame = false
		e.touch()
		e.queue(EventIdle)
	})
}
