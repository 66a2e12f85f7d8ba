package indicator

import "math"

// Mode selects what drives the percentage.
type Mode int

const (
	// ModeIndeterminate simulates progress because the real value is unknown.
	ModeIndeterminate Mode = iota
	// ModeDeterminate follows explicit progress values.
	ModeDeterminate
)

func (m Mode) String() string {
	if m == ModeDeterminate {
		return "determinate"
	}
	return "indeterminate"
}

// Phase is the state machine position derived from the engine flags.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseIndeterminate
	PhaseDeterminate
	PhaseFinishing
)

func (p Phase) String() string {
	switch p {
	case PhaseIndeterminate:
		return "running-indeterminate"
	case PhaseDeterminate:
		return "running-determinate"
	case PhaseFinishing:
		return "finishing"
	default:
		return "idle"
	}
}

// State is an immutable snapshot of the engine, safe to hand to a renderer.
type State struct {
	Mode       Mode
	Phase      Phase
	Percentage float64
	Active     bool
	Visible    bool

	// Fading is set while the engine waits for the wrapper fade-out.
	Fading bool

	// AwaitingIndicator is set while the engine waits for the fill to finish
	// animating to 100%.
	AwaitingIndicator bool

	// Version increases on every mutation.
	Version uint64
}

// Fraction returns the percentage as a 0-1 value.
func (s State) Fraction() float64 {
	return s.Percentage / 100
}

func phaseOf(active, visible bool, mode Mode) Phase {
	switch {
	case !visible:
		return PhaseIdle
	case !active:
		return PhaseFinishing
	case mode == ModeDeterminate:
		return PhaseDeterminate
	default:
		return PhaseIndeterminate
	}
}

// clampPercent clamps a percentage to the 0-100 range.
func clampPercent(p float64) float64 {
	return math.Max(0, math.Min(100, p))
}
