// Package ui renders progress indicators in the terminal.
//
// Two renderers draw an indicator.Engine:
//
//	IndicatorModel  - Bubble Tea model with an animated progress bar
//	InlineIndicator - goroutine-driven single-line renderer for plain output
//
// IndicatorModel owns real transitions: the bar springs towards its target
// and the wrapper fades out over a fixed time. It reports the end of each to
// an indicator.Transitions hub, which must be the engine's notifier. Run wires
// a model, a program and a Bridge together.
//
// InlineIndicator draws final states at once, so the engine behind it should
// use indicator.TimedTransitions.
//
// # Bars
//
// RenderBar draws block-character bars with an optional gradient fill:
//
//	ui.RenderBar(67.5, ui.DefaultBarConfig(20))  // [█████████████░░░░░░░]  68%
//
// Use DisableColors() or ApplyColorMode("never") for monochrome output.
package ui
