package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess  = "✓" // Cycle completed successfully
	SymbolFail     = "✗" // Source failed
	SymbolPending  = "○" // Not started
	SymbolProgress = "◐" // Determinate progress
	SymbolComplete = "●" // Finished (alternative to success)
	SymbolWarning  = "⚠"
)
