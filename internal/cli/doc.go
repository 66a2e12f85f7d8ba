// Package cli implements the pbar command-line interface.
//
// Each Cobra command is a thin shell around an exported function (Run,
// Watch, Demo, Init) that takes an options struct, so commands can be
// exercised without a terminal.
//
// # Command Structure
//
//	pbar run -- <command>   - Run a command behind an indicator
//	pbar watch              - Draw progress reported on stdin
//	pbar demo               - Play a scripted scenario
//	pbar init               - Create .pbar.yaml
//	pbar config show|set    - Inspect or edit configuration
//	pbar version            - Print build information
//	pbar completion <shell> - Generate shell completions
//
// # Sessions
//
// A session owns one indicator.Engine for the life of a command. It picks a
// renderer from the display writer: the Bubble Tea model when it is a
// terminal, an inline redrawn line with --plain, and one line per step when
// it isn't a terminal. The Bubble Tea renderer reports transition ends
// through an indicator.Transitions hub; the inline renderers draw final
// states immediately and use indicator.TimedTransitions.
//
// # Flag Handling
//
// Global flags (--config, --speed, --plain, --no-color, --verbose,
// --metrics) are defined on the root command. Config is loaded per command
// and flags override the file.
package cli
