// Package viz provides terminal views of the linkage solution.
//
// The package contains two pieces:
//
//   - [Explorer]: a Bubble Tea model that re-solves the arm on every parameter change
//   - [PlotSweep] and [WriteSweepTable]: output for a one-parameter sweep
//
// # Key Bindings
//
//	↑/↓ k/j - Select parameter
//	←/→ h/l - Nudge the selected value by 1%
//	Enter   - Edit the selected value
//	Tab     - Cycle the plotted unknown
//	R       - Reset to the starting parameters
//	Q       - Quit
package viz
