// Package mechanism describes the three-arm linkage: its parameters, its eight
// unknowns and the equilibrium equations that relate them.
package mechanism
