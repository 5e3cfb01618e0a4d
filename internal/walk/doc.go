// Package walk simulates a single agent patrolling a grid.
//
// The agent starts on the unique start tile facing up. Each step marks the
// current tile visited and then moves forward, turning 90 degrees clockwise
// in place while the tile ahead is blocked. The walk ends when the agent
// steps off the grid (Exited) or returns to a pose it has already held
// (Looped). A step ceiling guards against runaway simulations.
package walk
