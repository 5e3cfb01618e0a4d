// Package grid provides a fixed-size rectangular grid of cells together with
// the positions and unit directions used to walk it.
//
// A Grid carries its own dimensions and never changes shape after
// construction. Reads outside the grid are programming errors and panic;
// callers check InBounds or use Neighbor before stepping.
package grid
