// Package geom holds the plain geometric value types shared across the
// pipeline: scaled integer points, contours, and polygon-with-holes records.
//
// Every coordinate in this package is already on the scaled integer grid
// (see package scale); nothing here ever looks at float inputs.
package geom

// Point is a scaled integer coordinate pair.
type Point struct {
	X, Y int64
}

// Contour is an ordered sequence of points forming a closed simple polygon.
// The last vertex connects back to the first; no explicit closing point is
// stored.
type Contour []Point

// PolyWithHoles is an outer contour plus the holes directly inside it, as
// produced by the per-layer unioner (package unioner).
type PolyWithHoles struct {
	Outer Contour
	Holes []Contour
}
