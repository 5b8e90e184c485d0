// Package scale implements C1, the float-to-integer grid conversion that
// sits at the very edge of the pipeline: every polygon-Boolean and
// point-in-polygon operation downstream works exclusively in scaled int64
// coordinates, and nothing past this package ever sees a float again (see
// spec §9, "keep the scale factor at the edge").
package scale

import (
	"fmt"
	"log"
	"math"

	"github.com/katalvlaran/snarled/geom"
	"github.com/katalvlaran/snarled/layer"
)

// DefaultFactor is the scale factor used when the caller does not override
// it: 2^24, matching the reference implementation's CLIPPER_SCALE_FACTOR.
const DefaultFactor = 1 << 24

// maxCoord bounds scaled coordinates so overflow is caught well before it
// could affect int64 arithmetic performed by the Boolean engine.
const maxCoord = 1 << 62

// RangeError reports a scaled coordinate that fell outside the representable
// range (spec §4.1, §7 kind 1: "coordinates out of range (fatal)").
type RangeError struct {
	Layer layer.ID
	X, Y  float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("scale: coordinate (%g, %g) on layer %s exceeds +/-2^62 after scaling", e.X, e.Y, e.Layer)
}

// Vertex scales a single float64 vertex onto the integer grid, truncating
// toward zero. factor must be positive.
func Vertex(x, y float64, factor int64) (geom.Point, bool) {
	sx := x * float64(factor)
	sy := y * float64(factor)
	ix := int64(sx) // truncation toward zero, per spec §4.1
	iy := int64(sy)

	exact := math.Trunc(sx) == sx && math.Trunc(sy) == sy
	return geom.Point{X: ix, Y: iy}, exact
}

// Contour scales every vertex of a raw float64 vertex sequence to the
// integer grid. If any vertex has a non-zero fractional part after scaling,
// a single warning is logged (not per-vertex, per spec §4.1) and the
// truncated value is used. Out-of-range scaled coordinates are fatal and
// reported via RangeError.
func Contour(vertices [][2]float64, l layer.ID, factor int64) (geom.Contour, error) {
	warned := false
	return contour(vertices, l, factor, &warned)
}

// contour is Contour with the warned flag owned by the caller, so that
// Contours logs at most one warning across all polygons of a layer.
func contour(vertices [][2]float64, l layer.ID, factor int64, warned *bool) (geom.Contour, error) {
	out := make(geom.Contour, len(vertices))
	for i, v := range vertices {
		pt, exact := Vertex(v[0], v[1], factor)
		if !exact && !*warned {
			log.Printf("scale: layer %s has non-integer coordinates after scaling by %d; truncating", l, factor)
			*warned = true
		}
		if pt.X > maxCoord || pt.X < -maxCoord || pt.Y > maxCoord || pt.Y < -maxCoord {
			return nil, &RangeError{Layer: l, X: v[0], Y: v[1]}
		}
		out[i] = pt
	}
	return out, nil
}

// Contours scales every polygon in a layer's raw vertex-sequence list,
// logging at most one non-integer warning for the whole layer.
func Contours(polys [][][2]float64, l layer.ID, factor int64) ([]geom.Contour, error) {
	out := make([]geom.Contour, len(polys))
	warned := false
	for i, p := range polys {
		c, err := contour(p, l, factor, &warned)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

// Point scales a single label coordinate, discarding the exactness flag:
// label coordinates are reported on whatever grid the layout used, and a
// label landing a fraction of a grid unit off a vertex is expected, not a
// warning-worthy event.
func Point(x, y float64, factor int64) geom.Point {
	pt, _ := Vertex(x, y, factor)
	return pt
}
