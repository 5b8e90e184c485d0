// Package pointin implements C3, point-in-polygon classification of a batch
// of points against a single contour, and the outer-minus-holes combination
// used to test containment against a full PolyWithHoles (spec §4.3).
package pointin

import "github.com/katalvlaran/snarled/geom"

// Contains classifies each of pts against contour using the standard
// even-odd ray-casting test (a horizontal ray cast in the +X direction,
// counting edge crossings). A point exactly on the boundary is classified
// as inside; this is stable across repeated calls on identical inputs
// (spec §4.3: "must correctly classify points on the boundary consistently").
func Contains(contour geom.Contour, pts []geom.Point) []bool {
	out := make([]bool, len(pts))
	n := len(contour)
	if n < 3 {
		return out
	}

	for pi, p := range pts {
		inside := false
		for i, j := 0, n-1; i < n; j, i = i, i+1 {
			a, b := contour[i], contour[j]

			if onSegment(a, b, p) {
				inside = true
				break
			}

			// Standard even-odd crossing test: count edges that straddle
			// the point's Y coordinate and lie to its right.
			crosses := (a.Y > p.Y) != (b.Y > p.Y)
			if crosses {
				// x-intercept of edge (a,b) at y=p.Y, compared against p.X
				// using cross-multiplication to stay in exact integer math.
				t := intersectsRight(a, b, p)
				if t {
					inside = !inside
				}
			}
		}
		out[pi] = inside
	}
	return out
}

// intersectsRight reports whether the edge (a,b) crosses the horizontal ray
// extending from p in the +X direction, using exact integer arithmetic
// (cross-multiplication instead of division) so no precision is lost.
func intersectsRight(a, b, p geom.Point) bool {
	// Edge direction from a to b; assume a.Y != b.Y (guaranteed by the
	// caller's crossing check).
	dy := b.Y - a.Y
	// x at which the edge crosses y = p.Y: a.X + (p.Y - a.Y) * (b.X - a.X) / dy
	// Compare that x against p.X without dividing:
	//   a.X + (p.Y-a.Y)*(b.X-a.X)/dy  >  p.X
	//   (p.Y-a.Y)*(b.X-a.X)/dy        >  p.X - a.X
	// Multiply both sides by dy, flipping the inequality if dy is negative.
	lhs := (p.Y - a.Y) * (b.X - a.X)
	rhs := (p.X - a.X) * dy
	if dy > 0 {
		return lhs > rhs
	}
	return lhs < rhs
}

// onSegment reports whether p lies exactly on the closed segment a-b.
func onSegment(a, b, p geom.Point) bool {
	cross := (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
	if cross != 0 {
		return false
	}
	if p.X < min(a.X, b.X) || p.X > max(a.X, b.X) {
		return false
	}
	if p.Y < min(a.Y, b.Y) || p.Y > max(a.Y, b.Y) {
		return false
	}
	return true
}

func min(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func max(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

// InConductor implements spec §4.3's per-conductor containment formula:
//
//	in_conductor(pwh, pts) = contains(pwh.outer, pts) AND NOT OR_i contains(pwh.holes[i], pts)
func InConductor(pwh geom.PolyWithHoles, pts []geom.Point) []bool {
	inside := Contains(pwh.Outer, pts)
	for _, hole := range pwh.Holes {
		inHole := Contains(hole, pts)
		for i, h := range inHole {
			if h {
				inside[i] = false
			}
		}
	}
	return inside
}
