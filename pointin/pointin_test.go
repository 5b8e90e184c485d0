package pointin_test

import (
	"testing"

	"github.com/katalvlaran/snarled/geom"
	"github.com/katalvlaran/snarled/pointin"
)

func square(x0, y0, x1, y1 int64) geom.Contour {
	return geom.Contour{
		{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1},
	}
}

func TestContainsBasic(t *testing.T) {
	sq := square(0, 0, 10, 10)
	pts := []geom.Point{
		{X: 5, Y: 5},   // inside
		{X: 20, Y: 20}, // outside
		{X: -5, Y: 5},  // outside (left of square)
	}
	got := pointin.Contains(sq, pts)
	want := []bool{true, false, false}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("point %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestContainsBoundaryIsInside(t *testing.T) {
	sq := square(0, 0, 10, 10)
	pts := []geom.Point{
		{X: 0, Y: 5},  // on left edge
		{X: 5, Y: 0},  // on bottom edge
		{X: 10, Y: 10}, // corner
	}
	got := pointin.Contains(sq, pts)
	for i, g := range got {
		if !g {
			t.Errorf("boundary point %d should be classified inside", i)
		}
	}
}

func TestContainsStableAcrossCalls(t *testing.T) {
	sq := square(0, 0, 10, 10)
	pts := []geom.Point{{X: 0, Y: 0}, {X: 3, Y: 7}}
	first := pointin.Contains(sq, pts)
	second := pointin.Contains(sq, pts)
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("point %d classified differently between calls: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestInConductorHoleDefeatsContainment(t *testing.T) {
	pwh := geom.PolyWithHoles{
		Outer: square(0, 0, 20, 20),
		Holes: []geom.Contour{square(5, 5, 15, 15)},
	}
	pts := []geom.Point{
		{X: 10, Y: 10}, // inside the hole -> not in conductor
		{X: 2, Y: 2},   // inside the annulus -> in conductor
	}
	got := pointin.InConductor(pwh, pts)
	if got[0] {
		t.Errorf("point inside hole should not be in conductor")
	}
	if !got[1] {
		t.Errorf("point inside annulus should be in conductor")
	}
}
