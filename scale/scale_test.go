package scale_test

import (
	"testing"

	"github.com/katalvlaran/snarled/layer"
	"github.com/katalvlaran/snarled/scale"
)

func TestVertexExactIntegerAfterScaling(t *testing.T) {
	pt, exact := scale.Vertex(1.0, 2.0, 10)
	if !exact {
		t.Errorf("expected exact scaling")
	}
	if pt.X != 10 || pt.Y != 20 {
		t.Errorf("got (%d,%d), want (10,20)", pt.X, pt.Y)
	}
}

func TestVertexTruncatesFractional(t *testing.T) {
	pt, exact := scale.Vertex(0.15, 0.0, 10)
	if exact {
		t.Errorf("expected non-exact scaling for 0.15*10=1.5")
	}
	if pt.X != 1 {
		t.Errorf("X = %d, want 1 (truncated)", pt.X)
	}
}

func TestVertexTruncatesTowardZeroForNegatives(t *testing.T) {
	pt, exact := scale.Vertex(-0.15, 0.0, 10)
	if exact {
		t.Errorf("expected non-exact scaling")
	}
	if pt.X != -1 {
		t.Errorf("X = %d, want -1 (truncated toward zero)", pt.X)
	}
}

func TestContourOutOfRange(t *testing.T) {
	l := layer.New(1, 0)
	huge := 1e20
	_, err := scale.Contour([][2]float64{{huge, 0}}, l, scale.DefaultFactor)
	if err == nil {
		t.Fatalf("expected RangeError")
	}
	var rangeErr *scale.RangeError
	if !asRangeError(err, &rangeErr) {
		t.Errorf("expected *scale.RangeError, got %T", err)
	}
}

func asRangeError(err error, target **scale.RangeError) bool {
	re, ok := err.(*scale.RangeError)
	if ok {
		*target = re
	}
	return ok
}

func TestContoursScalesAllPolygons(t *testing.T) {
	l := layer.New(1, 0)
	polys := [][][2]float64{
		{{0, 0}, {10, 0}, {10, 10}, {0, 10}},
		{{20, 0}, {30, 0}, {30, 10}},
	}
	out, err := scale.Contours(polys, l, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d contours, want 2", len(out))
	}
	if out[0][1].X != 20 {
		t.Errorf("out[0][1].X = %d, want 20", out[0][1].X)
	}
}
