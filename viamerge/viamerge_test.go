package viamerge_test

import (
	"testing"

	"github.com/katalvlaran/snarled/geom"
	"github.com/katalvlaran/snarled/layer"
	"github.com/katalvlaran/snarled/netname"
	"github.com/katalvlaran/snarled/registry"
	"github.com/katalvlaran/snarled/unioner"
	"github.com/katalvlaran/snarled/viamerge"
)

func square(x0, y0, x1, y1 int64) geom.PolyWithHoles {
	return geom.PolyWithHoles{Outer: geom.Contour{
		{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1},
	}}
}

func flatSquare(t *testing.T, x0, y0, x1, y1 int64) geom.Contour {
	t.Helper()
	polys, err := unioner.Union([]geom.Contour{{
		{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1},
	}})
	if err != nil || len(polys) != 1 {
		t.Fatalf("unioner.Union failed: %v", err)
	}
	return polys[0].Outer
}

func TestSolveMergesViaConnectedNets(t *testing.T) {
	m1 := layer.New(1, 0)
	m2 := layer.New(2, 0)
	v12 := layer.New(1, 2)

	gen := netname.NewGenerator()
	reg := registry.New()
	a := gen.Named("A")
	b := gen.Named("B")
	reg.Append(a, m1, square(0, 0, 10, 10))
	reg.Append(b, m2, square(5, 5, 15, 15))

	flat, err := reg.ToFlat()
	if err != nil {
		t.Fatalf("ToFlat: %v", err)
	}

	via := flatSquare(t, 5, 5, 7, 7)
	viaPolys := map[layer.ID][]geom.Contour{v12: {via}}

	triples := []viamerge.Triple{{Top: m1, Via: v12, ViaPresent: true, Bot: m2}}
	if err := viamerge.Solve(flat, triples, viaPolys); err != nil {
		t.Fatalf("Solve: %v", err)
	}

	if flat.Resolve(a) != flat.Resolve(b) {
		t.Errorf("expected A and B to be merged by the via overlap")
	}
}

func TestSolveSkipsWhenViaLayerEmpty(t *testing.T) {
	m1 := layer.New(1, 0)
	m2 := layer.New(2, 0)
	v12 := layer.New(1, 2)

	gen := netname.NewGenerator()
	reg := registry.New()
	a := gen.Named("A")
	b := gen.Named("B")
	reg.Append(a, m1, square(0, 0, 10, 10))
	reg.Append(b, m2, square(5, 5, 15, 15))

	flat, err := reg.ToFlat()
	if err != nil {
		t.Fatalf("ToFlat: %v", err)
	}

	triples := []viamerge.Triple{{Top: m1, Via: v12, ViaPresent: true, Bot: m2}}
	if err := viamerge.Solve(flat, triples, nil); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if flat.Resolve(a) == flat.Resolve(b) {
		t.Errorf("expected A and B to remain separate when the via layer is empty")
	}
}

func TestSolveDirectContactNoVia(t *testing.T) {
	m1 := layer.New(1, 0)
	m2 := layer.New(2, 0)

	gen := netname.NewGenerator()
	reg := registry.New()
	a := gen.Named("A")
	b := gen.Named("B")
	reg.Append(a, m1, square(0, 0, 10, 10))
	reg.Append(b, m2, square(5, 5, 15, 15))

	flat, err := reg.ToFlat()
	if err != nil {
		t.Fatalf("ToFlat: %v", err)
	}

	triples := []viamerge.Triple{{Top: m1, Bot: m2, ViaPresent: false}}
	if err := viamerge.Solve(flat, triples, nil); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if flat.Resolve(a) != flat.Resolve(b) {
		t.Errorf("expected A and B to be merged by direct overlap")
	}
}
