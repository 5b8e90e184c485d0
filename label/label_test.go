package label_test

import (
	"testing"

	"github.com/katalvlaran/snarled/geom"
	"github.com/katalvlaran/snarled/label"
	"github.com/katalvlaran/snarled/layer"
	"github.com/katalvlaran/snarled/netname"
	"github.com/katalvlaran/snarled/registry"
)

func square(x0, y0, x1, y1 int64) geom.PolyWithHoles {
	return geom.PolyWithHoles{Outer: geom.Contour{
		{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1},
	}}
}

func TestAssignLayerSingleLabel(t *testing.T) {
	gen := netname.NewGenerator()
	reg := registry.New()
	m1 := layer.New(1, 0)

	groups := label.AssignLayer(reg, gen, m1, []geom.PolyWithHoles{square(0, 0, 10, 10)}, []label.Label{
		{Point: geom.Point{X: 5, Y: 5}, Text: "A"},
	})
	if len(groups) != 0 {
		t.Fatalf("expected no short groups, got %d", len(groups))
	}

	live := reg.LiveNames()
	if len(live) != 1 {
		t.Fatalf("expected 1 live name, got %d", len(live))
	}
	named, ok := live[0].(netname.Named)
	if !ok || named.Text != "A" {
		t.Errorf("expected live name Named{A}, got %v", live[0])
	}
}

func TestAssignLayerNoLabelsYieldsAnonymous(t *testing.T) {
	gen := netname.NewGenerator()
	reg := registry.New()
	m1 := layer.New(1, 0)

	label.AssignLayer(reg, gen, m1, []geom.PolyWithHoles{square(0, 0, 10, 10)}, nil)

	live := reg.LiveNames()
	if len(live) != 1 {
		t.Fatalf("expected 1 live name, got %d", len(live))
	}
	if _, ok := live[0].(netname.Anonymous); !ok {
		t.Errorf("expected an Anonymous net, got %v", live[0])
	}
}

func TestAssignLayerTwoLabelsRecordsShort(t *testing.T) {
	gen := netname.NewGenerator()
	reg := registry.New()
	m1 := layer.New(1, 0)

	groups := label.AssignLayer(reg, gen, m1, []geom.PolyWithHoles{square(0, 0, 10, 10)}, []label.Label{
		{Point: geom.Point{X: 2, Y: 5}, Text: "A"},
		{Point: geom.Point{X: 8, Y: 5}, Text: "B"},
	})
	if len(groups) != 1 || len(groups[0]) != 2 {
		t.Fatalf("expected one short group of 2, got %v", groups)
	}

	label.ApplyShorts(reg, groups)
	live := reg.LiveNames()
	if len(live) != 1 {
		t.Fatalf("expected 1 live name after merge, got %d", len(live))
	}
}

func TestAssignLayerHoleExcludesLabel(t *testing.T) {
	gen := netname.NewGenerator()
	reg := registry.New()
	m1 := layer.New(1, 0)

	annulus := geom.PolyWithHoles{
		Outer: geom.Contour{{X: 0, Y: 0}, {X: 20, Y: 0}, {X: 20, Y: 20}, {X: 0, Y: 20}},
		Holes: []geom.Contour{{{X: 5, Y: 5}, {X: 15, Y: 5}, {X: 15, Y: 15}, {X: 5, Y: 15}}},
	}
	label.AssignLayer(reg, gen, m1, []geom.PolyWithHoles{annulus}, []label.Label{
		{Point: geom.Point{X: 10, Y: 10}, Text: "A"},
	})

	live := reg.LiveNames()
	if len(live) != 1 {
		t.Fatalf("expected 1 live name, got %d", len(live))
	}
	if _, ok := live[0].(netname.Anonymous); !ok {
		t.Errorf("expected anonymous net since the label falls in the hole, got %v", live[0])
	}
}

func TestStripSuffix(t *testing.T) {
	cases := map[string]string{
		"VDD_3":   "VDD",
		"VDD":     "VDD",
		"A_B_12":  "A_B",
		"trailing_": "trailing_",
		"_5":      "",
	}
	for in, want := range cases {
		if got := label.StripSuffix(in); got != want {
			t.Errorf("StripSuffix(%q) = %q, want %q", in, got, want)
		}
	}
}
