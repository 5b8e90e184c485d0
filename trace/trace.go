// Package trace implements C8 (final short/open reporting) and hosts the
// pipeline driver that wires C1-C7 together end to end (spec §2's control
// flow: "C1->C4 per layer -> C5 per metal layer (using C3) -> C7 (using
// C2 intersections) -> C8").
package trace

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/snarled/geom"
	"github.com/katalvlaran/snarled/label"
	"github.com/katalvlaran/snarled/layer"
	"github.com/katalvlaran/snarled/netname"
	"github.com/katalvlaran/snarled/registry"
	"github.com/katalvlaran/snarled/scale"
	"github.com/katalvlaran/snarled/unioner"
	"github.com/katalvlaran/snarled/viamerge"
)

// Label is a pre-scale label occurrence on one layer (spec §3).
type Label struct {
	X, Y float64
	Text string
}

// Triple is a connectivity-spec entry resolved to concrete layer.IDs
// (spec §6.1); the layer-name/remap resolution that produces these lives
// in package specio.
type Triple = viamerge.Triple

// Input gathers everything the core pipeline needs (spec §6.1): raw
// polygon geometry and labels per layer, the connectivity spec, and the
// scale factor. Readers/parsers outside this module's scope (OASIS/GDSII,
// layer-map/connectivity/remap text files) are responsible for producing
// this shape; see package specio and GeometrySource below for how the CLI
// does it.
type Input struct {
	Polys        map[layer.ID][][][2]float64
	Labels       map[layer.ID][]Label
	Connectivity []Triple
	// ScaleFactor overrides scale.DefaultFactor when nonzero.
	ScaleFactor int64
	// StripLabelSuffix applies label.StripSuffix to every label's text
	// before assignment, matching the CLI default (spec §6.4: "label
	// texts are stripped of a trailing _<integer> suffix" unless -u/
	// RawLabelNames is set).
	StripLabelSuffix bool
}

// Result is the spec §6.2 TraceResult.
type Result struct {
	Nets   []netname.Name
	Shorts [][]netname.Name
	Opens  map[string][]netname.Name
}

// LayerOverlapError reports a layer used as both a metal and a via layer
// in the connectivity spec (spec §7 kind 3, fatal).
type LayerOverlapError struct {
	Layer layer.ID
}

func (e *LayerOverlapError) Error() string {
	return fmt.Sprintf("trace: layer %s is used as both a via and a metal layer in the connectivity spec", e.Layer)
}

// GeometrySource is the external collaborator that supplies polys/labels
// to Run (spec §1: "the layout file readers ... are out of scope ...
// specified only at their interface"). OASIS/GDSII readers are one
// implementation; JSONGeometrySource (see json.go) is another, bundled for
// tests and for users who pre-extract geometry themselves.
type GeometrySource interface {
	Polys() (map[layer.ID][][][2]float64, error)
	Labels() (map[layer.ID][]Label, error)
}

// metalAndViaLayers implements spec §6.1/§7 kind 3's validation
// (connectivity2layers in the reference implementation): every layer named
// as Top/Bot is a metal layer, every layer named as Via is a via layer, and
// no layer may be both.
func metalAndViaLayers(triples []Triple) (metal, via map[layer.ID]bool, err error) {
	metal = make(map[layer.ID]bool)
	via = make(map[layer.ID]bool)
	for _, tr := range triples {
		metal[tr.Top] = true
		metal[tr.Bot] = true
		if tr.ViaPresent {
			via[tr.Via] = true
		}
	}
	for l := range metal {
		if via[l] {
			return nil, nil, &LayerOverlapError{Layer: l}
		}
	}
	return metal, via, nil
}

// Run executes the full pipeline (spec §2, §4.4-§4.8) over in and produces
// the final Result.
func Run(in Input) (*Result, error) {
	factor := in.ScaleFactor
	if factor == 0 {
		factor = scale.DefaultFactor
	}

	metalLayers, viaLayers, err := metalAndViaLayers(in.Connectivity)
	if err != nil {
		return nil, err
	}

	// C1 + C4: scale and union every referenced layer's raw geometry.
	conductors := make(map[layer.ID][]geom.PolyWithHoles, len(metalLayers)+len(viaLayers))
	for l := range metalLayers {
		polys, err := unioner.Layer(in.Polys[l], l, factor)
		if err != nil {
			return nil, err
		}
		conductors[l] = polys
	}
	for l := range viaLayers {
		polys, err := unioner.Layer(in.Polys[l], l, factor)
		if err != nil {
			return nil, err
		}
		conductors[l] = polys
	}

	// C5: assign labels to conductors on every metal layer, using C3.
	gen := netname.NewGenerator()
	reg := registry.New()
	var allShorts [][]netname.Name
	for l := range metalLayers {
		var labels []label.Label
		for _, lb := range in.Labels[l] {
			text := lb.Text
			if in.StripLabelSuffix {
				text = label.StripSuffix(text)
			}
			labels = append(labels, label.Label{Point: scale.Point(lb.X, lb.Y, factor), Text: text})
		}
		shorts := label.AssignLayer(reg, gen, l, conductors[l], labels)
		allShorts = append(allShorts, shorts...)
	}
	label.ApplyShorts(reg, allShorts)

	// §4.7 transition: PolyWithHoles -> flat even-odd contours.
	flat, err := reg.ToFlat()
	if err != nil {
		return nil, err
	}

	viaPolys := make(map[layer.ID][]geom.Contour, len(viaLayers))
	for l := range viaLayers {
		contours, err := unioner.EvenOdd(conductors[l])
		if err != nil {
			return nil, err
		}
		viaPolys[l] = contours
	}

	// C7: via-mediated and direct-contact merges.
	if err := viamerge.Solve(flat, in.Connectivity, viaPolys); err != nil {
		return nil, err
	}

	// C8: final report.
	return report(flat), nil
}

// RunFromSource is a convenience wrapper that pulls Polys/Labels from src
// before delegating to Run, so that a geometry source stays pluggable
// without every caller repeating the two accessor calls. The bundled CLI
// does not call it: it reads the source itself so it can apply the labels
// remap before calling Run.
func RunFromSource(src GeometrySource, connectivity []Triple, scaleFactor int64, stripLabelSuffix bool) (*Result, error) {
	polys, err := src.Polys()
	if err != nil {
		return nil, err
	}
	labels, err := src.Labels()
	if err != nil {
		return nil, err
	}
	return Run(Input{
		Polys:            polys,
		Labels:           labels,
		Connectivity:     connectivity,
		ScaleFactor:      scaleFactor,
		StripLabelSuffix: stripLabelSuffix,
	})
}

// report builds the spec §4.8 analysis from the final registry state.
func report(flat *registry.FlatRegistry) *Result {
	var nets []netname.Name
	for _, n := range flat.LiveNames() {
		if _, ok := n.(netname.Named); ok {
			nets = append(nets, n)
		}
	}
	sort.Slice(nets, func(i, j int) bool { return netname.Less(nets[i], nets[j]) })

	var shorts [][]netname.Name
	for _, set := range flat.ShortedNets() {
		if !allSameText(set) {
			shorts = append(shorts, set)
		}
	}

	return &Result{
		Nets:   nets,
		Shorts: shorts,
		Opens:  flat.OpenNets(),
	}
}

// allSameText reports whether every member of set shares the same display
// text — a pure same-text merge, which spec §4.8 says is "the net", not a
// short, and must be filtered out of the shorts report.
func allSameText(set []netname.Name) bool {
	var text string
	for i, n := range set {
		named, ok := n.(netname.Named)
		if !ok {
			return false
		}
		if i == 0 {
			text = named.Text
			continue
		}
		if named.Text != text {
			return false
		}
	}
	return true
}
