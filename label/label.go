// Package label implements C5, the net label assigner: for each unioned
// conductor on a metal layer, decide which labels land inside it and mint
// the NetName identity (or identities, on a collision) that owns it
// (spec §4.5).
package label

import (
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/snarled/geom"
	"github.com/katalvlaran/snarled/layer"
	"github.com/katalvlaran/snarled/netname"
	"github.com/katalvlaran/snarled/pointin"
	"github.com/katalvlaran/snarled/registry"
)

// Label is a single text label on one layer, already scaled onto the
// integer grid (spec §3: "Label ... the coordinate is ... scaled to
// integer grid before point-in-polygon tests").
type Label struct {
	Point geom.Point
	Text  string
}

// AssignLayer runs spec §4.5 for one metal layer: every conductor in
// conductors is tested against every label in labels, assigned a fresh
// NetName (anonymous if no label lands inside it, named otherwise), and
// appended to reg under that name and l. Any polygon with two or more
// labels inside it (whether or not their texts differ) is additionally
// recorded as a short group, returned alongside so the caller can apply the merges once every
// layer has been assigned (spec §4.5: "After all layers: ... call
// merge(g0, gi) for i >= 1").
func AssignLayer(reg *registry.Registry, gen *netname.Generator, l layer.ID, conductors []geom.PolyWithHoles, labels []Label) [][]netname.Name {
	if len(labels) == 0 {
		for _, p := range conductors {
			reg.Append(gen.Anonymous(), l, p)
		}
		return nil
	}

	pts := make([]geom.Point, len(labels))
	for i, lb := range labels {
		pts[i] = lb.Point
	}

	var shorts [][]netname.Name
	for _, p := range conductors {
		inside := pointin.InConductor(p, pts)

		var hits []string
		for i, in := range inside {
			if in {
				hits = append(hits, labels[i].Text)
			}
		}
		sort.Strings(hits)

		if len(hits) == 0 {
			reg.Append(gen.Anonymous(), l, p)
			continue
		}

		first := gen.Named(hits[0])
		reg.Append(first, l, p)

		if len(hits) >= 2 {
			group := make([]netname.Name, 0, len(hits))
			group = append(group, first)
			for _, text := range hits[1:] {
				group = append(group, gen.Named(text))
			}
			log.Printf("label: nets %v are shorted on layer %s", texts(group), l)
			shorts = append(shorts, group)
		}
	}
	return shorts
}

// ApplyShorts merges every short group recorded by AssignLayer: for group
// [g0, g1, ..., gn], calls reg.Merge(g0, gi) for every i >= 1, per spec
// §4.5's closing step.
func ApplyShorts(reg *registry.Registry, groups [][]netname.Name) {
	for _, group := range groups {
		for _, n := range group[1:] {
			reg.Merge(group[0], n)
		}
	}
}

func texts(names []netname.Name) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = fmt.Sprint(n)
	}
	return out
}

// StripSuffix removes a trailing "_<integer>" suffix from text, matching
// the CLI's default label-name normalization (spec §6.4: "label texts are
// stripped of a trailing _<integer> suffix before use" unless -u is given).
// Text with no such suffix, or whose suffix doesn't parse as an integer, is
// returned unchanged.
func StripSuffix(text string) string {
	idx := strings.LastIndexByte(text, '_')
	if idx < 0 || idx == len(text)-1 {
		return text
	}
	if _, err := strconv.Atoi(text[idx+1:]); err != nil {
		return text
	}
	return text[:idx]
}
