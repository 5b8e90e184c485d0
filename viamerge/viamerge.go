// Package viamerge implements C7, the via-merge solver: detects
// via-mediated (or direct-contact) overlap between live nets on adjacent
// metal layers and merges them (spec §4.7).
package viamerge

import (
	"fmt"
	"log"
	"sort"

	"github.com/katalvlaran/snarled/boolean"
	"github.com/katalvlaran/snarled/geom"
	"github.com/katalvlaran/snarled/layer"
	"github.com/katalvlaran/snarled/netname"
	"github.com/katalvlaran/snarled/registry"
)

// Triple is one connectivity-spec entry: top and bottom metal layers,
// optionally joined through a via layer. Via is the zero layer.ID paired
// with ViaPresent=false when the triple denotes direct contact (spec §6.1:
// "via_layer may be absent, meaning direct contact").
type Triple struct {
	Top, Bot   layer.ID
	Via        layer.ID
	ViaPresent bool
}

// LayerOverlapError reports a layer used as both a metal and a via layer
// in the connectivity spec (spec §7 kind 3, fatal).
type LayerOverlapError struct {
	Layer layer.ID
}

func (e *LayerOverlapError) Error() string {
	return fmt.Sprintf("viamerge: layer %s is used as both a via and a metal layer", e.Layer)
}

// Solve runs spec §4.7 over every connectivity triple: for each, it
// enumerates unordered pairs of currently-live nets with nonempty geometry
// on the relevant layers, tests via-mediated (or direct) overlap, and
// collects every pair whose overlap is nonempty. A triple's merges are
// applied only after that triple's full enumeration completes (spec §4.7
// step 5's "not interleaved with merges, so that the live-set snapshot
// remains consistent"), and before the next triple is enumerated.
func Solve(reg *registry.FlatRegistry, triples []Triple, viaPolys map[layer.ID][]geom.Contour) error {
	for _, tr := range triples {
		var vias []geom.Contour
		if tr.ViaPresent {
			vias = viaPolys[tr.Via]
			if len(vias) == 0 {
				continue
			}
		}

		pairs, err := findPairs(reg, tr, vias)
		if err != nil {
			return err
		}
		for _, p := range pairs {
			reg.Merge(p.a, p.b)
		}
	}
	return nil
}

type pair struct {
	a, b netname.Name
}

// findPairs implements spec §4.7 steps 2-5 for a single triple: a snapshot
// of the live-name set is taken up front, so merges queued for this triple
// never change which pairs get examined here. Merges from earlier triples
// have already been applied by Solve and are reflected in the snapshot.
func findPairs(reg *registry.FlatRegistry, tr Triple, vias []geom.Contour) ([]pair, error) {
	live := reg.LiveNames()
	sort.Slice(live, func(i, j int) bool { return netname.Less(live[i], live[j]) })

	seen := make(map[[2]int]bool)
	var out []pair

	for i, t := range live {
		topLayers := reg.Layers(t)
		top := topLayers[tr.Top]
		if len(top) == 0 {
			continue
		}
		for j, b := range live {
			if i == j {
				continue
			}
			key := canonicalPair(i, j)
			if seen[key] {
				continue
			}

			botLayers := reg.Layers(b)
			bot := botLayers[tr.Bot]
			if len(bot) == 0 {
				continue
			}
			seen[key] = true

			overlap, err := overlapOf(top, bot, vias, tr.ViaPresent)
			if err != nil {
				return nil, err
			}
			if len(overlap) == 0 {
				continue
			}

			_, tNamed := t.(netname.Named)
			_, bNamed := b.(netname.Named)
			if tNamed && bNamed && t != b {
				log.Printf("viamerge: nets %v and %v overlap on layers %s/%s at %v", t, b, tr.Top, tr.Bot, overlap[0][0])
			}
			out = append(out, pair{a: t, b: b})
		}
	}
	return out, nil
}

func canonicalPair(i, j int) [2]int {
	if i < j {
		return [2]int{i, j}
	}
	return [2]int{j, i}
}

func overlapOf(top, bot, vias []geom.Contour, viaPresent bool) ([]geom.Contour, error) {
	if !viaPresent {
		return boolean.IntersectEvenOdd(top, bot, false)
	}
	viaTop, err := boolean.IntersectEvenOdd(top, vias, false)
	if err != nil {
		return nil, err
	}
	if len(viaTop) == 0 {
		return nil, nil
	}
	return boolean.IntersectEvenOdd(viaTop, bot, false)
}
