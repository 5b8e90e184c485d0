package registry

import (
	"github.com/katalvlaran/snarled/geom"
	"github.com/katalvlaran/snarled/layer"
	"github.com/katalvlaran/snarled/netname"
)

// FlatRegistry holds, per live net name, flat even-odd contours on each
// layer — the representation viamerge (C7) operates on after Registry.ToFlat
// performs the spec §4.7 transition, plus the final state analysis (C8)
// reads from.
type FlatRegistry struct {
	alias *aliasSet
	nets  map[netname.Name]map[layer.ID][]geom.Contour
}

// Resolve walks the alias chain to n's live representative.
func (f *FlatRegistry) Resolve(n netname.Name) netname.Name {
	return f.alias.resolve(n)
}

// Merge resolves a and b and, if they differ, aliases the loser into the
// winner per the spec §4.6 keep/drop rule, concatenating contour lists.
// Spec §4.7 step 5: "Each merge after the first must re-resolve its
// endpoints" — callers are expected to pass already-collected pairs and
// call Merge for each in turn; Merge itself always re-resolves both sides,
// so repeated calls naturally honor that requirement.
func (f *FlatRegistry) Merge(a, b netname.Name) {
	a = f.alias.resolve(a)
	b = f.alias.resolve(b)
	if a == b {
		return
	}

	keep, drop := keepDrop(a, b)
	f.alias.alias(keep, drop)

	dropLayers, ok := f.nets[drop]
	if ok {
		keepLayers, ok := f.nets[keep]
		if !ok {
			keepLayers = make(map[layer.ID][]geom.Contour)
			f.nets[keep] = keepLayers
		}
		for l, contours := range dropLayers {
			keepLayers[l] = append(keepLayers[l], contours...)
		}
		delete(f.nets, drop)
	}
}

// LiveNames returns every name that currently owns a bucket.
func (f *FlatRegistry) LiveNames() []netname.Name {
	out := make([]netname.Name, 0, len(f.nets))
	for n := range f.nets {
		out = append(out, n)
	}
	return out
}

// Layers returns the per-layer flat contour lists for name's live
// representative, or nil if it owns no contours.
func (f *FlatRegistry) Layers(name netname.Name) map[layer.ID][]geom.Contour {
	return f.nets[f.alias.resolve(name)]
}

// ShortedNets implements spec §4.6's get_shorted_nets() against the
// (shared) alias table, including merges performed after the flat
// transition by viamerge.
func (f *FlatRegistry) ShortedNets() [][]netname.Name {
	return f.alias.shortedNets()
}

// OpenNets implements spec §4.6's get_open_nets().
func (f *FlatRegistry) OpenNets() map[string][]netname.Name {
	return openNets(f.LiveNames())
}
