package registry

import (
	"github.com/katalvlaran/snarled/boolean"
	"github.com/katalvlaran/snarled/geom"
	"github.com/katalvlaran/snarled/layer"
	"github.com/katalvlaran/snarled/netname"
)

// Registry holds, per live net name, the PolyWithHoles conductors assigned
// to it on each layer — the state C5 (package label) populates and C6
// operates on before the spec §4.7 transition to flat contours.
type Registry struct {
	alias *aliasSet
	nets  map[netname.Name]map[layer.ID][]geom.PolyWithHoles
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{
		alias: newAliasSet(),
		nets:  make(map[netname.Name]map[layer.ID][]geom.PolyWithHoles),
	}
}

// Resolve walks the alias chain to n's live representative.
func (r *Registry) Resolve(n netname.Name) netname.Name {
	return r.alias.resolve(n)
}

// Append adds a conductor polygon to name's entry on layer l, resolving
// name first so appends always land on a live bucket (spec Invariant I4:
// "every polygon appears under exactly one live name").
func (r *Registry) Append(name netname.Name, l layer.ID, p geom.PolyWithHoles) {
	name = r.alias.resolve(name)
	layers, ok := r.nets[name]
	if !ok {
		layers = make(map[layer.ID][]geom.PolyWithHoles)
		r.nets[name] = layers
	}
	layers[l] = append(layers[l], p)
}

// Merge resolves a and b and, if they differ, aliases the loser (per the
// spec §4.6 keep/drop rule) into the winner, concatenating the loser's
// per-layer polygon lists onto the winner's and removing the loser's
// bucket entirely (spec Invariant I3: "nets contains no dead-name keys").
// A merge of a name with itself (after resolution) is a no-op.
func (r *Registry) Merge(a, b netname.Name) {
	a = r.alias.resolve(a)
	b = r.alias.resolve(b)
	if a == b {
		return
	}

	keep, drop := keepDrop(a, b)
	r.alias.alias(keep, drop)

	dropLayers, ok := r.nets[drop]
	if ok {
		keepLayers, ok := r.nets[keep]
		if !ok {
			keepLayers = make(map[layer.ID][]geom.PolyWithHoles)
			r.nets[keep] = keepLayers
		}
		for l, polys := range dropLayers {
			keepLayers[l] = append(keepLayers[l], polys...)
		}
		delete(r.nets, drop)
	}
}

// LiveNames returns every name that currently owns a bucket (i.e. is not
// aliased away).
func (r *Registry) LiveNames() []netname.Name {
	out := make([]netname.Name, 0, len(r.nets))
	for n := range r.nets {
		out = append(out, n)
	}
	return out
}

// Layers returns the per-layer conductor lists for name's live
// representative, or nil if it owns no conductors.
func (r *Registry) Layers(name netname.Name) map[layer.ID][]geom.PolyWithHoles {
	return r.nets[r.alias.resolve(name)]
}

// ShortedNets implements spec §4.6's get_shorted_nets().
func (r *Registry) ShortedNets() [][]netname.Name {
	return r.alias.shortedNets()
}

// OpenNets implements spec §4.6's get_open_nets().
func (r *Registry) OpenNets() map[string][]netname.Name {
	return openNets(r.LiveNames())
}

// ToFlat performs the spec §4.7 representation change: every live name's
// per-layer PolyWithHoles list is fed through union_evenodd ([outer] +
// holes for every polygon on that (net, layer)), producing the flat
// oriented-contour form viamerge's intersection tests require. The
// returned FlatRegistry shares this Registry's alias table, so merges
// performed afterward (by viamerge) extend the same equivalence classes
// instead of starting fresh.
func (r *Registry) ToFlat() (*FlatRegistry, error) {
	flat := &FlatRegistry{
		alias: r.alias,
		nets:  make(map[netname.Name]map[layer.ID][]geom.Contour, len(r.nets)),
	}
	for name, layers := range r.nets {
		flatLayers := make(map[layer.ID][]geom.Contour, len(layers))
		for l, polys := range layers {
			paths := make([]geom.Contour, 0, len(polys)*2)
			for _, p := range polys {
				paths = append(paths, p.Outer)
				paths = append(paths, p.Holes...)
			}
			contours, err := boolean.UnionEvenOdd(paths)
			if err != nil {
				return nil, err
			}
			flatLayers[l] = contours
		}
		flat.nets[name] = flatLayers
	}
	return flat, nil
}
