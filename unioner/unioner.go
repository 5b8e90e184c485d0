// Package unioner implements C4, the per-layer unioner: scale a layer's raw
// polygons, union them under the non-zero rule, and flatten the resulting
// tree into one PolyWithHoles per disjoint conductor (spec §4.4).
package unioner

import (
	"github.com/katalvlaran/snarled/boolean"
	"github.com/katalvlaran/snarled/geom"
	"github.com/katalvlaran/snarled/layer"
	"github.com/katalvlaran/snarled/scale"
)

// Layer scales a layer's raw float64 polygons, unions them under the
// non-zero rule, and flattens the result into one PolyWithHoles per
// disjoint conductor on the layer.
func Layer(raw [][][2]float64, l layer.ID, factor int64) ([]geom.PolyWithHoles, error) {
	contours, err := scale.Contours(raw, l, factor)
	if err != nil {
		return nil, err
	}
	return Union(contours)
}

// Union unions already-scaled contours under the non-zero rule and
// flattens the resulting tree (the part of Layer that doesn't need the
// scaler, used directly by tests and by callers that already work in the
// scaled integer grid, e.g. the viamerge tests).
func Union(contours []geom.Contour) ([]geom.PolyWithHoles, error) {
	tree, err := boolean.UnionNonZero(contours)
	if err != nil {
		return nil, err
	}
	return Flatten(tree), nil
}

// EvenOdd converts a layer's unioned PolyWithHoles conductors into the flat
// even-odd contour representation the §4.7 via-merge transition requires:
// every outer and hole contour across all polys is fed through
// union_evenodd in one call, matching registry.Registry.ToFlat's per-(net,
// layer) transform but usable directly on a via layer's conductor list,
// which never passes through the registry at all.
func EvenOdd(polys []geom.PolyWithHoles) ([]geom.Contour, error) {
	paths := make([]geom.Contour, 0, len(polys)*2)
	for _, p := range polys {
		paths = append(paths, p.Outer)
		paths = append(paths, p.Holes...)
	}
	return boolean.UnionEvenOdd(paths)
}

// Flatten walks a union tree and emits one PolyWithHoles per disjoint
// conductor: for each outer polygon child of the root, (outer, holes);
// nested islands inside a hole become new root-level PolyWithHoles in their
// own right, with their own holes collected recursively (spec §4.4).
func Flatten(tree *boolean.Tree) []geom.PolyWithHoles {
	var out []geom.PolyWithHoles
	for _, outer := range tree.Children {
		flattenOuter(outer, &out)
	}
	return out
}

// flattenOuter treats node as an outer polygon: its direct children are
// holes, and each hole's children are islands that become new outers.
func flattenOuter(node *boolean.Tree, out *[]geom.PolyWithHoles) {
	holes := make([]geom.Contour, 0, len(node.Children))
	for _, hole := range node.Children {
		holes = append(holes, hole.Contour)
		for _, island := range hole.Children {
			flattenOuter(island, out)
		}
	}
	*out = append(*out, geom.PolyWithHoles{Outer: node.Contour, Holes: holes})
}
