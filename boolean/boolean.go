// Package boolean implements C2, a thin facade over a polygon-Boolean
// engine. It is the only package in the module that imports
// github.com/go-clipper/clipper2; everything downstream works in terms of
// geom.Contour and the Tree type defined here, so a substitute engine can be
// dropped in by reimplementing this package's three operations (spec §4.2,
// §9 "abstract behind the three operations in §4.2 so a replacement engine
// can be substituted").
package boolean

import (
	"fmt"

	clipper "github.com/go-clipper/clipper2"

	"github.com/katalvlaran/snarled/geom"
)

// EngineError wraps a failure returned by the underlying Boolean engine
// (spec §7 kind 6: EngineFailure, "the Boolean engine returns an invalid
// tree (fatal)").
type EngineError struct {
	Op  string
	Err error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("boolean: %s failed: %v", e.Op, e.Err)
}

func (e *EngineError) Unwrap() error { return e.Err }

// Tree is a hierarchical union result: outer contour children of the root,
// holes as children of an outer, and nested islands as children of a hole,
// and so on. It mirrors clipper.PolyPath but keeps the rest of the module
// from depending on clipper's types directly.
type Tree struct {
	// Contour is empty for the synthetic root node.
	Contour  geom.Contour
	Children []*Tree
}

func toPath64(c geom.Contour) clipper.Path64 {
	p := make(clipper.Path64, len(c))
	for i, v := range c {
		p[i] = clipper.Point64{X: v.X, Y: v.Y}
	}
	return p
}

func toPaths64(cs []geom.Contour) clipper.Paths64 {
	ps := make(clipper.Paths64, len(cs))
	for i, c := range cs {
		ps[i] = toPath64(c)
	}
	return ps
}

func fromPath64(p clipper.Path64) geom.Contour {
	c := make(geom.Contour, len(p))
	for i, v := range p {
		c[i] = geom.Point{X: v.X, Y: v.Y}
	}
	return c
}

func fromPaths64(ps clipper.Paths64) []geom.Contour {
	cs := make([]geom.Contour, len(ps))
	for i, p := range ps {
		cs[i] = fromPath64(p)
	}
	return cs
}

func fromPolyPath(pp *clipper.PolyPath) *Tree {
	if pp == nil {
		return nil
	}
	t := &Tree{Contour: fromPath64(pp.Path)}
	for _, child := range pp.Children {
		t.Children = append(t.Children, fromPolyPath(child))
	}
	return t
}

// UnionNonZero unions paths using the non-zero winding rule, returning a
// hierarchical tree whose root has outer-polygon children (spec §4.2).
// Empty input returns an empty tree (a root with no children), not an
// error.
func UnionNonZero(paths []geom.Contour) (*Tree, error) {
	if len(paths) == 0 {
		return &Tree{}, nil
	}

	c := clipper.NewClipper64()
	c.AddSubject(toPaths64(paths))

	polyTree, err := c.ExecuteTree(clipper.Union, clipper.NonZero)
	if err != nil {
		return nil, &EngineError{Op: "union_nonzero", Err: err}
	}

	root := fromPolyPath(polyTree)
	if root == nil {
		root = &Tree{}
	}
	return root, nil
}

// UnionEvenOdd unions paths using the even-odd rule, returning a flat list
// of oriented contours (spec §4.2).
func UnionEvenOdd(paths []geom.Contour) ([]geom.Contour, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	c := clipper.NewClipper64()
	c.AddSubject(toPaths64(paths))

	solution, err := c.Execute(clipper.Union, clipper.EvenOdd)
	if err != nil {
		return nil, &EngineError{Op: "union_evenodd", Err: err}
	}
	return fromPaths64(solution), nil
}

// IntersectEvenOdd intersects subject against clip using the even-odd rule,
// returning a flat list of oriented contours (spec §4.2). clipOpen mirrors
// the Python reference's clip_closed parameter: every call site in this
// module passes closed clip polygons (clipOpen=false), but the parameter is
// kept so the adapter's interface matches §4.2 exactly.
func IntersectEvenOdd(subject, clip []geom.Contour, clipOpen bool) ([]geom.Contour, error) {
	if len(subject) == 0 || len(clip) == 0 {
		return nil, nil
	}
	_ = clipOpen // every caller in this module uses closed clip polygons

	c := clipper.NewClipper64()
	c.AddSubject(toPaths64(subject))
	c.AddClip(toPaths64(clip))

	solution, err := c.Execute(clipper.Intersection, clipper.EvenOdd)
	if err != nil {
		return nil, &EngineError{Op: "intersection_evenodd", Err: err}
	}
	return fromPaths64(solution), nil
}
