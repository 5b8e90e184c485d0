// Package netname implements the NetName tagged variant (spec §3, §9):
// a Named identity (a text label plus a disambiguation counter) or an
// Anonymous identity (no text, always distinct). Both variants are plain
// comparable structs, so either can be used directly as a map key in
// package registry.
package netname

import (
	"fmt"
	"sync/atomic"
)

// Name is implemented by Named and Anonymous. It intentionally exposes no
// behavior beyond identity — dispatch on the concrete type (or a type
// switch) replaces the dynamic-typing the reference implementation relies
// on (spec §9: "tagged variant... total ordering").
type Name interface {
	fmt.Stringer
	isNetName()
}

// Named identifies a net by a text label plus a disambiguation counter that
// is unique per label text. Two Named values with equal Text but different
// Counter are distinct identities that share a display name — this is how
// opens are detected (spec §3). total points at the same shared counter
// for every Named minted for Text (see Generator.Named); it affects String's
// rendering and never ordering (Less), but as a struct field it does take
// part in == and map-key equality: a Named built without a Generator (e.g.
// in a test literal, total nil) is not equal to a minted Named with the
// same Text and Counter.
type Named struct {
	Text    string
	Counter int64
	total   *int64
}

func (Named) isNetName() {}

// String renders bare "text" while Text has only ever been minted once,
// and "text__N" once a second identity with the same Text exists —
// matching the reference implementation's repr convention
// (tracker.py: NetName.__repr__).
func (n Named) String() string {
	if n.total == nil || atomic.LoadInt64(n.total) <= 1 {
		return n.Text
	}
	return fmt.Sprintf("%s__%d", n.Text, n.Counter)
}

// Anonymous identifies a conductor with no label. Seq records creation
// order: it is what guarantees every Anonymous is distinct (spec §3) and
// what ordering/tie-breaking uses (spec §5: "if parallelised it must be
// atomic" — Seq is minted via sync/atomic in Generator.Anonymous).
type Anonymous struct {
	Seq int64
}

func (Anonymous) isNetName() {}

func (a Anonymous) String() string {
	return fmt.Sprintf("(anon#%d)", a.Seq)
}

// Less implements the spec §3 total order: named < anonymous; within
// named, lexicographic by text then by counter; within anonymous, by
// creation sequence.
func Less(a, b Name) bool {
	na, aNamed := a.(Named)
	nb, bNamed := b.(Named)

	switch {
	case aNamed && bNamed:
		if na.Text != nb.Text {
			return na.Text < nb.Text
		}
		return na.Counter < nb.Counter
	case aNamed && !bNamed:
		return true
	case !aNamed && bNamed:
		return false
	default:
		return a.(Anonymous).Seq < b.(Anonymous).Seq
	}
}

// Text returns the display text of a Name: n.Text for a Named value, and
// "" for Anonymous. Used by registry's open-net grouping (spec §4.6) to
// bucket live names by text without a repeated type switch at every call
// site.
func Text(n Name) (string, bool) {
	if named, ok := n.(Named); ok {
		return named.Text, true
	}
	return "", false
}
