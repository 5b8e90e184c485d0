// Package registry implements C6, the net union-find: alias resolution,
// merge with a deterministic keep/drop rule, and short/open reporting
// (spec §4.6). Two concrete net-storage shapes share one alias table: a
// Registry (PolyWithHoles, populated by package label) and a FlatRegistry
// (flat even-odd contours, populated by package viamerge after the
// PolyWithHoles->flat transition described in spec §4.7). They share the
// alias table so that via-merges (C7) extend the equivalence classes C5/C6
// already built instead of starting over.
package registry

import (
	"sort"

	"github.com/katalvlaran/snarled/netname"
)

// aliasSet is the union-find parent-pointer table (spec §3 Invariant I1:
// acyclic; resolve terminates in <= |aliases| steps and yields a live
// name). A name is live iff it is not a key of aliases.
type aliasSet struct {
	aliases map[netname.Name]netname.Name
}

func newAliasSet() *aliasSet {
	return &aliasSet{aliases: make(map[netname.Name]netname.Name)}
}

// resolve walks the alias chain to the live representative, compressing the
// path so every visited name points directly at the root afterward
// (spec §4.6: "path compression during resolve is permitted and
// encouraged"). Idempotent: resolve(resolve(n)) == resolve(n) (spec I3).
func (a *aliasSet) resolve(n netname.Name) netname.Name {
	root := n
	for {
		parent, ok := a.aliases[root]
		if !ok {
			break
		}
		root = parent
	}
	for n != root {
		next := a.aliases[n]
		a.aliases[n] = root
		n = next
	}
	return root
}

// keepDrop decides which of two already-resolved, distinct roots survives a
// merge: named beats anonymous; among two nameds, the lexicographically
// lesser text (then counter) is kept; among two anonymous, the
// earlier-created one is kept (spec §4.6). netname.Less already encodes
// exactly this ordering.
func keepDrop(a, b netname.Name) (keep, drop netname.Name) {
	if netname.Less(a, b) {
		return a, b
	}
	return b, a
}

// alias records that drop is now resolved through keep. Never call with an
// already-live drop target or a name that would create a cycle; callers
// (Registry.Merge, FlatRegistry.Merge) only ever pass two freshly-resolved
// distinct roots, which keeps the alias forest acyclic by construction.
func (a *aliasSet) alias(keep, drop netname.Name) {
	a.aliases[drop] = keep
}

// shortedNets builds the spec §4.6 get_shorted_nets() result: for every
// named identity that has been aliased away, bucket it under its live
// representative; only buckets whose representative is itself named are
// reported. The "member texts not all identical" filter (spec §4.8) is
// applied by package trace, not here.
func (a *aliasSet) shortedNets() [][]netname.Name {
	buckets := make(map[netname.Name][]netname.Name)
	for dead := range a.aliases {
		if _, named := dead.(netname.Named); !named {
			continue
		}
		rep := a.resolve(dead)
		if _, named := rep.(netname.Named); !named {
			continue
		}
		buckets[rep] = append(buckets[rep], dead)
	}

	sets := make([][]netname.Name, 0, len(buckets))
	for rep, members := range buckets {
		set := append([]netname.Name{rep}, members...)
		sortNames(set)
		sets = append(sets, set)
	}
	sortNameSets(sets)
	return sets
}

// openNets groups the given live names (spec §4.6: get_open_nets scans all
// live names) by display text; any text with >= 2 live members is an open.
func openNets(live []netname.Name) map[string][]netname.Name {
	byText := make(map[string][]netname.Name)
	for _, n := range live {
		text, ok := netname.Text(n)
		if !ok {
			continue
		}
		byText[text] = append(byText[text], n)
	}
	for text, names := range byText {
		if len(names) < 2 {
			delete(byText, text)
			continue
		}
		sortNames(names)
		byText[text] = names
	}
	return byText
}

func sortNames(names []netname.Name) {
	sort.Slice(names, func(i, j int) bool { return netname.Less(names[i], names[j]) })
}

func sortNameSets(sets [][]netname.Name) {
	sort.Slice(sets, func(i, j int) bool {
		if len(sets[i]) == 0 || len(sets[j]) == 0 {
			return len(sets[i]) < len(sets[j])
		}
		return netname.Less(sets[i][0], sets[j][0])
	})
}
