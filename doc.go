// Package snarled is an electrical connectivity extractor for physical-design
// (IC mask) layouts: given layered polygon geometry and textual pin labels,
// it determines which conductors are electrically joined, which labels are
// shorted together, and which labels that should name a single net are
// instead split across disjoint conductors (opens).
//
// It is the analysis kernel of a Layout-Versus-Schematic-style check, built
// around an incremental union-find whose equivalence classes carry
// per-layer polygon collections.
//
// The pipeline, leaves first:
//
//	scale/    — C1: float -> integer grid conversion at a fixed scale factor
//	boolean/  — C2: facade over the polygon-Boolean engine (clipper2)
//	pointin/  — C3: point-in-polygon classification
//	unioner/  — C4: per-layer polygon unioning and tree flattening
//	label/    — C5: net label assignment and short-group recording
//	netname/  — the Named/Anonymous net identity and its counter generator
//	registry/ — C6: the net union-find (alias resolution, merge, reporting)
//	viamerge/ — C7: via-mediated and direct-contact net merging
//	trace/    — C8 + orchestrator: final short/open report, trace.Run
//	specio/   — layer-map, connectivity-spec, and remap file parsers
//	cmd/snarled/ — the command-line entry point
//
// A run is single-threaded, synchronous, and one-shot: there is no
// hierarchical traversal (input geometry is pre-flattened) and no
// incremental re-analysis. See trace.Run for the package's single entry
// point, and DESIGN.md for how each part is grounded.
package snarled
