package netname

import (
	"sync"
	"sync/atomic"
)

// Generator mints fresh NetName identities. It is the "process-scoped
// monotonic generator" spec §9 calls for, passed in explicitly rather than
// kept as a package-level global so tests stay independent of each other.
//
// Generator is safe for concurrent use: the per-text counters are stored
// behind a mutex-guarded map of *int64 and incremented with sync/atomic,
// matching spec §5's requirement that the disambiguation counter be atomic
// if the assigner is ever parallelised across layers, without forcing the
// whole NetRegistry (which stays single-threaded, spec §5) to take a lock.
type Generator struct {
	mu       sync.Mutex
	counters map[string]*int64
	anonSeq  int64
}

// NewGenerator returns a Generator with no prior history.
func NewGenerator() *Generator {
	return &Generator{counters: make(map[string]*int64)}
}

// Named mints a fresh Named identity for text, with a Counter unique among
// all Named values previously minted for the same text (spec §4.5: "using
// the NetName counter to disambiguate from prior uses of that text"). The
// returned value shares its total-mint counter with every other Named ever
// minted for text, which is what lets String() render a bare label while
// text has only been seen once and "text__N" once a second identity
// appears (see Named.String).
func (g *Generator) Named(text string) Named {
	g.mu.Lock()
	ctr, ok := g.counters[text]
	if !ok {
		var zero int64
		ctr = &zero
		g.counters[text] = ctr
	}
	g.mu.Unlock()

	n := atomic.AddInt64(ctr, 1) - 1
	return Named{Text: text, Counter: n, total: ctr}
}

// Anonymous mints a fresh Anonymous identity. Every call returns a value
// distinct from every other, per spec §3 ("every anonymous NetName is
// distinct"); the monotonic Seq alone is sufficient to guarantee that, even
// under concurrent minting, since it is incremented atomically.
func (g *Generator) Anonymous() Anonymous {
	seq := atomic.AddInt64(&g.anonSeq, 1) - 1
	return Anonymous{Seq: seq}
}
