package dfa

import "github.com/coregx/csldisamb/automaton/nfa"

// Minimize runs Brzozowski's double-reversal algorithm on n, returning the
// minimal Dfa recognizing the same language: reverse, determinize, reverse,
// determinize. Each determinize step already discards unreachable states,
// which is what makes two rounds sufficient to reach the minimum — no
// separate state-merging pass is needed.
//
// Grounded on original_source's Nfa::brzozowski_minimise.
func Minimize(n *nfa.Nfa) *Dfa {
	rev1 := n.Reverse()
	dfa1 := Determinize(rev1)
	rev2 := dfa1.toNfa()
	return Determinize(rev2)
}

// toNfa reinterprets a Dfa as an Nfa with every transition reversed and
// start/accepting swapped, the second half of one Brzozowski round trip. A
// Dfa is already a (trivial) Nfa — every node has at most one outgoing
// transition per label — so this just re-threads the adjacency into the
// Nfa representation rather than re-running epsilon closure on it.
func (d *Dfa) toNfa() *nfa.Nfa {
	r := nfa.New()
	for range d.adj {
		r.AddNode()
	}
	for from, transitions := range d.adj {
		for _, t := range transitions {
			r.AddToken(nfa.NodeID(t.to), nfa.NodeID(from), t.label)
		}
	}
	for id := range d.accepting {
		r.MarkStart(nfa.NodeID(id))
	}
	r.MarkAccepting(nfa.NodeID(d.start))
	return r
}
