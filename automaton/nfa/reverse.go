package nfa

// Reverse builds the reverse of n: every transition a->b becomes b->a, and
// the start and accepting sets are swapped. This is the first (and, after
// one determinize/reverse/determinize round trip, the second) half of
// Brzozowski double-reversal minimization in package dfa.
//
// Grounded on coregex/nfa/reverse.go's two-pass approach (collect edges,
// then build), simplified because this graph has no dedicated state kinds
// to preserve across the reversal — every node keeps its NodeID, only the
// adjacency direction and the start/accepting sets change.
func (n *Nfa) Reverse() *Nfa {
	r := &Nfa{
		adj:       make([][]Transition, len(n.adj)),
		start:     make(map[NodeID]bool, len(n.accepting)),
		accepting: make(map[NodeID]bool, len(n.start)),
	}
	for from, transitions := range n.adj {
		for _, t := range transitions {
			rt := Transition{Epsilon: t.Epsilon, Token: t.Token, To: NodeID(from)}
			r.adj[t.To] = append(r.adj[t.To], rt)
		}
	}
	for id := range n.accepting {
		r.start[id] = true
	}
	for id := range n.start {
		r.accepting[id] = true
	}
	return r
}
