package nfa

import (
	"sort"

	"github.com/coregx/csldisamb/internal/sparse"
)

// EpsilonClosure computes the epsilon-closure of a set of nodes: every node
// reachable from states by following only Epsilon transitions, states
// themselves included. This is the fundamental operation subset
// construction (package dfa) performs at every step, mirroring
// coregex/dfa/lazy's Builder.epsilonClosure but over a token-edge graph
// instead of a byte-range one.
//
// The returned slice is duplicate-free and sorted, which gives subset
// construction a canonical key for memoizing DFA states.
func (n *Nfa) EpsilonClosure(states []NodeID) []NodeID {
	closure := sparse.NewSparseSet(uint32(len(n.adj)))
	stack := make([]NodeID, 0, len(states)*2)

	for _, s := range states {
		if !closure.Contains(uint32(s)) {
			closure.Insert(uint32(s))
			stack = append(stack, s)
		}
	}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, t := range n.adj[cur] {
			if !t.Epsilon {
				continue
			}
			if !closure.Contains(uint32(t.To)) {
				closure.Insert(uint32(t.To))
				stack = append(stack, t.To)
			}
		}
	}

	out := make([]NodeID, 0, closure.Size())
	closure.Iter(func(v uint32) { out = append(out, NodeID(v)) })
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
