// Package dfa turns the nondeterministic token-edge graphs built by package
// nfa into deterministic ones, and matches candidate renderings against
// them.
//
// Determinize performs ordinary subset construction. Minimize performs
// Brzozowski's double-reversal minimization on top of it (reverse,
// determinize, reverse, determinize), producing the smallest DFA equivalent
// to the input NFA without ever computing an explicit equivalence relation
// on states.
package dfa

import (
	"fmt"
	"sort"

	"github.com/coregx/csldisamb/automaton/nfa"
	"github.com/coregx/csldisamb/edge"
)

// NodeID uniquely identifies a Dfa node within one Dfa value.
type NodeID uint32

// transition is one outgoing, edge-labeled move. DFAs have at most one
// transition per (node, label) pair, unlike the Nfa's multigraph.
type transition struct {
	label edge.ID
	to    NodeID
}

// Dfa is a deterministic automaton over edge.ID labels, built by Determinize
// (optionally followed by Minimize) from an *nfa.Nfa.
//
// Per the original design this type is intentionally never structurally
// equal to any other Dfa, itself included: Equal always reports false. This
// lets a cache (package disambcache) treat "the Dfa changed" as "rebuild
// happened", which is exactly the invalidation signal an incremental build
// wants, without the cost of a real structural comparison on every style
// edit.
type Dfa struct {
	adj       [][]transition
	start     NodeID
	accepting map[NodeID]bool
}

// NumNodes returns the number of states in the automaton.
func (d *Dfa) NumNodes() int { return len(d.adj) }

// Start returns the single start state.
func (d *Dfa) Start() NodeID { return d.start }

// IsAccepting reports whether id is an accepting state.
func (d *Dfa) IsAccepting(id NodeID) bool { return d.accepting[id] }

// Equal always reports false; see the Dfa doc comment.
func (d *Dfa) Equal(_ *Dfa) bool { return false }

func (d *Dfa) String() string {
	return fmt.Sprintf("Dfa{states: %d, accepting: %d}", len(d.adj), len(d.accepting))
}

// DebugGraph renders the automaton as GraphViz DOT text, resolving each
// edge.ID label back to its edge.Data via in for readability. Intended for
// developer diagnostics, not machine consumption.
func (d *Dfa) DebugGraph(in *edge.Interner) string {
	var sb []byte
	sb = append(sb, "digraph dfa {\n"...)
	for id := NodeID(0); int(id) < len(d.adj); id++ {
		shape := "circle"
		if d.accepting[id] {
			shape = "doublecircle"
		}
		label := fmt.Sprintf("%d", id)
		if id == d.start {
			label += " (start)"
		}
		sb = append(sb, fmt.Sprintf("  %d [shape=%s, label=%q];\n", id, shape, label)...)
	}
	for from, transitions := range d.adj {
		for _, t := range transitions {
			data, ok := in.Lookup(t.label)
			lbl := "?"
			if ok {
				lbl = data.String()
			}
			sb = append(sb, fmt.Sprintf("  %d -> %d [label=%q];\n", from, t.to, lbl)...)
		}
	}
	sb = append(sb, "}\n"...)
	return string(sb)
}

// nodeSet is a canonical, sorted, deduped slice of nfa.NodeID used both as
// an epsilon-closure result and as a subset-construction map key.
type nodeSet []nfa.NodeID

func (s nodeSet) key() string {
	// Sorted uint32s packed as fixed-width decimal are a cheap, collision-free
	// map key; this graph never has enough states for the allocation to matter.
	buf := make([]byte, 0, len(s)*11)
	for _, id := range s {
		buf = append(buf, fmt.Sprintf("%011d,", id)...)
	}
	return string(buf)
}

func newNodeSet(ids []nfa.NodeID) nodeSet {
	s := append(nodeSet(nil), ids...)
	sort.Slice(s, func(i, j int) bool { return s[i] < s[j] })
	return s
}

func (s nodeSet) containsAny(n *nfa.Nfa) bool {
	for _, id := range s {
		if n.IsAccepting(id) {
			return true
		}
	}
	return false
}
