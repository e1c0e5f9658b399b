// Package nfa builds the nondeterministic automaton that recognizes every
// rendering a style could produce for one reference.
//
// This is the token-edge analogue of a Thompson construction: instead of
// byte-range transitions it carries edge.ID transitions (one per interned
// EdgeData), and instead of being built from regex syntax it is built by
// the refir package walking a style's rendering tree once per free-
// condition assignment (see style.FreeCondSets).
package nfa

import (
	"fmt"
	"sort"

	"github.com/coregx/csldisamb/edge"
	"github.com/coregx/csldisamb/internal/conv"
)

// NodeID uniquely identifies an Nfa node within one Nfa value.
type NodeID uint32

// InvalidNode is never a valid node handle.
const InvalidNode NodeID = 0xFFFFFFFF

// Transition is one outgoing edge from a node: either an epsilon move (no
// token consumed) or a labeled move consuming exactly one edge.ID.
type Transition struct {
	Epsilon bool
	Token   edge.ID // meaningful only when !Epsilon
	To      NodeID
}

// Nfa is a directed multigraph over opaque node handles, with a start set
// and an accepting set. It is always a transient build artifact: once
// flattened by dfa.Determinize it is discarded.
type Nfa struct {
	adj       [][]Transition
	start     map[NodeID]bool
	accepting map[NodeID]bool
}

// New returns an empty Nfa (no nodes, no start, no accepting states).
func New() *Nfa {
	return &Nfa{
		start:     make(map[NodeID]bool),
		accepting: make(map[NodeID]bool),
	}
}

// AddNode allocates a fresh node with no outgoing transitions.
func (n *Nfa) AddNode() NodeID {
	id := NodeID(conv.IntToUint32(len(n.adj)))
	n.adj = append(n.adj, nil)
	return id
}

// AddEpsilon adds an unlabeled transition from -> to.
func (n *Nfa) AddEpsilon(from, to NodeID) {
	n.adj[from] = append(n.adj[from], Transition{Epsilon: true, To: to})
}

// AddToken adds a transition from -> to labeled with tok.
func (n *Nfa) AddToken(from, to NodeID, tok edge.ID) {
	n.adj[from] = append(n.adj[from], Transition{Token: tok, To: to})
}

// MarkStart adds id to the start set.
func (n *Nfa) MarkStart(id NodeID) { n.start[id] = true }

// MarkAccepting adds id to the accepting set.
func (n *Nfa) MarkAccepting(id NodeID) { n.accepting[id] = true }

// Transitions returns the outgoing transitions of a node, in insertion
// order (order is unspecified to be relied on by callers — Brzozowski
// minimization is tie-broken by state-set identity, not edge order).
func (n *Nfa) Transitions(id NodeID) []Transition { return n.adj[id] }

// NumNodes returns the number of nodes allocated so far.
func (n *Nfa) NumNodes() int { return len(n.adj) }

// StartSet returns the start node set as a sorted slice.
func (n *Nfa) StartSet() []NodeID { return sortedKeys(n.start) }

// AcceptingSet returns the accepting node set as a sorted slice.
func (n *Nfa) AcceptingSet() []NodeID { return sortedKeys(n.accepting) }

// IsAccepting reports whether id is in the accepting set.
func (n *Nfa) IsAccepting(id NodeID) bool { return n.accepting[id] }

// IsEmpty reports whether this Nfa produced no transitions: per the
// data-model invariant, this holds iff the start and accepting sets are
// identical (e.g. every AddCompleteSequence call degenerated to an empty
// rendering). Such an Nfa accepts at most the empty sequence.
func (n *Nfa) IsEmpty() bool {
	if len(n.start) != len(n.accepting) {
		return false
	}
	for id := range n.start {
		if !n.accepting[id] {
			return false
		}
	}
	return true
}

// AddCompleteSequence appends one fully independent start->accept path
// through tokens, used for each RefIR flattening the builder produces (one
// per free-condition assignment). The new path's first node joins the
// start set and its last node joins the accepting set; nothing else is
// shared with the rest of the graph.
func (n *Nfa) AddCompleteSequence(tokens []edge.ID) {
	cursor := n.AddNode()
	n.MarkStart(cursor)
	for _, tok := range tokens {
		next := n.AddNode()
		n.AddToken(cursor, next, tok)
		cursor = next
	}
	n.MarkAccepting(cursor)
}

// AddSequenceBetween splices a token chain between two existing nodes via
// epsilon brackets. A Names block with a variable given-name count, for
// example, is allocated shared "before" and "after" nodes once, then filled
// in with one parallel segment per count via repeated calls to this method.
func (n *Nfa) AddSequenceBetween(a, b NodeID, tokens []edge.ID) {
	cursor := n.AddNode()
	n.AddEpsilon(a, cursor)
	for _, tok := range tokens {
		next := n.AddNode()
		n.AddToken(cursor, next, tok)
		cursor = next
	}
	n.AddEpsilon(cursor, b)
}

func sortedKeys(m map[NodeID]bool) []NodeID {
	out := make([]NodeID, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// String is a compact diagnostic summary, not the full graph (use
// dfa.Dfa.DebugGraph for a renderable automaton after determinization).
func (n *Nfa) String() string {
	return fmt.Sprintf("Nfa{nodes: %d, start: %d, accepting: %d}", len(n.adj), len(n.start), len(n.accepting))
}
