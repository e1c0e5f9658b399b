package dfa

import (
	"sort"

	"github.com/coregx/csldisamb/automaton/nfa"
	"github.com/coregx/csldisamb/edge"
	"github.com/coregx/csldisamb/internal/conv"
)

// Determinize performs subset construction on n, producing an equivalent
// (but not necessarily minimal) Dfa. Each Dfa state corresponds to a set of
// Nfa states reachable under the same input prefix; the worklist processes
// one such set at a time, grouping its outgoing token transitions by label
// and epsilon-closing each group to find (or create) the successor state.
//
// Grounded on original_source's to_dfa, restructured as an explicit worklist
// over canonicalized node sets rather than a recursive BTreeSet-keyed
// HashMap, in the idiom of coregex/dfa/lazy's Builder (epsilon-closure then
// move, memoized by state-set identity).
func Determinize(n *nfa.Nfa) *Dfa {
	startSet := newNodeSet(n.EpsilonClosure(n.StartSet()))

	d := &Dfa{
		accepting: make(map[NodeID]bool),
	}
	startNode := allocNode(d)
	if startSet.containsAny(n) {
		d.accepting[startNode] = true
	}
	d.start = startNode

	states := map[string]NodeID{startSet.key(): startNode}
	work := []nodeSet{startSet}
	workNodes := []NodeID{startNode}

	for len(work) > 0 {
		set := work[len(work)-1]
		work = work[:len(work)-1]
		current := workNodes[len(workNodes)-1]
		workNodes = workNodes[:len(workNodes)-1]

		byLabel := make(map[edge.ID][]nfa.NodeID)
		var labels []edge.ID
		for _, from := range set {
			for _, t := range n.Transitions(from) {
				if t.Epsilon {
					continue
				}
				if _, seen := byLabel[t.Token]; !seen {
					labels = append(labels, t.Token)
				}
				byLabel[t.Token] = append(byLabel[t.Token], t.To)
			}
		}
		sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })

		for _, label := range labels {
			targetSet := newNodeSet(n.EpsilonClosure(byLabel[label]))
			key := targetSet.key()
			target, known := states[key]
			if !known {
				target = allocNode(d)
				if targetSet.containsAny(n) {
					d.accepting[target] = true
				}
				states[key] = target
				work = append(work, targetSet)
				workNodes = append(workNodes, target)
			}
			d.adj[current] = append(d.adj[current], transition{label: label, to: target})
		}
	}
	return d
}

func allocNode(d *Dfa) NodeID {
	id := NodeID(conv.IntToUint32(len(d.adj)))
	d.adj = append(d.adj, nil)
	return id
}
