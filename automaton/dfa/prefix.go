package dfa

import "github.com/coregx/csldisamb/edge"

// CommonPrefix walks d from its start node along the single unbranching,
// non-accepting path that exists (if any), returning the sequence of edge
// IDs every string d accepts must begin with. It stops at the first node
// with more than one outgoing transition, or at an accepting node (an empty
// rendering is itself a valid accepted continuation there).
//
// Adapted from the mandatory-literal-prefix idea in literal.Extractor: that
// package pulls a required literal run out of a regex's syntax tree so a
// byte scanner can prefilter candidates before running the full NFA/DFA.
// Here there is no byte haystack to prescan, but the same prefix is useful
// as a diagnostic: a disambiguation driver can show "always renders X
// first" without walking the whole Dfa, e.g. for debug output or for
// skipping a known-common lead-in when comparing two references' Dfas.
func CommonPrefix(d *Dfa) []edge.ID {
	var prefix []edge.ID
	node := d.start
	seen := map[NodeID]bool{}
	for {
		if d.accepting[node] || seen[node] {
			return prefix
		}
		seen[node] = true
		trans := d.adj[node]
		if len(trans) != 1 {
			return prefix
		}
		prefix = append(prefix, trans[0].label)
		node = trans[0].to
	}
}
