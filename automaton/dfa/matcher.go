package dfa

import (
	"github.com/coregx/csldisamb/disamberr"
	"github.com/coregx/csldisamb/edge"
)

// Accepts reports whether tokens, taken as an exact sequence of interned
// edges, drives the automaton from its start state to an accepting state.
// This is the fast path used once a candidate rendering has already been
// reduced to edge.IDs through the same interner the Dfa was built from.
func (d *Dfa) Accepts(tokens []edge.ID) bool {
	cursor := d.start
	for _, tok := range tokens {
		next, ok := d.step(cursor, tok)
		if !ok {
			return false
		}
		cursor = next
	}
	return d.accepting[cursor]
}

func (d *Dfa) step(from NodeID, label edge.ID) (NodeID, bool) {
	for _, t := range d.adj[from] {
		if t.label == label {
			return t.to, true
		}
	}
	return 0, false
}

// frame is one pending walk through the automaton: cursor is the current
// state, prepended (if non-nil) is an Output fragment already split off a
// longer edge.Data that still needs matching before consuming the rest of
// remaining.
type frame struct {
	cursor    NodeID
	prepended *edge.Data
	remaining []edge.Data
}

// AcceptsData reports whether data, an unintegrated sequence of edge.Data
// values, matches some path through the automaton, resolving each
// transition's interned label through in to compare full edge.Data values.
//
// Unlike Accepts this does not require data's Output text to have been
// chunked the same way the automaton's Output edges were interned: a single
// long Output fragment in data can satisfy several consecutive shorter
// Output edges in the automaton, as long as the concatenated text agrees.
// Only this direction is supported (mirroring original_source's
// accepts_data, which only ever splits the candidate token against a
// shorter edge weight, never the reverse); a long automaton edge is never
// split to satisfy several shorter candidate fragments. This matters
// whenever a freshly rendered candidate (one Output string per contiguous
// run of plain text) is compared against a Dfa built from differently
// segmented style output.
//
// The walk is nondeterministic — the automaton is deterministic, but which
// edge consumes how much of an Output fragment is not — so it proceeds over
// an explicit stack of frames rather than a single cursor, mirroring
// original_source's accepts_data.
//
// Every transition label on a Dfa built by Determinize/Minimize was produced
// by interning through in (the same interner the style compiler and the
// candidate both share); a label that doesn't resolve there means the
// caller passed a Dfa built against a different interner, or the interner
// was mutated in a way that dropped an entry. Either way it is a
// disamberr.InternalInvariantError, not a transition this candidate simply
// failed to match.
func (d *Dfa) AcceptsData(in *edge.Interner, data []edge.Data) (bool, error) {
	stack := []frame{{cursor: d.start, remaining: data}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		var first *edge.Data
		var restAfterFirst []edge.Data
		if f.prepended != nil {
			first = f.prepended
			restAfterFirst = f.remaining
		} else if len(f.remaining) > 0 {
			v := f.remaining[0]
			first = &v
			restAfterFirst = f.remaining[1:]
		}

		if first == nil {
			if d.accepting[f.cursor] {
				return true, nil
			}
			continue
		}

		for _, t := range d.adj[f.cursor] {
			want, ok := in.Lookup(t.label)
			if !ok {
				return false, &disamberr.InternalInvariantError{
					Component: "dfa.AcceptsData",
					Detail:    "transition label has no interner entry",
				}
			}
			switch {
			case want == *first:
				stack = append(stack, frame{cursor: t.to, remaining: restAfterFirst})
			case want.Kind == edge.Output && first.Kind == edge.Output && first.Text != want.Text:
				if len(first.Text) > len(want.Text) && first.Text[:len(want.Text)] == want.Text {
					tail := edge.Out(first.Text[len(want.Text):])
					stack = append(stack, frame{cursor: t.to, prepended: &tail, remaining: restAfterFirst})
				}
			}
		}
	}
	return false, nil
}
