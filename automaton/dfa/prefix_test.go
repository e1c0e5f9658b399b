package dfa

import (
	"testing"

	"github.com/coregx/csldisamb/automaton/nfa"
	"github.com/coregx/csldisamb/edge"
)

func TestCommonPrefix(t *testing.T) {
	a, b, c, d1 := edge.ID(1), edge.ID(2), edge.ID(3), edge.ID(4)

	n := nfa.New()
	n.AddCompleteSequence([]edge.ID{a, b, c})
	n.AddCompleteSequence([]edge.ID{a, b, d1})
	dfa := Minimize(n)

	prefix := CommonPrefix(dfa)
	if len(prefix) != 2 || prefix[0] != a || prefix[1] != b {
		t.Errorf("CommonPrefix = %v, want [%d %d]", prefix, a, b)
	}
}

func TestCommonPrefix_NoBranchingFromStart(t *testing.T) {
	a, b := edge.ID(1), edge.ID(2)

	n := nfa.New()
	n.AddCompleteSequence([]edge.ID{a})
	n.AddCompleteSequence([]edge.ID{b})
	dfa := Minimize(n)

	if prefix := CommonPrefix(dfa); len(prefix) != 0 {
		t.Errorf("CommonPrefix = %v, want empty (start state already branches)", prefix)
	}
}
