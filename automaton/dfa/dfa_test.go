package dfa

import (
	"errors"
	"testing"

	"github.com/coregx/csldisamb/automaton/nfa"
	"github.com/coregx/csldisamb/disamberr"
	"github.com/coregx/csldisamb/edge"
)

// TestNameOrdering replicates the "andy/reuben/peters" scenario: a style
// that renders a name either forwards (given-name first) or, when the
// surname collides with another reference's, with an inverted fallback
// branch. Grounded on original_source's #[test] fn nfa().
func TestNameOrdering(t *testing.T) {
	reuben := edge.ID(2)
	peters := edge.ID(3)
	comma := edge.ID(4)
	twenty := edge.ID(5)
	andy := edge.ID(1)

	build := func(given edge.ID) *nfa.Nfa {
		n := nfa.New()
		initial := n.AddNode()
		forwards1 := n.AddNode()
		backwards1 := n.AddNode()
		backwards2 := n.AddNode()
		target := n.AddNode()
		abc := n.AddNode()
		acc := n.AddNode()
		n.AddToken(initial, forwards1, given)
		n.AddToken(forwards1, target, peters)
		n.AddToken(initial, backwards1, peters)
		n.AddToken(backwards1, backwards2, comma)
		n.AddToken(backwards2, target, given)
		n.AddToken(initial, target, peters)
		n.AddToken(target, abc, comma)
		n.AddToken(abc, acc, twenty)
		n.MarkStart(initial)
		n.MarkAccepting(acc)
		return n
	}

	reubenNfa := build(reuben)
	andyNfa := build(andy)

	reubenDfa := Determinize(reubenNfa)
	andyDfa := Determinize(andyNfa)
	reubenBrz := Minimize(reubenNfa)
	andyBrz := Minimize(andyNfa)

	testReuben := func(d *Dfa) {
		if !d.Accepts([]edge.ID{peters, comma, twenty}) {
			t.Error("expected acceptance of [peters, comma, twenty]")
		}
		if !d.Accepts([]edge.ID{reuben, peters, comma, twenty}) {
			t.Error("expected acceptance of [reuben, peters, comma, twenty]")
		}
		if !d.Accepts([]edge.ID{peters, comma, reuben, comma, twenty}) {
			t.Error("expected acceptance of [peters, comma, reuben, comma, twenty]")
		}
		if d.Accepts([]edge.ID{peters, comma, andy, comma, twenty}) {
			t.Error("did not expect acceptance of a mismatched given name")
		}
		if d.Accepts([]edge.ID{andy, comma, peters, comma, twenty}) {
			t.Error("did not expect acceptance of a mismatched given name")
		}
	}
	testAndy := func(d *Dfa) {
		if !d.Accepts([]edge.ID{peters, comma, twenty}) {
			t.Error("expected acceptance of [peters, comma, twenty]")
		}
		if !d.Accepts([]edge.ID{andy, peters, comma, twenty}) {
			t.Error("expected acceptance of [andy, peters, comma, twenty]")
		}
		if d.Accepts([]edge.ID{peters, comma, reuben, comma, twenty}) {
			t.Error("did not expect acceptance of a mismatched given name")
		}
		if d.Accepts([]edge.ID{reuben, peters, comma, twenty}) {
			t.Error("did not expect acceptance of a mismatched given name")
		}
	}

	testReuben(reubenDfa)
	testReuben(reubenBrz)
	testAndy(andyDfa)
	testAndy(andyBrz)
}

// TestBrzozowskiMinimise replicates original_source's #[test] fn
// test_brzozowski_minimise(): four complete sequences sharing prefixes and
// suffixes, minimized and checked for exact-sequence acceptance only.
func TestBrzozowskiMinimise(t *testing.T) {
	a := edge.ID(1)
	b := edge.ID(2)
	c := edge.ID(3)
	d := edge.ID(4)
	e := edge.ID(5)

	n := nfa.New()
	n.AddCompleteSequence([]edge.ID{a, b, c, e})
	n.AddCompleteSequence([]edge.ID{a, b, e})
	n.AddCompleteSequence([]edge.ID{b, c, d, e})
	n.AddCompleteSequence([]edge.ID{b, d, e})

	dfa := Minimize(n)

	if !dfa.Accepts([]edge.ID{a, b, e}) {
		t.Error("expected acceptance of [a, b, e]")
	}
	if dfa.Accepts([]edge.ID{a, b, c, d, e}) {
		t.Error("did not expect acceptance of [a, b, c, d, e]")
	}
}

func TestAcceptsData_PrefixSplit(t *testing.T) {
	in := edge.NewInterner()
	smith := in.Intern(edge.Out("Smith-"))
	jones := in.Intern(edge.Out("Jones"))

	n := nfa.New()
	n.AddCompleteSequence([]edge.ID{smith, jones})
	dfa := Determinize(n)

	// The automaton was built from two separately interned Output edges,
	// but a candidate rendering may produce the concatenated text as one
	// fragment (e.g. a single run of plain text the formatter never broke
	// up); that single long token must still satisfy both edges in turn.
	candidate := []edge.Data{edge.Out("Smith-Jones")}
	ok, err := dfa.AcceptsData(in, candidate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected prefix-split acceptance of one long Output fragment against two short edges")
	}

	mismatch := []edge.Data{edge.Out("Smith-Smythe")}
	ok, err = dfa.AcceptsData(in, mismatch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("did not expect acceptance of mismatched trailing text")
	}
}

func TestAcceptsData_UnknownLabelIsInternalInvariantError(t *testing.T) {
	in := edge.NewInterner()
	tok := in.Intern(edge.Out("Smith"))

	n := nfa.New()
	n.AddCompleteSequence([]edge.ID{tok})
	dfa := Determinize(n)

	other := edge.NewInterner()
	_, err := dfa.AcceptsData(other, []edge.Data{edge.Out("Smith")})
	if err == nil {
		t.Fatal("expected an error when the Dfa's transition labels don't resolve in the given interner")
	}
	var invErr *disamberr.InternalInvariantError
	if !errors.As(err, &invErr) {
		t.Errorf("expected *disamberr.InternalInvariantError, got %T", err)
	}
}

func TestDfa_IsNeverEqual(t *testing.T) {
	n := nfa.New()
	n.AddCompleteSequence([]edge.ID{1})
	d1 := Determinize(n)
	d2 := Determinize(n)
	if d1.Equal(d2) {
		t.Error("Dfa.Equal must always report false, even for identically built automata")
	}
	if d1.Equal(d1) {
		t.Error("Dfa.Equal must always report false, even comparing a Dfa to itself")
	}
}
