package csldisamb

import (
	"testing"

	"github.com/google/uuid"

	"github.com/coregx/csldisamb/disambtoken"
	"github.com/coregx/csldisamb/edge"
	"github.com/coregx/csldisamb/refir"
	"github.com/coregx/csldisamb/style"
)

func titleStyle() *style.Style {
	return &style.Style{
		CitationLayout: []style.Element{
			{Kind: style.ElemText, Text: &style.TextElement{Source: style.TextSource{Kind: style.TextVariable, Variable: "title"}}},
		},
	}
}

func TestProcessor_EndToEnd(t *testing.T) {
	p := New(titleStyle(), refir.PlainFormatter{}, refir.PlainLocale{Terms: map[string]string{}}, nil)

	smithID := uuid.New()
	jonesID := uuid.New()
	p.AddReference(smithID, &disambtoken.Reference{Ordinary: map[string]string{"title": "Shared Title"}})
	p.AddReference(jonesID, &disambtoken.Reference{Ordinary: map[string]string{"title": "Unique Title"}})

	smithDfa, err := p.ReferenceDFA(smithID)
	if err != nil {
		t.Fatalf("ReferenceDFA(smith): %v", err)
	}
	jonesDfa, err := p.ReferenceDFA(jonesID)
	if err != nil {
		t.Fatalf("ReferenceDFA(jones): %v", err)
	}

	titleEdge := p.Edge(edge.Out("Shared Title"))
	if !smithDfa.Accepts([]edge.ID{titleEdge}) {
		t.Error("smith's Dfa should accept its own rendered title")
	}
	if jonesDfa.Accepts([]edge.ID{titleEdge}) {
		t.Error("jones's Dfa should not accept smith's title")
	}

	query := disambtoken.NewSet()
	query.Add(disambtoken.NewStr("Shared Title"))
	candidates := p.CandidateRefs(query)
	if len(candidates) != 1 || candidates[0] != smithID.String() {
		t.Errorf("CandidateRefs = %v, want exactly [%s]", candidates, smithID)
	}

	// Rebuilding after an invalidation must not reuse the old Dfa value
	// (never-equal by design) but must still behave identically.
	p.InvalidateReference(smithID)
	rebuilt, err := p.ReferenceDFA(smithID)
	if err != nil {
		t.Fatalf("ReferenceDFA after invalidate: %v", err)
	}
	if rebuilt.Equal(smithDfa) {
		t.Error("Dfa.Equal must report false even across a rebuild of the same reference")
	}
	if !rebuilt.Accepts([]edge.ID{titleEdge}) {
		t.Error("rebuilt Dfa should still accept the same rendering")
	}
}
