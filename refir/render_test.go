package refir

import (
	"testing"

	"github.com/coregx/csldisamb/disambtoken"
	"github.com/coregx/csldisamb/edge"
	"github.com/coregx/csldisamb/style"
)

func newCtx(ref *disambtoken.Reference, s *style.Style, locatorType *string, pos style.Position) RefContext {
	return RefContext{
		Reference:   ref,
		Position:    pos,
		LocatorType: locatorType,
		Format:      PlainFormatter{},
		Locale:      PlainLocale{Terms: map[string]string{}},
		Style:       s,
		Interner:    edge.NewInterner(),
	}
}

func TestRender_LocatorBranch(t *testing.T) {
	s := &style.Style{
		CitationLayout: []style.Element{
			{Kind: style.ElemChoose, Choose: &style.Choose{
				Branches: []style.IfThen{
					{Conds: []style.Cond{{Kind: style.LocatorTypeEq, Var: "page"}}, Elements: []style.Element{
						{Kind: style.ElemText, Text: &style.TextElement{Source: style.TextSource{Kind: style.TextVariable, Variable: "locator"}}},
					}},
				},
				Else: []style.Element{
					{Kind: style.ElemText, Text: &style.TextElement{Source: style.TextSource{Kind: style.TextVariable, Variable: "title"}}},
				},
			}},
		},
	}
	ref := &disambtoken.Reference{Ordinary: map[string]string{"title": "A Title"}}

	page := "page"
	withLocator := newCtx(ref, s, &page, style.PositionFirst)
	ids, err := Render(withLocator)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(ids) != 1 {
		t.Fatalf("expected 1 edge, got %d", len(ids))
	}
	data, _ := withLocator.Interner.Lookup(ids[0])
	if data.Kind != edge.Locator {
		t.Errorf("expected a Locator edge, got %v", data)
	}

	noLocator := newCtx(ref, s, nil, style.PositionFirst)
	ids2, err := Render(noLocator)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	data2, _ := noLocator.Interner.Lookup(ids2[0])
	if data2.Kind != edge.Output || data2.Text != "A Title" {
		t.Errorf("expected Output(A Title), got %v", data2)
	}
}

func TestRender_YearSuffix_KeepsOnlyFirst(t *testing.T) {
	s := &style.Style{
		CitationLayout: []style.Element{
			{Kind: style.ElemText, Text: &style.TextElement{Source: style.TextSource{Kind: style.TextVariable, Variable: "year-suffix"}}},
			{Kind: style.ElemText, Text: &style.TextElement{Source: style.TextSource{Kind: style.TextVariable, Variable: "year-suffix"}}},
		},
	}
	ctx := newCtx(&disambtoken.Reference{}, s, nil, style.PositionFirst)
	ids, err := Render(ctx)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(ids) != 1 {
		t.Fatalf("expected exactly 1 surviving year-suffix edge, got %d", len(ids))
	}
	data, _ := ctx.Interner.Lookup(ids[0])
	if data.Kind != edge.YearSuffix {
		t.Errorf("expected the surviving edge to be normalized to YearSuffix, got %v", data)
	}
}

func TestRender_GroupCollapsesOnEmptyVariable(t *testing.T) {
	s := &style.Style{
		CitationLayout: []style.Element{
			{Kind: style.ElemGroup, Group: &style.Group{
				Elements: []style.Element{
					{Kind: style.ElemText, Text: &style.TextElement{Source: style.TextSource{Kind: style.TextVariable, Variable: "title"}}},
				},
			}},
		},
	}
	ctx := newCtx(&disambtoken.Reference{}, s, nil, style.PositionFirst)
	ids, err := Render(ctx)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("expected the group to collapse to nothing, got %d edges", len(ids))
	}
}

func TestRender_MacroRecursionDetected(t *testing.T) {
	s := &style.Style{
		CitationLayout: []style.Element{
			{Kind: style.ElemText, Text: &style.TextElement{Source: style.TextSource{Kind: style.TextMacro, Macro: "a"}}},
		},
		Macros: style.Macros{
			"a": {{Kind: style.ElemText, Text: &style.TextElement{Source: style.TextSource{Kind: style.TextMacro, Macro: "a"}}}},
		},
	}
	ctx := newCtx(&disambtoken.Reference{}, s, nil, style.PositionFirst)
	if _, err := Render(ctx); err == nil {
		t.Error("expected a macro recursion error")
	}
}

func TestRender_BodyDate(t *testing.T) {
	s := &style.Style{
		CitationLayout: []style.Element{
			{Kind: style.ElemDate, Date: &style.BodyDate{
				Variable: "issued",
				Parts: []style.DatePart{
					{Kind: style.DatePartYear},
					{Kind: style.DatePartMonth},
				},
			}},
		},
	}
	ref := &disambtoken.Reference{
		Date: map[string]disambtoken.DateOrRange{
			"issued": {Single: &disambtoken.DateValue{Year: 2020, Month: 3}},
		},
	}
	ctx := newCtx(ref, s, nil, style.PositionFirst)
	ids, err := Render(ctx)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(ids) != 1 {
		t.Fatalf("expected 1 Output edge for the rendered date, got %d", len(ids))
	}
	data, _ := ctx.Interner.Lookup(ids[0])
	if data.Text != "20203" {
		t.Errorf("got date text %q", data.Text)
	}
}
