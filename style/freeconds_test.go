package style

import "testing"

func textVar(name string) Element {
	return Element{Kind: ElemText, Text: &TextElement{Source: TextSource{Kind: TextVariable, Variable: name}}}
}

func TestGetFreeConds_IfLocator(t *testing.T) {
	s := &Style{
		CitationLayout: []Element{
			{Kind: ElemChoose, Choose: &Choose{
				Branches: []IfThen{
					{Conds: []Cond{{Kind: LocatorTypeEq, Var: "page"}}, Elements: []Element{textVar("title")}},
				},
				Else: []Element{textVar("title")},
			}},
		},
	}
	sets, err := s.GetFreeConds()
	if err != nil {
		t.Fatalf("GetFreeConds: %v", err)
	}
	if sets.Len() != 2 {
		t.Fatalf("expected 2 branches (locator true/false), got %d", sets.Len())
	}

	sawTrue, sawFalse := false, false
	sets.Each(func(set FreeCondSet) {
		v, constrained := set.Get(Cond{Kind: LocatorTypeEq, Var: "page"})
		if !constrained {
			t.Errorf("branch %v doesn't constrain locator-type", set)
			return
		}
		if v {
			sawTrue = true
		} else {
			sawFalse = true
		}
	})
	if !sawTrue || !sawFalse {
		t.Error("expected both locator=true and locator=false branches")
	}
}

func TestMultIdentity_IsIdentityForCrossProduct(t *testing.T) {
	base := variableFreeConds("title")
	combined := CrossProduct(base, MultIdentity())
	if combined.Len() != base.Len() {
		t.Errorf("CrossProduct with MultIdentity changed branch count: %d vs %d", combined.Len(), base.Len())
	}
}

func TestScalarMultiplyCond_DropsContradictions(t *testing.T) {
	c := Cond{Kind: VariablePresent, Var: "title"}
	once := ScalarMultiplyCond(MultIdentity(), c, true)
	contradicted := ScalarMultiplyCond(once, c, false)
	if contradicted.Len() != 0 {
		t.Errorf("expected contradictory assignment to drop the branch, got %d branches", contradicted.Len())
	}
}

func TestMacroRecursion_Detected(t *testing.T) {
	s := &Style{
		CitationLayout: []Element{
			{Kind: ElemText, Text: &TextElement{Source: TextSource{Kind: TextMacro, Macro: "cyclic"}}},
		},
		Macros: Macros{
			"cyclic": {
				{Kind: ElemText, Text: &TextElement{Source: TextSource{Kind: TextMacro, Macro: "cyclic"}}},
			},
		},
	}
	if _, err := s.GetFreeConds(); err == nil {
		t.Error("expected a macro recursion error")
	}
}
