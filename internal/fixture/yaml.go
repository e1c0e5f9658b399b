package fixture

import (
	"github.com/coregx/csldisamb/disambtoken"
	"github.com/coregx/csldisamb/style"
)

// The yaml* types below mirror style.Style/style.Element/style.Cond closely
// enough that toX is a near-mechanical walk, but use plain strings for enum
// fields so testdata/*.yaml stays readable without a CSL-kind lookup table
// in every reader's head.

type yamlScenario struct {
	Name       string            `yaml:"name"`
	Style      yamlStyle         `yaml:"style"`
	References []yamlReference   `yaml:"references"`
	Cases      []yamlCase        `yaml:"cases"`
	Macros     map[string]yamlElements `yaml:"macros,omitempty"`
}

type yamlStyle struct {
	Citation yamlElements `yaml:"citation"`
}

type yamlElements []yamlElement

type yamlElement struct {
	Text   *yamlText   `yaml:"text,omitempty"`
	Label  *yamlLabel  `yaml:"label,omitempty"`
	Number *yamlNumber `yaml:"number,omitempty"`
	Date   *yamlDate   `yaml:"date,omitempty"`
	Group  *yamlGroup  `yaml:"group,omitempty"`
	Names  *yamlNames  `yaml:"names,omitempty"`
	Choose *yamlChoose `yaml:"choose,omitempty"`
}

type yamlText struct {
	Variable string `yaml:"variable,omitempty"`
	Value    string `yaml:"value,omitempty"`
	Term     string `yaml:"term,omitempty"`
	Macro    string `yaml:"macro,omitempty"`
	Plural   bool   `yaml:"plural,omitempty"`
}

type yamlLabel struct {
	Variable string `yaml:"variable"`
	Plural   bool   `yaml:"plural,omitempty"`
}

type yamlNumber struct {
	Variable string `yaml:"variable"`
}

type yamlDate struct {
	Variable string   `yaml:"variable"`
	Parts    []string `yaml:"parts"` // "year", "month", "day"
}

type yamlGroup struct {
	Delimiter string       `yaml:"delimiter,omitempty"`
	Elements  yamlElements `yaml:"elements"`
}

type yamlNames struct {
	Variables  []string     `yaml:"variables"`
	Substitute yamlElements `yaml:"substitute,omitempty"`
}

type yamlChoose struct {
	If   []yamlBranch `yaml:"if"`
	Else yamlElements `yaml:"else,omitempty"`
}

type yamlBranch struct {
	Match    string       `yaml:"match,omitempty"` // "all" (default), "any", "none"
	Conds    []yamlCond   `yaml:"conds"`
	Elements yamlElements `yaml:"elements"`
}

type yamlCond struct {
	Kind string `yaml:"kind"` // variable-present, position-first, position-subsequent, locator-type, disambiguate, bibliography
	Var  string `yaml:"var,omitempty"`
}

type yamlReference struct {
	ID       string            `yaml:"id"`
	Ordinary map[string]string `yaml:"ordinary,omitempty"`
	Number   map[string]string `yaml:"number,omitempty"`
}

type yamlCase struct {
	Ref      string   `yaml:"ref"`
	Position string   `yaml:"position,omitempty"` // "first" (default), "subsequent", "ibid"
	Locator  string   `yaml:"locator,omitempty"`
	Accepts  []string `yaml:"accepts,omitempty"`
	Rejects  []string `yaml:"rejects,omitempty"`
}

func (doc yamlScenario) toScenario() Scenario {
	macros := make(style.Macros, len(doc.Macros))
	for name, els := range doc.Macros {
		macros[name] = els.toElements()
	}
	s := &style.Style{
		CitationLayout: doc.Style.Citation.toElements(),
		Macros:         macros,
	}

	refs := make(map[string]*disambtoken.Reference, len(doc.References))
	for _, r := range doc.References {
		refs[r.ID] = &disambtoken.Reference{
			ID:       r.ID,
			Ordinary: r.Ordinary,
			Number:   r.Number,
		}
	}

	cases := make([]Case, len(doc.Cases))
	for i, c := range doc.Cases {
		cases[i] = Case{
			RefID:    c.Ref,
			Position: toPosition(c.Position),
			Locator:  c.Locator,
			Accepts:  c.Accepts,
			Rejects:  c.Rejects,
		}
	}

	return Scenario{Name: doc.Name, Style: s, References: refs, Cases: cases}
}

func (els yamlElements) toElements() []style.Element {
	out := make([]style.Element, len(els))
	for i, e := range els {
		out[i] = e.toElement()
	}
	return out
}

func (e yamlElement) toElement() style.Element {
	switch {
	case e.Text != nil:
		return style.Element{Kind: style.ElemText, Text: e.Text.toTextElement()}
	case e.Label != nil:
		return style.Element{Kind: style.ElemLabel, Label: &style.LabelElement{
			Variable: e.Label.Variable, Plural: e.Label.Plural,
		}}
	case e.Number != nil:
		return style.Element{Kind: style.ElemNumber, Number: &style.NumberElement{
			Variable: e.Number.Variable,
		}}
	case e.Date != nil:
		return style.Element{Kind: style.ElemDate, Date: &style.BodyDate{
			Variable: e.Date.Variable, Parts: toDateParts(e.Date.Parts),
		}}
	case e.Group != nil:
		return style.Element{Kind: style.ElemGroup, Group: &style.Group{
			Delimiter: e.Group.Delimiter, Elements: e.Group.Elements.toElements(),
		}}
	case e.Names != nil:
		return style.Element{Kind: style.ElemNames, Names: &style.Names{
			Variables: e.Names.Variables, Substitute: e.Names.Substitute.toElements(),
		}}
	case e.Choose != nil:
		return style.Element{Kind: style.ElemChoose, Choose: e.Choose.toChoose()}
	default:
		// An empty element renders nothing; treated as a zero-value text
		// literal rather than a parse error, so a scenario can stub a
		// branch out without a throwaway "" value.
		return style.Element{Kind: style.ElemText, Text: &style.TextElement{
			Source: style.TextSource{Kind: style.TextValue, Value: ""},
		}}
	}
}

func (t *yamlText) toTextElement() *style.TextElement {
	src := style.TextSource{Plural: t.Plural}
	switch {
	case t.Macro != "":
		src.Kind, src.Macro = style.TextMacro, t.Macro
	case t.Term != "":
		src.Kind, src.Term = style.TextTerm, t.Term
	case t.Variable != "":
		src.Kind, src.Variable = style.TextVariable, t.Variable
	default:
		src.Kind, src.Value = style.TextValue, t.Value
	}
	return &style.TextElement{Source: src}
}

func (c *yamlChoose) toChoose() *style.Choose {
	branches := make([]style.IfThen, len(c.If))
	for i, b := range c.If {
		conds := make([]style.Cond, len(b.Conds))
		for j, cd := range b.Conds {
			conds[j] = style.Cond{Kind: toCondKind(cd.Kind), Var: cd.Var}
		}
		branches[i] = style.IfThen{
			Match:    toMatchKind(b.Match),
			Conds:    conds,
			Elements: b.Elements.toElements(),
		}
	}
	return &style.Choose{Branches: branches, Else: c.Else.toElements()}
}

func toDateParts(parts []string) []style.DatePart {
	out := make([]style.DatePart, len(parts))
	for i, p := range parts {
		switch p {
		case "month":
			out[i] = style.DatePart{Kind: style.DatePartMonth}
		case "day":
			out[i] = style.DatePart{Kind: style.DatePartDay}
		default:
			out[i] = style.DatePart{Kind: style.DatePartYear}
		}
	}
	return out
}

func toCondKind(k string) style.CondKind {
	switch k {
	case "position-first":
		return style.PositionIsFirst
	case "position-subsequent":
		return style.PositionIsSubsequent
	case "locator-type":
		return style.LocatorTypeEq
	case "disambiguate":
		return style.Disambiguate
	case "bibliography":
		return style.Bibliography
	default:
		return style.VariablePresent
	}
}

func toMatchKind(m string) style.MatchKind {
	switch m {
	case "any":
		return style.MatchAny
	case "none":
		return style.MatchNone
	default:
		return style.MatchAll
	}
}

func toPosition(p string) style.Position {
	switch p {
	case "subsequent":
		return style.PositionSubsequent
	case "ibid":
		return style.PositionIbid
	default:
		return style.PositionFirst
	}
}
