// This file implements ref_ir: rendering one style subtree, under one fixed
// FreeCond assignment supplied indirectly through RefContext, into a
// RefIR intermediate form. Grounded on original_source's
// Disambiguation<Html>::ref_ir impls for Style/Group/Element, generalized
// to cover every Element kind (the original left BodyDate, Names, and
// Number as unimplemented!() placeholders; this module implements them).
package refir

import (
	"strconv"

	"github.com/coregx/csldisamb/disambtoken"
	"github.com/coregx/csldisamb/edge"
	"github.com/coregx/csldisamb/style"
)

// RefContext carries everything ref_ir needs about the reference and the
// runtime disambiguation state it's being evaluated under, standing in for
// the original's `&RefContext<Html>` plus `&impl IrDatabase`.
type RefContext struct {
	Reference   *disambtoken.Reference
	Position    style.Position
	LocatorType *string // non-nil iff the cite supplies a locator
	Format      Formatter
	Locale      Locale
	Style       *style.Style // for macro lookup
	Interner    *edge.Interner
}

type renderState struct {
	ctx     RefContext
	visited map[string]bool
}

// Render renders the style's full citation layout for one reference under
// one fixed conditional assignment, returning the interned edge sequence
// ready for nfa.Nfa.AddCompleteSequence.
func Render(ctx RefContext) ([]edge.ID, error) {
	rs := &renderState{ctx: ctx, visited: map[string]bool{}}
	r, _, err := rs.elements(ctx.Style.CitationLayout, "", style.Formatting{})
	if err != nil {
		return nil, err
	}
	data := Flatten(r)
	data = KeepFirstYearSuffix(data)
	ids := make([]edge.ID, len(data))
	for i, d := range data {
		ids[i] = ctx.Interner.Intern(d)
	}
	return ids, nil
}

func (rs *renderState) elements(els []style.Element, delim string, stack style.Formatting) (RefIR, GroupVars, error) {
	children := make([]RefIR, len(els))
	gv := NoneRendered
	for i := range els {
		r, childGv, err := rs.element(&els[i], stack)
		if err != nil {
			return RefIR{}, NoneRendered, err
		}
		children[i] = r
		gv = gv.Neighbor(childGv)
	}
	return Seq(children, delim, "", ""), gv, nil
}

func (rs *renderState) element(e *style.Element, stack style.Formatting) (RefIR, GroupVars, error) {
	switch e.Kind {
	case style.ElemGroup:
		return rs.group(e.Group, stack)
	case style.ElemNames:
		return rs.names(e.Names, stack)
	case style.ElemDate:
		return rs.bodyDate(e.Date, stack)
	case style.ElemChoose:
		return rs.choose(e.Choose, stack)
	case style.ElemNumber:
		return rs.number(e.Number, stack)
	case style.ElemLabel:
		return rs.label(e.Label, stack)
	case style.ElemText:
		return rs.text(e.Text, stack)
	default:
		return Edge(nil), OnlyEmpty, nil
	}
}

func (rs *renderState) group(g *style.Group, stack style.Formatting) (RefIR, GroupVars, error) {
	childStack := stack.OverrideWith(g.Formatting)
	r, gv, err := rs.elements(g.Elements, g.Delimiter, childStack)
	if err != nil {
		return RefIR{}, NoneRendered, err
	}
	if gv.ShouldCollapse() {
		return Edge(nil), gv, nil
	}
	return r, gv, nil
}

// bodyDate walks date-part children independently, tracking GroupVars per
// part and combining them, rather than leaving the whole date
// unimplemented: an empty date variable collapses like any other Group.
func (rs *renderState) bodyDate(d *style.BodyDate, stack style.Formatting) (RefIR, GroupVars, error) {
	dateVal, ok := rs.ctx.Reference.Date[d.Variable]
	if !ok {
		return Edge(nil), OnlyEmpty, nil
	}
	single := resolveSingleDate(dateVal)
	if single == nil {
		return Edge(nil), OnlyEmpty, nil
	}

	gv := NoneRendered
	var text string
	for _, part := range d.Parts {
		val, rendered := renderDatePart(part, *single)
		gv = gv.Neighbor(RenderedIf(rendered))
		text += val
	}
	if gv.ShouldCollapse() || text == "" {
		return Edge(nil), OnlyEmpty, nil
	}
	build := rs.ctx.Format.Ingest(text, nil)
	build = rs.ctx.Format.WithFormat(build, stack.OverrideWith(d.Formatting))
	out := rs.ctx.Format.OutputInContext(build, stack)
	data := edge.Out(out)
	return Edge(&data), DidRender, nil
}

func resolveSingleDate(d disambtoken.DateOrRange) *disambtoken.DateValue {
	switch {
	case d.Single != nil:
		return d.Single
	case d.Range[0] != nil:
		return d.Range[0]
	default:
		return nil
	}
}

func renderDatePart(part style.DatePart, d disambtoken.DateValue) (string, bool) {
	switch part.Kind {
	case style.DatePartYear:
		if d.Year == 0 {
			return "", false
		}
		return strconv.Itoa(d.Year), true
	case style.DatePartMonth:
		if d.Month == 0 {
			return "", false
		}
		return strconv.Itoa(d.Month), true
	case style.DatePartDay:
		if d.Day == 0 {
			return "", false
		}
		return strconv.Itoa(d.Day), true
	default:
		return "", false
	}
}

// names renders the reference's name variables, falling back to the
// Substitute block when every primary variable is empty. The original left
// this unimplemented; this gives it the simplest faithful behavior (join
// family and given names with a comma) since detailed name formatting is an
// out-of-scope output-formatter concern.
func (rs *renderState) names(n *style.Names, stack style.Formatting) (RefIR, GroupVars, error) {
	var parts []string
	for _, v := range n.Variables {
		for _, name := range rs.ctx.Reference.Name[v] {
			parts = append(parts, formatName(name))
		}
	}
	if len(parts) == 0 {
		if len(n.Substitute) > 0 {
			return rs.elements(n.Substitute, "", stack)
		}
		return Edge(nil), OnlyEmpty, nil
	}
	joined := ""
	for i, p := range parts {
		if i > 0 {
			joined += "; "
		}
		joined += p
	}
	build := rs.ctx.Format.Ingest(joined, nil)
	build = rs.ctx.Format.WithFormat(build, stack.OverrideWith(n.Formatting))
	out := rs.ctx.Format.OutputInContext(build, stack)
	data := edge.Out(out)
	return Edge(&data), DidRender, nil
}

func formatName(n disambtoken.Name) string {
	if n.Literal != "" {
		return n.Literal
	}
	if n.Family == "" && n.Given == "" {
		return ""
	}
	if n.Given == "" {
		return n.Family
	}
	return n.Family + ", " + n.Given
}

func (rs *renderState) choose(c *style.Choose, stack style.Formatting) (RefIR, GroupVars, error) {
	for _, branch := range c.Branches {
		if rs.matches(branch) {
			return rs.elements(branch.Elements, "", stack)
		}
	}
	if len(c.Else) > 0 {
		return rs.elements(c.Else, "", stack)
	}
	return Edge(nil), OnlyEmpty, nil
}

func (rs *renderState) matches(branch style.IfThen) bool {
	if len(branch.Conds) == 0 {
		return true
	}
	results := make([]bool, len(branch.Conds))
	for i, c := range branch.Conds {
		results[i] = rs.evalCond(c)
	}
	switch branch.Match {
	case style.MatchAny:
		for _, r := range results {
			if r {
				return true
			}
		}
		return false
	case style.MatchNone:
		for _, r := range results {
			if r {
				return false
			}
		}
		return true
	default: // MatchAll
		for _, r := range results {
			if !r {
				return false
			}
		}
		return true
	}
}

func (rs *renderState) evalCond(c style.Cond) bool {
	switch c.Kind {
	case style.VariablePresent:
		return rs.variablePresent(c.Var)
	case style.PositionIsFirst:
		return rs.ctx.Position == style.PositionFirst
	case style.PositionIsSubsequent:
		return rs.ctx.Position == style.PositionSubsequent
	case style.LocatorTypeEq:
		return rs.ctx.LocatorType != nil && *rs.ctx.LocatorType == c.Var
	default:
		return false
	}
}

func (rs *renderState) variablePresent(name string) bool {
	ref := rs.ctx.Reference
	if v, ok := ref.Ordinary[name]; ok && v != "" {
		return true
	}
	if v, ok := ref.Number[name]; ok && v != "" {
		return true
	}
	if v, ok := ref.Name[name]; ok && len(v) > 0 {
		return true
	}
	if _, ok := ref.Date[name]; ok {
		return true
	}
	return false
}

func (rs *renderState) number(n *style.NumberElement, stack style.Formatting) (RefIR, GroupVars, error) {
	if special, gv, ok := rs.specialVariableEdge(n.Variable); ok {
		return Edge(special), gv, nil
	}
	val, ok := rs.ctx.Reference.Number[n.Variable]
	if !ok || val == "" {
		return Edge(nil), OnlyEmpty, nil
	}
	build := rs.ctx.Format.Ingest(val, nil)
	build = rs.ctx.Format.WithFormat(build, stack.OverrideWith(n.Formatting))
	out := rs.ctx.Format.OutputInContext(build, stack)
	data := edge.Out(out)
	return Edge(&data), DidRender, nil
}

func (rs *renderState) label(l *style.LabelElement, _ style.Formatting) (RefIR, GroupVars, error) {
	if l.Variable == "locator" && rs.ctx.LocatorType != nil {
		data := edge.Bare(edge.LocatorLabel)
		return Edge(&data), DidRender, nil
	}
	if l.Variable == "first-reference-note-number" && rs.ctx.Position == style.PositionSubsequent {
		data := edge.Bare(edge.FrnnLabel)
		return Edge(&data), DidRender, nil
	}
	if l.Variable == "citation-number" {
		data := edge.Bare(edge.CitationNumberLabel)
		return Edge(&data), DidRender, nil
	}
	val, ok := rs.ctx.Reference.Number[l.Variable]
	if !ok || val == "" {
		return Edge(nil), OnlyEmpty, nil
	}
	return Edge(nil), NoneRendered, nil
}

func (rs *renderState) text(t *style.TextElement, stack style.Formatting) (RefIR, GroupVars, error) {
	childStack := stack.OverrideWith(t.Formatting)
	switch t.Source.Kind {
	case style.TextVariable:
		if special, gv, ok := rs.specialVariableEdge(t.Source.Variable); ok {
			return Edge(special), gv, nil
		}
		val, ok := rs.ctx.Reference.Ordinary[t.Source.Variable]
		if !ok {
			val, ok = rs.ctx.Reference.Number[t.Source.Variable]
		}
		if !ok || val == "" {
			return Edge(nil), OnlyEmpty, nil
		}
		build := rs.ctx.Format.Ingest(val, nil)
		build = rs.ctx.Format.WithFormat(build, childStack)
		out := rs.ctx.Format.OutputInContext(build, stack)
		data := edge.Out(out)
		return Edge(&data), DidRender, nil

	case style.TextValue:
		build := rs.ctx.Format.Ingest(t.Source.Value, nil)
		build = rs.ctx.Format.WithFormat(build, childStack)
		out := rs.ctx.Format.OutputInContext(build, stack)
		data := edge.Out(out)
		return Edge(&data), NoneRendered, nil

	case style.TextTerm:
		term, ok := rs.ctx.Locale.GetTextTerm(t.Source.Term, t.Source.Plural)
		if !ok {
			return Edge(nil), NoneRendered, nil
		}
		build := rs.ctx.Format.Ingest(term, nil)
		build = rs.ctx.Format.WithFormat(build, childStack)
		out := rs.ctx.Format.OutputInContext(build, stack)
		data := edge.Out(out)
		return Edge(&data), NoneRendered, nil

	case style.TextMacro:
		return rs.macro(t.Source.Macro, stack)

	default:
		return Edge(nil), OnlyEmpty, nil
	}
}

func (rs *renderState) macro(name string, stack style.Formatting) (RefIR, GroupVars, error) {
	if rs.visited[name] {
		return RefIR{}, NoneRendered, macroRecursionErr(name)
	}
	body, ok := rs.ctx.Style.Macros[name]
	if !ok {
		return RefIR{}, NoneRendered, unknownMacroErr(name)
	}
	rs.visited[name] = true
	defer delete(rs.visited, name)
	return rs.elements(body, "", stack)
}

// specialVariableEdge handles the variables whose rendering is not a plain
// reference-field lookup: the runtime-supplied locator, the
// disambiguating year-suffix placeholder, and the running citation number.
func (rs *renderState) specialVariableEdge(variable string) (*edge.Data, GroupVars, bool) {
	switch variable {
	case "locator":
		if rs.ctx.LocatorType != nil {
			data := edge.Bare(edge.Locator)
			return &data, DidRender, true
		}
		return nil, OnlyEmpty, true
	case "year-suffix":
		data := edge.Bare(edge.YearSuffixExplicit)
		return &data, DidRender, true
	case "citation-number":
		data := edge.Bare(edge.CitationNumber)
		return &data, DidRender, true
	case "first-reference-note-number":
		if rs.ctx.Position == style.PositionSubsequent {
			data := edge.Bare(edge.Frnn)
			return &data, DidRender, true
		}
		return nil, OnlyEmpty, true
	default:
		return nil, NoneRendered, false
	}
}
