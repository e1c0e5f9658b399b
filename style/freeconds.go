package style

import "github.com/coregx/csldisamb/disamberr"

// Macros maps a macro name to its body, the table a TextMacro source
// resolves against. Style trees carry one of these so GetFreeConds can
// expand macro bodies with cross_product the same way ref_ir does.
type Macros map[string][]Element

// condCompiler threads the macro table, a per-call visited set, and the
// accumulated structural problems through GetFreeConds. A macro problem
// (recursion, unknown name) doesn't abort the whole compile: it's recorded
// and that subtree contributes no constraint, so a single bad macro
// reference doesn't hide other problems elsewhere in the same style.
type condCompiler struct {
	macros  Macros
	visited map[string]bool
	errs    []*disamberr.StyleCompileError
}

func (cc *condCompiler) record(err *disamberr.StyleCompileError) {
	cc.errs = append(cc.errs, err)
}

// GetFreeConds enumerates every distinct branch of conditionals that could
// fire under any reference, for the style's citation layout as a whole.
// Grounded on original_source's Disambiguation<Html> impl for Style:
// get_free_conds is the cross product over the layout's top-level elements.
//
// Every structural problem found during the walk (an unknown or
// recursively-defined macro) is collected rather than stopping at the
// first one, then aggregated via disamberr.NewStyleErrors: a style compile
// reports everything wrong with it in one pass, never a partial result.
func (s *Style) GetFreeConds() (FreeCondSets, error) {
	cc := &condCompiler{macros: s.Macros, visited: map[string]bool{}}
	sets := cc.elements(s.CitationLayout)
	return sets, disamberr.NewStyleErrors(cc.errs)
}

func (cc *condCompiler) group(g *Group) FreeCondSets { return cc.elements(g.Elements) }

// bodyDate is mult_identity: a date element's own presence is tracked
// through GroupVars at render time, not through FreeCond branching. A
// Choose guard that tests a date variable still branches through that
// guard.
func (cc *condCompiler) bodyDate(_ *BodyDate) FreeCondSets { return MultIdentity() }

func (cc *condCompiler) names(n *Names) FreeCondSets {
	if len(n.Substitute) > 0 {
		return cc.elements(n.Substitute)
	}
	return MultIdentity()
}

// choose is the union of each branch's FreeCondSets, each conjoined with
// its own guard and with the negation of every earlier branch's guard. The
// else branch (or, with no else, the render-nothing fall-through) is
// conjoined with the negation of all guards. Each guard is taken as the
// conjunction of its Conds, whatever the branch's Match kind.
func (cc *condCompiler) choose(c *Choose) FreeCondSets {
	acc := Empty()
	// rest holds the assignments under which no earlier guard held.
	rest := MultIdentity()
	for _, branch := range c.Branches {
		bs := CrossProduct(cc.elements(branch.Elements), rest)
		negated := Empty()
		for _, cond := range branch.Conds {
			bs = ScalarMultiplyCond(bs, cond, true)
			negated = Union(negated, ScalarMultiplyCond(rest, cond, false))
		}
		acc = Union(acc, bs)
		rest = negated
	}
	return Union(acc, CrossProduct(cc.elements(c.Else), rest))
}

func (cc *condCompiler) element(e *Element) FreeCondSets {
	switch e.Kind {
	case ElemGroup:
		return cc.group(e.Group)
	case ElemNames:
		return cc.names(e.Names)
	case ElemDate:
		return cc.bodyDate(e.Date)
	case ElemChoose:
		return cc.choose(e.Choose)
	case ElemNumber:
		return variableFreeConds(e.Number.Variable)
	case ElemLabel:
		return variableFreeConds(e.Label.Variable)
	case ElemText:
		return cc.text(e.Text.Source)
	default:
		return MultIdentity()
	}
}

func (cc *condCompiler) text(src TextSource) FreeCondSets {
	switch src.Kind {
	case TextMacro:
		if cc.visited[src.Macro] {
			cc.record(&disamberr.StyleCompileError{
				Kind: disamberr.MacroRecursion,
				Path: "macro/" + src.Macro,
			})
			return MultIdentity()
		}
		body, ok := cc.macros[src.Macro]
		if !ok {
			cc.record(&disamberr.StyleCompileError{
				Kind: disamberr.UnknownMacro,
				Path: "macro/" + src.Macro,
			})
			return MultIdentity()
		}
		cc.visited[src.Macro] = true
		defer delete(cc.visited, src.Macro)
		return cc.elements(body)
	case TextVariable:
		return variableFreeConds(src.Variable)
	default: // TextValue, TextTerm
		return MultIdentity()
	}
}

func variableFreeConds(v string) FreeCondSets {
	if !independentVariable(v) {
		return MultIdentity()
	}
	return ScalarMultiplyCond(MultIdentity(), Cond{Kind: VariablePresent, Var: v}, true)
}

func (cc *condCompiler) elements(els []Element) FreeCondSets {
	sets := make([]FreeCondSets, len(els))
	for i := range els {
		sets[i] = cc.element(&els[i])
	}
	return CrossProductAll(sets)
}
