package refir

import (
	"github.com/coregx/csldisamb/automaton/nfa"
	"github.com/coregx/csldisamb/style"
)

// BuildNfa is the top-level entry point for component D: it iterates
// style.GetFreeConds(), and for each FreeCond assignment constructs a
// RefContext reflecting that assignment's runtime-facing constraints
// (position, locator type), renders one
// RefIR, and appends the flattened, interned result to an Nfa via
// AddCompleteSequence. Per spec.md §4.D this is exactly "the builder
// iterates over get_free_conds(style).cloned() and, for each FreeCond
// assignment, produces one RefIR then flattens it... appended to the NFA
// via add_complete_sequence".
func BuildNfa(base RefContext) (*nfa.Nfa, error) {
	sets, err := base.Style.GetFreeConds()
	if err != nil {
		return nil, err
	}

	n := nfa.New()
	var buildErr error
	sets.Each(func(set style.FreeCondSet) {
		if buildErr != nil {
			return
		}
		ctx := applyAssignment(base, set)
		ids, err := Render(ctx)
		if err != nil {
			buildErr = err
			return
		}
		n.AddCompleteSequence(ids)
	})
	if buildErr != nil {
		return nil, buildErr
	}
	return n, nil
}

// applyAssignment specializes base's runtime-facing fields (position,
// locator type) to match one FreeCondSet's constrained conjuncts, leaving
// everything else (in particular the actual reference field values) as
// base provides it. Reference-intrinsic VariablePresent conjuncts are not
// re-applied here: a given reference's fields are fixed facts, not
// something a single build run varies. Only the page, paragraph, section
// and chapter locator types are specialized; a LocatorTypeEq conjunct on
// any other type leaves the locator as base provides it.
func applyAssignment(base RefContext, set style.FreeCondSet) RefContext {
	ctx := base
	first, firstOK := set.Get(style.Cond{Kind: style.PositionIsFirst})
	sub, subOK := set.Get(style.Cond{Kind: style.PositionIsSubsequent})
	switch {
	case firstOK && first:
		ctx.Position = style.PositionFirst
	case subOK && sub:
		ctx.Position = style.PositionSubsequent
	case firstOK && subOK:
		ctx.Position = style.PositionIbid // neither first nor subsequent
	case firstOK && ctx.Position == style.PositionFirst:
		ctx.Position = style.PositionSubsequent
	case subOK && ctx.Position == style.PositionSubsequent:
		ctx.Position = style.PositionFirst
	}
	for _, loc := range []string{"page", "paragraph", "section", "chapter"} {
		if v, ok := set.Get(style.Cond{Kind: style.LocatorTypeEq, Var: loc}); ok {
			if v {
				l := loc
				ctx.LocatorType = &l
			} else if ctx.LocatorType != nil && *ctx.LocatorType == loc {
				ctx.LocatorType = nil
			}
		}
	}
	return ctx
}
