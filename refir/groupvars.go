package refir

// GroupVars tracks, while rendering one reference under a fixed
// FreeCondSet assignment, whether a Group's variable-bearing children
// actually produced output — the information a Group needs to decide
// whether it should collapse to nothing (standard CSL "empty variable
// suppresses the surrounding group" semantics).
//
// Four states rather than a plain bool: OnlyEmpty and MissingCond both mean
// "rendered nothing" but must combine differently with a sibling that did
// render (OnlyEmpty yields to a rendering sibling; MissingCond kills the
// whole group regardless of siblings, since it signals a required
// conditional variable was absent, not merely an optional one).
type GroupVars uint8

const (
	// NoneRendered is the starting state: nothing has been observed yet.
	NoneRendered GroupVars = iota
	// OnlyEmpty means every variable-bearing child seen so far rendered
	// empty, but none signaled a hard requirement failure.
	OnlyEmpty
	// DidRender means at least one variable-bearing child produced output.
	DidRender
	// MissingCond means a child required a conditional variable that was
	// absent; this always forces the enclosing Group to collapse.
	MissingCond
)

// RenderedIf is the GroupVars a leaf element contributes: DidRender if it
// produced output, OnlyEmpty otherwise.
func RenderedIf(rendered bool) GroupVars {
	if rendered {
		return DidRender
	}
	return OnlyEmpty
}

// Neighbor combines two siblings' GroupVars, left to right, the way a
// Group accumulates its children's contributions before deciding whether
// to collapse.
func (g GroupVars) Neighbor(other GroupVars) GroupVars {
	switch {
	case g == MissingCond || other == MissingCond:
		return MissingCond
	case g == DidRender || other == DidRender:
		return DidRender
	case g == OnlyEmpty || other == OnlyEmpty:
		return OnlyEmpty
	default:
		return NoneRendered
	}
}

// ShouldCollapse reports whether a Group with this accumulated GroupVars
// should render as empty: a pure-text group (NoneRendered, no
// variable-bearing children at all) never collapses on its own account;
// only OnlyEmpty (every variable child came back empty) or MissingCond
// (a required variable was absent) do.
func (g GroupVars) ShouldCollapse() bool {
	return g == OnlyEmpty || g == MissingCond
}
