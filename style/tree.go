package style

// Position is the cite's position relative to others citing the same
// reference, as supplied by the disambiguation driver's RefContext.
type Position uint8

const (
	PositionFirst Position = iota
	PositionSubsequent
	PositionIbid
)

// Formatting is a stack-mergeable set of text decorations. A child's
// non-zero-value fields override the parent's when the two are merged by
// OverrideWith; zero-value fields mean "inherit".
type Formatting struct {
	Bold      bool
	Italic    bool
	Underline bool
	FontSize  string // e.g. "normal", "small-caps"; empty means inherit
}

// OverrideWith merges child non-default fields over f (the parent), per
// the stack semantics spec.md describes for ref_ir.
func (f Formatting) OverrideWith(child Formatting) Formatting {
	out := f
	if child.Bold {
		out.Bold = true
	}
	if child.Italic {
		out.Italic = true
	}
	if child.Underline {
		out.Underline = true
	}
	if child.FontSize != "" {
		out.FontSize = child.FontSize
	}
	return out
}

// Style is the root of a compiled rendering tree: the sequence of elements
// a citation's layout renders, in order.
type Style struct {
	CitationLayout []Element
	Macros         Macros
}

// Group renders its children in sequence with an optional delimiter,
// collapsing to nothing if every "variable-bearing" child failed to render
// (see refir.GroupVars).
type Group struct {
	Delimiter  string
	Formatting Formatting
	Elements   []Element
}

// Names renders one or more name variables (e.g. "author", "editor"),
// falling back to a Substitute block when the primary variables are empty.
type Names struct {
	Variables   []string
	Substitute  []Element
	Formatting  Formatting
}

// BodyDate renders a date variable, broken into independently tracked
// date-part children (year, month, day).
type BodyDate struct {
	Variable   string
	Parts      []DatePart
	Formatting Formatting
}

// DatePartKind identifies which component of a date a DatePart renders.
type DatePartKind uint8

const (
	DatePartYear DatePartKind = iota
	DatePartMonth
	DatePartDay
)

// DatePart renders one component of a BodyDate's variable.
type DatePart struct {
	Kind DatePartKind
	Form string // e.g. "numeric", "long" for month names
}

// Choose is an if/else-if/else chain; exactly one branch (the first whose
// guard matches) renders, or none if no branch matches and there is no
// final else.
type Choose struct {
	Branches []IfThen
	Else     []Element // nil if the style has no <else>
}

// IfThen is one branch of a Choose: a guard plus the elements to render
// when it matches.
type IfThen struct {
	Match    MatchKind
	Conds    []Cond
	Elements []Element
}

// MatchKind controls how multiple Conds in one IfThen combine.
type MatchKind uint8

const (
	MatchAll MatchKind = iota
	MatchAny
	MatchNone
)

// TextSourceKind identifies which kind of text source a Text element reads
// from.
type TextSourceKind uint8

const (
	TextVariable TextSourceKind = iota
	TextValue
	TextTerm
	TextMacro
)

// TextSource is a tagged variant: exactly one of Variable/Value/Term/Macro
// is meaningful, selected by Kind.
type TextSource struct {
	Kind     TextSourceKind
	Variable string // CSL variable name, for TextVariable
	Value    string // literal value, for TextValue
	Term     string // term selector, for TextTerm
	Plural   bool
	Macro    string // macro name, for TextMacro
}

// TextElement renders one piece of literal or variable-derived text.
type TextElement struct {
	Source     TextSource
	Formatting Formatting
}

// LabelElement renders the label accompanying a number variable (e.g.
// "p." before a page locator).
type LabelElement struct {
	Variable   string
	Plural     bool
	Formatting Formatting
}

// NumberElement renders a numeric variable in its numeric form.
type NumberElement struct {
	Variable   string
	Formatting Formatting
}

// ElementKind identifies which variant of Element a value holds.
type ElementKind uint8

const (
	ElemText ElementKind = iota
	ElemLabel
	ElemNumber
	ElemDate
	ElemGroup
	ElemNames
	ElemChoose
)

// Element is a tagged variant over the seven node types a style's
// rendering tree can contain, dispatched by Kind rather than a type
// hierarchy: style trees are data, not behavior, so a flat struct with one
// populated pointer per Kind reads the branches directly.
type Element struct {
	Kind   ElementKind
	Text   *TextElement
	Label  *LabelElement
	Number *NumberElement
	Date   *BodyDate
	Group  *Group
	Names  *Names
	Choose *Choose
}

// independentVariables lists the CSL variables whose presence is NOT fixed
// at style-compile time (i.e. genuinely reference-dependent), so their use
// contributes a branch to GetFreeConds per spec.md's composition rule.
// Locator and first-reference-note-number are runtime-context-dependent,
// not reference-dependent, and are handled by their own Cond kinds instead.
func independentVariable(v string) bool {
	switch v {
	case "locator", "first-reference-note-number":
		return false
	default:
		return true
	}
}
