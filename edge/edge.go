// Package edge provides the interned Edge identity and EdgeData tagged
// variant that label every transition in an Nfa or Dfa built by this module.
//
// An Edge is an opaque, comparable handle; EdgeData is the value it stands
// for. Interning means two equal EdgeData values always map to the same
// Edge, so automaton transitions can be compared by a cheap integer equality
// instead of a deep value comparison.
package edge

import "fmt"

// Kind identifies which variant of EdgeData a value holds.
type Kind uint8

const (
	// Output is rendered literal text with formatting already applied.
	Output Kind = iota
	// Locator is the runtime-supplied locator component (e.g. "p. 12").
	Locator
	// LocatorLabel is the runtime-supplied locator label (e.g. "page").
	LocatorLabel
	// YearSuffix is the disambiguating year-suffix placeholder (a, b, c...).
	YearSuffix
	// YearSuffixExplicit marks an explicit <text variable="year-suffix"/>
	// use. It must be normalized to YearSuffix before automaton
	// construction; see refir.KeepFirstYearSuffix.
	YearSuffixExplicit
	// CitationNumber is the running citation-number variable.
	CitationNumber
	// CitationNumberLabel is the label accompanying CitationNumber.
	CitationNumberLabel
	// Frnn is "first-reference-note-number".
	Frnn
	// FrnnLabel is the label accompanying Frnn.
	FrnnLabel
)

// String returns a human-readable name for the kind, used by DebugGraph.
func (k Kind) String() string {
	switch k {
	case Output:
		return "Output"
	case Locator:
		return "Locator"
	case LocatorLabel:
		return "LocatorLabel"
	case YearSuffix:
		return "YearSuffix"
	case YearSuffixExplicit:
		return "YearSuffixExplicit"
	case CitationNumber:
		return "CitationNumber"
	case CitationNumberLabel:
		return "CitationNumberLabel"
	case Frnn:
		return "Frnn"
	case FrnnLabel:
		return "FrnnLabel"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Data is the tagged-variant payload an Edge stands for. It is a plain,
// comparable struct (no pointers, no callbacks) so it can be used directly
// as a map key by Interner: Output text must already be fully formatted to
// a string before it is wrapped in a Data value.
//
// Only Text is meaningful for Output; every other kind carries no payload
// and Text is the empty string.
type Data struct {
	Kind Kind
	Text string
}

// Out builds an Output Data value from already-formatted text.
func Out(text string) Data { return Data{Kind: Output, Text: text} }

// Bare builds a Data value for a payload-less kind. Passing Output panics;
// use Out instead, since Output always carries text.
func Bare(kind Kind) Data {
	if kind == Output {
		panic("edge: Bare(Output) — use Out(text) instead")
	}
	return Data{Kind: kind}
}

// String renders the Data value for diagnostics and DOT output.
func (d Data) String() string {
	if d.Kind == Output {
		return fmt.Sprintf("Output(%q)", d.Text)
	}
	return d.Kind.String()
}
