package refir

import "github.com/coregx/csldisamb/style"

// Build is the output formatter's intermediate representation of one piece
// of formatted text, opaque to this package beyond the OutputInContext call
// that resolves it to a final string.
type Build interface{}

// Formatter is the out-of-scope output-formatter collaborator's interface,
// as described in spec.md §6: ingest raw text, apply a format stack,
// affix/group combinators, and a final resolution to context. This package
// never constructs a Build itself; it always goes through a Formatter so
// swapping in HTML/plain/Pandoc output never touches the automaton layer.
type Formatter interface {
	Ingest(text string, options map[string]string) Build
	WithFormat(b Build, f style.Formatting) Build
	AffixedText(b Build, prefix, suffix string) Build
	Group(children []Build, delim string, f style.Formatting) Build
	OutputInContext(b Build, stack style.Formatting) string
}

// Locale is the out-of-scope locale collaborator's interface: term lookup
// keyed by a selector string (form/plural already resolved by the caller)
// and the gendered-terms table label lookups need.
type Locale interface {
	GetTextTerm(selector string, plural bool) (string, bool)
	GenderedTerms() map[string]string
}

// PlainFormatter is a minimal Formatter that ignores all formatting and
// simply concatenates text, for tests that don't care about HTML/Pandoc
// output and only need RefIR's edge structure.
type PlainFormatter struct{}

type plainBuild string

func (PlainFormatter) Ingest(text string, _ map[string]string) Build { return plainBuild(text) }

func (PlainFormatter) WithFormat(b Build, _ style.Formatting) Build { return b }

func (PlainFormatter) AffixedText(b Build, prefix, suffix string) Build {
	return plainBuild(prefix + string(b.(plainBuild)) + suffix)
}

func (PlainFormatter) Group(children []Build, delim string, _ style.Formatting) Build {
	var out string
	for i, c := range children {
		if i > 0 {
			out += delim
		}
		out += string(c.(plainBuild))
	}
	return plainBuild(out)
}

func (PlainFormatter) OutputInContext(b Build, _ style.Formatting) string {
	return string(b.(plainBuild))
}

// PlainLocale is a minimal Locale backed by a flat term table, for tests.
type PlainLocale struct {
	Terms   map[string]string
	Gendered map[string]string
}

func (l PlainLocale) GetTextTerm(selector string, _ bool) (string, bool) {
	v, ok := l.Terms[selector]
	return v, ok
}

func (l PlainLocale) GenderedTerms() map[string]string { return l.Gendered }
