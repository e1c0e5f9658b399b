package refir

import "github.com/coregx/csldisamb/edge"

// Kind identifies which variant of RefIR a value holds.
type Kind uint8

const (
	// REdge is a single leaf: either one concrete edge, or no rendering at
	// all (Data == nil) when the underlying variable was empty.
	REdge Kind = iota
	// RSeq is an ordered sequence of children, optionally delimiter- and
	// affix-wrapped (a Group or the top-level layout).
	RSeq
)

// RefIR is the intermediate form ref_ir renders a style subtree into under
// one fixed FreeCond assignment: either a leaf edge or a sequence of
// children. It is intentionally a flat, data-only tree rather than an
// interface hierarchy — a style tree is immutable data, not behavior, and
// this mirrors how the style package itself represents Element.
type RefIR struct {
	Kind     Kind
	Data     *edge.Data // meaningful only for REdge; nil means "no rendering"
	Children []RefIR    // meaningful only for RSeq
	Prefix   string
	Suffix   string
	Delim    string
}

// Edge builds a leaf RefIR from an already-formatted edge.Data, or an empty
// leaf if data is nil (the variable was absent).
func Edge(data *edge.Data) RefIR { return RefIR{Kind: REdge, Data: data} }

// Seq builds a sequence RefIR from already-rendered children, with an
// optional delimiter inserted as a literal Output edge between non-empty
// children and optional affixes wrapping the whole sequence.
func Seq(children []RefIR, delim, prefix, suffix string) RefIR {
	return RefIR{Kind: RSeq, Children: children, Delim: delim, Prefix: prefix, Suffix: suffix}
}

// IsEmpty reports whether r contributes no edges at all.
func (r RefIR) IsEmpty() bool {
	switch r.Kind {
	case REdge:
		return r.Data == nil
	default:
		for _, c := range r.Children {
			if !c.IsEmpty() {
				return false
			}
		}
		return true
	}
}

// Flatten converts r into the linear sequence of edge.Data that
// AddCompleteSequence/AddSequenceBetween consume, inserting delimiters
// between non-empty children and wrapping prefix/suffix as literal Output
// edges around the whole sequence.
func Flatten(r RefIR) []edge.Data {
	switch r.Kind {
	case REdge:
		if r.Data == nil {
			return nil
		}
		return []edge.Data{*r.Data}
	default:
		var out []edge.Data
		if r.Prefix != "" {
			out = append(out, edge.Out(r.Prefix))
		}
		first := true
		for _, c := range r.Children {
			if c.IsEmpty() {
				continue
			}
			if !first && r.Delim != "" {
				out = append(out, edge.Out(r.Delim))
			}
			out = append(out, Flatten(c)...)
			first = false
		}
		if r.Suffix != "" {
			out = append(out, edge.Out(r.Suffix))
		}
		return out
	}
}
