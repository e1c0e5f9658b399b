package refir

import "github.com/coregx/csldisamb/edge"

// KeepFirstYearSuffix rewrites data in place: the first YearSuffixExplicit
// edge becomes YearSuffix, and every subsequent one is dropped entirely
// (compacting the slice). Grounded on spec.md §4.D's edge generation rule:
// "year-suffix uses -> YearSuffixExplicit; after RefIR is built, a pre-DFA
// pass (keep_first_ysh) rewrites the first such edge to YearSuffix and
// drops subsequent ones in the same rendering." Must run before any edge in
// data is interned, since YearSuffix and YearSuffixExplicit are distinct
// EdgeData values.
func KeepFirstYearSuffix(data []edge.Data) []edge.Data {
	out := data[:0]
	seen := false
	for _, d := range data {
		if d.Kind == edge.YearSuffixExplicit {
			if seen {
				continue
			}
			seen = true
			d = edge.Bare(edge.YearSuffix)
		}
		out = append(out, d)
	}
	return out
}
