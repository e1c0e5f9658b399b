// Package style holds the style rendering tree types and the FreeCond
// algebra used to enumerate every branch a style's conditionals could take,
// so the NFA builder can produce one complete rendering per branch.
package style

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tidwall/btree"
)

// CondKind identifies which runtime-branchable boolean a Cond tests.
type CondKind uint8

const (
	// VariablePresent tests whether a reference field is non-empty.
	VariablePresent CondKind = iota
	// PositionIsFirst tests citation position.
	PositionIsFirst
	// PositionIsSubsequent tests citation position.
	PositionIsSubsequent
	// LocatorTypeEq tests the runtime-supplied locator type against Var.
	LocatorTypeEq
	// Disambiguate tests whether disambiguation is currently active.
	Disambiguate
	// Bibliography tests bibliography-vs-citation rendering mode.
	Bibliography
)

func (k CondKind) String() string {
	switch k {
	case VariablePresent:
		return "var"
	case PositionIsFirst:
		return "pos=first"
	case PositionIsSubsequent:
		return "pos=subsequent"
	case LocatorTypeEq:
		return "locator-type"
	case Disambiguate:
		return "disambiguate"
	case Bibliography:
		return "bibliography"
	default:
		return fmt.Sprintf("cond(%d)", uint8(k))
	}
}

// Cond is one runtime-branchable boolean condition a style can test,
// parameterized where needed (e.g. which variable, which locator type).
type Cond struct {
	Kind CondKind
	Var  string
}

func (c Cond) String() string {
	if c.Var == "" {
		return c.Kind.String()
	}
	return fmt.Sprintf("%s(%s)", c.Kind, c.Var)
}

// lit is one conjunct: Cond assigned to Value.
type lit struct {
	Cond  Cond
	Value bool
}

func (l lit) String() string {
	return fmt.Sprintf("%s=%v", l.Cond, l.Value)
}

// FreeCondSet is one consistent assignment of conditions: a conjunction of
// literals, each Cond appearing at most once. It is stored as a sorted
// slice rather than a map so it is directly comparable and orderable,
// letting FreeCondSets keep them in a btree.BTreeG the way the original
// implementation keeps them in a BTreeSet<FreeCondSet>.
type FreeCondSet struct {
	lits []lit
}

// Get reports whether c is constrained in this set and, if so, to what
// value.
func (s FreeCondSet) Get(c Cond) (value bool, constrained bool) {
	for _, l := range s.lits {
		if l.Cond == c {
			return l.Value, true
		}
	}
	return false, false
}

// key is the canonical string this set sorts and dedups by.
func (s FreeCondSet) key() string {
	var sb strings.Builder
	for _, l := range s.lits {
		sb.WriteString(l.String())
		sb.WriteByte(';')
	}
	return sb.String()
}

func (s FreeCondSet) String() string { return "{" + s.key() + "}" }

// and returns s ∧ (c=v), or (_, false) if that contradicts an existing
// constraint on c.
func (s FreeCondSet) and(c Cond, v bool) (FreeCondSet, bool) {
	out := make([]lit, 0, len(s.lits)+1)
	added := false
	for _, l := range s.lits {
		if l.Cond == c {
			if l.Value != v {
				return FreeCondSet{}, false
			}
			out = append(out, l)
			added = true
			continue
		}
		out = append(out, l)
	}
	if !added {
		out = append(out, lit{Cond: c, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return litLess(out[i], out[j]) })
	return FreeCondSet{lits: out}, true
}

// conjoin returns a ∧ b, or (_, false) if the two sets disagree on any Cond.
func (a FreeCondSet) conjoin(b FreeCondSet) (FreeCondSet, bool) {
	out := a
	ok := true
	for _, l := range b.lits {
		out, ok = out.and(l.Cond, l.Value)
		if !ok {
			return FreeCondSet{}, false
		}
	}
	return out, true
}

func litLess(a, b lit) bool {
	if a.Cond.Kind != b.Cond.Kind {
		return a.Cond.Kind < b.Cond.Kind
	}
	if a.Cond.Var != b.Cond.Var {
		return a.Cond.Var < b.Cond.Var
	}
	return !a.Value && b.Value
}

// FreeCondSets is a disjunction of conjunctions (disjunctive normal form):
// every element is one FreeCondSet, one still-possible branch outcome for
// the subtree it describes.
type FreeCondSets struct {
	tree *btree.BTreeG[FreeCondSet]
}

func lessSet(a, b FreeCondSet) bool { return a.key() < b.key() }

func newSets() *btree.BTreeG[FreeCondSet] {
	return btree.NewBTreeG[FreeCondSet](lessSet)
}

// MultIdentity returns {∅}: one branch with no constraints, the identity
// element for CrossProduct.
func MultIdentity() FreeCondSets {
	t := newSets()
	t.Set(FreeCondSet{})
	return FreeCondSets{tree: t}
}

// Empty returns the empty disjunction (no branches at all), the identity
// element for Union. It arises when every branch of a set is dropped as
// contradictory by ScalarMultiplyCond or CrossProduct.
func Empty() FreeCondSets {
	return FreeCondSets{tree: newSets()}
}

// Len reports the number of distinct branches.
func (s FreeCondSets) Len() int {
	if s.tree == nil {
		return 0
	}
	return s.tree.Len()
}

// Each calls f once per branch, in canonical order.
func (s FreeCondSets) Each(f func(FreeCondSet)) {
	if s.tree == nil {
		return
	}
	s.tree.Scan(func(item FreeCondSet) bool {
		f(item)
		return true
	})
}

// ScalarMultiplyCond ANDs every existing branch with (c=v), dropping any
// branch that becomes contradictory. It is applied in place conceptually
// but returns the new value, matching the pattern used by every caller in
// this module (style trees are immutable once compiled).
func ScalarMultiplyCond(s FreeCondSets, c Cond, v bool) FreeCondSets {
	out := newSets()
	s.Each(func(set FreeCondSet) {
		if merged, ok := set.and(c, v); ok {
			out.Set(merged)
		}
	})
	return FreeCondSets{tree: out}
}

// CrossProduct pairwise-ANDs every branch of a with every branch of b,
// dropping contradictions. This models two subtrees being rendered in
// sequence, each independently constraining the world: the combined
// rendering is only possible under assignments both subtrees agree with.
func CrossProduct(a, b FreeCondSets) FreeCondSets {
	out := newSets()
	a.Each(func(x FreeCondSet) {
		b.Each(func(y FreeCondSet) {
			if merged, ok := x.conjoin(y); ok {
				out.Set(merged)
			}
		})
	})
	return FreeCondSets{tree: out}
}

// Union merges the branches of a and b (Choose/IfThen combine their
// branches this way, each already conjoined with its own guard).
func Union(a, b FreeCondSets) FreeCondSets {
	out := newSets()
	a.Each(func(x FreeCondSet) { out.Set(x) })
	b.Each(func(x FreeCondSet) { out.Set(x) })
	return FreeCondSets{tree: out}
}

// CrossProductAll folds CrossProduct over a sequence of children's
// FreeCondSets, starting from MultIdentity — the composition rule for a
// sequence of sibling elements (Group, Layout, macro body).
func CrossProductAll(sets []FreeCondSets) FreeCondSets {
	acc := MultIdentity()
	for _, s := range sets {
		acc = CrossProduct(acc, s)
	}
	return acc
}
