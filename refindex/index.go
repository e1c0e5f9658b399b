// Package refindex builds and queries the inverted index from
// disambtoken.Token to the set of reference IDs that carry it, the
// mechanism a disambiguation driver uses to narrow candidates before paying
// for a full DFA walk.
package refindex

import (
	"sync"

	"github.com/coregx/ahocorasick"
	"github.com/coregx/csldisamb/disambtoken"
	"github.com/coregx/csldisamb/internal/obs"
)

// Index maps tokens to the references that carry them and vice versa. All
// methods are safe for concurrent use: the forward/inverted maps are
// guarded by mu, and the Aho-Corasick automaton used by ScanFreeText is
// built lazily, once, behind a sync.Once.
type Index struct {
	mu       sync.RWMutex
	byRef    map[string]disambtoken.Set   // reference ID -> its tokens
	inverted map[disambtoken.Token]map[string]struct{} // token -> reference IDs

	scanOnce sync.Once
	scanner  *ahocorasick.Automaton
	atoms    []string // Str token text, in automaton pattern order

	log obs.Logger
}

// New returns an empty Index, logging skipped reference fields through log
// (or discarding them if log is nil).
func New(log obs.Logger) *Index {
	if log == nil {
		log = obs.NewNull()
	}
	return &Index{
		byRef:    make(map[string]disambtoken.Set),
		inverted: make(map[disambtoken.Token]map[string]struct{}),
		log:      log.Named("refindex"),
	}
}

// AddReference tokenizes ref at indexing granularity and adds every token to
// the inverted index. Calling it again for the same reference ID replaces
// its prior contribution. A field that fails to tokenize is logged at Debug
// level and otherwise skipped; it never prevents the rest of ref from being
// indexed.
func (idx *Index) AddReference(ref *disambtoken.Reference) {
	set := disambtoken.NewSet()
	for _, ferr := range disambtoken.AddTokensIndex(ref, set) {
		idx.log.Debug("skipping reference field", "reference", ferr.ReferenceID, "field", ferr.Field, "err", ferr.Err)
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	if old, ok := idx.byRef[ref.ID]; ok {
		for tok := range old {
			if refs := idx.inverted[tok]; refs != nil {
				delete(refs, ref.ID)
				if len(refs) == 0 {
					delete(idx.inverted, tok)
				}
			}
		}
	}

	idx.byRef[ref.ID] = set
	for tok := range set {
		refs := idx.inverted[tok]
		if refs == nil {
			refs = make(map[string]struct{})
			idx.inverted[tok] = refs
		}
		refs[ref.ID] = struct{}{}
	}
	// A new reference invalidates the cached free-text scanner.
	idx.scanOnce = sync.Once{}
	idx.scanner = nil
}

// Tokens returns the token set previously recorded for refID, or nil if no
// reference with that ID has been added.
func (idx *Index) Tokens(refID string) disambtoken.Set {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.byRef[refID]
}

// CandidateRefs returns every reference ID whose token set contains at
// least one token in tokens: the narrowed candidate set a disambiguation
// driver should actually run the DFA matcher against, rather than every
// reference in the library.
func (idx *Index) CandidateRefs(tokens disambtoken.Set) []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	seen := make(map[string]struct{})
	var out []string
	for tok := range tokens {
		for refID := range idx.inverted[tok] {
			if _, dup := seen[refID]; !dup {
				seen[refID] = struct{}{}
				out = append(out, refID)
			}
		}
	}
	return out
}

// ScanFreeText scans text for occurrences of any Str token atom already
// known to the index (e.g. to find which indexed names or titles appear
// inside a free-text field like an abstract or a note), returning one Str
// token per distinct atom found. The underlying Aho-Corasick automaton is
// built once per index generation and reused across calls; adding a new
// reference invalidates it so the next scan rebuilds with the new atoms.
func (idx *Index) ScanFreeText(text string) []disambtoken.Token {
	// The write lock covers the Once and the scanner field, which
	// AddReference resets under the same lock.
	idx.mu.Lock()
	idx.scanOnce.Do(func() {
		atoms := idx.strAtoms()
		builder := ahocorasick.NewBuilder()
		for _, a := range atoms {
			builder.AddPattern([]byte(a))
		}
		auto, err := builder.Build()
		if err == nil {
			idx.scanner = auto
			idx.atoms = atoms
		}
	})
	scanner := idx.scanner
	idx.mu.Unlock()
	if scanner == nil {
		return nil
	}

	haystack := []byte(text)
	found := make(map[string]struct{})
	var out []disambtoken.Token
	at := 0
	for at <= len(haystack) {
		m := scanner.Find(haystack, at)
		if m == nil {
			break
		}
		atom := string(haystack[m.Start:m.End])
		if _, dup := found[atom]; !dup {
			found[atom] = struct{}{}
			out = append(out, disambtoken.NewStr(atom))
		}
		at = m.End
		if m.End == m.Start {
			at++ // guard against a zero-width match stalling the scan
		}
	}
	return out
}

func (idx *Index) strAtoms() []string {
	var atoms []string
	for tok := range idx.inverted {
		if tok.Kind == disambtoken.Str {
			atoms = append(atoms, tok.Str)
		}
	}
	return atoms
}
