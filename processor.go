// Package csldisamb wires the interner, token index, NFA/DFA builder, and
// incremental cache into the single entry point a disambiguation driver
// uses: Processor.
package csldisamb

import (
	"github.com/google/uuid"

	"github.com/coregx/csldisamb/automaton/dfa"
	"github.com/coregx/csldisamb/disambcache"
	"github.com/coregx/csldisamb/disambtoken"
	"github.com/coregx/csldisamb/edge"
	"github.com/coregx/csldisamb/internal/obs"
	"github.com/coregx/csldisamb/refindex"
	"github.com/coregx/csldisamb/refir"
	"github.com/coregx/csldisamb/style"
)

// Processor is the provided interface described in spec.md §6: it owns the
// edge interner (the one globally shared mutable structure), the
// disambiguation token index, and the per-reference Dfa cache for one
// style.
type Processor struct {
	StyleID uuid.UUID

	interner *edge.Interner
	index    *refindex.Index
	cache    *disambcache.Cache

	style *style.Style
	refs  map[uuid.UUID]*disambtoken.Reference

	format refir.Formatter
	locale refir.Locale
	log    obs.Logger
}

// New returns a Processor for s, logging through log (or discarding
// everything if log is nil).
func New(s *style.Style, format refir.Formatter, locale refir.Locale, log obs.Logger) *Processor {
	if log == nil {
		log = obs.NewNull()
	}
	return &Processor{
		StyleID:  uuid.New(),
		interner: edge.NewInterner(),
		index:    refindex.New(log),
		cache:    disambcache.New(log),
		style:    s,
		refs:     make(map[uuid.UUID]*disambtoken.Reference),
		format:   format,
		locale:   locale,
		log:      log.Named("processor"),
	}
}

// Edge interns data, assigning it a small integer identity (or returning
// the existing one if an equal value was already interned).
func (p *Processor) Edge(data edge.Data) edge.ID {
	return p.interner.Intern(data)
}

// LookupEdge resolves an interned id back to its edge.Data.
func (p *Processor) LookupEdge(id edge.ID) (edge.Data, bool) {
	return p.interner.Lookup(id)
}

// AddReference registers ref for disambiguation: it is tokenized into the
// inverted index immediately, and its Dfa is built lazily on first
// ReferenceDFA call.
func (p *Processor) AddReference(id uuid.UUID, ref *disambtoken.Reference) {
	ref.ID = id.String()
	p.refs[id] = ref
	p.index.AddReference(ref)
}

// ReferenceDFA returns the cached Dfa recognizing every rendering the style
// could produce for refID, building it on first access.
func (p *Processor) ReferenceDFA(refID uuid.UUID) (*dfa.Dfa, error) {
	ref, ok := p.refs[refID]
	if !ok {
		return nil, errUnknownReference(refID)
	}
	key := disambcache.Key{StyleID: p.StyleID, ReferenceID: refID}
	return p.cache.GetOrBuild(key, func() (*dfa.Dfa, error) {
		n, err := refir.BuildNfa(refir.RefContext{
			Reference: ref,
			Format:    p.format,
			Locale:    p.locale,
			Style:     p.style,
			Interner:  p.interner,
		})
		if err != nil {
			return nil, err
		}
		return dfa.Minimize(n), nil
	})
}

// CandidateRefs narrows the set of references worth checking a candidate
// rendering against, using the inverted token index.
func (p *Processor) CandidateRefs(tokens disambtoken.Set) []string {
	return p.index.CandidateRefs(tokens)
}

// InvalidateReference drops refID's cached Dfa, forcing a rebuild on the
// next ReferenceDFA call (e.g. after the reference's field values change).
func (p *Processor) InvalidateReference(refID uuid.UUID) {
	p.cache.Invalidate(disambcache.Key{StyleID: p.StyleID, ReferenceID: refID})
}

type unknownReferenceError struct{ id uuid.UUID }

func (e *unknownReferenceError) Error() string {
	return "csldisamb: unknown reference " + e.id.String()
}

func errUnknownReference(id uuid.UUID) error { return &unknownReferenceError{id: id} }
