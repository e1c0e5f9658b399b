package edge

import (
	"sync"

	"github.com/coregx/csldisamb/internal/conv"
)

// ID is the opaque 32-bit identity of a unique Data value, scoped to one
// Interner. IDs compare by identity; they carry no information about the
// Data they stand for beyond what Lookup can recover.
type ID uint32

// Invalid is never returned by Intern and never a valid key in Lookup.
const Invalid ID = 0xFFFFFFFF

// Interner is a bijection between live Data values and their ID, scoped to
// one processor instance. It grows monotonically and never forgets an
// entry: an NFA build that is abandoned mid-way leaks nothing beyond a few
// unused interned edges, which is acceptable since the table only grows.
//
// Interner is safe for concurrent use: a driver may parallelize automaton
// construction across references against one shared Interner.
type Interner struct {
	mu      sync.RWMutex
	forward map[Data]ID
	reverse []Data
}

// NewInterner creates an empty Interner.
func NewInterner() *Interner {
	return &Interner{
		forward: make(map[Data]ID, 64),
		reverse: make([]Data, 0, 64),
	}
}

// Intern returns the ID for d, assigning a fresh one on first use. Intern is
// total and idempotent: Intern(x) == Intern(y) iff x == y by value.
func (in *Interner) Intern(d Data) ID {
	in.mu.RLock()
	if id, ok := in.forward[d]; ok {
		in.mu.RUnlock()
		return id
	}
	in.mu.RUnlock()

	in.mu.Lock()
	defer in.mu.Unlock()
	// Re-check: another goroutine may have interned d while we waited for
	// the write lock.
	if id, ok := in.forward[d]; ok {
		return id
	}
	id := ID(conv.IntToUint32(len(in.reverse)))
	in.forward[d] = id
	in.reverse = append(in.reverse, d)
	return id
}

// Lookup returns the Data value id was assigned, or (Data{}, false) if id
// was never produced by this Interner.
func (in *Interner) Lookup(id ID) (Data, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	if id == Invalid || int(id) >= len(in.reverse) {
		return Data{}, false
	}
	return in.reverse[id], true
}

// MustLookup is Lookup but panics on an unknown ID, for callers that treat
// an unknown ID as a programming bug rather than bad input. The automaton
// packages do not call it: dfa.Dfa.AcceptsData uses Lookup and returns a
// disamberr.InternalInvariantError for an unknown label instead.
func (in *Interner) MustLookup(id ID) Data {
	d, ok := in.Lookup(id)
	if !ok {
		panic("edge: unknown ID, interner invariant violated")
	}
	return d
}

// Len returns the number of distinct Data values interned so far.
func (in *Interner) Len() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return len(in.reverse)
}
