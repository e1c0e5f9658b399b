// Package disambcache memoizes the per-reference Dfa build keyed by
// (style identity, reference identity), and detects reentrant recomputation
// of the same key — a cyclic dependency that should never legitimately
// occur and is reported as a fatal build error rather than deadlocked or
// silently recursed.
package disambcache

import (
	"sync"

	"github.com/google/uuid"
	"github.com/petermattis/goid"

	"github.com/coregx/csldisamb/automaton/dfa"
	"github.com/coregx/csldisamb/disamberr"
	"github.com/coregx/csldisamb/internal/obs"
)

// Key identifies one memoized build: a style and a reference, both
// UUID-identified so a driver can regenerate either independently of the
// other and invalidate only the affected entries.
type Key struct {
	StyleID     uuid.UUID
	ReferenceID uuid.UUID
}

type entry struct {
	dfa *dfa.Dfa
}

// Cache memoizes (Key) -> *dfa.Dfa. Builds are single-threaded per the
// concurrency model in spec.md §5, but a driver may call GetOrBuild from
// several goroutines across different references concurrently; mu guards
// the map itself, and inFlight guards against one key's build recursing
// into itself (the cyclic-macro case a style's own compile step should
// already have caught, but cache-level detection is the second line of
// defense spec.md requires).
type Cache struct {
	mu      sync.Mutex
	entries map[Key]entry
	inFlight map[Key]int64 // key -> the goroutine ID currently building it

	log obs.Logger
}

// New returns an empty Cache logging through log, or a null logger if log
// is nil.
func New(log obs.Logger) *Cache {
	if log == nil {
		log = obs.NewNull()
	}
	return &Cache{
		entries:  make(map[Key]entry),
		inFlight: make(map[Key]int64),
		log:      log.Named("disambcache"),
	}
}

// Build constructs the Dfa for key, unconditionally, bypassing any cached
// entry. It is the function GetOrBuild calls on a miss.
type Build func() (*dfa.Dfa, error)

// GetOrBuild returns the cached Dfa for key if present, otherwise calls
// build, caches its result, and returns it. If a build for the same key is
// already in flight, whether re-entered from inside that build or started
// by another goroutine, it returns disamberr.ErrReentrantBuild immediately
// without calling build again; the in-flight goroutine's ID is only logged.
func (c *Cache) GetOrBuild(key Key, build Build) (*dfa.Dfa, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return e.dfa, nil
	}
	gid := goid.Get()
	if owner, building := c.inFlight[key]; building {
		c.mu.Unlock()
		c.log.Warn("reentrant build detected", "style", key.StyleID, "reference", key.ReferenceID, "owner_goroutine", owner)
		return nil, &disamberr.ErrReentrantBuild{Key: key.ReferenceID.String()}
	}
	c.inFlight[key] = gid
	c.mu.Unlock()

	d, err := build()

	c.mu.Lock()
	delete(c.inFlight, key)
	if err == nil {
		c.entries[key] = entry{dfa: d}
	}
	c.mu.Unlock()

	return d, err
}

// Invalidate drops the cached entry for key, if any, forcing the next
// GetOrBuild call to rebuild it. Since Dfa equality is intentionally
// never-equal (see dfa.Dfa), callers cannot detect "did the Dfa actually
// change" by comparing values — invalidation is always driven by the
// caller's own knowledge that an upstream input (the style or the
// reference) changed, never by re-inspecting the cached Dfa itself.
func (c *Cache) Invalidate(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// InvalidateStyle drops every cached entry for styleID, for when the style
// itself (not any one reference) changed.
func (c *Cache) InvalidateStyle(styleID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if k.StyleID == styleID {
			delete(c.entries, k)
		}
	}
}

// Len reports the number of cached entries, for tests and diagnostics.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
