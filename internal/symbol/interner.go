// Package symbol implements the process-wide bidirectional string<->id
// mapping used to keep the hot path free of string comparisons (spec.md
// §4.1). It follows the same dense-append, name-indexed-by-slice shape as
// the teacher's venue/symbol registry, generalized from (venue, symbol) to
// a single flat symbol table and with ids starting at 0 rather than 1.
package symbol

import "sync"

// UnknownName is returned by NameOf for an id that was never interned.
const UnknownName = "UNKNOWN"

// Interner assigns dense SymbolIDs starting at 0 on first registration and
// resolves ids back to names. Safe for concurrent use; registration is
// expected to happen mostly during startup, after which lookups dominate.
type Interner struct {
	mu      sync.RWMutex
	byName  map[string]uint32
	byIndex []string
}

// New creates an empty interner.
func New() *Interner {
	return &Interner{byName: make(map[string]uint32)}
}

// Intern registers name if absent and returns its (possibly pre-existing)
// id. Idempotent: interning the same name twice returns the same id.
func (in *Interner) Intern(name string) uint32 {
	in.mu.RLock()
	if id, ok := in.byName[name]; ok {
		in.mu.RUnlock()
		return id
	}
	in.mu.RUnlock()

	in.mu.Lock()
	defer in.mu.Unlock()
	if id, ok := in.byName[name]; ok {
		return id
	}
	id := uint32(len(in.byIndex))
	in.byIndex = append(in.byIndex, name)
	in.byName[name] = id
	return id
}

// NameOf resolves an id back to its registered name. Unknown ids resolve to
// UnknownName rather than panicking or erroring.
func (in *Interner) NameOf(id uint32) string {
	in.mu.RLock()
	defer in.mu.RUnlock()
	if int(id) >= len(in.byIndex) {
		return UnknownName
	}
	return in.byIndex[id]
}

// Lookup returns the id for name without registering it.
func (in *Interner) Lookup(name string) (uint32, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	id, ok := in.byName[name]
	return id, ok
}

// Len returns the number of interned symbols.
func (in *Interner) Len() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return len(in.byIndex)
}
