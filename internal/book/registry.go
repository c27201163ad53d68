package book

import "github.com/yanun0323/tickcore/internal/schema"

// Registry owns one Book per symbol, created lazily on first reference.
// It is strategy-thread-exclusive after construction (spec.md §5).
type Registry struct {
	books map[schema.SymbolID]*Book
}

// NewRegistry creates an empty book registry.
func NewRegistry() *Registry {
	return &Registry{books: make(map[schema.SymbolID]*Book)}
}

// Get returns the book for symbolID, creating it if this is the first
// reference.
func (r *Registry) Get(symbolID schema.SymbolID) *Book {
	b, ok := r.books[symbolID]
	if !ok {
		b = New(symbolID)
		r.books[symbolID] = b
	}
	return b
}
