// Package feed provides the two realizations of the market-data capability
// spec.md §9 describes: "anything that, when started, invokes a configured
// callback with BookTicker values." Live and Replay are independent
// implementations of the same Source interface; the strategy engine never
// knows which one it was handed.
package feed

import (
	"context"

	"github.com/yanun0323/tickcore/internal/schema"
)

// Handler receives one BookTicker per top-of-book change.
type Handler func(schema.BookTicker)

// Source is the capability every market-data origin implements: start it
// with a context and a handler, and it invokes the handler for every tick
// until the context is canceled or the source is exhausted.
type Source interface {
	Run(ctx context.Context, handler Handler) error
}
