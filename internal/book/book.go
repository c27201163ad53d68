// Package book implements the per-symbol bid/ask ladder (spec.md §4.4).
// Each side is an ordered price->quantity map; best-bid is the maximum bid
// key, best-ask is the minimum ask key. Grounded on Aidin1998-finalex's
// order book, which is the one repo in the pack that backs a price ladder
// with github.com/tidwall/btree rather than a hand-rolled tree or a plain
// map with linear best-price scans.
package book

import (
	"github.com/tidwall/btree"

	"github.com/yanun0323/tickcore/internal/schema"
)

const defaultDegree = 32

// Book is the bid/ask ladder for a single symbol.
type Book struct {
	SymbolID schema.SymbolID
	bids     *btree.Map[schema.Price, schema.Quantity]
	asks     *btree.Map[schema.Price, schema.Quantity]
}

// New creates an empty book for symbolID.
func New(symbolID schema.SymbolID) *Book {
	return &Book{
		SymbolID: symbolID,
		bids:     btree.NewMap[schema.Price, schema.Quantity](defaultDegree),
		asks:     btree.NewMap[schema.Price, schema.Quantity](defaultDegree),
	}
}

// UpdateBid sets the bid quantity at price, or removes the level when qty
// is zero.
func (b *Book) UpdateBid(price schema.Price, qty schema.Quantity) {
	updateSide(b.bids, price, qty)
}

// UpdateAsk sets the ask quantity at price, or removes the level when qty
// is zero.
func (b *Book) UpdateAsk(price schema.Price, qty schema.Quantity) {
	updateSide(b.asks, price, qty)
}

func updateSide(side *btree.Map[schema.Price, schema.Quantity], price schema.Price, qty schema.Quantity) {
	if qty == 0 {
		side.Delete(price)
		return
	}
	side.Set(price, qty)
}

// BestBid returns the highest bid price, or 0 when the bid side is empty.
func (b *Book) BestBid() schema.Price {
	price, _, ok := b.bids.Max()
	if !ok {
		return 0
	}
	return price
}

// BestAsk returns the lowest ask price, or 0 when the ask side is empty.
func (b *Book) BestAsk() schema.Price {
	price, _, ok := b.asks.Min()
	if !ok {
		return 0
	}
	return price
}

// BestBidQty returns the quantity at the best bid, or 0 when empty.
func (b *Book) BestBidQty() schema.Quantity {
	_, qty, ok := b.bids.Max()
	if !ok {
		return 0
	}
	return qty
}

// BestAskQty returns the quantity at the best ask, or 0 when empty.
func (b *Book) BestAskQty() schema.Quantity {
	_, qty, ok := b.asks.Min()
	if !ok {
		return 0
	}
	return qty
}

// MidPrice returns the average of best bid and best ask, or 0 when either
// side is empty.
func (b *Book) MidPrice() schema.Price {
	bid := b.BestBid()
	ask := b.BestAsk()
	if bid == 0 || ask == 0 {
		return 0
	}
	return (bid + ask) / 2
}

// Level is a single (price, quantity) pair used by PrintTop.
type Level struct {
	Price    schema.Price
	Quantity schema.Quantity
}

// PrintTop returns up to k levels from each side, best price first.
func (b *Book) PrintTop(k int) (bids, asks []Level) {
	bids = make([]Level, 0, k)
	b.bids.Reverse(func(price schema.Price, qty schema.Quantity) bool {
		if len(bids) >= k {
			return false
		}
		bids = append(bids, Level{Price: price, Quantity: qty})
		return true
	})
	asks = make([]Level, 0, k)
	b.asks.Scan(func(price schema.Price, qty schema.Quantity) bool {
		if len(asks) >= k {
			return false
		}
		asks = append(asks, Level{Price: price, Quantity: qty})
		return true
	})
	return bids, asks
}
