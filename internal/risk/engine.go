// Package risk implements the pre-trade risk gate (spec.md §4.6): size,
// position, price-band, and rate checks applied in that order, first
// failure wins. Adapted from the teacher's internal/risk.Engine, swapping
// its scaled-integer notional math for the plain float64 arithmetic this
// spec's data model uses, and replacing the single MaxNotional/KillSwitch
// checks with the size/position/band/rate sequence spec.md §4.6 specifies.
package risk

import (
	"github.com/yanun0323/tickcore/internal/schema"
)

// Reason is the coarse cause of a rejection.
type Reason uint8

const (
	ReasonNone Reason = iota
	ReasonOversizedOrder
	ReasonPositionLimitExceeded
	ReasonPriceOutOfBand
	ReasonRateLimitExceeded
)

func (r Reason) String() string {
	switch r {
	case ReasonOversizedOrder:
		return "OversizedOrder"
	case ReasonPositionLimitExceeded:
		return "PositionLimitExceeded"
	case ReasonPriceOutOfBand:
		return "PriceOutOfBand"
	case ReasonRateLimitExceeded:
		return "RateLimitExceeded"
	default:
		return "None"
	}
}

// Decision is the outcome of Check.
type Decision struct {
	Approved bool
	Reason   Reason
}

// Config holds the static risk limits (spec.md §3 RiskState constants).
type Config struct {
	MaxOrderSize      schema.Quantity
	MaxPosition       schema.Quantity
	MaxPriceDeviation float64 // fraction, e.g. 0.05 == 5%
	MaxOrderRate      int
	WindowLengthNanos int64
}

// Clock supplies the monotonic timestamp used for rate limiting. Never wall
// clock, per spec.md §4.6, so NTP adjustments cannot corrupt the window.
type Clock interface {
	NowNanos() int64
}

// Engine evaluates risk decisions against a single running position and a
// tumbling rate-limit window. Not safe for concurrent Check calls; per
// spec.md §5 the strategy thread is the sole caller.
type Engine struct {
	cfg             Config
	clock           Clock
	currentPosition schema.Quantity

	windowOpen       bool
	windowStartNanos int64
	ordersInWindow   int
}

// New creates a risk engine with the given static limits and clock source.
func New(cfg Config, clock Clock) *Engine {
	return &Engine{cfg: cfg, clock: clock}
}

// Check applies the four ordered pre-trade checks. On approval it does NOT
// update position — callers invoke UpdatePosition separately once the
// order has actually been dispatched, per spec.md §4.6's send-time
// conservative accounting. It DOES increment the rate-limit counter on
// approval, since the rate limit counts attempts, not fills.
func (e *Engine) Check(side schema.Side, price schema.Price, quantity schema.Quantity, referencePrice schema.Price) Decision {
	if quantity > e.cfg.MaxOrderSize {
		return Decision{Reason: ReasonOversizedOrder}
	}

	projected := e.projectedPosition(side, quantity)
	if abs(projected) > e.cfg.MaxPosition {
		return Decision{Reason: ReasonPositionLimitExceeded}
	}

	if referencePrice > 0 {
		deviation := absF(float64(price-referencePrice)) / float64(referencePrice)
		if deviation > e.cfg.MaxPriceDeviation {
			return Decision{Reason: ReasonPriceOutOfBand}
		}
	}

	now := e.clock.NowNanos()
	if !e.windowOpen || now >= e.windowStartNanos+e.cfg.WindowLengthNanos {
		e.windowOpen = true
		e.windowStartNanos = now
		e.ordersInWindow = 0
	}
	if e.ordersInWindow >= e.cfg.MaxOrderRate {
		return Decision{Reason: ReasonRateLimitExceeded}
	}

	e.ordersInWindow++
	return Decision{Approved: true, Reason: ReasonNone}
}

// UpdatePosition applies a filled/sent quantity to the running position.
// Called from the strategy thread only (spec.md §5). The position counter is
// a plain field, not an atomic; Position() reads it without synchronization.
func (e *Engine) UpdatePosition(side schema.Side, quantity schema.Quantity) {
	switch side {
	case schema.SideBuy:
		e.currentPosition += quantity
	case schema.SideSell:
		e.currentPosition -= quantity
	}
}

// Position returns the current signed position.
func (e *Engine) Position() schema.Quantity {
	return e.currentPosition
}

func (e *Engine) projectedPosition(side schema.Side, quantity schema.Quantity) schema.Quantity {
	switch side {
	case schema.SideBuy:
		return e.currentPosition + quantity
	case schema.SideSell:
		return e.currentPosition - quantity
	default:
		return e.currentPosition
	}
}

func abs(q schema.Quantity) schema.Quantity {
	if q < 0 {
		return -q
	}
	return q
}

func absF(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
