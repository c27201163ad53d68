// Package gateway implements the simulated asynchronous order-entry
// gateway (spec.md §4.8). Send returns immediately; after a uniformly
// distributed 5-50ms delay a single Fill execution report is dispatched on
// a goroutine distinct from the caller, mirroring the teacher's
// order.Usecase worker-pool dispatch shape (internal/order/usecase.go) and
// its og.Gateway callback registration (internal/og/gateway.go), collapsed
// here into one stub rather than a delegator-per-venue split, since this
// core never routes across venues (spec.md §1 Non-goals).
package gateway

import (
	"math/rand/v2"
	"time"

	"github.com/yanun0323/tickcore/internal/schema"
)

// Callback receives execution reports. Reports produced by Send arrive on a
// goroutine that is never the caller of Send; the report produced by Cancel
// arrives on the caller of Cancel.
type Callback func(schema.ExecutionReport)

// Config controls the simulated network/matching delay.
type Config struct {
	MinDelay time.Duration
	MaxDelay time.Duration
}

// DefaultConfig returns the spec.md §4.8 default delay band.
func DefaultConfig() Config {
	return Config{MinDelay: 5 * time.Millisecond, MaxDelay: 50 * time.Millisecond}
}

// Gateway dispatches orders with a simulated round-trip delay and invokes a
// single registered callback per order with a full fill.
type Gateway struct {
	cfg      Config
	cb       Callback
	onSend   func()
	onSettle func()
}

// New creates a simulated gateway.
func New(cfg Config) *Gateway {
	return &Gateway{cfg: cfg}
}

// SetExecutionCallback registers the handler invoked for every execution
// report. Must be called before the first Send.
func (g *Gateway) SetExecutionCallback(cb Callback) {
	g.cb = cb
}

// SetInflightHooks registers callbacks bracketing the gateway's outstanding
// order count: onSend fires synchronously inside Send, onSettle fires right
// before the eventual terminal report (Fill, or Cancel) is delivered.
// Either may be nil. Must be called before the first Send.
func (g *Gateway) SetInflightHooks(onSend, onSettle func()) {
	g.onSend = onSend
	g.onSettle = onSettle
}

// Send dispatches an order asynchronously. It returns immediately; the
// execution report fires on its own goroutine after a delay uniformly
// distributed in [MinDelay, MaxDelay).
func (g *Gateway) Send(orderID int64, side schema.Side, price schema.Price, qty schema.Quantity) {
	if g.onSend != nil {
		g.onSend()
	}
	delay := g.randomDelay()
	cb := g.cb
	onSettle := g.onSettle
	go func() {
		time.Sleep(delay)
		if onSettle != nil {
			onSettle()
		}
		if cb == nil {
			return
		}
		cb(schema.ExecutionReport{
			OrderID:    orderID,
			ExecType:   schema.ExecTypeFill,
			OrderState: schema.OrderStateFilled,
			LastQty:    qty,
			LastPrice:  price,
			LeavesQty:  0,
			CumQty:     qty,
			AvgPrice:   price,
		})
	}()
}

// Cancel requests cancellation of a previously sent order. The stub has no
// network round trip to simulate: it fires the onSettle hook and delivers a
// Canceled execution report to the registered callback synchronously, on
// the caller's goroutine, with no delay. The order state changes when that
// report reaches the order manager.
func (g *Gateway) Cancel(orderID int64) {
	if g.onSettle != nil {
		g.onSettle()
	}
	if g.cb == nil {
		return
	}
	g.cb(schema.ExecutionReport{
		OrderID:    orderID,
		ExecType:   schema.ExecTypeCanceled,
		OrderState: schema.OrderStateCanceled,
	})
}

func (g *Gateway) randomDelay() time.Duration {
	lo, hi := g.cfg.MinDelay, g.cfg.MaxDelay
	if hi <= lo {
		return lo
	}
	span := hi - lo
	return lo + time.Duration(rand.Int64N(int64(span)))
}
