// Package orders implements the order record pool binding and the order
// lifecycle state machine driven by asynchronous execution reports
// (spec.md §4.7). Adapted from the teacher's internal/og.StateMachine: the
// Ack/Fill split there collapses into a single ExecutionReport dispatch
// table here, and terminal orders are never recycled to the pool (spec.md
// §9 resolves the teacher's own two diverging variants in favor of the
// simpler, race-free "no recycling" rule).
package orders

import (
	"sync"

	"github.com/yanun0323/errors"
	"github.com/yanun0323/logs"

	"github.com/yanun0323/tickcore/internal/pool"
	"github.com/yanun0323/tickcore/internal/schema"
)

// ErrPoolExhausted mirrors pool.ErrExhausted at the order-manager boundary
// so callers don't need to import the pool package to check it.
var ErrPoolExhausted = pool.ErrExhausted

// ErrUnknownOrder is returned (and logged, not panicked) when an execution
// report references an order_id the manager never created.
var ErrUnknownOrder = errors.New("orders: unknown order id")

// Manager owns the Order object pool and the id-indexed registry, and
// applies execution reports to advance each order's state machine. Created
// by the strategy thread; read by the strategy thread (Create, Get) and
// written by gateway callback threads (OnExecutionReport) — every
// operation is guarded by a single mutex, since order operations are
// short (spec.md §5).
type Manager struct {
	mu       sync.Mutex
	pool     *pool.Pool[schema.Order]
	byID     map[int64]pool.Ref
	nextID   int64
}

// New creates a manager with a pool of the given order capacity.
func New(capacity int) *Manager {
	return &Manager{
		pool: pool.New[schema.Order](capacity),
		byID: make(map[int64]pool.Ref),
	}
}

// Create acquires an Order from the pool, assigns a fresh monotonically
// increasing id, and inserts it into the registry in state New. Returns -1
// when the pool is exhausted (spec.md §4.7), which the strategy treats as
// a signal to refuse the emission.
func (m *Manager) Create(symbolID schema.SymbolID, side schema.Side, price schema.Price, qty schema.Quantity) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	ref, order, err := m.pool.Acquire()
	if err != nil {
		logs.Errorf("orders: create failed, err: %+v", err)
		return -1
	}

	m.nextID++
	id := m.nextID
	*order = schema.Order{
		OrderID:  id,
		SymbolID: symbolID,
		Side:     side,
		Price:    price,
		Quantity: qty,
		State:    schema.OrderStateNew,
	}

	m.byID[id] = ref
	return id
}

// Get returns a snapshot of the order, or false if id is unknown.
func (m *Manager) Get(id int64) (schema.Order, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ref, ok := m.byID[id]
	if !ok {
		return schema.Order{}, false
	}
	return *m.pool.Get(ref), true
}

// OnExecutionReport advances the order identified by report.OrderID per the
// dispatch table in spec.md §4.7. Unknown order ids are logged and
// ignored rather than surfaced as an error to the caller — a late report
// racing session teardown is expected, not exceptional. Returns false when
// report.OrderID was never created by this manager, so the caller can
// track spec.md §7's UnknownOrder error kind without this package taking
// a dependency on the metrics surface.
func (m *Manager) OnExecutionReport(report schema.ExecutionReport) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	ref, ok := m.byID[report.OrderID]
	if !ok {
		logs.Warnf("orders: execution report for unknown order_id=%d", report.OrderID)
		return false
	}

	order := m.pool.Get(ref)
	if order.State.IsTerminal() {
		// spec.md §8 property 5: no transition leaves a terminal state.
		logs.Warnf("orders: ignoring %v report for terminal order_id=%d", report.ExecType, report.OrderID)
		return true
	}

	switch report.ExecType {
	case schema.ExecTypeNew:
		order.State = schema.OrderStateNew
	case schema.ExecTypePartialFill:
		order.FilledQuantity = report.CumQty
		order.State = schema.OrderStatePartiallyFilled
	case schema.ExecTypeFill:
		order.FilledQuantity = report.CumQty
		order.State = schema.OrderStateFilled
	case schema.ExecTypeCanceled:
		order.State = schema.OrderStateCanceled
	case schema.ExecTypeRejected:
		order.State = schema.OrderStateRejected
	case schema.ExecTypePendingCancel, schema.ExecTypePendingNew:
		// spec.md §4.7's table says these are no-ops on fill quantities and
		// "advance state accordingly" — they bracket the initial New ack and
		// must never regress an order that has already progressed to
		// PartiallyFilled.
		if order.State == schema.OrderStateNew || order.State == schema.OrderStatePendingNew {
			order.State = schema.OrderStatePendingNew
		}
	default:
		logs.Warnf("orders: unrecognized exec_type=%d for order_id=%d", report.ExecType, report.OrderID)
	}
	return true
}

// Cancel marks a non-terminal order Canceled directly, without an execution
// report. gateway.Gateway.Cancel does not call it; that path reaches the
// order through a Canceled report applied by OnExecutionReport.
func (m *Manager) Cancel(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ref, ok := m.byID[id]
	if !ok {
		return ErrUnknownOrder
	}
	order := m.pool.Get(ref)
	if order.State.IsTerminal() {
		return nil
	}
	order.State = schema.OrderStateCanceled
	return nil
}

// Count returns the number of orders ever created (registry size).
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID)
}
