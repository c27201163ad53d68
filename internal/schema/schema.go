// Package schema defines the wire-independent domain types shared by every
// component of the trading core: ticks, orders, execution reports, and the
// price/quantity scalars they carry.
package schema

// SymbolID is a small, dense, process-lifetime-stable identifier assigned by
// the symbol interner. Ids start at zero.
type SymbolID uint32

// Price is a real-valued price. Floating point is inherited from the
// reference implementation; a fixed-point decimal is a valid substitute
// everywhere this type is used.
type Price float64

// Quantity is a real-valued order or book size.
type Quantity float64

// BookTicker is a single top-of-book update for one symbol.
type BookTicker struct {
	Symbol       string
	UpdateID     uint64
	BestBidPrice Price
	BestBidQty   Quantity
	BestAskPrice Price
	BestAskQty   Quantity
}

// Side is the direction of an order.
type Side uint8

const (
	SideUnknown Side = iota
	SideBuy
	SideSell
)

func (s Side) String() string {
	switch s {
	case SideBuy:
		return "Buy"
	case SideSell:
		return "Sell"
	default:
		return "Unknown"
	}
}

// OrderState is a position in the order lifecycle state machine (spec.md §4.7).
type OrderState uint8

const (
	OrderStateUnknown OrderState = iota
	OrderStatePendingNew
	OrderStateNew
	OrderStatePartiallyFilled
	OrderStateFilled
	OrderStateCanceled
	OrderStateRejected
)

func (s OrderState) String() string {
	switch s {
	case OrderStatePendingNew:
		return "PendingNew"
	case OrderStateNew:
		return "New"
	case OrderStatePartiallyFilled:
		return "PartiallyFilled"
	case OrderStateFilled:
		return "Filled"
	case OrderStateCanceled:
		return "Canceled"
	case OrderStateRejected:
		return "Rejected"
	default:
		return "Unknown"
	}
}

// IsTerminal reports whether the state admits no further transitions.
func (s OrderState) IsTerminal() bool {
	switch s {
	case OrderStateFilled, OrderStateCanceled, OrderStateRejected:
		return true
	default:
		return false
	}
}

// Order is a single order record, owned by the object pool and indexed by
// the order manager for its entire (process) lifetime.
type Order struct {
	OrderID         int64
	SymbolID        SymbolID
	Side            Side
	Price           Price
	Quantity        Quantity
	FilledQuantity  Quantity
	State           OrderState
}

// ExecType is the kind of event carried by an ExecutionReport.
type ExecType uint8

const (
	ExecTypeUnknown ExecType = iota
	ExecTypePendingNew
	ExecTypeNew
	ExecTypePartialFill
	ExecTypeFill
	ExecTypeCanceled
	ExecTypePendingCancel
	ExecTypeRejected
)

// ExecutionReport is an asynchronous acknowledgment or fill notification for
// a previously sent order.
type ExecutionReport struct {
	OrderID    int64
	ExecType   ExecType
	OrderState OrderState
	LastQty    Quantity
	LastPrice  Price
	LeavesQty  Quantity
	CumQty     Quantity
	AvgPrice   Price
	Text       string
}
