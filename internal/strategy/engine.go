/*
Package strategy implements the strategy runtime (spec.md §4.9, component
C9): it spins on the SPSC ring buffer, updates per-symbol books, evaluates
the triangular-arbitrage and imbalance signals, and on a signal walks the
emission sequence (risk check -> create -> send -> update position).

Adapted from the teacher's internal/core doc comment (in-memory bus ->
strategy runtime -> position reducer -> risk engine) and from
cmd/trader/main.go's wiring of gateway/risk/metrics around a single order
flow, generalized from "one dummy order per loop iteration" to "evaluate
two signals per tick, emit zero or more candidate orders."
*/
package strategy

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/yanun0323/logs"

	"github.com/yanun0323/tickcore/internal/book"
	"github.com/yanun0323/tickcore/internal/config"
	"github.com/yanun0323/tickcore/internal/execlog"
	"github.com/yanun0323/tickcore/internal/gateway"
	"github.com/yanun0323/tickcore/internal/histogram"
	"github.com/yanun0323/tickcore/internal/obs"
	"github.com/yanun0323/tickcore/internal/orders"
	"github.com/yanun0323/tickcore/internal/ring"
	"github.com/yanun0323/tickcore/internal/risk"
	"github.com/yanun0323/tickcore/internal/schema"
	"github.com/yanun0323/tickcore/internal/symbol"
)

// Clock supplies the monotonic timestamp the histogram times against.
type Clock interface {
	NowNanos() int64
}

// Engine is the strategy thread's state: it owns the histogram and every
// per-symbol book, and is the sole writer of both (spec.md §5).
type Engine struct {
	cfg      config.Engine
	queue    *ring.Buffer[schema.BookTicker]
	interner *symbol.Interner
	books    *book.Registry
	hist     *histogram.Histogram
	riskEng  *risk.Engine
	orderMgr *orders.Manager
	gw       *gateway.Gateway
	metrics  *obs.Metrics
	execLog  *execlog.Writer
	clock    Clock

	running atomic.Bool

	arbBaseID   uint32
	arbCrossID  uint32
	arbQuoteID  uint32
	imbalanceID uint32
}

// New wires an engine from its already-constructed dependencies. Symbols
// named in cfg are pre-registered so the hot path only reads the interner
// for them (spec.md §4.1); a tick for any other symbol registers that
// symbol on first sight.
func New(
	cfg config.Engine,
	queue *ring.Buffer[schema.BookTicker],
	interner *symbol.Interner,
	hist *histogram.Histogram,
	riskEng *risk.Engine,
	orderMgr *orders.Manager,
	gw *gateway.Gateway,
	metrics *obs.Metrics,
	execLog *execlog.Writer,
	clock Clock,
) *Engine {
	e := &Engine{
		cfg:      cfg,
		queue:    queue,
		interner: interner,
		books:    book.NewRegistry(),
		hist:     hist,
		riskEng:  riskEng,
		orderMgr: orderMgr,
		gw:       gw,
		metrics:  metrics,
		execLog:  execLog,
		clock:    clock,
	}
	for _, s := range cfg.Symbols {
		interner.Intern(s)
	}
	e.arbBaseID = interner.Intern(cfg.ArbBaseSymbol)
	e.arbCrossID = interner.Intern(cfg.ArbCrossSymbol)
	e.arbQuoteID = interner.Intern(cfg.ArbQuoteSymbol)
	e.imbalanceID = interner.Intern(cfg.ImbalanceSymbol)
	gw.SetExecutionCallback(e.onExecutionReport)
	gw.SetInflightHooks(metrics.GatewayInflight.Inc, metrics.GatewayInflight.Dec)
	e.running.Store(true)
	return e
}

// Run spins on the ring buffer until ctx is canceled or Stop is called,
// processing ticks back-to-back and yielding the CPU on an empty queue
// (spec.md §4.9: "production build would busy-spin without yielding" —
// this build yields, trading a little latency for not pegging a core in
// environments without CPU-affinity pinning, which is out of scope here
// per spec.md §1).
func (e *Engine) Run(ctx context.Context) {
	for {
		ticker, ok := e.queue.Pop()
		if ok {
			e.processTick(ticker)
			continue
		}
		if !e.running.Load() || ctx.Err() != nil {
			return
		}
		runtime.Gosched()
	}
}

// Stop flips the running flag checked at each loop iteration boundary.
func (e *Engine) Stop() {
	e.running.Store(false)
}

func (e *Engine) processTick(ticker schema.BookTicker) {
	start := e.clock.NowNanos()
	span := e.hist.Start(start)
	defer func() { span.Stop(e.clock.NowNanos()) }()

	symbolID := schema.SymbolID(e.interner.Intern(ticker.Symbol))
	bk := e.books.Get(symbolID)
	bk.UpdateBid(ticker.BestBidPrice, ticker.BestBidQty)
	bk.UpdateAsk(ticker.BestAskPrice, ticker.BestAskQty)

	for _, candidate := range e.evaluateSignals(symbolID) {
		e.emit(candidate)
	}
}

// candidate is a signal-generated order proposal awaiting risk approval.
type candidate struct {
	symbolID       schema.SymbolID
	side           schema.Side
	price          schema.Price
	quantity       schema.Quantity
	referencePrice schema.Price
}

func (e *Engine) evaluateSignals(updatedSymbol schema.SymbolID) []candidate {
	var out []candidate
	if c, ok := e.evaluateTriangularArb(); ok {
		out = append(out, c)
	}
	if updatedSymbol == schema.SymbolID(e.imbalanceID) {
		if c, ok := e.evaluateImbalance(updatedSymbol); ok {
			out = append(out, c)
		}
	}
	return out
}

// evaluateTriangularArb implements spec.md §4.9 step 3: profit =
// 100/A/B*C - 100 across (base ask, cross ask, quote bid); emits the first
// leg only (Buy base at A) when profit exceeds the configured threshold.
func (e *Engine) evaluateTriangularArb() (candidate, bool) {
	baseBook := e.books.Get(schema.SymbolID(e.arbBaseID))
	crossBook := e.books.Get(schema.SymbolID(e.arbCrossID))
	quoteBook := e.books.Get(schema.SymbolID(e.arbQuoteID))

	a := baseBook.BestAsk()
	b := crossBook.BestAsk()
	c := quoteBook.BestBid()
	if a <= 0 || b <= 0 || c <= 0 {
		return candidate{}, false
	}

	profit := 100/float64(a)/float64(b)*float64(c) - 100
	if profit <= e.cfg.ArbProfitThreshold {
		return candidate{}, false
	}

	return candidate{
		symbolID:       schema.SymbolID(e.arbBaseID),
		side:           schema.SideBuy,
		price:          a,
		quantity:       e.cfg.ArbLegQty,
		referencePrice: baseBook.MidPrice(),
	}, true
}

// evaluateImbalance implements spec.md §4.9 step 4: I =
// (bid_qty-ask_qty)/(bid_qty+ask_qty); emits a crossing buy at best ask
// when I exceeds the configured threshold.
func (e *Engine) evaluateImbalance(symbolID schema.SymbolID) (candidate, bool) {
	bk := e.books.Get(symbolID)
	bidQty := float64(bk.BestBidQty())
	askQty := float64(bk.BestAskQty())
	total := bidQty + askQty
	if total <= 0 {
		return candidate{}, false
	}

	imbalance := (bidQty - askQty) / total
	if imbalance <= e.cfg.ImbalanceThreshold {
		return candidate{}, false
	}

	ask := bk.BestAsk()
	if ask <= 0 {
		return candidate{}, false
	}

	return candidate{
		symbolID:       symbolID,
		side:           schema.SideBuy,
		price:          ask,
		quantity:       e.cfg.ImbalanceOrderQty,
		referencePrice: bk.MidPrice(),
	}, true
}

// emit runs spec.md §4.9 step 5: risk check, then on approval create +
// send + position update, all logged to the execution log.
func (e *Engine) emit(c candidate) {
	decision := e.riskEng.Check(c.side, c.price, c.quantity, c.referencePrice)
	if !decision.Approved {
		e.metrics.IncRiskRejection(decision.Reason.String())
		e.logf("risk rejected symbol=%d side=%s price=%g qty=%g reason=%s",
			c.symbolID, c.side, float64(c.price), float64(c.quantity), decision.Reason)
		return
	}

	orderID := e.orderMgr.Create(c.symbolID, c.side, c.price, c.quantity)
	if orderID < 0 {
		e.metrics.PoolExhausted.Inc()
		e.logf("pool exhausted, refusing emission for symbol=%d", c.symbolID)
		return
	}

	e.gw.Send(orderID, c.side, c.price, c.quantity)
	e.riskEng.UpdatePosition(c.side, c.quantity)
	e.metrics.OrdersCreated.Inc()
	e.metrics.ObservePosition(e.riskEng)
	e.logf("order sent id=%d symbol=%d side=%s price=%g qty=%g",
		orderID, c.symbolID, c.side, float64(c.price), float64(c.quantity))
}

// onExecutionReport is the gateway callback; it runs on the gateway's own
// goroutine (spec.md §4.8), never the strategy thread.
func (e *Engine) onExecutionReport(report schema.ExecutionReport) {
	if !e.orderMgr.OnExecutionReport(report) {
		e.metrics.UnknownOrders.Inc()
	}
	e.logf("execution report order_id=%d exec_type=%d cum_qty=%g",
		report.OrderID, report.ExecType, float64(report.CumQty))
}

func (e *Engine) logf(format string, args ...any) {
	logs.Infof(format, args...)
	if e.execLog != nil {
		if err := e.execLog.Append(fmt.Sprintf(format, args...)); err != nil {
			logs.Errorf("strategy: execution log append failed, err: %+v", err)
		}
	}
}
