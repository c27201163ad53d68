// Package obs exposes the ambient metrics surface: Prometheus counters and
// gauges alongside a snapshot of the spec-mandated latency
// histogram. Adapted from the teacher's internal/obs.Metrics, which tracked
// the same categories (queue drops, risk-reason counts, latency) with
// hand-rolled atomics; here the counters are real prometheus.Counter/Gauge
// values, grounded on Aidin1998-finalex's prometheus wiring, while the
// sub-microsecond histogram itself stays the bespoke allocation-free
// structure in internal/histogram (see SPEC_FULL.md DOMAIN STACK).
package obs

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/yanun0323/tickcore/internal/histogram"
	"github.com/yanun0323/tickcore/internal/risk"
)

// Metrics is the process-wide set of exported counters/gauges.
type Metrics struct {
	QueueDrops      prometheus.Counter
	PoolExhausted   prometheus.Counter
	RiskRejections  *prometheus.CounterVec
	UnknownOrders   prometheus.Counter
	OrdersCreated   prometheus.Counter
	GatewayInflight prometheus.Gauge
	TickToDecisionP50 prometheus.Gauge
	TickToDecisionP99 prometheus.Gauge
	TickToDecisionP999 prometheus.Gauge
	Position        prometheus.Gauge
}

// New registers all metrics on reg. Pass prometheus.NewRegistry() in tests
// to avoid colliding with the default global registry across test runs.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		QueueDrops: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tickcore_ring_drops_total",
			Help: "Ticks dropped because the SPSC ring buffer was full.",
		}),
		PoolExhausted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tickcore_pool_exhausted_total",
			Help: "Order creations refused because the object pool was exhausted.",
		}),
		RiskRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tickcore_risk_rejections_total",
			Help: "Candidate orders rejected by the risk gate, by reason.",
		}, []string{"reason"}),
		UnknownOrders: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tickcore_unknown_order_reports_total",
			Help: "Execution reports referencing an order id the manager never created.",
		}),
		OrdersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tickcore_orders_created_total",
			Help: "Orders successfully created and dispatched.",
		}),
		GatewayInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tickcore_gateway_inflight_orders",
			Help: "Orders sent to the gateway awaiting a terminal execution report.",
		}),
		TickToDecisionP50: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tickcore_tick_to_decision_p50_ns",
			Help: "p50 tick-to-decision latency in nanoseconds, last report.",
		}),
		TickToDecisionP99: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tickcore_tick_to_decision_p99_ns",
			Help: "p99 tick-to-decision latency in nanoseconds, last report.",
		}),
		TickToDecisionP999: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tickcore_tick_to_decision_p999_ns",
			Help: "p99.9 tick-to-decision latency in nanoseconds, last report.",
		}),
		Position: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tickcore_position",
			Help: "Current net position tracked by the risk gate.",
		}),
	}
	reg.MustRegister(
		m.QueueDrops, m.PoolExhausted, m.RiskRejections, m.UnknownOrders,
		m.OrdersCreated, m.GatewayInflight, m.TickToDecisionP50, m.TickToDecisionP99,
		m.TickToDecisionP999, m.Position,
	)
	return m
}

// ObserveHistogram copies the histogram's latest percentile report into the
// gauges. cmd/engine calls it once, after the strategy loop has stopped; it
// is not called per tick or on a timer.
func (m *Metrics) ObserveHistogram(h *histogram.Histogram) {
	r := h.Report()
	m.TickToDecisionP50.Set(float64(r.P50Ns))
	m.TickToDecisionP99.Set(float64(r.P99Ns))
	m.TickToDecisionP999.Set(float64(r.P999Ns))
}

// ObservePosition mirrors the risk engine's current position into a gauge.
// It reads risk.Engine.Position(), which is not synchronized; the strategy
// engine calls it on its own thread, right after updating the position.
func (m *Metrics) ObservePosition(e *risk.Engine) {
	m.Position.Set(float64(e.Position()))
}

// IncRiskRejection increments the rejection counter for reason.
func (m *Metrics) IncRiskRejection(reason string) {
	m.RiskRejections.WithLabelValues(reason).Inc()
}
