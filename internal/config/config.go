// Package config loads the engine's static configuration from a JSON file.
// Adapted from the teacher's internal/ops loader, trimmed of the
// venue/registry model (this core has no multi-venue routing, spec.md §1
// Non-goals) down to the knobs the spec's components actually take:
// ring/pool sizing, risk limits, gateway delay band, and the symbol list
// the strategy watches.
package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/yanun0323/errors"

	"github.com/yanun0323/tickcore/internal/risk"
	"github.com/yanun0323/tickcore/internal/schema"
)

// Engine is the fully resolved runtime configuration.
type Engine struct {
	RingCapacity      int
	PoolCapacity      int
	Risk              risk.Config
	GatewayMinDelay    time.Duration
	GatewayMaxDelay    time.Duration
	Symbols            []string
	ArbBaseSymbol      string // e.g. "BTC/USDT"
	ArbCrossSymbol     string // e.g. "ETH/BTC"
	ArbQuoteSymbol     string // e.g. "ETH/USDT"
	ArbLegQty          schema.Quantity
	ArbProfitThreshold float64
	ImbalanceSymbol    string // e.g. "BTC/USDT"
	ImbalanceThreshold float64
	ImbalanceOrderQty  schema.Quantity
	ExecutionLogPath   string
}

// fileConfig mirrors the on-disk JSON layout; durations are expressed in
// milliseconds to stay plain JSON numbers rather than Go duration strings.
type fileConfig struct {
	RingCapacity       int     `json:"ringCapacity"`
	PoolCapacity       int     `json:"poolCapacity"`
	MaxOrderSize       float64 `json:"maxOrderSize"`
	MaxPosition        float64 `json:"maxPosition"`
	MaxPriceDeviation  float64 `json:"maxPriceDeviation"`
	MaxOrderRate       int     `json:"maxOrderRate"`
	WindowLengthMs     int64   `json:"windowLengthMs"`
	GatewayMinDelayMs  int64   `json:"gatewayMinDelayMs"`
	GatewayMaxDelayMs  int64   `json:"gatewayMaxDelayMs"`
	Symbols            []string `json:"symbols"`
	ArbBaseSymbol      string  `json:"arbBaseSymbol"`
	ArbCrossSymbol     string  `json:"arbCrossSymbol"`
	ArbQuoteSymbol     string  `json:"arbQuoteSymbol"`
	ArbLegQty          float64 `json:"arbLegQty"`
	ArbProfitThreshold float64 `json:"arbProfitThreshold"`
	ImbalanceSymbol    string  `json:"imbalanceSymbol"`
	ImbalanceThreshold float64 `json:"imbalanceThreshold"`
	ImbalanceOrderQty  float64 `json:"imbalanceOrderQty"`
	ExecutionLogPath   string  `json:"executionLogPath"`
}

// Default returns the baseline configuration matching spec.md's worked
// scenarios (S3, S4, S5): 100,000-order pool, 0.30% arb threshold, 0.8
// imbalance threshold, 10 orders/second rate limit.
func Default() Engine {
	return Engine{
		RingCapacity: 1 << 16,
		PoolCapacity: 100_000,
		Risk: risk.Config{
			MaxOrderSize:      schema.Quantity(10),
			MaxPosition:       schema.Quantity(1000),
			MaxPriceDeviation: 0.05,
			MaxOrderRate:      10,
			WindowLengthNanos: int64(time.Second),
		},
		GatewayMinDelay:    5 * time.Millisecond,
		GatewayMaxDelay:    50 * time.Millisecond,
		Symbols:            []string{"BTC/USDT", "ETH/BTC", "ETH/USDT"},
		ArbBaseSymbol:      "BTC/USDT",
		ArbCrossSymbol:     "ETH/BTC",
		ArbQuoteSymbol:     "ETH/USDT",
		ArbLegQty:          schema.Quantity(0.001),
		ArbProfitThreshold: 0.30,
		ImbalanceSymbol:    "BTC/USDT",
		ImbalanceThreshold: 0.8,
		ImbalanceOrderQty:  schema.Quantity(0.01),
		ExecutionLogPath:   "execution_log.txt",
	}
}

// Load reads a JSON config file and overlays it onto Default(). An empty
// path is not an error: the caller gets the default configuration, which
// lets cmd/engine run without a config file for quick starts.
func Load(path string) (Engine, error) {
	eng := Default()
	if path == "" {
		return eng, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Engine{}, errors.Wrap(err, "config: read file")
	}
	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return Engine{}, errors.Wrap(err, "config: parse json")
	}
	applyOverrides(&eng, fc)
	return eng, nil
}

func applyOverrides(eng *Engine, fc fileConfig) {
	if fc.RingCapacity > 0 {
		eng.RingCapacity = fc.RingCapacity
	}
	if fc.PoolCapacity > 0 {
		eng.PoolCapacity = fc.PoolCapacity
	}
	if fc.MaxOrderSize > 0 {
		eng.Risk.MaxOrderSize = schema.Quantity(fc.MaxOrderSize)
	}
	if fc.MaxPosition > 0 {
		eng.Risk.MaxPosition = schema.Quantity(fc.MaxPosition)
	}
	if fc.MaxPriceDeviation > 0 {
		eng.Risk.MaxPriceDeviation = fc.MaxPriceDeviation
	}
	if fc.MaxOrderRate > 0 {
		eng.Risk.MaxOrderRate = fc.MaxOrderRate
	}
	if fc.WindowLengthMs > 0 {
		eng.Risk.WindowLengthNanos = fc.WindowLengthMs * int64(time.Millisecond)
	}
	if fc.GatewayMinDelayMs > 0 {
		eng.GatewayMinDelay = time.Duration(fc.GatewayMinDelayMs) * time.Millisecond
	}
	if fc.GatewayMaxDelayMs > 0 {
		eng.GatewayMaxDelay = time.Duration(fc.GatewayMaxDelayMs) * time.Millisecond
	}
	if len(fc.Symbols) > 0 {
		eng.Symbols = fc.Symbols
	}
	if fc.ArbBaseSymbol != "" {
		eng.ArbBaseSymbol = fc.ArbBaseSymbol
	}
	if fc.ArbCrossSymbol != "" {
		eng.ArbCrossSymbol = fc.ArbCrossSymbol
	}
	if fc.ArbQuoteSymbol != "" {
		eng.ArbQuoteSymbol = fc.ArbQuoteSymbol
	}
	if fc.ArbLegQty > 0 {
		eng.ArbLegQty = schema.Quantity(fc.ArbLegQty)
	}
	if fc.ArbProfitThreshold > 0 {
		eng.ArbProfitThreshold = fc.ArbProfitThreshold
	}
	if fc.ImbalanceSymbol != "" {
		eng.ImbalanceSymbol = fc.ImbalanceSymbol
	}
	if fc.ImbalanceThreshold > 0 {
		eng.ImbalanceThreshold = fc.ImbalanceThreshold
	}
	if fc.ImbalanceOrderQty > 0 {
		eng.ImbalanceOrderQty = schema.Quantity(fc.ImbalanceOrderQty)
	}
	if fc.ExecutionLogPath != "" {
		eng.ExecutionLogPath = fc.ExecutionLogPath
	}
}
