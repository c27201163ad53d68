/*
cmd/engine is the process entrypoint (spec.md §6): it wires the three
long-lived threads (ingest N, strategy S, gateway callbacks G) together and
runs until interrupted.

Flag and wiring shape is adapted from the teacher's cmd/trader/main.go —
flag.String/flag.Bool config knobs, a config file overlay, and an explicit
wiring function per run mode — generalized from trader's record/replay WAL
split to this core's live/replay market-data split, and from a WaitGroup
orchestrating one gateway worker pool to golang.org/x/sync/errgroup
supervising the ingest and strategy goroutines (plus the metrics server when
enabled). Gateway callbacks run on goroutines the gateway starts per order,
outside the errgroup.
*/
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/grafana/pyroscope-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yanun0323/logs"
	"golang.org/x/sync/errgroup"
	"net/http"

	"github.com/yanun0323/tickcore/internal/config"
	"github.com/yanun0323/tickcore/internal/execlog"
	"github.com/yanun0323/tickcore/internal/feed"
	"github.com/yanun0323/tickcore/internal/gateway"
	"github.com/yanun0323/tickcore/internal/histogram"
	"github.com/yanun0323/tickcore/internal/obs"
	"github.com/yanun0323/tickcore/internal/orders"
	"github.com/yanun0323/tickcore/internal/ring"
	"github.com/yanun0323/tickcore/internal/risk"
	"github.com/yanun0323/tickcore/internal/schema"
	"github.com/yanun0323/tickcore/internal/strategy"
	"github.com/yanun0323/tickcore/internal/symbol"
)

func main() {
	configPath := flag.String("config", "", "Path to JSON config (defaults used if empty)")
	liveURL := flag.String("live-url", "", "WebSocket URL for live market data (mutually exclusive with -replay-file)")
	replayFile := flag.String("replay-file", "", "CSV file to replay as market data")
	metricsAddr := flag.String("metrics-addr", ":9090", "Address to serve Prometheus metrics on (empty disables)")
	profilingServer := flag.String("pyroscope-server", "", "Pyroscope server address (empty disables continuous profiling)")
	flag.Parse()

	eng, err := config.Load(*configPath)
	if err != nil {
		fatalInit("config load failed", err)
	}

	if *profilingServer != "" {
		_, err := pyroscope.Start(pyroscope.Config{
			ApplicationName: "tickcore.engine",
			ServerAddress:   *profilingServer,
		})
		if err != nil {
			logs.Errorf("engine: pyroscope start failed, err: %+v, continuing without profiling", err)
		}
	}

	var source feed.Source
	switch {
	case *liveURL != "" && *replayFile != "":
		fatalInit("flags", fmt.Errorf("engine: -live-url and -replay-file are mutually exclusive"))
	case *liveURL != "":
		source = feed.NewLive(*liveURL)
	case *replayFile != "":
		source = feed.NewReplay(*replayFile)
	default:
		fatalInit("flags", fmt.Errorf("engine: one of -live-url or -replay-file is required"))
	}

	registry := prometheus.NewRegistry()
	metrics := obs.New(registry)

	execLog := execlog.New(execlog.DefaultConfig(eng.ExecutionLogPath))
	defer execLog.Close()

	queue := ring.New[schema.BookTicker](eng.RingCapacity)
	interner := symbol.New()
	hist := histogram.New()
	clock := risk.NewMonotonicClock()
	riskEng := risk.New(eng.Risk, clock)
	orderMgr := orders.New(eng.PoolCapacity)
	gw := gateway.New(gateway.Config{MinDelay: eng.GatewayMinDelay, MaxDelay: eng.GatewayMaxDelay})

	strat := strategy.New(eng, queue, interner, hist, riskEng, orderMgr, gw, metrics, execLog, clock)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)

	if *metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		server := &http.Server{Addr: *metricsAddr, Handler: mux}
		group.Go(func() error {
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		})
		go func() {
			<-groupCtx.Done()
			_ = server.Close()
		}()
	}

	// N: the sole ring-buffer producer. A source that runs out on its own
	// (replay EOF) stops S and tears down the rest of the process exactly
	// as a signal-driven stop would.
	group.Go(func() error {
		err := source.Run(groupCtx, func(ticker schema.BookTicker) {
			if queue.Push(ticker) == ring.Full {
				metrics.QueueDrops.Inc()
				logs.Warnf("engine: ring buffer full, dropped tick for symbol=%s", ticker.Symbol)
			}
		})
		strat.Stop()
		stop()
		return err
	})

	// S: the sole ring-buffer consumer, owner of books/histogram/risk/orders.
	group.Go(func() error {
		strat.Run(groupCtx)
		return nil
	})

	go waitForEnterOrSignal(stop)

	if err := group.Wait(); err != nil && groupCtx.Err() == nil {
		logs.Errorf("engine: exiting on error, err: %+v", err)
		printReport(hist)
		os.Exit(1)
	}

	strat.Stop()
	printReport(hist)
	metrics.ObserveHistogram(hist)
	logs.Infof("engine: stopped cleanly, orders created=%d", orderMgr.Count())
}

// waitForEnterOrSignal implements spec.md §6's "press Enter to stop"
// process interface alongside the OS-signal path signal.NotifyContext
// already wires; either one calls stop.
func waitForEnterOrSignal(stop context.CancelFunc) {
	reader := bufio.NewReader(os.Stdin)
	_, _ = reader.ReadString('\n')
	stop()
}

func printReport(h *histogram.Histogram) {
	r := h.Report()
	fmt.Fprintf(os.Stderr, "tick-to-decision: count=%d min=%dns max=%dns p50=%dns p99=%dns p99.9=%dns\n",
		r.Count, r.MinNs, r.MaxNs, r.P50Ns, r.P99Ns, r.P999Ns)
}

func fatalInit(stage string, err error) {
	fmt.Fprintf(os.Stderr, "engine: fatal during %s: %v\n", stage, err)
	os.Exit(1)
}
