package gateway

import (
	"testing"
	"time"

	"github.com/yanun0323/tickcore/internal/schema"
)

func TestSendInvokesCallbackAsynchronouslyWithFill(t *testing.T) {
	g := New(Config{MinDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond})

	reports := make(chan schema.ExecutionReport, 1)
	g.SetExecutionCallback(func(r schema.ExecutionReport) {
		reports <- r
	})

	g.Send(7, schema.SideBuy, 100, 2)

	select {
	case r := <-reports:
		if r.OrderID != 7 || r.ExecType != schema.ExecTypeFill || r.CumQty != 2 || r.LastPrice != 100 {
			t.Fatalf("unexpected report: %+v", r)
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatalf("execution callback never fired")
	}
}

func TestCallbackRunsOffTheCallerGoroutine(t *testing.T) {
	g := New(DefaultConfig())
	callerGoroutine := make(chan struct{})
	reports := make(chan struct{}, 1)

	g.SetExecutionCallback(func(schema.ExecutionReport) {
		// callerGoroutine is closed only after Send has returned; a callback
		// that still sees it open ran synchronously inside Send.
		select {
		case <-callerGoroutine:
		default:
			t.Errorf("callback ran on the Send caller's goroutine")
		}
		reports <- struct{}{}
	})

	g.Send(1, schema.SideBuy, 100, 1)
	close(callerGoroutine)

	select {
	case <-reports:
	case <-time.After(200 * time.Millisecond):
		t.Fatalf("execution callback never fired")
	}
}
