package feed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yanun0323/tickcore/internal/schema"
)

func TestReplayRunsEveryRowInOrder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ticks.csv")
	content := "timestamp,symbol,bid_price,bid_qty,ask_price,ask_qty\n" +
		"1,BTC/USDT,100,1,101,1\n" +
		"2,BTC/USDT,102,2,103,2\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	r := NewReplay(path)
	var got []schema.BookTicker
	if err := r.Run(context.Background(), func(bt schema.BookTicker) {
		got = append(got, bt)
	}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("len(got) = %d, want 2", len(got))
	}
	if got[0].BestBidPrice != 100 || got[1].BestBidPrice != 102 {
		t.Fatalf("rows out of order: %+v", got)
	}
}

func TestReplaySkipsMalformedRowsWithoutAborting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ticks.csv")
	content := "1,BTC/USDT,100,1,101,1\n" +
		"2,BTC/USDT,not-a-number,1,101,1\n" +
		"3,BTC/USDT,102,2,103,2\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	r := NewReplay(path)
	var got []schema.BookTicker
	if err := r.Run(context.Background(), func(bt schema.BookTicker) {
		got = append(got, bt)
	}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(got) = %d, want 2 (malformed row skipped)", len(got))
	}
}

func TestReplayWithoutHeaderRow(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ticks.csv")
	if err := os.WriteFile(path, []byte("1,BTC/USDT,100,1,101,1\n"), 0o600); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	r := NewReplay(path)
	var got []schema.BookTicker
	if err := r.Run(context.Background(), func(bt schema.BookTicker) {
		got = append(got, bt)
	}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len(got) = %d, want 1", len(got))
	}
}
