// replay.go implements the Source interface against the CSV replay format
// of spec.md §6: "timestamp,symbol,bid_price,bid_qty,ask_price,ask_qty",
// header row optional, replayed synchronously as fast as possible.
// Malformed rows are logged and skipped rather than aborting the replay.
package feed

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/yanun0323/decimal"
	"github.com/yanun0323/errors"
	"github.com/yanun0323/logs"

	"github.com/yanun0323/tickcore/internal/schema"
)

const replayColumns = 6

// Replay is a Source backed by a CSV file of recorded ticks.
type Replay struct {
	Path string
}

// NewReplay creates a replay source reading from path.
func NewReplay(path string) *Replay {
	return &Replay{Path: path}
}

// Run reads every row of the CSV file and invokes handler in file order. An
// optional header row (first field not parseable as a timestamp) is
// detected and skipped automatically.
func (r *Replay) Run(ctx context.Context, handler Handler) error {
	f, err := os.Open(r.Path)
	if err != nil {
		return errors.Wrap(err, "feed: open replay file")
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	first := true
	for {
		if ctx.Err() != nil {
			return nil
		}
		row, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "feed: read replay row")
		}
		if first {
			first = false
			if isHeaderRow(row) {
				continue
			}
		}
		ticker, ok := parseReplayRow(row)
		if !ok {
			logs.Warnf("feed: malformed replay row, skipping: %v", row)
			continue
		}
		handler(ticker)
	}
}

func isHeaderRow(row []string) bool {
	if len(row) == 0 {
		return false
	}
	_, err := strconv.ParseInt(row[0], 10, 64)
	return err != nil
}

func parseReplayRow(row []string) (schema.BookTicker, bool) {
	if len(row) < replayColumns {
		return schema.BookTicker{}, false
	}
	bidPrice, err1 := decimal.NewFromString(row[2])
	bidQty, err2 := decimal.NewFromString(row[3])
	askPrice, err3 := decimal.NewFromString(row[4])
	askQty, err4 := decimal.NewFromString(row[5])
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil || row[1] == "" {
		return schema.BookTicker{}, false
	}
	return schema.BookTicker{
		Symbol:       row[1],
		BestBidPrice: schema.Price(bidPrice.Float64()),
		BestBidQty:   schema.Quantity(bidQty.Float64()),
		BestAskPrice: schema.Price(askPrice.Float64()),
		BestAskQty:   schema.Quantity(askQty.Float64()),
	}, true
}
