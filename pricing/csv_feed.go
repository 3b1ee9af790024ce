package pricing

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// CSVFeed replays recorded quotes. Rows are
//
//	time,instrument,bid,ask
//
// with an optional header. Each call to Quotes returns the next run of rows
// sharing one timestamp.
type CSVFeed struct {
	mu       sync.Mutex
	c        io.Closer
	r        *csv.Reader
	pending  *Tick
	sawFirst bool
}

func NewCSVFeed(r io.Reader) *CSVFeed {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	return &CSVFeed{r: cr}
}

func OpenCSVFeed(path string) (*CSVFeed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	feed := NewCSVFeed(f)
	feed.c = f
	return feed, nil
}

func (f *CSVFeed) Close() error {
	if f.c != nil {
		return f.c.Close()
	}
	return nil
}

func (f *CSVFeed) Quotes(ctx context.Context) ([]Tick, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []Tick
	if f.pending != nil {
		out = append(out, *f.pending)
		f.pending = nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t, err := f.next()
		if err == io.EOF {
			if len(out) == 0 {
				return nil, io.EOF
			}
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		if len(out) > 0 && !t.Time.Equal(out[0].Time) {
			f.pending = &t
			return out, nil
		}
		out = append(out, t)
	}
}

func (f *CSVFeed) next() (Tick, error) {
	for {
		row, err := f.r.Read()
		if err != nil {
			return Tick{}, err
		}
		if len(row) == 0 {
			continue
		}
		if !f.sawFirst {
			f.sawFirst = true
			if strings.EqualFold(strings.TrimSpace(row[0]), "time") {
				continue
			}
		}
		if len(row) < 4 {
			return Tick{}, fmt.Errorf("want time,instrument,bid,ask, got %v", row)
		}
		return parseTickRow(row)
	}
}

func parseTickRow(row []string) (Tick, error) {
	ts := strings.TrimSpace(row[0])
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return Tick{}, fmt.Errorf("bad time %q: %w", ts, err)
	}

	inst := strings.TrimSpace(row[1])
	if inst == "" {
		return Tick{}, fmt.Errorf("missing instrument at %s", ts)
	}

	bid, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
	if err != nil {
		return Tick{}, fmt.Errorf("bad bid %q: %w", row[2], err)
	}
	ask, err := strconv.ParseFloat(strings.TrimSpace(row[3]), 64)
	if err != nil {
		return Tick{}, fmt.Errorf("bad ask %q: %w", row[3], err)
	}
	return Tick{Time: t.UTC(), Instrument: inst, Bid: bid, Ask: ask}, nil
}
