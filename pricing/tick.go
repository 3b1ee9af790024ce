package pricing

import (
	"context"
	"time"
)

// Feed supplies the next batch of quotes for observed instruments.
// It returns io.EOF when a finite source is exhausted.
type Feed interface {
	Quotes(ctx context.Context) ([]Tick, error)
}

type Tick struct {
	Instrument string
	Time       time.Time
	Bid        float64
	Ask        float64
}

func (t Tick) Mid() float64 {
	if t.Bid == 0 && t.Ask == 0 {
		return 0
	}
	return (t.Bid + t.Ask) / 2
}

func (t Tick) Spread() float64 {
	return t.Ask - t.Bid
}

// StaticFeed returns the same ticks on every call.
type StaticFeed struct {
	Ticks []Tick
	Err   error
	Calls int
}

func (f *StaticFeed) Quotes(ctx context.Context) ([]Tick, error) {
	f.Calls++
	if f.Err != nil {
		return nil, f.Err
	}
	out := make([]Tick, len(f.Ticks))
	copy(out, f.Ticks)
	return out, nil
}
