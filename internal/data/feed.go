package data

import (
	"fmt"
	"sort"
	"time"

	"equity-backtest/internal/model"
)

// Feed merges per-symbol bar histories into a single chronological stream
// of data events. Bars sharing a start time coalesce into one slice, so a
// strategy sees everything that happened at that instant together.
type Feed struct {
	slices []model.Slice
	pos    int
}

// NewFeed builds a feed from per-symbol histories. Each history must be
// sorted; symbols may have gaps relative to one another.
func NewFeed(histories map[string][]model.Bar) (*Feed, error) {
	byTime := map[time.Time]map[string]model.Bar{}
	for symbol, bars := range histories {
		for _, b := range bars {
			if b.Symbol == "" {
				b.Symbol = symbol
			}
			m, ok := byTime[b.Start]
			if !ok {
				m = map[string]model.Bar{}
				byTime[b.Start] = m
			}
			if _, dup := m[b.Symbol]; dup {
				return nil, fmt.Errorf("duplicate bar for %s at %s", b.Symbol, b.Start)
			}
			m[b.Symbol] = b
		}
	}

	slices := make([]model.Slice, 0, len(byTime))
	for t, bars := range byTime {
		slices = append(slices, model.Slice{Time: t, Bars: bars})
	}
	sort.Slice(slices, func(i, j int) bool {
		return slices[i].Time.Before(slices[j].Time)
	})
	return &Feed{slices: slices}, nil
}

// Next returns the next slice in time order, or false when exhausted.
func (f *Feed) Next() (model.Slice, bool) {
	if f.pos >= len(f.slices) {
		return model.Slice{}, false
	}
	s := f.slices[f.pos]
	f.pos++
	return s, true
}

func (f *Feed) Len() int { return len(f.slices) }

// Reset rewinds the feed to the beginning.
func (f *Feed) Reset() { f.pos = 0 }
