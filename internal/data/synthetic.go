package data

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"equity-backtest/internal/model"

	"github.com/shopspring/decimal"
)

// SyntheticSource generates a deterministic random-walk bar series so the
// engine can run without any history files. The same seed always produces
// the same series for a given symbol and window.
type SyntheticSource struct {
	Seed       int64
	StartPrice float64 // first open; defaults to 100
	StepVol    float64 // per-bar log-return stddev; defaults to 0.0005
}

func NewSyntheticSource(seed int64) *SyntheticSource {
	return &SyntheticSource{Seed: seed}
}

func (s *SyntheticSource) History(symbol string, resolution model.Resolution, start, end time.Time) ([]model.Bar, error) {
	step := resolution.Duration()
	if step == 0 {
		return nil, fmt.Errorf("unknown resolution %q", resolution)
	}
	if !start.Before(end) {
		return nil, fmt.Errorf("empty window [%s, %s)", start, end)
	}

	startPrice := s.StartPrice
	if startPrice <= 0 {
		startPrice = 100
	}
	vol := s.StepVol
	if vol <= 0 {
		vol = 0.0005
	}

	// Per-symbol offset keeps two symbols from walking in lockstep.
	seed := s.Seed
	for _, c := range symbol {
		seed = seed*31 + int64(c)
	}
	rng := rand.New(rand.NewSource(seed))

	var bars []model.Bar
	price := startPrice
	for t := start; t.Add(step).Before(end) || t.Add(step).Equal(end); t = t.Add(step) {
		open := price
		price = open * math.Exp(rng.NormFloat64()*vol)
		high := math.Max(open, price) * (1 + rng.Float64()*vol)
		low := math.Min(open, price) * (1 - rng.Float64()*vol)

		bars = append(bars, model.Bar{
			Symbol: symbol,
			Start:  t,
			End:    t.Add(step),
			Open:   decimal.NewFromFloat(open).Round(4),
			High:   decimal.NewFromFloat(high).Round(4),
			Low:    decimal.NewFromFloat(low).Round(4),
			Close:  decimal.NewFromFloat(price).Round(4),
			Volume: 1000 + rng.Int63n(9000),
		})
	}
	return bars, nil
}
