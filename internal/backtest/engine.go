package backtest

import (
	"fmt"
	"time"

	"equity-backtest/internal/data"
	"equity-backtest/internal/model"
	"equity-backtest/internal/strategy"

	"github.com/sirupsen/logrus"
)

// Engine drives the strategy lifecycle: Initialize exactly once, then
// OnData per slice, sequentially and synchronously, executing queued
// allocation decisions against the portfolio at each event's close.
type Engine struct {
	clock func() time.Time
	log   *logrus.Entry
}

type Option func(*Engine)

// WithClock pins the host wall clock, so backtest windows anchored to
// "now" are reproducible.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) { e.clock = clock }
}

func New(opts ...Option) *Engine {
	e := &Engine{
		clock: time.Now,
		log:   logrus.WithField("component", "engine"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes strat against history from source and returns the ledger.
func (e *Engine) Run(strat strategy.Strategy, source data.Source) (*Result, error) {
	if strat == nil {
		return nil, fmt.Errorf("strategy is nil")
	}
	if source == nil {
		return nil, fmt.Errorf("data source is nil")
	}

	host := NewHost(e.clock)
	if err := strat.Initialize(host); err != nil {
		return nil, fmt.Errorf("initialize %s: %w", strat.Name(), err)
	}
	if err := host.seal(); err != nil {
		return nil, fmt.Errorf("configuration after initialize: %w", err)
	}

	histories := map[string][]model.Bar{}
	for _, sub := range host.Subscriptions() {
		bars, err := source.History(sub.Symbol, sub.Resolution, host.StartDate(), host.EndDate())
		if err != nil {
			return nil, fmt.Errorf("history %s: %w", sub.Symbol, err)
		}
		histories[sub.Symbol] = e.clampWindow(sub.Symbol, bars, host.StartDate(), host.EndDate())
	}

	feed, err := data.NewFeed(histories)
	if err != nil {
		return nil, err
	}
	if feed.Len() == 0 {
		return nil, fmt.Errorf("no data in window [%s, %s)", host.StartDate(), host.EndDate())
	}

	e.log.WithFields(logrus.Fields{
		"strategy": strat.Name(),
		"events":   feed.Len(),
		"start":    host.StartDate(),
		"end":      host.EndDate(),
	}).Info("starting backtest")

	portfolio := host.PortfolioState()
	ledger := make([]LedgerRow, 0, feed.Len())
	var fills []Fill

	idx := 0
	for {
		slice, ok := feed.Next()
		if !ok {
			break
		}
		host.markPrices(slice)

		if err := strat.OnData(host, slice); err != nil {
			return nil, fmt.Errorf("event %d at %s: %w", idx, slice.Time, err)
		}

		decisions := host.takeDecisions()
		eventFills := 0
		for _, d := range decisions {
			fill, ok, err := e.execute(portfolio, slice, d)
			if err != nil {
				return nil, fmt.Errorf("event %d execute %s: %w", idx, d.Symbol, err)
			}
			if ok {
				fills = append(fills, fill)
				eventFills++
			}
		}

		holdings := portfolio.Equity().Sub(portfolio.Cash())
		ledger = append(ledger, LedgerRow{
			Index:     idx,
			Time:      slice.Time,
			Cash:      portfolio.Cash(),
			Holdings:  holdings,
			Equity:    portfolio.Equity(),
			Decisions: len(decisions),
			Fills:     eventFills,
		})
		idx++
	}

	res := &Result{
		Strategy:     strat.Name(),
		Window:       Window{Start: host.StartDate(), End: host.EndDate()},
		StartingCash: host.StartingCash(),
		FinalEquity:  portfolio.Equity(),
		Ledger:       ledger,
		Fills:        fills,
	}
	e.log.WithFields(logrus.Fields{
		"strategy":     strat.Name(),
		"fills":        len(fills),
		"final_equity": res.FinalEquity,
	}).Info("backtest complete")
	return res, nil
}

// clampWindow drops bars a source returned outside the sealed backtest
// window, so a misbehaving source cannot replay events the strategy never
// asked for.
func (e *Engine) clampWindow(symbol string, bars []model.Bar, start, end time.Time) []model.Bar {
	out := make([]model.Bar, 0, len(bars))
	for _, b := range bars {
		if b.Start.Before(start) || b.End.After(end) {
			e.log.WithFields(logrus.Fields{
				"symbol": symbol,
				"start":  b.Start,
			}).Debug("dropping bar outside backtest window")
			continue
		}
		out = append(out, b)
	}
	return out
}

// execute fills one allocation decision at the event's close price.
// Decisions for symbols with no bar in this slice are dropped; there is no
// price to fill against.
func (e *Engine) execute(portfolio *model.Portfolio, slice model.Slice, d model.AllocationDecision) (Fill, bool, error) {
	bar, ok := slice.Bar(d.Symbol)
	if !ok {
		e.log.WithField("symbol", d.Symbol).Warn("no bar for decision, skipping")
		return Fill{}, false, nil
	}

	target := portfolio.Equity().Mul(d.Weight)
	delta := target.Sub(portfolio.HoldingsValue(d.Symbol))
	if delta.IsZero() {
		return Fill{}, false, nil
	}
	qty := delta.Div(bar.Close)
	if err := portfolio.ApplyFill(d.Symbol, qty, bar.Close); err != nil {
		return Fill{}, false, err
	}

	return Fill{
		Time:     slice.Time,
		Symbol:   d.Symbol,
		Side:     model.SideFromQuantity(qty),
		Quantity: qty.Abs(),
		Price:    bar.Close,
		Value:    qty.Abs().Mul(bar.Close),
	}, true, nil
}
