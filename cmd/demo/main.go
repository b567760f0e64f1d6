package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"equity-backtest/internal/analysis"
	"equity-backtest/internal/backtest"
	"equity-backtest/internal/data"
	"equity-backtest/internal/model"
	"equity-backtest/internal/strategy"

	"github.com/shopspring/decimal"
)

// Demo:
// - Generate a synthetic minute-bar series
// - Run the buy-and-hold reference strategy against it
// - Print the summary to show how the pieces fit together
func main() {
	seed := flag.Int64("seed", 1, "Synthetic data seed")
	days := flag.Int("days", 5, "Backtest window length in days")
	flag.Parse()

	strat := strategy.NewBuyHold(strategy.BuyHoldParams{
		Symbol:       "SPY",
		Resolution:   model.ResolutionMinute,
		Weight:       decimal.NewFromFloat(0.5),
		Cash:         decimal.NewFromInt(100000),
		LookbackDays: *days,
	})

	// Pin the clock so repeated runs with the same seed match exactly.
	asOf := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	engine := backtest.New(backtest.WithClock(func() time.Time { return asOf }))

	res, err := engine.Run(strat, data.NewSyntheticSource(*seed))
	if err != nil {
		fatal(err)
	}

	summary := analysis.Summarize(res)
	fmt.Printf("events=%d fills=%d\n", summary.Events, summary.Fills)
	fmt.Printf("start=$%s final=$%s return=%.3f%%\n",
		summary.StartEquity.Round(2), summary.FinalEquity.Round(2), summary.TotalReturnPct)
	for _, f := range res.Fills {
		fmt.Printf("fill: %s %s %s @ %s\n", f.Side, f.Quantity.Round(4), f.Symbol, f.Price)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
