package analysis

import (
	"math"
	"time"

	"equity-backtest/internal/backtest"

	"github.com/shopspring/decimal"
)

// Summary aggregates a backtest's equity curve into the headline numbers.
type Summary struct {
	StartEquity    decimal.Decimal `json:"start_equity"`
	FinalEquity    decimal.Decimal `json:"final_equity"`
	TotalReturnPct float64         `json:"total_return_pct"`
	MaxDrawdownPct float64         `json:"max_drawdown_pct"`
	Sharpe         float64         `json:"sharpe"`
	Events         int             `json:"events"`
	Fills          int             `json:"fills"`
}

// Summarize computes return, drawdown and an annualized Sharpe ratio from
// the per-event ledger. Ratio math runs on float64; the equity endpoints
// stay exact.
func Summarize(res *backtest.Result) Summary {
	s := Summary{
		StartEquity: res.StartingCash,
		FinalEquity: res.FinalEquity,
		Events:      len(res.Ledger),
		Fills:       len(res.Fills),
	}
	if len(res.Ledger) == 0 || res.StartingCash.IsZero() {
		return s
	}

	start := res.StartingCash.InexactFloat64()
	final := res.FinalEquity.InexactFloat64()
	s.TotalReturnPct = (final/start - 1) * 100

	s.MaxDrawdownPct = maxDrawdownPct(res.Ledger)
	s.Sharpe = annualizedSharpe(res.Ledger)
	return s
}

func maxDrawdownPct(ledger []backtest.LedgerRow) float64 {
	peak := ledger[0].Equity.InexactFloat64()
	worst := 0.0
	for _, row := range ledger {
		eq := row.Equity.InexactFloat64()
		if eq > peak {
			peak = eq
		}
		if peak > 0 {
			dd := (peak - eq) / peak * 100
			if dd > worst {
				worst = dd
			}
		}
	}
	return worst
}

func annualizedSharpe(ledger []backtest.LedgerRow) float64 {
	if len(ledger) < 3 {
		return 0
	}

	returns := make([]float64, 0, len(ledger)-1)
	for i := 1; i < len(ledger); i++ {
		prev := ledger[i-1].Equity.InexactFloat64()
		cur := ledger[i].Equity.InexactFloat64()
		if prev > 0 {
			returns = append(returns, cur/prev-1)
		}
	}
	if len(returns) < 2 {
		return 0
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(returns) - 1)
	std := math.Sqrt(variance)
	if std == 0 {
		return 0
	}

	// Infer the event period from the ledger itself so minute and daily
	// data annualize correctly.
	period := ledger[1].Time.Sub(ledger[0].Time)
	if period <= 0 {
		return 0
	}
	periodsPerYear := float64(365*24*time.Hour) / float64(period)
	return mean / std * math.Sqrt(periodsPerYear)
}
