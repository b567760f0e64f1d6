package strategy

import (
	"equity-backtest/internal/model"

	"github.com/shopspring/decimal"
)

// SMACrossName is the registry name of the SMA crossover strategy.
const SMACrossName = "smacross"

type SMACrossParams struct {
	Symbol       string
	Resolution   model.Resolution
	Window       int // bars in the moving average
	Weight       decimal.Decimal
	Cash         decimal.Decimal
	LookbackDays int
}

func DefaultSMACrossParams() SMACrossParams {
	return SMACrossParams{
		Symbol:       "SPY",
		Resolution:   model.ResolutionMinute,
		Window:       20,
		Weight:       decimal.NewFromFloat(0.9),
		Cash:         decimal.NewFromInt(100000),
		LookbackDays: 30,
	}
}

func SMACrossParamsFrom(m map[string]any) SMACrossParams {
	p := DefaultSMACrossParams()
	p.Symbol = paramStr(m, "symbol", p.Symbol)
	if r, err := model.ParseResolution(paramStr(m, "resolution", string(p.Resolution))); err == nil {
		p.Resolution = r
	}
	p.Window = int(paramNum(m, "window", float64(p.Window)))
	if p.Window < 2 {
		p.Window = 2
	}
	p.Weight = decimal.NewFromFloat(paramNum(m, "weight", 0.9))
	p.Cash = decimal.NewFromFloat(paramNum(m, "cash", 100000))
	p.LookbackDays = int(paramNum(m, "lookback_days", 30))
	return p
}

// SMACross holds the target weight while the close is above its simple
// moving average and exits to cash when it drops below. No decision is
// issued until the window has filled.
type SMACross struct {
	Params SMACrossParams

	closes []decimal.Decimal
	sum    decimal.Decimal
}

func NewSMACross(params SMACrossParams) *SMACross {
	return &SMACross{Params: params}
}

func (s *SMACross) Name() string { return SMACrossName }

func (s *SMACross) Initialize(host Host) error {
	end := host.Now()
	host.SetEndDate(end)
	host.SetStartDate(end.AddDate(0, 0, -s.Params.LookbackDays))
	host.SetCash(s.Params.Cash)
	return host.AddEquity(s.Params.Symbol, s.Params.Resolution)
}

func (s *SMACross) OnData(host Host, slice model.Slice) error {
	bar, ok := slice.Bar(s.Params.Symbol)
	if !ok {
		return nil
	}

	s.closes = append(s.closes, bar.Close)
	s.sum = s.sum.Add(bar.Close)
	if len(s.closes) > s.Params.Window {
		s.sum = s.sum.Sub(s.closes[0])
		s.closes = s.closes[1:]
	}
	if len(s.closes) < s.Params.Window {
		return nil
	}
	sma := s.sum.Div(decimal.NewFromInt(int64(s.Params.Window)))

	invested := !host.Portfolio().Quantity(s.Params.Symbol).IsZero()
	switch {
	case !invested && bar.Close.GreaterThan(sma):
		return host.SetHoldings(s.Params.Symbol, s.Params.Weight)
	case invested && bar.Close.LessThan(sma):
		return host.SetHoldings(s.Params.Symbol, decimal.Zero)
	}
	return nil
}
