package strategy

import (
	"equity-backtest/internal/model"

	"github.com/shopspring/decimal"
)

// BuyHoldName is the registry name of the buy-and-hold strategy.
const BuyHoldName = "buyhold"

// BuyHoldParams configures the buy-and-hold strategy. The defaults mirror
// the canonical example algorithm: trade SPY minute bars over the trailing
// 30 days with $100k starting cash and a 50% target allocation.
type BuyHoldParams struct {
	Symbol       string
	Resolution   model.Resolution
	Weight       decimal.Decimal
	Cash         decimal.Decimal
	LookbackDays int
}

func DefaultBuyHoldParams() BuyHoldParams {
	return BuyHoldParams{
		Symbol:       "SPY",
		Resolution:   model.ResolutionMinute,
		Weight:       decimal.NewFromFloat(0.5),
		Cash:         decimal.NewFromInt(100000),
		LookbackDays: 30,
	}
}

// BuyHoldParamsFrom overlays request/config params onto the defaults.
func BuyHoldParamsFrom(m map[string]any) BuyHoldParams {
	p := DefaultBuyHoldParams()
	p.Symbol = paramStr(m, "symbol", p.Symbol)
	if r, err := model.ParseResolution(paramStr(m, "resolution", string(p.Resolution))); err == nil {
		p.Resolution = r
	}
	p.Weight = decimal.NewFromFloat(paramNum(m, "weight", 0.5))
	p.Cash = decimal.NewFromFloat(paramNum(m, "cash", 100000))
	p.LookbackDays = int(paramNum(m, "lookback_days", 30))
	return p
}

// BuyHold enters a single position at the target weight the first time
// data arrives with nothing invested, then holds for the rest of the
// backtest. Once invested, the not-invested guard makes every later data
// event a no-op.
type BuyHold struct {
	Params BuyHoldParams
}

func NewBuyHold(params BuyHoldParams) *BuyHold {
	return &BuyHold{Params: params}
}

func (s *BuyHold) Name() string { return BuyHoldName }

func (s *BuyHold) Initialize(host Host) error {
	end := host.Now()
	host.SetEndDate(end)
	host.SetStartDate(end.AddDate(0, 0, -s.Params.LookbackDays))
	host.SetCash(s.Params.Cash)
	return host.AddEquity(s.Params.Symbol, s.Params.Resolution)
}

func (s *BuyHold) OnData(host Host, slice model.Slice) error {
	if host.Portfolio().Invested() {
		return nil
	}
	if !slice.Has(s.Params.Symbol) {
		return nil
	}
	return host.SetHoldings(s.Params.Symbol, s.Params.Weight)
}
