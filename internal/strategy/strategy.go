package strategy

import (
	"fmt"
	"strings"
	"time"

	"equity-backtest/internal/model"

	"github.com/shopspring/decimal"
)

// Host is the surface the backtest platform exposes to a strategy.
// Configuration setters are only honored during Initialize; after that the
// backtest window and starting cash are fixed.
type Host interface {
	// Now is the wall clock at initialization time. The host owns the
	// simulation clock; strategies must not call time.Now directly.
	Now() time.Time

	SetStartDate(t time.Time)
	SetEndDate(t time.Time)
	SetCash(amount decimal.Decimal)
	AddEquity(symbol string, resolution model.Resolution) error

	// Portfolio is a read-only view of cash and holdings.
	Portfolio() model.View

	// SetHoldings asks the host to move the position in symbol to the
	// given fraction of total portfolio value. Execution happens in the
	// host's layer, within the current data event.
	SetHoldings(symbol string, weight decimal.Decimal) error
}

// Strategy is a pluggable algorithm driven by the host's event loop:
// Initialize exactly once before any data arrives, then OnData once per
// data event, sequentially, for the duration of the backtest window.
type Strategy interface {
	Name() string
	Initialize(host Host) error
	OnData(host Host, slice model.Slice) error
}

// New builds a strategy by name with params from config or an API request.
func New(name string, params map[string]any) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case BuyHoldName:
		return NewBuyHold(BuyHoldParamsFrom(params)), nil
	case SMACrossName:
		return NewSMACross(SMACrossParamsFrom(params)), nil
	default:
		return nil, fmt.Errorf("unsupported strategy: %q", name)
	}
}

// Param plucking helpers. YAML and JSON decoders hand us map[string]any
// with float64 or int numbers depending on the source.

func paramNum(m map[string]any, key string, def float64) float64 {
	if v, ok := m[key]; ok && v != nil {
		switch x := v.(type) {
		case float64:
			return x
		case int:
			return float64(x)
		}
	}
	return def
}

func paramStr(m map[string]any, key string, def string) string {
	if v, ok := m[key]; ok && v != nil {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return def
}
