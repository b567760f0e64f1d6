package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Resolution is the granularity of market data events.
type Resolution string

const (
	ResolutionMinute Resolution = "minute"
	ResolutionHour   Resolution = "hour"
	ResolutionDaily  Resolution = "daily"
)

// Duration returns the bar length for the resolution.
func (r Resolution) Duration() time.Duration {
	switch r {
	case ResolutionMinute:
		return time.Minute
	case ResolutionHour:
		return time.Hour
	case ResolutionDaily:
		return 24 * time.Hour
	default:
		return 0
	}
}

func (r Resolution) Valid() bool {
	return r.Duration() != 0
}

func ParseResolution(s string) (Resolution, error) {
	r := Resolution(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("unknown resolution %q", s)
	}
	return r, nil
}

// Subscription is one instrument the algorithm receives data for.
type Subscription struct {
	Symbol     string     `json:"symbol" yaml:"symbol"`
	Resolution Resolution `json:"resolution" yaml:"resolution"`
}

// Bar is one OHLCV bar for a single symbol.
// Prices are in account currency; Start/End bound the bar interval.
type Bar struct {
	Symbol string    `json:"symbol"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`

	Open   decimal.Decimal `json:"open"`
	High   decimal.Decimal `json:"high"`
	Low    decimal.Decimal `json:"low"`
	Close  decimal.Decimal `json:"close"`
	Volume int64           `json:"volume"`
}

func (b Bar) Duration() time.Duration {
	return b.End.Sub(b.Start)
}

// Slice is one data event: everything that happened across the
// subscribed symbols at a single point in simulated time.
type Slice struct {
	Time time.Time
	Bars map[string]Bar
}

// Bar returns the bar for symbol, if the slice contains one.
func (s Slice) Bar(symbol string) (Bar, bool) {
	b, ok := s.Bars[symbol]
	return b, ok
}

func (s Slice) Has(symbol string) bool {
	_, ok := s.Bars[symbol]
	return ok
}
