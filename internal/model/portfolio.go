package model

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrNonPositivePrice = errors.New("price must be > 0")

// Position is the holding in a single symbol.
type Position struct {
	Symbol    string
	Quantity  decimal.Decimal // signed; fractional shares allowed
	AvgPrice  decimal.Decimal // average fill price of the open quantity
	LastPrice decimal.Decimal // most recent mark
}

func (p Position) Value() decimal.Decimal {
	return p.Quantity.Mul(p.LastPrice)
}

// Portfolio tracks cash plus per-symbol positions and marks.
// It is mutated only by the backtest host; strategies see it through the
// read-only View.
type Portfolio struct {
	cash      decimal.Decimal
	positions map[string]*Position
}

// View is the read-only portfolio surface handed to strategies.
type View interface {
	Invested() bool
	Cash() decimal.Decimal
	Quantity(symbol string) decimal.Decimal
	HoldingsValue(symbol string) decimal.Decimal
	Equity() decimal.Decimal
}

func NewPortfolio() *Portfolio {
	return &Portfolio{positions: make(map[string]*Position)}
}

func (p *Portfolio) SetCash(amount decimal.Decimal) {
	p.cash = amount
}

func (p *Portfolio) Cash() decimal.Decimal {
	return p.cash
}

// Invested reports whether any position has a non-zero quantity.
func (p *Portfolio) Invested() bool {
	for _, pos := range p.positions {
		if !pos.Quantity.IsZero() {
			return true
		}
	}
	return false
}

func (p *Portfolio) Quantity(symbol string) decimal.Decimal {
	if pos, ok := p.positions[symbol]; ok {
		return pos.Quantity
	}
	return decimal.Zero
}

func (p *Portfolio) HoldingsValue(symbol string) decimal.Decimal {
	if pos, ok := p.positions[symbol]; ok {
		return pos.Value()
	}
	return decimal.Zero
}

// Equity is cash plus the marked value of all positions.
func (p *Portfolio) Equity() decimal.Decimal {
	eq := p.cash
	for _, pos := range p.positions {
		eq = eq.Add(pos.Value())
	}
	return eq
}

// MarkPrice updates the mark used for valuation. Symbols are created lazily
// so a mark can arrive before the first fill.
func (p *Portfolio) MarkPrice(symbol string, price decimal.Decimal) {
	pos, ok := p.positions[symbol]
	if !ok {
		pos = &Position{Symbol: symbol}
		p.positions[symbol] = pos
	}
	pos.LastPrice = price
}

// ApplyFill adjusts cash and quantity for a fill of qty shares at price.
// Positive qty buys, negative qty sells. Equity is preserved at the fill
// price: cash moves by -qty*price while holdings move by +qty*price.
func (p *Portfolio) ApplyFill(symbol string, qty, price decimal.Decimal) error {
	if price.LessThanOrEqual(decimal.Zero) {
		return ErrNonPositivePrice
	}
	if qty.IsZero() {
		return nil
	}

	pos, ok := p.positions[symbol]
	if !ok {
		pos = &Position{Symbol: symbol}
		p.positions[symbol] = pos
	}

	newQty := pos.Quantity.Add(qty)
	switch {
	case pos.Quantity.IsZero() || pos.Quantity.Sign() == qty.Sign():
		// Opening or adding: weight the average price by quantity.
		total := pos.AvgPrice.Mul(pos.Quantity).Add(price.Mul(qty))
		pos.AvgPrice = total.Div(newQty)
	case newQty.IsZero():
		pos.AvgPrice = decimal.Zero
	case newQty.Sign() != pos.Quantity.Sign():
		// Crossed through flat; the remainder opened at this fill price.
		pos.AvgPrice = price
	}
	pos.Quantity = newQty
	pos.LastPrice = price

	p.cash = p.cash.Sub(qty.Mul(price))
	return nil
}

// Snapshot returns a copy of the current positions, for reporting.
func (p *Portfolio) Snapshot() []Position {
	out := make([]Position, 0, len(p.positions))
	for _, pos := range p.positions {
		out = append(out, *pos)
	}
	return out
}
