package model

import "github.com/shopspring/decimal"

// AllocationDecision asks the host to move the holding in Symbol to
// Weight (a fraction of total portfolio value). Decisions are executed by
// the engine within the data event that produced them and are not retained.
type AllocationDecision struct {
	Symbol string
	Weight decimal.Decimal
}

// Side is a human-friendly label for a fill.
// Keep these values stable; they are intended for CSV output.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

func SideFromQuantity(qty decimal.Decimal) Side {
	if qty.Sign() < 0 {
		return SideSell
	}
	return SideBuy
}
