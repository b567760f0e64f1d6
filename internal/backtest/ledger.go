package backtest

import (
	"time"

	"equity-backtest/internal/model"

	"github.com/shopspring/decimal"
)

// LedgerRow is one row of per-event output: the portfolio state after the
// strategy and execution layer ran for that data event. This is the
// primary artifact for "what happened" in a backtest.
type LedgerRow struct {
	Index int
	Time  time.Time

	Cash     decimal.Decimal
	Holdings decimal.Decimal
	Equity   decimal.Decimal

	Decisions int // allocation decisions issued during this event
	Fills     int // fills executed during this event
}

// Fill records one executed allocation adjustment.
type Fill struct {
	Time     time.Time
	Symbol   string
	Side     model.Side
	Quantity decimal.Decimal // absolute shares
	Price    decimal.Decimal
	Value    decimal.Decimal // Quantity * Price
}

type Result struct {
	Strategy     string
	Window       Window
	StartingCash decimal.Decimal
	FinalEquity  decimal.Decimal
	Ledger       []LedgerRow
	Fills        []Fill
}

type Window struct {
	Start time.Time
	End   time.Time
}
