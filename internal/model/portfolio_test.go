package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortfolioStartsFlat(t *testing.T) {
	p := NewPortfolio()
	p.SetCash(decimal.NewFromInt(100000))

	assert.False(t, p.Invested())
	assert.True(t, p.Equity().Equal(decimal.NewFromInt(100000)))
	assert.True(t, p.Quantity("SPY").IsZero())
	assert.True(t, p.HoldingsValue("SPY").IsZero())
}

func TestApplyFillPreservesEquity(t *testing.T) {
	p := NewPortfolio()
	p.SetCash(decimal.NewFromInt(100000))

	price := decimal.NewFromInt(100)
	require.NoError(t, p.ApplyFill("SPY", decimal.NewFromInt(500), price))

	assert.True(t, p.Invested())
	assert.True(t, p.Cash().Equal(decimal.NewFromInt(50000)), "cash %s", p.Cash())
	assert.True(t, p.HoldingsValue("SPY").Equal(decimal.NewFromInt(50000)))
	assert.True(t, p.Equity().Equal(decimal.NewFromInt(100000)), "equity %s", p.Equity())
}

func TestApplyFillAveragesPrice(t *testing.T) {
	p := NewPortfolio()
	p.SetCash(decimal.NewFromInt(10000))

	require.NoError(t, p.ApplyFill("SPY", decimal.NewFromInt(10), decimal.NewFromInt(100)))
	require.NoError(t, p.ApplyFill("SPY", decimal.NewFromInt(10), decimal.NewFromInt(110)))

	pos := p.Snapshot()
	require.Len(t, pos, 1)
	assert.True(t, pos[0].Quantity.Equal(decimal.NewFromInt(20)))
	assert.True(t, pos[0].AvgPrice.Equal(decimal.NewFromInt(105)), "avg %s", pos[0].AvgPrice)
}

func TestSellToFlat(t *testing.T) {
	p := NewPortfolio()
	p.SetCash(decimal.NewFromInt(10000))

	require.NoError(t, p.ApplyFill("SPY", decimal.NewFromInt(50), decimal.NewFromInt(100)))
	require.NoError(t, p.ApplyFill("SPY", decimal.NewFromInt(-50), decimal.NewFromInt(120)))

	assert.False(t, p.Invested())
	// Bought 5000, sold 6000: 1000 profit.
	assert.True(t, p.Cash().Equal(decimal.NewFromInt(11000)), "cash %s", p.Cash())
}

func TestMarkPriceMovesEquity(t *testing.T) {
	p := NewPortfolio()
	p.SetCash(decimal.NewFromInt(10000))
	require.NoError(t, p.ApplyFill("SPY", decimal.NewFromInt(100), decimal.NewFromInt(100)))

	p.MarkPrice("SPY", decimal.NewFromInt(101))
	assert.True(t, p.Equity().Equal(decimal.NewFromInt(10100)), "equity %s", p.Equity())
}

func TestApplyFillRejectsBadPrice(t *testing.T) {
	p := NewPortfolio()
	err := p.ApplyFill("SPY", decimal.NewFromInt(1), decimal.Zero)
	assert.ErrorIs(t, err, ErrNonPositivePrice)
}

func TestZeroQuantityFillIsNoop(t *testing.T) {
	p := NewPortfolio()
	p.SetCash(decimal.NewFromInt(100))
	require.NoError(t, p.ApplyFill("SPY", decimal.Zero, decimal.NewFromInt(10)))
	assert.False(t, p.Invested())
	assert.True(t, p.Cash().Equal(decimal.NewFromInt(100)))
}
