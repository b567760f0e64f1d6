package strategy

import (
	"testing"
	"time"

	"equity-backtest/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smaStrategy(window int) *SMACross {
	p := DefaultSMACrossParams()
	p.Window = window
	return NewSMACross(p)
}

func TestSMACrossWaitsForWindow(t *testing.T) {
	now := time.Date(2024, 6, 3, 14, 30, 0, 0, time.UTC)
	host := &fakeHost{now: now}
	strat := smaStrategy(3)
	require.NoError(t, strat.Initialize(host))

	require.NoError(t, strat.OnData(host, spySlice(now, 100)))
	require.NoError(t, strat.OnData(host, spySlice(now.Add(time.Minute), 100)))
	assert.Empty(t, host.decisions, "no decision before the window fills")
}

func TestSMACrossEntersAboveAverage(t *testing.T) {
	now := time.Date(2024, 6, 3, 14, 30, 0, 0, time.UTC)
	host := &fakeHost{now: now}
	strat := smaStrategy(3)
	require.NoError(t, strat.Initialize(host))

	closes := []int64{100, 100, 104} // SMA ~101.33, close 104 above
	for i, c := range closes {
		require.NoError(t, strat.OnData(host, spySlice(now.Add(time.Duration(i)*time.Minute), c)))
	}

	require.Len(t, host.decisions, 1)
	assert.True(t, host.decisions[0].Weight.Equal(decimal.NewFromFloat(0.9)))
}

func TestSMACrossExitsBelowAverage(t *testing.T) {
	now := time.Date(2024, 6, 3, 14, 30, 0, 0, time.UTC)
	host := &fakeHost{now: now}
	strat := smaStrategy(3)
	require.NoError(t, strat.Initialize(host))

	// Enter on the third bar, then a sharp drop below the average.
	closes := []int64{100, 100, 104, 90}
	for i, c := range closes {
		require.NoError(t, strat.OnData(host, spySlice(now.Add(time.Duration(i)*time.Minute), c)))
	}

	require.Len(t, host.decisions, 2)
	assert.True(t, host.decisions[1].Weight.IsZero(), "exit decision targets zero weight")
}

func TestSMACrossParamsFromClampsWindow(t *testing.T) {
	p := SMACrossParamsFrom(map[string]any{"window": 1})
	assert.Equal(t, 2, p.Window)
}

func TestSMACrossIgnoresOtherSymbols(t *testing.T) {
	now := time.Date(2024, 6, 3, 14, 30, 0, 0, time.UTC)
	host := &fakeHost{now: now}
	strat := smaStrategy(2)
	require.NoError(t, strat.Initialize(host))

	slice := model.Slice{Time: now, Bars: map[string]model.Bar{
		"QQQ": {Symbol: "QQQ", Start: now, End: now.Add(time.Minute), Close: decimal.NewFromInt(400)},
	}}
	require.NoError(t, strat.OnData(host, slice))
	assert.Empty(t, host.decisions)
}
