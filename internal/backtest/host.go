package backtest

import (
	"errors"
	"fmt"
	"time"

	"equity-backtest/internal/model"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidWindow   = errors.New("start date must be before end date")
	ErrNonPositiveCash = errors.New("starting cash must be > 0")
	ErrNoSubscriptions = errors.New("at least one instrument subscription is required")
	ErrNotSubscribed   = errors.New("symbol is not subscribed")
	ErrWeightRange     = errors.New("target weight must be within [-1, 1]")
)

// Host is the platform side of the strategy contract. It owns the backtest
// configuration, the subscription registry, the portfolio and the
// simulation clock. Configuration is written once during Initialize and is
// immutable afterwards; the engine seals the host before replaying data.
type Host struct {
	clock func() time.Time

	startDate    time.Time
	endDate      time.Time
	startingCash decimal.Decimal

	subs      []model.Subscription
	portfolio *model.Portfolio
	pending   []model.AllocationDecision

	sealed bool
	log    *logrus.Entry
}

func NewHost(clock func() time.Time) *Host {
	if clock == nil {
		clock = time.Now
	}
	return &Host{
		clock:     clock,
		portfolio: model.NewPortfolio(),
		log:       logrus.WithField("component", "host"),
	}
}

// Now returns the wall clock at initialization time. Strategies use it to
// anchor relative backtest windows.
func (h *Host) Now() time.Time { return h.clock() }

func (h *Host) SetStartDate(t time.Time) {
	if h.sealed {
		h.log.Warn("SetStartDate ignored after initialization")
		return
	}
	h.startDate = t
}

func (h *Host) SetEndDate(t time.Time) {
	if h.sealed {
		h.log.Warn("SetEndDate ignored after initialization")
		return
	}
	h.endDate = t
}

func (h *Host) SetCash(amount decimal.Decimal) {
	if h.sealed {
		h.log.Warn("SetCash ignored after initialization")
		return
	}
	h.startingCash = amount
	h.portfolio.SetCash(amount)
}

// AddEquity subscribes a symbol at the given resolution. Re-adding a
// symbol updates its resolution rather than erroring.
func (h *Host) AddEquity(symbol string, resolution model.Resolution) error {
	if h.sealed {
		return errors.New("subscriptions are fixed after initialization")
	}
	if symbol == "" {
		return errors.New("symbol is required")
	}
	if !resolution.Valid() {
		return fmt.Errorf("unknown resolution %q", resolution)
	}
	for i := range h.subs {
		if h.subs[i].Symbol == symbol {
			h.subs[i].Resolution = resolution
			return nil
		}
	}
	h.subs = append(h.subs, model.Subscription{Symbol: symbol, Resolution: resolution})
	return nil
}

func (h *Host) Portfolio() model.View { return h.portfolio }

// SetHoldings queues an allocation decision targeting weight of total
// portfolio value in symbol. The engine executes queued decisions within
// the current data event.
func (h *Host) SetHoldings(symbol string, weight decimal.Decimal) error {
	if !h.subscribed(symbol) {
		return fmt.Errorf("%w: %s", ErrNotSubscribed, symbol)
	}
	one := decimal.NewFromInt(1)
	if weight.GreaterThan(one) || weight.LessThan(one.Neg()) {
		return fmt.Errorf("%w: %s", ErrWeightRange, weight)
	}
	h.pending = append(h.pending, model.AllocationDecision{Symbol: symbol, Weight: weight})
	return nil
}

func (h *Host) subscribed(symbol string) bool {
	for _, s := range h.subs {
		if s.Symbol == symbol {
			return true
		}
	}
	return false
}

// seal freezes configuration and checks the invariants a completed
// Initialize must leave behind.
func (h *Host) seal() error {
	if !h.startDate.Before(h.endDate) {
		return ErrInvalidWindow
	}
	if h.startingCash.LessThanOrEqual(decimal.Zero) {
		return ErrNonPositiveCash
	}
	if len(h.subs) == 0 {
		return ErrNoSubscriptions
	}
	h.sealed = true
	return nil
}

// takeDecisions drains the pending decision queue.
func (h *Host) takeDecisions() []model.AllocationDecision {
	d := h.pending
	h.pending = nil
	return d
}

// markPrices updates portfolio marks from a data event before the
// strategy sees it, so equity queries value against current closes.
func (h *Host) markPrices(slice model.Slice) {
	for symbol, bar := range slice.Bars {
		h.portfolio.MarkPrice(symbol, bar.Close)
	}
}

func (h *Host) Subscriptions() []model.Subscription {
	out := make([]model.Subscription, len(h.subs))
	copy(out, h.subs)
	return out
}

func (h *Host) StartDate() time.Time             { return h.startDate }
func (h *Host) EndDate() time.Time               { return h.endDate }
func (h *Host) StartingCash() decimal.Decimal    { return h.startingCash }
func (h *Host) PortfolioState() *model.Portfolio { return h.portfolio }
