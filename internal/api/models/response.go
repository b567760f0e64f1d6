package models

import (
	"time"

	"equity-backtest/internal/analysis"
)

// BacktestResponse represents the response from a backtest run
type BacktestResponse struct {
	Status   string           `json:"status"`
	Strategy string           `json:"strategy"`
	Window   TimeWindow       `json:"window"`
	Summary  analysis.Summary `json:"summary"`
	Ledger   []LedgerRow      `json:"ledger,omitempty"`
	Fills    []FillRow        `json:"fills,omitempty"`
}

// TimeWindow represents a time range
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// LedgerRow represents one data event in the backtest ledger
type LedgerRow struct {
	Index     int       `json:"index"`
	Time      time.Time `json:"time"`
	Cash      string    `json:"cash"`
	Holdings  string    `json:"holdings"`
	Equity    string    `json:"equity"`
	Decisions int       `json:"decisions"`
	Fills     int       `json:"fills"`
}

// FillRow represents one executed fill
type FillRow struct {
	Time     time.Time `json:"time"`
	Symbol   string    `json:"symbol"`
	Side     string    `json:"side"` // "BUY" or "SELL"
	Quantity string    `json:"quantity"`
	Price    string    `json:"price"`
	Value    string    `json:"value"`
}

// StrategyInfo represents information about a strategy
type StrategyInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  []ParameterInfo `json:"parameters"`
}

// ParameterInfo describes a strategy parameter
type ParameterInfo struct {
	Name        string `json:"name"`
	Type        string `json:"type"` // "float", "int", "string"
	Description string `json:"description"`
	Default     any    `json:"default,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
