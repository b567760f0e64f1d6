package models

// BacktestRequest represents the request body for running a backtest
type BacktestRequest struct {
	DataSource DataSourceConfig `json:"data_source" binding:"required"`
	Config     BacktestConfig   `json:"config" binding:"required"`
	Options    BacktestOptions  `json:"options,omitempty"`
}

// DataSourceConfig defines where bar history comes from
type DataSourceConfig struct {
	Type       string  `json:"type" binding:"required"` // "file" or "synthetic"
	Dir        string  `json:"dir,omitempty"`           // file: directory of <symbol>.json histories
	Seed       int64   `json:"seed,omitempty"`          // synthetic: RNG seed
	StartPrice float64 `json:"start_price,omitempty"`   // synthetic: first open
}

// BacktestConfig contains the strategy configuration
type BacktestConfig struct {
	Strategy StrategyConfig `json:"strategy" binding:"required"`
}

// StrategyConfig defines strategy and its parameters
type StrategyConfig struct {
	Name   string         `json:"name" binding:"required"`
	Params map[string]any `json:"params,omitempty"`
}

// BacktestOptions contains optional backtest parameters
type BacktestOptions struct {
	IncludeLedger bool   `json:"include_ledger,omitempty"` // default: false
	IncludeFills  bool   `json:"include_fills,omitempty"`  // default: false
	AsOf          string `json:"as_of,omitempty"`          // RFC3339; pins the host clock
}
