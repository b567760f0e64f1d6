package handlers

import (
	"fmt"
	"net/http"
	"time"

	"equity-backtest/internal/analysis"
	"equity-backtest/internal/api/models"
	"equity-backtest/internal/backtest"
	"equity-backtest/internal/data"
	"equity-backtest/internal/strategy"

	"github.com/gin-gonic/gin"
)

// BacktestHandler handles backtest-related requests
type BacktestHandler struct{}

func NewBacktestHandler() *BacktestHandler {
	return &BacktestHandler{}
}

// RunBacktest handles POST /api/v1/backtest
func (h *BacktestHandler) RunBacktest(c *gin.Context) {
	var req models.BacktestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	source, err := buildSource(req.DataSource)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_DATA_SOURCE",
				Message: err.Error(),
			},
		})
		return
	}

	strat, err := strategy.New(req.Config.Strategy.Name, req.Config.Strategy.Params)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_STRATEGY",
				Message: err.Error(),
			},
		})
		return
	}

	var opts []backtest.Option
	if req.Options.AsOf != "" {
		asOf, err := time.Parse(time.RFC3339, req.Options.AsOf)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    "INVALID_REQUEST",
					Message: fmt.Sprintf("as_of must be RFC3339: %v", err),
				},
			})
			return
		}
		opts = append(opts, backtest.WithClock(func() time.Time { return asOf }))
	}

	result, err := backtest.New(opts...).Run(strat, source)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "BACKTEST_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, buildResponse(result, req.Options))
}

func buildSource(ds models.DataSourceConfig) (data.Source, error) {
	switch ds.Type {
	case "file":
		if ds.Dir == "" {
			return nil, fmt.Errorf("dir is required for file data sources")
		}
		return data.NewFileSource(ds.Dir), nil
	case "synthetic":
		src := data.NewSyntheticSource(ds.Seed)
		src.StartPrice = ds.StartPrice
		return src, nil
	default:
		return nil, fmt.Errorf("unsupported data source type: %s", ds.Type)
	}
}

func buildResponse(result *backtest.Result, opts models.BacktestOptions) models.BacktestResponse {
	resp := models.BacktestResponse{
		Status:   "completed",
		Strategy: result.Strategy,
		Window: models.TimeWindow{
			Start: result.Window.Start,
			End:   result.Window.End,
		},
		Summary: analysis.Summarize(result),
	}
	if opts.IncludeLedger {
		resp.Ledger = convertLedger(result.Ledger)
	}
	if opts.IncludeFills {
		resp.Fills = convertFills(result.Fills)
	}
	return resp
}

func convertLedger(ledger []backtest.LedgerRow) []models.LedgerRow {
	out := make([]models.LedgerRow, len(ledger))
	for i, row := range ledger {
		out[i] = models.LedgerRow{
			Index:     row.Index,
			Time:      row.Time,
			Cash:      row.Cash.Round(6).String(),
			Holdings:  row.Holdings.Round(6).String(),
			Equity:    row.Equity.Round(6).String(),
			Decisions: row.Decisions,
			Fills:     row.Fills,
		}
	}
	return out
}

func convertFills(fills []backtest.Fill) []models.FillRow {
	out := make([]models.FillRow, len(fills))
	for i, f := range fills {
		out[i] = models.FillRow{
			Time:     f.Time,
			Symbol:   f.Symbol,
			Side:     string(f.Side),
			Quantity: f.Quantity.Round(6).String(),
			Price:    f.Price.Round(6).String(),
			Value:    f.Value.Round(6).String(),
		}
	}
	return out
}
