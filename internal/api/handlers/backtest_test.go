package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"equity-backtest/internal/api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewBacktestHandler()
	router.POST("/api/v1/backtest", h.RunBacktest)
	router.GET("/api/v1/strategies", NewStrategyHandler().ListStrategies)
	return router
}

func postBacktest(t *testing.T, router *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/backtest", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRunBacktestSynthetic(t *testing.T) {
	router := testRouter()

	w := postBacktest(t, router, models.BacktestRequest{
		DataSource: models.DataSourceConfig{Type: "synthetic", Seed: 7},
		Config: models.BacktestConfig{
			Strategy: models.StrategyConfig{
				Name:   "buyhold",
				Params: map[string]any{"lookback_days": 2},
			},
		},
		Options: models.BacktestOptions{
			IncludeFills: true,
			AsOf:         "2024-06-03T00:00:00Z",
		},
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.BacktestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, "buyhold", resp.Strategy)
	assert.Equal(t, 2*24*60, resp.Summary.Events)
	require.Len(t, resp.Fills, 1)
	assert.Equal(t, "BUY", resp.Fills[0].Side)
	assert.Empty(t, resp.Ledger, "ledger omitted unless requested")
}

func TestRunBacktestRejectsUnknownStrategy(t *testing.T) {
	router := testRouter()

	w := postBacktest(t, router, models.BacktestRequest{
		DataSource: models.DataSourceConfig{Type: "synthetic"},
		Config: models.BacktestConfig{
			Strategy: models.StrategyConfig{Name: "martingale"},
		},
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_STRATEGY", resp.Error.Code)
}

func TestRunBacktestRejectsBadDataSource(t *testing.T) {
	router := testRouter()

	w := postBacktest(t, router, models.BacktestRequest{
		DataSource: models.DataSourceConfig{Type: "file"}, // missing dir
		Config: models.BacktestConfig{
			Strategy: models.StrategyConfig{Name: "buyhold"},
		},
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_DATA_SOURCE", resp.Error.Code)
}

func TestRunBacktestRejectsBadAsOf(t *testing.T) {
	router := testRouter()

	w := postBacktest(t, router, models.BacktestRequest{
		DataSource: models.DataSourceConfig{Type: "synthetic"},
		Config: models.BacktestConfig{
			Strategy: models.StrategyConfig{Name: "buyhold"},
		},
		Options: models.BacktestOptions{AsOf: "yesterday"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListStrategies(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/strategies", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Strategies []models.StrategyInfo `json:"strategies"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Strategies, 2)
	assert.Equal(t, "buyhold", resp.Strategies[0].Name)
}
