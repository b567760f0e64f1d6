package handlers

import (
	"net/http"

	"equity-backtest/internal/api/models"

	"github.com/gin-gonic/gin"
)

// StrategyHandler handles strategy-related requests
type StrategyHandler struct{}

func NewStrategyHandler() *StrategyHandler {
	return &StrategyHandler{}
}

// ListStrategies handles GET /api/v1/strategies
func (h *StrategyHandler) ListStrategies(c *gin.Context) {
	strategies := []models.StrategyInfo{
		{
			Name:        "buyhold",
			Description: "Buy and hold. Allocates the target weight once when nothing is invested, then holds for the rest of the window.",
			Parameters: []models.ParameterInfo{
				{
					Name:        "symbol",
					Type:        "string",
					Description: "Equity symbol to subscribe",
					Default:     "SPY",
				},
				{
					Name:        "resolution",
					Type:        "string",
					Description: "Bar resolution: minute, hour or daily",
					Default:     "minute",
				},
				{
					Name:        "weight",
					Type:        "float",
					Description: "Target fraction of portfolio value",
					Default:     0.5,
				},
				{
					Name:        "cash",
					Type:        "float",
					Description: "Starting cash",
					Default:     100000.0,
				},
				{
					Name:        "lookback_days",
					Type:        "int",
					Description: "Backtest window length, ending at the host clock",
					Default:     30,
				},
			},
		},
		{
			Name:        "smacross",
			Description: "SMA crossover. Holds the target weight while the close is above its moving average, exits to cash below it.",
			Parameters: []models.ParameterInfo{
				{
					Name:        "symbol",
					Type:        "string",
					Description: "Equity symbol to subscribe",
					Default:     "SPY",
				},
				{
					Name:        "resolution",
					Type:        "string",
					Description: "Bar resolution: minute, hour or daily",
					Default:     "minute",
				},
				{
					Name:        "window",
					Type:        "int",
					Description: "Bars in the moving average",
					Default:     20,
				},
				{
					Name:        "weight",
					Type:        "float",
					Description: "Target fraction of portfolio value while long",
					Default:     0.9,
				},
				{
					Name:        "cash",
					Type:        "float",
					Description: "Starting cash",
					Default:     100000.0,
				},
				{
					Name:        "lookback_days",
					Type:        "int",
					Description: "Backtest window length, ending at the host clock",
					Default:     30,
				},
			},
		},
	}

	c.JSON(http.StatusOK, gin.H{"strategies": strategies})
}
