package main

import (
	"net/http"
	"os"

	"equity-backtest/internal/api/handlers"
	"equity-backtest/internal/api/middleware"
	"equity-backtest/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

func main() {
	// .env is optional; explicit environment wins.
	_ = godotenv.Load()

	if err := logger.Init(logger.Config{
		Level: os.Getenv("BACKTEST_LOG_LEVEL"),
		File:  os.Getenv("BACKTEST_LOG_FILE"),
	}); err != nil {
		logrus.WithError(err).Fatal("init logging")
	}

	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.ErrorHandler())

	backtestHandler := handlers.NewBacktestHandler()
	strategyHandler := handlers.NewStrategyHandler()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/backtest", backtestHandler.RunBacktest)
		api.GET("/strategies", strategyHandler.ListStrategies)
	}

	handler := cors.Default().Handler(router)

	logrus.WithField("port", port).Info("api listening")
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		logrus.WithError(err).Fatal("server exited")
	}
}
