package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/retail-bank-ledger/internal/server/handler"
	"github.com/retail-bank-ledger/internal/server/middleware"
)

// setupRouter configures API routes and middleware for the application
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	authHandler *handler.AuthHandler,
	customerHandler *handler.CustomerHandler,
	transactionHandler *handler.TransactionHandler,
	batchHandler *handler.BatchHandler,
) {
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))

	// API v1 endpoints
	v1 := r.Group("/api/v1")
	{
		v1.POST("/auth/login", authHandler.Login)

		// Customer operations
		customers := v1.Group("/customers")
		{
			customers.POST("", customerHandler.Create)
			customers.GET("/:username", customerHandler.Summary)
			customers.GET("/:username/forecast", customerHandler.Forecast)
			customers.POST("/:username/accounts", customerHandler.OpenAccount)
			customers.POST("/:username/transactions", transactionHandler.Create)
		}

		// Transfers between customers
		v1.POST("/transfers", transactionHandler.Transfer)

		// Concurrent operation batches
		v1.POST("/operations/batch", batchHandler.Apply)
	}

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}
