package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"asset-ledger.backend/internal/interfaces/http/handlers"
)

type routeDeps struct {
	balanceHandler     *handlers.BalanceHandler
	transactionHandler *handlers.TransactionHandler
}

func registerAPIRoutes(r *gin.Engine, d routeDeps) {
	r.GET("/balance/:user_id/:asset_id", d.balanceHandler.GetBalance)

	create := r.Group("/create")
	{
		create.POST("/withdrawal", d.transactionHandler.CreateWithdrawal)
		create.POST("/deposit", d.transactionHandler.CreateDeposit)
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func registerHealthRoute(r *gin.Engine) {
	ok := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	r.GET("/", ok)
	r.GET("/health", ok)
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})
}
