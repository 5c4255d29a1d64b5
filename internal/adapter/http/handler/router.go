package handler

import (
	"esports-wagering-platform/internal/adapter/http/middleware"
	"esports-wagering-platform/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	LedgerSvc      ports.Ledger
	SettlementSvc  ports.Settlement
	ReportingSvc   ports.Reporting
	TokenSvc       ports.TokenService
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	betHandler := NewBetHandler(deps.LedgerSvc, deps.ReportingSvc)
	walletHandler := NewWalletHandler(deps.LedgerSvc, deps.ReportingSvc)
	adminHandler := NewAdminHandler(deps.SettlementSvc)

	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	adminOnly := middleware.AdminOnly()

	v1 := r.Group("/api/v1")

	bets := v1.Group("/bets", jwtAuth)
	{
		bets.POST("", betHandler.PlaceBet)
		bets.GET("", betHandler.ListBets)
		bets.GET("/history", betHandler.History)
		bets.GET("/stats", betHandler.Stats)
		bets.GET("/:id", betHandler.GetBet)
		bets.POST("/:id/cancel", betHandler.CancelBet)
	}

	wallet := v1.Group("/wallet", jwtAuth)
	{
		wallet.GET("/balance", walletHandler.GetBalance)
		wallet.POST("/deposits", walletHandler.Deposit)
		wallet.POST("/withdrawals", walletHandler.Withdraw)
		wallet.GET("/transactions", walletHandler.ListTransactions)

		// Gateway callbacks arrive through the admin integration.
		wallet.POST("/deposits/:id/confirm", adminOnly, walletHandler.SettleTransaction)
		wallet.POST("/withdrawals/:id/settle", adminOnly, walletHandler.SettleTransaction)
	}

	admin := v1.Group("/admin", jwtAuth, adminOnly)
	{
		admin.POST("/matches/:id/settle", adminHandler.SettleMatch)
		admin.POST("/matches/:id/void", adminHandler.VoidMatch)
	}

	return r
}
