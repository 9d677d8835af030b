// Package routes defines the API routing configuration.
// It wires repositories, services and handlers together and applies
// authentication middleware.
package routes

import (
	"memberpay/internal/handlers"
	"memberpay/internal/middleware"
	"memberpay/internal/repositories"
	"memberpay/internal/services/ledger"
	"memberpay/internal/services/wallet"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
// It groups routes by functionality and applies appropriate middleware.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	store := repositories.NewStore(db)

	// The Redis cache is optional; leave the interfaces nil rather than
	// wrapping a nil pointer when it is not configured.
	var invalidator ledger.WalletInvalidator
	var walletCache wallet.Cache
	if repositories.CacheService != nil {
		invalidator = repositories.CacheService
		walletCache = repositories.CacheService
	}

	ledgerService := ledger.NewService(store, invalidator)
	walletService := wallet.NewService(store, walletCache)

	walletHandler := handlers.NewWalletHandler(walletService, ledgerService)
	reviewHandler := handlers.NewReviewHandler(ledgerService, walletService, store)

	app.Get("/health", handlers.HealthCheck)

	api := app.Group("/api", middleware.Auth())

	// Member surface
	api.Get("/wallet", walletHandler.GetWallet)
	api.Get("/wallet/ledger", walletHandler.GetLedger)
	api.Post("/withdrawals", walletHandler.CreateWithdrawal)

	// Operator surface
	admin := api.Group("/admin")
	admin.Post("/deposits", reviewHandler.CreateDeposit)
	admin.Get("/deposits", reviewHandler.ListDeposits)
	admin.Post("/deposits/:id/approve", reviewHandler.ApproveDeposit)
	admin.Post("/deposits/:id/reject", reviewHandler.RejectDeposit)
	admin.Get("/withdrawals", reviewHandler.ListWithdrawals)
	admin.Post("/withdrawals/:id/approve", reviewHandler.ApproveWithdrawal)
	admin.Post("/withdrawals/:id/reject", reviewHandler.RejectWithdrawal)
	admin.Get("/members/:id/wallet", reviewHandler.GetMemberWallet)
}
