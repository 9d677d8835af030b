package wallet

import (
	"context"

	"memberpay/internal/models"
)

// Service serves display reads of wallets and journal history. Mutation
// decisions never go through here; they belong to the ledger engine.
type Service interface {
	GetWallet(ctx context.Context, memberID uint) (*models.Wallet, error)
	GetLedger(ctx context.Context, memberID uint, limit, offset int) ([]models.LedgerEntry, int64, error)
}

// Reader is the read-only slice of the store this service needs.
type Reader interface {
	GetWallet(ctx context.Context, memberID uint) (*models.Wallet, error)
	ListLedgerEntries(ctx context.Context, memberID uint, limit, offset int) ([]models.LedgerEntry, int64, error)
}

// Cache is the wallet display cache.
type Cache interface {
	GetWallet(ctx context.Context, memberID uint) (*models.Wallet, bool, error)
	CacheWallet(ctx context.Context, wallet *models.Wallet) error
	InvalidateWallet(ctx context.Context, memberID uint) error
}
