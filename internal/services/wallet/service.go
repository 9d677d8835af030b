package wallet

import (
	"context"
	"errors"
	"fmt"
	"log"

	"memberpay/internal/models"
	"memberpay/internal/repositories"

	"github.com/shopspring/decimal"
)

type service struct {
	reader Reader
	cache  Cache
}

// NewService creates a wallet read service. Cache is optional.
func NewService(reader Reader, cache Cache) Service {
	if reader == nil {
		panic("reader is required")
	}
	return &service{
		reader: reader,
		cache:  cache,
	}
}

func (s *service) GetWallet(ctx context.Context, memberID uint) (*models.Wallet, error) {
	if s.cache != nil {
		if wallet, found, err := s.cache.GetWallet(ctx, memberID); err == nil && found {
			return wallet, nil
		}
	}

	wallet, err := s.reader.GetWallet(ctx, memberID)
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			// Wallets are created lazily by the first fund operation; a
			// member without one simply has nothing yet.
			return &models.Wallet{
				MemberID:      memberID,
				Balance:       decimal.Zero,
				LockedBalance: decimal.Zero,
			}, nil
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.CacheWallet(ctx, wallet); err != nil {
			log.Printf("failed to cache wallet for member %d: %v", memberID, err)
		}
	}
	return wallet, nil
}

func (s *service) GetLedger(ctx context.Context, memberID uint, limit, offset int) ([]models.LedgerEntry, int64, error) {
	entries, total, err := s.reader.ListLedgerEntries(ctx, memberID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get ledger history: %w", err)
	}
	return entries, total, nil
}
