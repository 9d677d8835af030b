package ledger

import (
	"context"

	"memberpay/internal/models"
)

// Service is the fund-movement engine's interface to collaborators.
type Service interface {
	CreateDeposit(ctx context.Context, req CreateDepositRequest) (*models.Deposit, error)
	ApproveDeposit(ctx context.Context, req ReviewRequest) error
	RejectDeposit(ctx context.Context, req ReviewRequest) error

	CreateWithdrawal(ctx context.Context, req CreateWithdrawalRequest) (*models.Withdrawal, error)
	ApproveWithdrawal(ctx context.Context, req ReviewRequest) error
	RejectWithdrawal(ctx context.Context, req ReviewRequest) error
}

// WalletInvalidator drops cached wallet reads after a balance mutation.
type WalletInvalidator interface {
	InvalidateWallet(ctx context.Context, memberID uint) error
}

// NoopInvalidator is used when no cache is wired in.
type NoopInvalidator struct{}

func (NoopInvalidator) InvalidateWallet(context.Context, uint) error { return nil }
