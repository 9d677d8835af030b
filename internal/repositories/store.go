package repositories

import (
	"context"
	"errors"

	"memberpay/internal/models"

	"github.com/shopspring/decimal"
)

// Repository errors
var (
	ErrMemberNotFound     = errors.New("member not found")
	ErrWalletNotFound     = errors.New("wallet not found")
	ErrDepositNotFound    = errors.New("deposit not found")
	ErrWithdrawalNotFound = errors.New("withdrawal not found")
	// ErrNegativeBalance is returned when a delta would drive balance or
	// locked_balance below zero.
	ErrNegativeBalance = errors.New("balance would go negative")
)

// Store is the data access surface of the fund-movement engine. The Lock*
// methods take exclusive row locks and are only meaningful inside InTx;
// the plain readers never lock and must not feed mutation decisions.
type Store interface {
	MemberExists(ctx context.Context, memberID uint) (bool, error)

	// Wallet store
	EnsureWallet(ctx context.Context, memberID uint) error
	GetWallet(ctx context.Context, memberID uint) (*models.Wallet, error)
	LockWallet(ctx context.Context, memberID uint) (*models.Wallet, error)
	ApplyWalletDelta(ctx context.Context, memberID uint, balanceDelta, lockedDelta decimal.Decimal) error

	// Deposit requests
	CreateDeposit(ctx context.Context, d *models.Deposit) error
	LockDeposit(ctx context.Context, id uint) (*models.Deposit, error)
	UpdateDeposit(ctx context.Context, d *models.Deposit) error
	ListDeposits(ctx context.Context, status string, limit, offset int) ([]models.Deposit, int64, error)

	// Withdrawal requests
	CreateWithdrawal(ctx context.Context, w *models.Withdrawal) error
	LockWithdrawal(ctx context.Context, id uint) (*models.Withdrawal, error)
	UpdateWithdrawal(ctx context.Context, w *models.Withdrawal) error
	ListWithdrawals(ctx context.Context, status string, limit, offset int) ([]models.Withdrawal, int64, error)

	// Ledger journal. InsertLedgerEntry reports whether a new row was
	// written; false means the (ref_type, ref_id) pair already exists and
	// the caller must skip the corresponding balance mutation.
	InsertLedgerEntry(ctx context.Context, e *models.LedgerEntry) (bool, error)
	ListLedgerEntries(ctx context.Context, memberID uint, limit, offset int) ([]models.LedgerEntry, int64, error)
}

// UnitOfWork runs a function against a Store bound to a single database
// transaction. The callback's Store handle is the explicit transaction
// boundary; returning an error rolls everything back.
type UnitOfWork interface {
	Store
	InTx(ctx context.Context, fn func(tx Store) error) error
}
