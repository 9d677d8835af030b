package ledger

import (
	"context"
	"errors"
	"fmt"
	"log"

	xerrors "memberpay/internal/errors"
	"memberpay/internal/models"
	"memberpay/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type service struct {
	store repositories.UnitOfWork
	cache WalletInvalidator
}

// NewService creates the fund-movement engine. The cache invalidator is
// optional; pass nil when no display cache is wired in.
func NewService(store repositories.UnitOfWork, cache WalletInvalidator) Service {
	if store == nil {
		panic("store is required")
	}
	if cache == nil {
		cache = NoopInvalidator{}
	}
	return &service{
		store: store,
		cache: cache,
	}
}

func (s *service) CreateDeposit(ctx context.Context, req CreateDepositRequest) (*models.Deposit, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.store.MemberExists(ctx, req.MemberID)
	if err != nil {
		return nil, fmt.Errorf("failed to check member: %w", err)
	}
	if !exists {
		return nil, xerrors.ErrMemberNotFound
	}

	deposit := &models.Deposit{
		MemberID: req.MemberID,
		Amount:   req.Amount,
		Method:   req.Method,
		TxRef:    req.TxRef,
		ProofURL: req.ProofURL,
		Status:   models.FundStatusPending,
	}
	if err := s.store.CreateDeposit(ctx, deposit); err != nil {
		return nil, err
	}
	return deposit, nil
}

func (s *service) ApproveDeposit(ctx context.Context, req ReviewRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	var memberID uint
	err := s.store.InTx(ctx, func(tx repositories.Store) error {
		deposit, err := tx.LockDeposit(ctx, req.RequestID)
		if err != nil {
			if errors.Is(err, repositories.ErrDepositNotFound) {
				return xerrors.ErrDepositNotFound
			}
			return err
		}
		if deposit.Status != models.FundStatusPending {
			return xerrors.ErrInvalidState
		}

		deposit.MarkReviewed(models.FundStatusApproved, req.ReviewerID, req.Note)
		if err := tx.UpdateDeposit(ctx, deposit); err != nil {
			return err
		}

		memberID = deposit.MemberID
		if err := tx.EnsureWallet(ctx, deposit.MemberID); err != nil {
			return err
		}
		// Lock order is request row first, wallet row second, everywhere.
		if _, err := tx.LockWallet(ctx, deposit.MemberID); err != nil {
			return err
		}

		inserted, err := tx.InsertLedgerEntry(ctx, &models.LedgerEntry{
			MemberID:  deposit.MemberID,
			Type:      models.LedgerTypeDeposit,
			Direction: models.LedgerDirectionCredit,
			Amount:    deposit.Amount,
			RefType:   models.LedgerRefDeposit,
			RefID:     deposit.ID,
			Note:      req.Note,
		})
		if err != nil {
			return err
		}
		if !inserted {
			// Already journaled by a racing approval; crediting again
			// would double the funds.
			log.Printf("ledger entry deposit/%d already recorded, skipping credit", deposit.ID)
			return nil
		}

		return tx.ApplyWalletDelta(ctx, deposit.MemberID, deposit.Amount, decimal.Zero)
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, memberID)
	return nil
}

func (s *service) RejectDeposit(ctx context.Context, req ReviewRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	// Rejection never touches the wallet, so no wallet lock is taken.
	return s.store.InTx(ctx, func(tx repositories.Store) error {
		deposit, err := tx.LockDeposit(ctx, req.RequestID)
		if err != nil {
			if errors.Is(err, repositories.ErrDepositNotFound) {
				return xerrors.ErrDepositNotFound
			}
			return err
		}
		if deposit.Status != models.FundStatusPending {
			return xerrors.ErrInvalidState
		}

		deposit.MarkReviewed(models.FundStatusRejected, req.ReviewerID, req.Note)
		return tx.UpdateDeposit(ctx, deposit)
	})
}

func (s *service) CreateWithdrawal(ctx context.Context, req CreateWithdrawalRequest) (*models.Withdrawal, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.store.MemberExists(ctx, req.MemberID)
	if err != nil {
		return nil, fmt.Errorf("failed to check member: %w", err)
	}
	if !exists {
		return nil, xerrors.ErrMemberNotFound
	}

	withdrawal := &models.Withdrawal{
		MemberID:       req.MemberID,
		RefCode:        uuid.NewString(),
		Amount:         req.Amount,
		Method:         req.Method,
		AccountDetails: req.AccountDetails,
		Status:         models.FundStatusPending,
	}

	err = s.store.InTx(ctx, func(tx repositories.Store) error {
		if err := tx.EnsureWallet(ctx, req.MemberID); err != nil {
			return err
		}
		wallet, err := tx.LockWallet(ctx, req.MemberID)
		if err != nil {
			return err
		}
		if wallet.Balance.LessThan(req.Amount) {
			return xerrors.ErrInsufficientFunds
		}

		// Reserve the funds before review: balance -> locked_balance.
		if err := tx.ApplyWalletDelta(ctx, req.MemberID, req.Amount.Neg(), req.Amount); err != nil {
			return err
		}
		return tx.CreateWithdrawal(ctx, withdrawal)
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, req.MemberID)
	return withdrawal, nil
}

func (s *service) ApproveWithdrawal(ctx context.Context, req ReviewRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	var memberID uint
	err := s.store.InTx(ctx, func(tx repositories.Store) error {
		withdrawal, err := tx.LockWithdrawal(ctx, req.RequestID)
		if err != nil {
			if errors.Is(err, repositories.ErrWithdrawalNotFound) {
				return xerrors.ErrWithdrawalNotFound
			}
			return err
		}
		if withdrawal.Status != models.FundStatusPending {
			return xerrors.ErrInvalidState
		}

		wallet, err := tx.LockWallet(ctx, withdrawal.MemberID)
		if err != nil {
			return err
		}
		if wallet.LockedBalance.LessThan(withdrawal.Amount) {
			// A pending withdrawal always has its amount reserved, so
			// this state cannot be reached through the engine.
			log.Printf("ALARM: withdrawal %d locked balance %s below amount %s for member %d",
				withdrawal.ID, wallet.LockedBalance, withdrawal.Amount, withdrawal.MemberID)
			return xerrors.ErrDataInconsistency
		}

		withdrawal.MarkReviewed(models.FundStatusApproved, req.ReviewerID, req.Note)
		if err := tx.UpdateWithdrawal(ctx, withdrawal); err != nil {
			return err
		}

		memberID = withdrawal.MemberID
		inserted, err := tx.InsertLedgerEntry(ctx, &models.LedgerEntry{
			MemberID:  withdrawal.MemberID,
			Type:      models.LedgerTypeWithdraw,
			Direction: models.LedgerDirectionDebit,
			Amount:    withdrawal.Amount,
			RefType:   models.LedgerRefWithdrawal,
			RefID:     withdrawal.ID,
			Note:      req.Note,
		})
		if err != nil {
			return err
		}
		if !inserted {
			log.Printf("ledger entry withdrawal/%d already recorded, skipping debit", withdrawal.ID)
			return nil
		}

		// The reservation leaves the system for good; the spendable
		// balance gets nothing back.
		return tx.ApplyWalletDelta(ctx, withdrawal.MemberID, decimal.Zero, withdrawal.Amount.Neg())
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, memberID)
	return nil
}

func (s *service) RejectWithdrawal(ctx context.Context, req ReviewRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	var memberID uint
	err := s.store.InTx(ctx, func(tx repositories.Store) error {
		withdrawal, err := tx.LockWithdrawal(ctx, req.RequestID)
		if err != nil {
			if errors.Is(err, repositories.ErrWithdrawalNotFound) {
				return xerrors.ErrWithdrawalNotFound
			}
			return err
		}
		if withdrawal.Status != models.FundStatusPending {
			return xerrors.ErrInvalidState
		}

		wallet, err := tx.LockWallet(ctx, withdrawal.MemberID)
		if err != nil {
			return err
		}
		if wallet.LockedBalance.LessThan(withdrawal.Amount) {
			log.Printf("ALARM: withdrawal %d locked balance %s below amount %s for member %d",
				withdrawal.ID, wallet.LockedBalance, withdrawal.Amount, withdrawal.MemberID)
			return xerrors.ErrDataInconsistency
		}

		withdrawal.MarkReviewed(models.FundStatusRejected, req.ReviewerID, req.Note)
		if err := tx.UpdateWithdrawal(ctx, withdrawal); err != nil {
			return err
		}

		memberID = withdrawal.MemberID
		// Return the reservation to the spendable balance. No journal
		// entry: only approvals move money in or out of the system.
		return tx.ApplyWalletDelta(ctx, withdrawal.MemberID, withdrawal.Amount, withdrawal.Amount.Neg())
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, memberID)
	return nil
}

func (s *service) invalidate(ctx context.Context, memberID uint) {
	if memberID == 0 {
		return
	}
	if err := s.cache.InvalidateWallet(ctx, memberID); err != nil {
		log.Printf("failed to invalidate wallet cache for member %d: %v", memberID, err)
	}
}
