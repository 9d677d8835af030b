package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"memberpay/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormStore struct {
	db *gorm.DB
}

// NewStore returns a UnitOfWork backed by the given GORM handle.
func NewStore(db *gorm.DB) UnitOfWork {
	return &gormStore{db: db}
}

func (s *gormStore) InTx(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

func (s *gormStore) MemberExists(ctx context.Context, memberID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Member{}).Where("id = ?", memberID).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check member existence: %w", err)
	}
	return count > 0, nil
}

func (s *gormStore) EnsureWallet(ctx context.Context, memberID uint) error {
	wallet := &models.Wallet{
		MemberID:      memberID,
		Balance:       decimal.Zero,
		LockedBalance: decimal.Zero,
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "member_id"}},
			DoNothing: true,
		}).
		Create(wallet).Error
	if err != nil && !isUniqueViolation(err) {
		return fmt.Errorf("failed to ensure wallet: %w", err)
	}
	return nil
}

func (s *gormStore) GetWallet(ctx context.Context, memberID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	err := s.db.WithContext(ctx).Where("member_id = ?", memberID).First(&wallet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &wallet, nil
}

func (s *gormStore) LockWallet(ctx context.Context, memberID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("member_id = ?", memberID).
		First(&wallet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to lock wallet: %w", err)
	}
	return &wallet, nil
}

// ApplyWalletDelta applies both deltas in a single guarded update. The
// guard keeps either column from going negative even if the caller's
// locked read was somehow bypassed.
func (s *gormStore) ApplyWalletDelta(ctx context.Context, memberID uint, balanceDelta, lockedDelta decimal.Decimal) error {
	result := s.db.WithContext(ctx).Model(&models.Wallet{}).
		Where("member_id = ? AND balance + ? >= 0 AND locked_balance + ? >= 0",
			memberID, balanceDelta, lockedDelta).
		Updates(map[string]interface{}{
			"balance":        gorm.Expr("balance + ?", balanceDelta),
			"locked_balance": gorm.Expr("locked_balance + ?", lockedDelta),
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to apply wallet delta: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		if _, err := s.GetWallet(ctx, memberID); err != nil {
			return err
		}
		return ErrNegativeBalance
	}
	return nil
}

func (s *gormStore) CreateDeposit(ctx context.Context, d *models.Deposit) error {
	if err := s.db.WithContext(ctx).Create(d).Error; err != nil {
		return fmt.Errorf("failed to create deposit: %w", err)
	}
	return nil
}

func (s *gormStore) LockDeposit(ctx context.Context, id uint) (*models.Deposit, error) {
	var deposit models.Deposit
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&deposit, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepositNotFound
		}
		return nil, fmt.Errorf("failed to lock deposit: %w", err)
	}
	return &deposit, nil
}

func (s *gormStore) UpdateDeposit(ctx context.Context, d *models.Deposit) error {
	if err := s.db.WithContext(ctx).Save(d).Error; err != nil {
		return fmt.Errorf("failed to update deposit: %w", err)
	}
	return nil
}

func (s *gormStore) ListDeposits(ctx context.Context, status string, limit, offset int) ([]models.Deposit, int64, error) {
	var deposits []models.Deposit
	var total int64

	query := s.db.WithContext(ctx).Model(&models.Deposit{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count deposits: %w", err)
	}
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&deposits).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list deposits: %w", err)
	}
	return deposits, total, nil
}

func (s *gormStore) CreateWithdrawal(ctx context.Context, w *models.Withdrawal) error {
	if err := s.db.WithContext(ctx).Create(w).Error; err != nil {
		return fmt.Errorf("failed to create withdrawal: %w", err)
	}
	return nil
}

func (s *gormStore) LockWithdrawal(ctx context.Context, id uint) (*models.Withdrawal, error) {
	var withdrawal models.Withdrawal
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&withdrawal, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWithdrawalNotFound
		}
		return nil, fmt.Errorf("failed to lock withdrawal: %w", err)
	}
	return &withdrawal, nil
}

func (s *gormStore) UpdateWithdrawal(ctx context.Context, w *models.Withdrawal) error {
	if err := s.db.WithContext(ctx).Save(w).Error; err != nil {
		return fmt.Errorf("failed to update withdrawal: %w", err)
	}
	return nil
}

func (s *gormStore) ListWithdrawals(ctx context.Context, status string, limit, offset int) ([]models.Withdrawal, int64, error) {
	var withdrawals []models.Withdrawal
	var total int64

	query := s.db.WithContext(ctx).Model(&models.Withdrawal{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count withdrawals: %w", err)
	}
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&withdrawals).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list withdrawals: %w", err)
	}
	return withdrawals, total, nil
}

// InsertLedgerEntry writes the journal row for an approval event. The
// insert is keyed on the unique (ref_type, ref_id) pair; a conflict means
// the event was already journaled and reports inserted=false so the
// caller skips the balance mutation. The constraint stays in place as an
// independent safety net should locking discipline ever be bypassed.
func (s *gormStore) InsertLedgerEntry(ctx context.Context, e *models.LedgerEntry) (bool, error) {
	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "ref_type"}, {Name: "ref_id"}},
			DoNothing: true,
		}).
		Create(e)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return false, nil
		}
		return false, fmt.Errorf("failed to insert ledger entry: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (s *gormStore) ListLedgerEntries(ctx context.Context, memberID uint, limit, offset int) ([]models.LedgerEntry, int64, error) {
	var entries []models.LedgerEntry
	var total int64

	query := s.db.WithContext(ctx).Model(&models.LedgerEntry{}).Where("member_id = ?", memberID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count ledger entries: %w", err)
	}
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&entries).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	return entries, total, nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
