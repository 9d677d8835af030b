package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ledger entry types and directions
const (
	LedgerTypeDeposit  = "deposit"
	LedgerTypeWithdraw = "withdraw"

	LedgerDirectionCredit = "credit"
	LedgerDirectionDebit  = "debit"

	LedgerRefDeposit    = "deposit"
	LedgerRefWithdrawal = "withdrawal"
)

// LedgerEntry is an immutable journal row recording a completed credit or
// debit. The unique (ref_type, ref_id) pair guarantees at most one entry
// per approval event and is the engine's idempotency guard; it is part of
// the contract, not an implementation detail.
type LedgerEntry struct {
	ID        uint            `gorm:"primarykey" json:"id"`
	MemberID  uint            `gorm:"index;not null" json:"member_id"`
	Type      string          `gorm:"size:16;not null" json:"type"`
	Direction string          `gorm:"size:8;not null" json:"direction"`
	Amount    decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"amount"`
	RefType   string          `gorm:"size:16;not null;uniqueIndex:idx_wallet_ledger_ref" json:"ref_type"`
	RefID     uint            `gorm:"not null;uniqueIndex:idx_wallet_ledger_ref" json:"ref_id"`
	Note      string          `json:"note"`
	CreatedAt time.Time       `json:"created_at"`
}

func (LedgerEntry) TableName() string {
	return "wallet_ledger"
}
