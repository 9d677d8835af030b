package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet holds a member's spendable and reserved funds. Both columns are
// mutated only inside a transaction that also advances a deposit or
// withdrawal status, and never go negative.
type Wallet struct {
	ID            uint            `gorm:"primarykey" json:"id"`
	MemberID      uint            `gorm:"uniqueIndex;not null" json:"member_id"`
	Balance       decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"balance"`
	LockedBalance decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"locked_balance"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
