package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fund request statuses. Pending requests transition exactly once to a
// terminal state and never again.
const (
	FundStatusPending  = "pending"
	FundStatusApproved = "approved"
	FundStatusRejected = "rejected"
)

// Deposit is an operator-recorded request to add funds to a member's
// wallet. The wallet is untouched until approval.
type Deposit struct {
	ID         uint            `gorm:"primarykey" json:"id"`
	MemberID   uint            `gorm:"index;not null" json:"member_id"`
	Amount     decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"amount"`
	Method     string          `gorm:"size:32;not null" json:"method"`
	TxRef      string          `gorm:"size:128" json:"tx_ref"`
	ProofURL   string          `json:"proof_url"`
	Status     string          `gorm:"size:16;not null;default:'pending';index" json:"status"`
	ReviewedBy *uint           `json:"reviewed_by"`
	ReviewedAt *time.Time      `json:"reviewed_at"`
	AdminNote  string          `json:"admin_note"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func (Deposit) TableName() string {
	return "deposits"
}

// MarkReviewed stamps the terminal status and reviewer identity.
func (d *Deposit) MarkReviewed(status string, reviewerID uint, note string) {
	now := time.Now()
	d.Status = status
	d.ReviewedBy = &reviewerID
	d.ReviewedAt = &now
	if note != "" {
		d.AdminNote = note
	}
}

// Withdrawal is a member's request to remove funds. Creating one
// immediately moves the amount from balance to locked_balance; approval
// drops the reservation for good, rejection returns it.
type Withdrawal struct {
	ID             uint            `gorm:"primarykey" json:"id"`
	MemberID       uint            `gorm:"index;not null" json:"member_id"`
	RefCode        string          `gorm:"size:64;uniqueIndex;not null" json:"ref_code"`
	Amount         decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"amount"`
	Method         string          `gorm:"size:32;not null" json:"method"`
	AccountDetails string          `gorm:"not null" json:"account_details"`
	Status         string          `gorm:"size:16;not null;default:'pending';index" json:"status"`
	ReviewedBy     *uint           `json:"reviewed_by"`
	ReviewedAt     *time.Time      `json:"reviewed_at"`
	AdminNote      string          `json:"admin_note"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (Withdrawal) TableName() string {
	return "withdrawals"
}

// MarkReviewed stamps the terminal status and reviewer identity.
func (w *Withdrawal) MarkReviewed(status string, reviewerID uint, note string) {
	now := time.Now()
	w.Status = status
	w.ReviewedBy = &reviewerID
	w.ReviewedAt = &now
	if note != "" {
		w.AdminNote = note
	}
}
