package ledger

import (
	"fmt"
	"strings"

	xerrors "memberpay/internal/errors"

	"github.com/shopspring/decimal"
)

// CreateDepositRequest records a deposit on behalf of a member. The
// wallet is not touched until the deposit is approved.
type CreateDepositRequest struct {
	MemberID uint
	Amount   decimal.Decimal
	Method   string
	TxRef    string
	ProofURL string
}

func (r CreateDepositRequest) Validate() error {
	if r.MemberID == 0 {
		return fmt.Errorf("%w: member id is required", xerrors.ErrInvalidInput)
	}
	if !r.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", xerrors.ErrInvalidInput)
	}
	if strings.TrimSpace(r.Method) == "" {
		return fmt.Errorf("%w: method is required", xerrors.ErrInvalidInput)
	}
	return nil
}

// CreateWithdrawalRequest asks to remove funds from a member's wallet.
// Creation reserves the amount immediately.
type CreateWithdrawalRequest struct {
	MemberID       uint
	Amount         decimal.Decimal
	Method         string
	AccountDetails string
}

func (r CreateWithdrawalRequest) Validate() error {
	if r.MemberID == 0 {
		return fmt.Errorf("%w: member id is required", xerrors.ErrInvalidInput)
	}
	if !r.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", xerrors.ErrInvalidInput)
	}
	if strings.TrimSpace(r.Method) == "" {
		return fmt.Errorf("%w: method is required", xerrors.ErrInvalidInput)
	}
	if strings.TrimSpace(r.AccountDetails) == "" {
		return fmt.Errorf("%w: account details are required", xerrors.ErrInvalidInput)
	}
	return nil
}

// ReviewRequest carries a reviewer's decision on a pending request. The
// engine records the reviewer identity but does not authorize it; the
// caller is expected to have checked the reviewer's role already.
type ReviewRequest struct {
	RequestID  uint
	ReviewerID uint
	Note       string
}

func (r ReviewRequest) Validate() error {
	if r.RequestID == 0 {
		return fmt.Errorf("%w: request id is required", xerrors.ErrInvalidInput)
	}
	if r.ReviewerID == 0 {
		return fmt.Errorf("%w: reviewer id is required", xerrors.ErrInvalidInput)
	}
	return nil
}
