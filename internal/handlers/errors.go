package handlers

import (
	"errors"
	"log"

	xerrors "memberpay/internal/errors"
	"memberpay/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// respondFundError maps engine errors onto HTTP responses. Ordinary
// errors carry their message through; a data inconsistency is alarm-worthy
// and must not leak internals to the caller.
func respondFundError(c *fiber.Ctx, err error) error {
	var domainErr *xerrors.DomainError
	if errors.As(err, &domainErr) {
		switch domainErr {
		case xerrors.ErrInvalidInput, xerrors.ErrInsufficientFunds:
			return utils.BadRequest(c, err.Error())
		case xerrors.ErrMemberNotFound, xerrors.ErrWalletNotFound,
			xerrors.ErrDepositNotFound, xerrors.ErrWithdrawalNotFound:
			return utils.NotFound(c, domainErr.Message)
		case xerrors.ErrInvalidState:
			return utils.Conflict(c, domainErr.Message)
		case xerrors.ErrDataInconsistency:
			log.Printf("ALARM: data inconsistency surfaced to handler: %v", err)
			return utils.InternalError(c, "internal error")
		}
	}

	log.Printf("fund operation failed: %v", err)
	return utils.InternalError(c, "operation failed")
}
