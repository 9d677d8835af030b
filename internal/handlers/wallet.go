package handlers

import (
	"memberpay/internal/models"
	"memberpay/internal/services/ledger"
	"memberpay/internal/services/wallet"
	"memberpay/internal/utils"
	"memberpay/internal/utils/pagination"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type WalletHandler struct {
	walletService wallet.Service
	ledgerService ledger.Service
}

func NewWalletHandler(walletService wallet.Service, ledgerService ledger.Service) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
		ledgerService: ledgerService,
	}
}

// extractClaims is a helper function to reduce duplication
func extractClaims(c *fiber.Ctx) (*models.MemberClaims, error) {
	claims, ok := c.Locals("claims").(*models.MemberClaims)
	if !ok || claims == nil {
		return nil, fiber.ErrUnauthorized
	}
	return claims, nil
}

func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	claims, err := extractClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	w, err := h.walletService.GetWallet(c.Context(), claims.MemberID)
	if err != nil {
		return respondFundError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"wallet": w,
	})
}

func (h *WalletHandler) GetLedger(c *fiber.Ctx) error {
	claims, err := extractClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	p := pagination.ParseFromRequest(c)
	entries, total, err := h.walletService.GetLedger(c.Context(), claims.MemberID, p.Limit, p.Offset)
	if err != nil {
		return respondFundError(c, err)
	}

	p.Total = total
	return c.JSON(pagination.Response(p, entries))
}

func (h *WalletHandler) CreateWithdrawal(c *fiber.Ctx) error {
	claims, err := extractClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}
	if !claims.HasPermission(models.PermissionWithdrawalCreate) {
		return utils.Forbidden(c, "withdrawals are not enabled for this account")
	}

	var input struct {
		Amount         decimal.Decimal `json:"amount"`
		Method         string          `json:"method"`
		AccountDetails string          `json:"account_details"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	withdrawal, err := h.ledgerService.CreateWithdrawal(c.Context(), ledger.CreateWithdrawalRequest{
		MemberID:       claims.MemberID,
		Amount:         input.Amount,
		Method:         input.Method,
		AccountDetails: input.AccountDetails,
	})
	if err != nil {
		return respondFundError(c, err)
	}

	return utils.Created(c, fiber.Map{
		"withdrawal": withdrawal,
	})
}
