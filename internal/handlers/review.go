package handlers

import (
	"strconv"

	"memberpay/internal/models"
	"memberpay/internal/repositories"
	"memberpay/internal/services/ledger"
	"memberpay/internal/services/wallet"
	"memberpay/internal/utils"
	"memberpay/internal/utils/pagination"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// ReviewHandler exposes the operator surface: recording deposits,
// deciding pending requests and inspecting review queues.
type ReviewHandler struct {
	ledgerService ledger.Service
	walletService wallet.Service
	store         repositories.Store
}

func NewReviewHandler(ledgerService ledger.Service, walletService wallet.Service, store repositories.Store) *ReviewHandler {
	return &ReviewHandler{
		ledgerService: ledgerService,
		walletService: walletService,
		store:         store,
	}
}

// parseIDParam reports the :id route parameter; ok is false when it is
// missing or malformed.
func parseIDParam(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// reviewNote reads the optional decision body.
func reviewNote(c *fiber.Ctx) string {
	var input struct {
		Note string `json:"note"`
	}
	_ = c.BodyParser(&input)
	return input.Note
}

func (h *ReviewHandler) CreateDeposit(c *fiber.Ctx) error {
	claims, err := extractClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}
	if !claims.HasPermission(models.PermissionFundCreate) {
		return utils.Forbidden(c, "Access denied. Operator privileges required.")
	}

	var input struct {
		MemberID uint            `json:"member_id"`
		Amount   decimal.Decimal `json:"amount"`
		Method   string          `json:"method"`
		TxRef    string          `json:"tx_ref"`
		ProofURL string          `json:"proof_url"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	deposit, err := h.ledgerService.CreateDeposit(c.Context(), ledger.CreateDepositRequest{
		MemberID: input.MemberID,
		Amount:   input.Amount,
		Method:   input.Method,
		TxRef:    input.TxRef,
		ProofURL: input.ProofURL,
	})
	if err != nil {
		return respondFundError(c, err)
	}

	return utils.Created(c, fiber.Map{
		"deposit": deposit,
	})
}

func (h *ReviewHandler) ApproveDeposit(c *fiber.Ctx) error {
	claims, err := extractClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}
	if !claims.HasPermission(models.PermissionFundReview) {
		return utils.Forbidden(c, "Access denied. Reviewer privileges required.")
	}
	id, ok := parseIDParam(c)
	if !ok {
		return utils.BadRequest(c, "invalid request id")
	}

	if err := h.ledgerService.ApproveDeposit(c.Context(), ledger.ReviewRequest{
		RequestID:  id,
		ReviewerID: claims.MemberID,
		Note:       reviewNote(c),
	}); err != nil {
		return respondFundError(c, err)
	}
	return utils.Success(c, fiber.Map{"message": "deposit approved"})
}

func (h *ReviewHandler) RejectDeposit(c *fiber.Ctx) error {
	claims, err := extractClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}
	if !claims.HasPermission(models.PermissionFundReview) {
		return utils.Forbidden(c, "Access denied. Reviewer privileges required.")
	}
	id, ok := parseIDParam(c)
	if !ok {
		return utils.BadRequest(c, "invalid request id")
	}

	if err := h.ledgerService.RejectDeposit(c.Context(), ledger.ReviewRequest{
		RequestID:  id,
		ReviewerID: claims.MemberID,
		Note:       reviewNote(c),
	}); err != nil {
		return respondFundError(c, err)
	}
	return utils.Success(c, fiber.Map{"message": "deposit rejected"})
}

func (h *ReviewHandler) ApproveWithdrawal(c *fiber.Ctx) error {
	claims, err := extractClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}
	if !claims.HasPermission(models.PermissionFundReview) {
		return utils.Forbidden(c, "Access denied. Reviewer privileges required.")
	}
	id, ok := parseIDParam(c)
	if !ok {
		return utils.BadRequest(c, "invalid request id")
	}

	if err := h.ledgerService.ApproveWithdrawal(c.Context(), ledger.ReviewRequest{
		RequestID:  id,
		ReviewerID: claims.MemberID,
		Note:       reviewNote(c),
	}); err != nil {
		return respondFundError(c, err)
	}
	return utils.Success(c, fiber.Map{"message": "withdrawal approved"})
}

func (h *ReviewHandler) RejectWithdrawal(c *fiber.Ctx) error {
	claims, err := extractClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}
	if !claims.HasPermission(models.PermissionFundReview) {
		return utils.Forbidden(c, "Access denied. Reviewer privileges required.")
	}
	id, ok := parseIDParam(c)
	if !ok {
		return utils.BadRequest(c, "invalid request id")
	}

	if err := h.ledgerService.RejectWithdrawal(c.Context(), ledger.ReviewRequest{
		RequestID:  id,
		ReviewerID: claims.MemberID,
		Note:       reviewNote(c),
	}); err != nil {
		return respondFundError(c, err)
	}
	return utils.Success(c, fiber.Map{"message": "withdrawal rejected"})
}

// ListDeposits returns the deposit review queue, optionally filtered by
// status (Reviewer only).
func (h *ReviewHandler) ListDeposits(c *fiber.Ctx) error {
	claims, err := extractClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}
	if !claims.HasPermission(models.PermissionFundReview) {
		return utils.Forbidden(c, "Access denied. Reviewer privileges required.")
	}

	p := pagination.ParseFromRequest(c)
	deposits, total, err := h.store.ListDeposits(c.Context(), c.Query("status"), p.Limit, p.Offset)
	if err != nil {
		return respondFundError(c, err)
	}

	p.Total = total
	return c.JSON(pagination.Response(p, deposits))
}

// ListWithdrawals returns the withdrawal review queue, optionally
// filtered by status (Reviewer only).
func (h *ReviewHandler) ListWithdrawals(c *fiber.Ctx) error {
	claims, err := extractClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}
	if !claims.HasPermission(models.PermissionFundReview) {
		return utils.Forbidden(c, "Access denied. Reviewer privileges required.")
	}

	p := pagination.ParseFromRequest(c)
	withdrawals, total, err := h.store.ListWithdrawals(c.Context(), c.Query("status"), p.Limit, p.Offset)
	if err != nil {
		return respondFundError(c, err)
	}

	p.Total = total
	return c.JSON(pagination.Response(p, withdrawals))
}

// GetMemberWallet returns any member's wallet (Reviewer only).
func (h *ReviewHandler) GetMemberWallet(c *fiber.Ctx) error {
	claims, err := extractClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}
	if !claims.HasPermission(models.PermissionFundReview) {
		return utils.Forbidden(c, "Access denied. Reviewer privileges required.")
	}
	memberID, ok := parseIDParam(c)
	if !ok {
		return utils.BadRequest(c, "invalid member id")
	}

	w, err := h.walletService.GetWallet(c.Context(), memberID)
	if err != nil {
		return respondFundError(c, err)
	}
	return utils.Success(c, fiber.Map{
		"wallet": w,
	})
}
