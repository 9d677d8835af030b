package handlers

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"memberpay/internal/models"
	"memberpay/internal/services/ledger"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLedgerService struct {
	decided []ledger.ReviewRequest
}

func (s *stubLedgerService) CreateDeposit(ctx context.Context, req ledger.CreateDepositRequest) (*models.Deposit, error) {
	return &models.Deposit{ID: 1, MemberID: req.MemberID, Amount: req.Amount, Status: models.FundStatusPending}, nil
}

func (s *stubLedgerService) ApproveDeposit(ctx context.Context, req ledger.ReviewRequest) error {
	s.decided = append(s.decided, req)
	return nil
}

func (s *stubLedgerService) RejectDeposit(ctx context.Context, req ledger.ReviewRequest) error {
	s.decided = append(s.decided, req)
	return nil
}

func (s *stubLedgerService) CreateWithdrawal(ctx context.Context, req ledger.CreateWithdrawalRequest) (*models.Withdrawal, error) {
	return &models.Withdrawal{ID: 1, MemberID: req.MemberID, Amount: req.Amount, Status: models.FundStatusPending}, nil
}

func (s *stubLedgerService) ApproveWithdrawal(ctx context.Context, req ledger.ReviewRequest) error {
	s.decided = append(s.decided, req)
	return nil
}

func (s *stubLedgerService) RejectWithdrawal(ctx context.Context, req ledger.ReviewRequest) error {
	s.decided = append(s.decided, req)
	return nil
}

type stubWalletService struct{}

func (stubWalletService) GetWallet(ctx context.Context, memberID uint) (*models.Wallet, error) {
	return &models.Wallet{MemberID: memberID, Balance: decimal.Zero, LockedBalance: decimal.Zero}, nil
}

func (stubWalletService) GetLedger(ctx context.Context, memberID uint, limit, offset int) ([]models.LedgerEntry, int64, error) {
	return nil, 0, nil
}

// stubQueueStore serves the review-queue reads; everything else on the
// Store surface is unused by these handlers.
type stubQueueStore struct {
	deposits    []models.Deposit
	withdrawals []models.Withdrawal
}

func (s *stubQueueStore) ListDeposits(ctx context.Context, status string, limit, offset int) ([]models.Deposit, int64, error) {
	return s.deposits, int64(len(s.deposits)), nil
}

func (s *stubQueueStore) ListWithdrawals(ctx context.Context, status string, limit, offset int) ([]models.Withdrawal, int64, error) {
	return s.withdrawals, int64(len(s.withdrawals)), nil
}

func (s *stubQueueStore) MemberExists(ctx context.Context, memberID uint) (bool, error) {
	return true, nil
}
func (s *stubQueueStore) EnsureWallet(ctx context.Context, memberID uint) error { return nil }
func (s *stubQueueStore) GetWallet(ctx context.Context, memberID uint) (*models.Wallet, error) {
	return nil, nil
}
func (s *stubQueueStore) LockWallet(ctx context.Context, memberID uint) (*models.Wallet, error) {
	return nil, nil
}
func (s *stubQueueStore) ApplyWalletDelta(ctx context.Context, memberID uint, balanceDelta, lockedDelta decimal.Decimal) error {
	return nil
}
func (s *stubQueueStore) CreateDeposit(ctx context.Context, d *models.Deposit) error { return nil }
func (s *stubQueueStore) LockDeposit(ctx context.Context, id uint) (*models.Deposit, error) {
	return nil, nil
}
func (s *stubQueueStore) UpdateDeposit(ctx context.Context, d *models.Deposit) error { return nil }
func (s *stubQueueStore) CreateWithdrawal(ctx context.Context, w *models.Withdrawal) error {
	return nil
}
func (s *stubQueueStore) LockWithdrawal(ctx context.Context, id uint) (*models.Withdrawal, error) {
	return nil, nil
}
func (s *stubQueueStore) UpdateWithdrawal(ctx context.Context, w *models.Withdrawal) error {
	return nil
}
func (s *stubQueueStore) InsertLedgerEntry(ctx context.Context, e *models.LedgerEntry) (bool, error) {
	return false, nil
}
func (s *stubQueueStore) ListLedgerEntries(ctx context.Context, memberID uint, limit, offset int) ([]models.LedgerEntry, int64, error) {
	return nil, 0, nil
}

func newReviewApp(claims *models.MemberClaims) (*fiber.App, *stubLedgerService) {
	ledgerSvc := &stubLedgerService{}
	store := &stubQueueStore{
		deposits: []models.Deposit{
			{ID: 1, MemberID: 2, Amount: decimal.NewFromInt(9), Status: models.FundStatusPending},
		},
	}
	h := NewReviewHandler(ledgerSvc, stubWalletService{}, store)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if claims != nil {
			c.Locals("claims", claims)
		}
		return c.Next()
	})
	admin := app.Group("/admin")
	admin.Post("/deposits", h.CreateDeposit)
	admin.Get("/deposits", h.ListDeposits)
	admin.Post("/deposits/:id/approve", h.ApproveDeposit)
	admin.Post("/deposits/:id/reject", h.RejectDeposit)
	admin.Get("/withdrawals", h.ListWithdrawals)
	admin.Post("/withdrawals/:id/approve", h.ApproveWithdrawal)
	admin.Post("/withdrawals/:id/reject", h.RejectWithdrawal)
	admin.Get("/members/:id/wallet", h.GetMemberWallet)
	return app, ledgerSvc
}

func doRequest(t *testing.T, app *fiber.App, method, target string) (int, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(method, target, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestReviewRoutes_NonReviewerForbidden(t *testing.T) {
	claims := &models.MemberClaims{
		MemberID:    5,
		Permissions: models.GetDefaultPermissions("member"),
	}
	app, ledgerSvc := newReviewApp(claims)

	routes := []struct {
		method string
		target string
	}{
		{"GET", "/admin/deposits"},
		{"POST", "/admin/deposits/1/approve"},
		{"POST", "/admin/deposits/1/reject"},
		{"GET", "/admin/withdrawals"},
		{"POST", "/admin/withdrawals/1/approve"},
		{"POST", "/admin/withdrawals/1/reject"},
		{"GET", "/admin/members/2/wallet"},
	}
	for _, r := range routes {
		status, body := doRequest(t, app, r.method, r.target)
		assert.Equal(t, fiber.StatusForbidden, status, "%s %s", r.method, r.target)
		assert.Contains(t, body, "error", "%s %s", r.method, r.target)
		// The queue contains a pending deposit for member 2; none of its
		// fields may ride along with the 403.
		assert.NotContains(t, body, "member_id", "%s %s leaks queue data", r.method, r.target)
		assert.NotContains(t, body, "wallet", "%s %s leaks wallet data", r.method, r.target)
	}
	assert.Empty(t, ledgerSvc.decided, "no decision reaches the engine without fund:review")
}

func TestReviewRoutes_MissingClaimsUnauthorized(t *testing.T) {
	app, ledgerSvc := newReviewApp(nil)

	status, _ := doRequest(t, app, "GET", "/admin/deposits")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = doRequest(t, app, "POST", "/admin/deposits/1/approve")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	assert.Empty(t, ledgerSvc.decided)
}

func TestReviewRoutes_ReviewerAllowed(t *testing.T) {
	claims := &models.MemberClaims{
		MemberID:    9,
		Permissions: models.GetDefaultPermissions("admin"),
	}
	app, ledgerSvc := newReviewApp(claims)

	status, body := doRequest(t, app, "GET", "/admin/deposits")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, body, "member_id")

	status, _ = doRequest(t, app, "POST", "/admin/deposits/1/approve")
	assert.Equal(t, fiber.StatusOK, status)
	require.Len(t, ledgerSvc.decided, 1)
	assert.EqualValues(t, 1, ledgerSvc.decided[0].RequestID)
	assert.EqualValues(t, 9, ledgerSvc.decided[0].ReviewerID)
}

func TestReviewRoutes_BadIDParam(t *testing.T) {
	claims := &models.MemberClaims{
		MemberID:    9,
		Permissions: models.GetDefaultPermissions("admin"),
	}
	app, ledgerSvc := newReviewApp(claims)

	status, _ := doRequest(t, app, "POST", "/admin/deposits/zero/approve")
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = doRequest(t, app, "POST", "/admin/deposits/0/reject")
	assert.Equal(t, fiber.StatusBadRequest, status)

	assert.Empty(t, ledgerSvc.decided)
}
