package ledger

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"memberpay/internal/models"
	"memberpay/internal/repositories"

	"github.com/shopspring/decimal"
)

// memStore is an in-memory UnitOfWork used to exercise the engine's
// workflows without a database. One mutex guards every transaction, so
// concurrent InTx calls serialize the way row locks serialize competing
// reviewers; a callback error restores the pre-transaction snapshot.
type memStore struct {
	mu sync.Mutex
	st *memState
}

type memState struct {
	members     map[uint]bool
	wallets     map[uint]*models.Wallet
	deposits    map[uint]*models.Deposit
	withdrawals map[uint]*models.Withdrawal
	ledger      map[string]*models.LedgerEntry

	nextDepositID    uint
	nextWithdrawalID uint
	nextLedgerID     uint
}

func newMemStore() *memStore {
	return &memStore{
		st: &memState{
			members:     make(map[uint]bool),
			wallets:     make(map[uint]*models.Wallet),
			deposits:    make(map[uint]*models.Deposit),
			withdrawals: make(map[uint]*models.Withdrawal),
			ledger:      make(map[string]*models.LedgerEntry),
		},
	}
}

func (m *memStore) addMember(id uint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.st.members[id] = true
}

func (st *memState) clone() *memState {
	cp := &memState{
		members:          make(map[uint]bool, len(st.members)),
		wallets:          make(map[uint]*models.Wallet, len(st.wallets)),
		deposits:         make(map[uint]*models.Deposit, len(st.deposits)),
		withdrawals:      make(map[uint]*models.Withdrawal, len(st.withdrawals)),
		ledger:           make(map[string]*models.LedgerEntry, len(st.ledger)),
		nextDepositID:    st.nextDepositID,
		nextWithdrawalID: st.nextWithdrawalID,
		nextLedgerID:     st.nextLedgerID,
	}
	for k, v := range st.members {
		cp.members[k] = v
	}
	for k, v := range st.wallets {
		w := *v
		cp.wallets[k] = &w
	}
	for k, v := range st.deposits {
		d := *v
		cp.deposits[k] = &d
	}
	for k, v := range st.withdrawals {
		w := *v
		cp.withdrawals[k] = &w
	}
	for k, v := range st.ledger {
		e := *v
		cp.ledger[k] = &e
	}
	return cp
}

func (m *memStore) InTx(ctx context.Context, fn func(tx repositories.Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := m.st.clone()
	if err := fn(&memTx{st: m.st}); err != nil {
		m.st = snapshot
		return err
	}
	return nil
}

// The top-level Store methods serialize on the same mutex as InTx, like
// autocommit statements against the shared pool.

func (m *memStore) MemberExists(ctx context.Context, memberID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memTx{st: m.st}).MemberExists(ctx, memberID)
}

func (m *memStore) EnsureWallet(ctx context.Context, memberID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memTx{st: m.st}).EnsureWallet(ctx, memberID)
}

func (m *memStore) GetWallet(ctx context.Context, memberID uint) (*models.Wallet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memTx{st: m.st}).GetWallet(ctx, memberID)
}

func (m *memStore) LockWallet(ctx context.Context, memberID uint) (*models.Wallet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memTx{st: m.st}).LockWallet(ctx, memberID)
}

func (m *memStore) ApplyWalletDelta(ctx context.Context, memberID uint, balanceDelta, lockedDelta decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memTx{st: m.st}).ApplyWalletDelta(ctx, memberID, balanceDelta, lockedDelta)
}

func (m *memStore) CreateDeposit(ctx context.Context, d *models.Deposit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memTx{st: m.st}).CreateDeposit(ctx, d)
}

func (m *memStore) LockDeposit(ctx context.Context, id uint) (*models.Deposit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memTx{st: m.st}).LockDeposit(ctx, id)
}

func (m *memStore) UpdateDeposit(ctx context.Context, d *models.Deposit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memTx{st: m.st}).UpdateDeposit(ctx, d)
}

func (m *memStore) ListDeposits(ctx context.Context, status string, limit, offset int) ([]models.Deposit, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memTx{st: m.st}).ListDeposits(ctx, status, limit, offset)
}

func (m *memStore) CreateWithdrawal(ctx context.Context, w *models.Withdrawal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memTx{st: m.st}).CreateWithdrawal(ctx, w)
}

func (m *memStore) LockWithdrawal(ctx context.Context, id uint) (*models.Withdrawal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memTx{st: m.st}).LockWithdrawal(ctx, id)
}

func (m *memStore) UpdateWithdrawal(ctx context.Context, w *models.Withdrawal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memTx{st: m.st}).UpdateWithdrawal(ctx, w)
}

func (m *memStore) ListWithdrawals(ctx context.Context, status string, limit, offset int) ([]models.Withdrawal, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memTx{st: m.st}).ListWithdrawals(ctx, status, limit, offset)
}

func (m *memStore) InsertLedgerEntry(ctx context.Context, e *models.LedgerEntry) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memTx{st: m.st}).InsertLedgerEntry(ctx, e)
}

func (m *memStore) ListLedgerEntries(ctx context.Context, memberID uint, limit, offset int) ([]models.LedgerEntry, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memTx{st: m.st}).ListLedgerEntries(ctx, memberID, limit, offset)
}

// memTx operates on the shared state while the memStore mutex is held.
type memTx struct {
	st *memState
}

func ledgerKey(refType string, refID uint) string {
	return fmt.Sprintf("%s:%d", refType, refID)
}

// window applies the limit/offset pagination the real store applies in
// SQL. Callers sort newest-first beforehand, mirroring created_at DESC.
func window[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func (t *memTx) MemberExists(ctx context.Context, memberID uint) (bool, error) {
	return t.st.members[memberID], nil
}

func (t *memTx) EnsureWallet(ctx context.Context, memberID uint) error {
	if _, ok := t.st.wallets[memberID]; !ok {
		t.st.wallets[memberID] = &models.Wallet{
			ID:            memberID,
			MemberID:      memberID,
			Balance:       decimal.Zero,
			LockedBalance: decimal.Zero,
		}
	}
	return nil
}

func (t *memTx) GetWallet(ctx context.Context, memberID uint) (*models.Wallet, error) {
	w, ok := t.st.wallets[memberID]
	if !ok {
		return nil, repositories.ErrWalletNotFound
	}
	cp := *w
	return &cp, nil
}

func (t *memTx) LockWallet(ctx context.Context, memberID uint) (*models.Wallet, error) {
	return t.GetWallet(ctx, memberID)
}

func (t *memTx) ApplyWalletDelta(ctx context.Context, memberID uint, balanceDelta, lockedDelta decimal.Decimal) error {
	w, ok := t.st.wallets[memberID]
	if !ok {
		return repositories.ErrWalletNotFound
	}
	newBalance := w.Balance.Add(balanceDelta)
	newLocked := w.LockedBalance.Add(lockedDelta)
	if newBalance.IsNegative() || newLocked.IsNegative() {
		return repositories.ErrNegativeBalance
	}
	w.Balance = newBalance
	w.LockedBalance = newLocked
	w.UpdatedAt = time.Now()
	return nil
}

func (t *memTx) CreateDeposit(ctx context.Context, d *models.Deposit) error {
	t.st.nextDepositID++
	d.ID = t.st.nextDepositID
	d.CreatedAt = time.Now()
	cp := *d
	t.st.deposits[d.ID] = &cp
	return nil
}

func (t *memTx) LockDeposit(ctx context.Context, id uint) (*models.Deposit, error) {
	d, ok := t.st.deposits[id]
	if !ok {
		return nil, repositories.ErrDepositNotFound
	}
	cp := *d
	return &cp, nil
}

func (t *memTx) UpdateDeposit(ctx context.Context, d *models.Deposit) error {
	if _, ok := t.st.deposits[d.ID]; !ok {
		return repositories.ErrDepositNotFound
	}
	cp := *d
	t.st.deposits[d.ID] = &cp
	return nil
}

func (t *memTx) ListDeposits(ctx context.Context, status string, limit, offset int) ([]models.Deposit, int64, error) {
	var out []models.Deposit
	for _, d := range t.st.deposits {
		if status == "" || d.Status == status {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return window(out, limit, offset), int64(len(out)), nil
}

func (t *memTx) CreateWithdrawal(ctx context.Context, w *models.Withdrawal) error {
	t.st.nextWithdrawalID++
	w.ID = t.st.nextWithdrawalID
	w.CreatedAt = time.Now()
	cp := *w
	t.st.withdrawals[w.ID] = &cp
	return nil
}

func (t *memTx) LockWithdrawal(ctx context.Context, id uint) (*models.Withdrawal, error) {
	w, ok := t.st.withdrawals[id]
	if !ok {
		return nil, repositories.ErrWithdrawalNotFound
	}
	cp := *w
	return &cp, nil
}

func (t *memTx) UpdateWithdrawal(ctx context.Context, w *models.Withdrawal) error {
	if _, ok := t.st.withdrawals[w.ID]; !ok {
		return repositories.ErrWithdrawalNotFound
	}
	cp := *w
	t.st.withdrawals[w.ID] = &cp
	return nil
}

func (t *memTx) ListWithdrawals(ctx context.Context, status string, limit, offset int) ([]models.Withdrawal, int64, error) {
	var out []models.Withdrawal
	for _, w := range t.st.withdrawals {
		if status == "" || w.Status == status {
			out = append(out, *w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return window(out, limit, offset), int64(len(out)), nil
}

func (t *memTx) InsertLedgerEntry(ctx context.Context, e *models.LedgerEntry) (bool, error) {
	key := ledgerKey(e.RefType, e.RefID)
	if _, ok := t.st.ledger[key]; ok {
		return false, nil
	}
	t.st.nextLedgerID++
	e.ID = t.st.nextLedgerID
	e.CreatedAt = time.Now()
	cp := *e
	t.st.ledger[key] = &cp
	return true, nil
}

func (t *memTx) ListLedgerEntries(ctx context.Context, memberID uint, limit, offset int) ([]models.LedgerEntry, int64, error) {
	var out []models.LedgerEntry
	for _, e := range t.st.ledger {
		if e.MemberID == memberID {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return window(out, limit, offset), int64(len(out)), nil
}
