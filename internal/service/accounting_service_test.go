package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/carson-networks/ledger-server/internal/budget"
	"github.com/carson-networks/ledger-server/internal/directory"
	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/operator"
	"github.com/carson-networks/ledger-server/internal/state"
	"github.com/carson-networks/ledger-server/internal/storage/memory"
	"github.com/carson-networks/ledger-server/internal/wallet"
)

func newTestAccounting(t *testing.T) (*AccountingService, *memory.Store) {
	t.Helper()

	store := memory.New()
	dir, err := store.Load(context.Background())
	assert.NoError(t, err)

	st := state.New(dir, store)
	delegator := operator.NewOperatorDelegator(st, 1)
	delegator.Start()
	t.Cleanup(delegator.Stop)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return NewAccountingService(st, delegator, logger), store
}

func registerAndLogin(t *testing.T, svc *AccountingService, login string) string {
	t.Helper()
	ctx := context.Background()
	assert.NoError(t, svc.Register(ctx, login, "secret1"))
	session, err := svc.Login(ctx, login, "secret1")
	assert.NoError(t, err)
	return session.Token
}

// -- Register tests --

func TestRegister_FlushesNewAccount(t *testing.T) {
	svc, store := newTestAccounting(t)

	err := svc.Register(context.Background(), "alice", "secret1")

	assert.NoError(t, err)
	assert.Equal(t, 1, store.Saves())

	loaded, err := store.Load(context.Background())
	assert.NoError(t, err)
	_, err = loaded.Resolve("alice")
	assert.NoError(t, err)
}

func TestRegister_RejectsMalformedLogins(t *testing.T) {
	svc, store := newTestAccounting(t)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Register(ctx, "ab", "pw"), ErrInvalidLogin)
	assert.ErrorIs(t, svc.Register(ctx, "", "pw"), ErrInvalidLogin)
	assert.ErrorIs(t, svc.Register(ctx, "bad login", "pw"), ErrInvalidLogin)
	assert.ErrorIs(t, svc.Register(ctx, "bad-login", "pw"), ErrInvalidLogin)
	assert.Equal(t, 0, store.Saves())
}

func TestRegister_DuplicateLogin(t *testing.T) {
	svc, _ := newTestAccounting(t)
	ctx := context.Background()

	assert.NoError(t, svc.Register(ctx, "alice", "secret1"))
	assert.ErrorIs(t, svc.Register(ctx, "alice", "other"), directory.ErrDuplicateLogin)
}

func TestRegister_RollsBackWhenFlushFails(t *testing.T) {
	svc, store := newTestAccounting(t)
	boom := errors.New("disk full")
	store.FailSavesWith(boom)

	err := svc.Register(context.Background(), "alice", "secret1")

	assert.ErrorIs(t, err, boom)

	// The failed registration must not leave a half-created account behind.
	store.FailSavesWith(nil)
	assert.NoError(t, svc.Register(context.Background(), "alice", "secret1"))
}

// -- Login / Logout tests --

func TestLogin_OpensSession(t *testing.T) {
	svc, _ := newTestAccounting(t)
	ctx := context.Background()
	assert.NoError(t, svc.Register(ctx, "alice", "secret1"))

	session, err := svc.Login(ctx, "alice", "secret1")

	assert.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "alice", session.Login)
}

func TestLogin_EachLoginGetsDistinctToken(t *testing.T) {
	svc, _ := newTestAccounting(t)
	ctx := context.Background()
	assert.NoError(t, svc.Register(ctx, "alice", "secret1"))

	first, err := svc.Login(ctx, "alice", "secret1")
	assert.NoError(t, err)
	second, err := svc.Login(ctx, "alice", "secret1")
	assert.NoError(t, err)

	assert.NotEqual(t, first.Token, second.Token)

	// Both sessions work independently.
	_, err = svc.RecentTransactions(ctx, first.Token, 5)
	assert.NoError(t, err)
	_, err = svc.RecentTransactions(ctx, second.Token, 5)
	assert.NoError(t, err)
}

func TestLogin_BadCredentials(t *testing.T) {
	svc, _ := newTestAccounting(t)
	ctx := context.Background()
	assert.NoError(t, svc.Register(ctx, "alice", "secret1"))

	_, err := svc.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, directory.ErrAuthenticationFailed)

	_, err = svc.Login(ctx, "nobody", "secret1")
	assert.ErrorIs(t, err, directory.ErrAuthenticationFailed)
}

func TestLogout_ClosesSessionAndFlushes(t *testing.T) {
	svc, store := newTestAccounting(t)
	token := registerAndLogin(t, svc, "alice")
	savesBefore := store.Saves()

	assert.NoError(t, svc.Logout(context.Background(), token))

	assert.Equal(t, savesBefore+1, store.Saves())

	// The token is dead afterwards.
	_, err := svc.RecentTransactions(context.Background(), token, 5)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.ErrorIs(t, svc.Logout(context.Background(), token), ErrNotAuthenticated)
}

// -- AddIncome / AddExpense tests --

func TestAddIncome_RecordsAndFlushes(t *testing.T) {
	svc, store := newTestAccounting(t)
	token := registerAndLogin(t, svc, "alice")
	savesBefore := store.Saves()

	result, err := svc.AddIncome(context.Background(), token, "Salary", 2000, "march")

	assert.NoError(t, err)
	assert.Equal(t, ledger.Income, result.Record.Kind)
	assert.Equal(t, "Salary", result.Record.Category)
	assert.Equal(t, float64(2000), result.Record.Amount)
	assert.NotEmpty(t, result.Record.ID)
	assert.Equal(t, wallet.BalanceOK, result.BalanceAlert)
	assert.Equal(t, savesBefore+1, store.Saves())
}

func TestAddExpense_ReportsBudgetAlerts(t *testing.T) {
	svc, _ := newTestAccounting(t)
	token := registerAndLogin(t, svc, "alice")
	ctx := context.Background()

	_, err := svc.AddIncome(ctx, token, "Salary", 2000, "")
	assert.NoError(t, err)
	_, err = svc.SetBudget(ctx, token, "Food", 250)
	assert.NoError(t, err)

	result, err := svc.AddExpense(ctx, token, "Food", 300, "groceries")

	assert.NoError(t, err)
	assert.Len(t, result.BudgetAlerts, 1)
	assert.Equal(t, budget.LevelExceeded, result.BudgetAlerts[0].Level)
	assert.Equal(t, float64(300), result.BudgetAlerts[0].Spent)
}

func TestAddExpense_CanDriveBalanceNegative(t *testing.T) {
	svc, _ := newTestAccounting(t)
	token := registerAndLogin(t, svc, "alice")

	result, err := svc.AddExpense(context.Background(), token, "Rent", 800, "")

	assert.NoError(t, err)
	assert.Equal(t, wallet.BalanceNegative, result.BalanceAlert)
}

func TestAddTransaction_Validation(t *testing.T) {
	svc, _ := newTestAccounting(t)
	token := registerAndLogin(t, svc, "alice")
	ctx := context.Background()

	_, err := svc.AddIncome(ctx, "no-such-token", "Salary", 100, "")
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = svc.AddIncome(ctx, token, "Salary", 0, "")
	assert.ErrorIs(t, err, ledger.ErrInvalidAmount)

	_, err = svc.AddExpense(ctx, token, "Food", -5, "")
	assert.ErrorIs(t, err, ledger.ErrInvalidAmount)

	_, err = svc.AddIncome(ctx, token, "", 100, "")
	assert.ErrorIs(t, err, ledger.ErrInvalidCategory)

	records, err := svc.RecentTransactions(ctx, token, 10)
	assert.NoError(t, err)
	assert.Empty(t, records)
}

func TestAddTransaction_RollsBackWhenFlushFails(t *testing.T) {
	svc, store := newTestAccounting(t)
	token := registerAndLogin(t, svc, "alice")
	ctx := context.Background()

	_, err := svc.AddIncome(ctx, token, "Salary", 1000, "")
	assert.NoError(t, err)

	boom := errors.New("disk full")
	store.FailSavesWith(boom)

	_, err = svc.AddExpense(ctx, token, "Food", 100, "")
	assert.ErrorIs(t, err, boom)

	// The in-memory wallet matches the last good snapshot.
	store.FailSavesWith(nil)
	records, err := svc.RecentTransactions(ctx, token, 10)
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, "Salary", records[0].Category)
}

// -- Budget tests --

func TestSetBudget_ReturnsFreshAlerts(t *testing.T) {
	svc, store := newTestAccounting(t)
	token := registerAndLogin(t, svc, "alice")
	ctx := context.Background()

	_, err := svc.AddExpense(ctx, token, "Food", 300, "")
	assert.NoError(t, err)
	savesBefore := store.Saves()

	result, err := svc.SetBudget(ctx, token, "Food", 250)

	assert.NoError(t, err)
	assert.Equal(t, savesBefore+1, store.Saves())
	assert.Len(t, result.BudgetAlerts, 1)
	assert.Equal(t, budget.LevelExceeded, result.BudgetAlerts[0].Level)
}

func TestSetBudget_Validation(t *testing.T) {
	svc, _ := newTestAccounting(t)
	token := registerAndLogin(t, svc, "alice")
	ctx := context.Background()

	_, err := svc.SetBudget(ctx, "no-such-token", "Food", 100)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = svc.SetBudget(ctx, token, "Food", 0)
	assert.ErrorIs(t, err, ledger.ErrInvalidAmount)

	_, err = svc.SetBudget(ctx, token, "", 100)
	assert.ErrorIs(t, err, ledger.ErrInvalidCategory)
}

func TestRemoveBudget_ReportsExistence(t *testing.T) {
	svc, _ := newTestAccounting(t)
	token := registerAndLogin(t, svc, "alice")
	ctx := context.Background()

	_, err := svc.SetBudget(ctx, token, "Food", 250)
	assert.NoError(t, err)

	removed, err := svc.RemoveBudget(ctx, token, "Food")
	assert.NoError(t, err)
	assert.True(t, removed)

	removed, err = svc.RemoveBudget(ctx, token, "Food")
	assert.NoError(t, err)
	assert.False(t, removed)
}

// -- RecentTransactions tests --

func TestRecentTransactions_NewestFirstCapped(t *testing.T) {
	svc, _ := newTestAccounting(t)
	token := registerAndLogin(t, svc, "alice")
	ctx := context.Background()

	for _, category := range []string{"First", "Second", "Third"} {
		_, err := svc.AddIncome(ctx, token, category, 10, "")
		assert.NoError(t, err)
	}

	records, err := svc.RecentTransactions(ctx, token, 2)

	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, "Third", records[0].Category)
	assert.Equal(t, "Second", records[1].Category)
}

func TestRecentTransactions_FewerThanRequested(t *testing.T) {
	svc, _ := newTestAccounting(t)
	token := registerAndLogin(t, svc, "alice")
	ctx := context.Background()

	_, err := svc.AddIncome(ctx, token, "Salary", 10, "")
	assert.NoError(t, err)

	records, err := svc.RecentTransactions(ctx, token, 10)

	assert.NoError(t, err)
	assert.Len(t, records, 1)
}
