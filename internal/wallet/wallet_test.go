package wallet

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carson-networks/ledger-server/internal/budget"
	"github.com/carson-networks/ledger-server/internal/ledger"
)

func addIncome(w *Wallet, category string, amount float64) *ledger.TransactionRecord {
	r := ledger.NewRecord(ledger.Income, category, amount, "")
	w.AddTransaction(r)
	return r
}

func addExpense(w *Wallet, category string, amount float64) *ledger.TransactionRecord {
	r := ledger.NewRecord(ledger.Expense, category, amount, "")
	w.AddTransaction(r)
	return r
}

// -- Balance tests --

func TestBalance_IncomeMinusExpense(t *testing.T) {
	w := New()
	addIncome(w, "Salary", 2000)
	addIncome(w, "Bonus", 500)
	addExpense(w, "Rent", 800)

	assert.Equal(t, float64(2500), w.TotalIncome())
	assert.Equal(t, float64(800), w.TotalExpense())
	assert.Equal(t, float64(1700), w.Balance())
}

func TestBalance_EmptyWallet(t *testing.T) {
	w := New()

	assert.Equal(t, float64(0), w.Balance())
}

// -- BalanceAlert tests --

func TestBalanceAlert_Negative(t *testing.T) {
	w := New()
	addExpense(w, "Rent", 100)

	assert.Equal(t, BalanceNegative, w.BalanceAlert())
}

func TestBalanceAlert_Low(t *testing.T) {
	w := New()
	addIncome(w, "Salary", 999.99)

	assert.Equal(t, BalanceLow, w.BalanceAlert())
}

func TestBalanceAlert_OK(t *testing.T) {
	w := New()
	addIncome(w, "Salary", 1000)

	assert.Equal(t, BalanceOK, w.BalanceAlert())
}

// -- Transaction removal tests --

func TestRemoveTransaction_RestoresAggregates(t *testing.T) {
	w := New()
	addIncome(w, "Salary", 1000)
	r := addExpense(w, "Food", 300)

	assert.True(t, w.RemoveTransaction(r))
	assert.False(t, w.RemoveTransaction(r))
	assert.Equal(t, float64(1000), w.Balance())
	assert.Len(t, w.Transactions(), 1)
}

// -- Budget tests --

func TestBudgets_SetRemoveRemaining(t *testing.T) {
	w := New()
	assert.NoError(t, w.SetBudget("Food", 250))
	addExpense(w, "Food", 100)

	assert.Equal(t, float64(150), w.RemainingBudget("Food"))
	assert.Equal(t, map[string]float64{"Food": 250}, w.Budgets())

	assert.True(t, w.RemoveBudget("Food"))
	assert.Equal(t, float64(0), w.RemainingBudget("Food"))
}

func TestEvaluateAlerts_UsesLedgerSpend(t *testing.T) {
	w := New()
	assert.NoError(t, w.SetBudget("Food", 250))
	addExpense(w, "Food", 300)

	alerts := w.EvaluateAlerts()

	assert.Len(t, alerts, 1)
	assert.Equal(t, budget.LevelExceeded, alerts[0].Level)
	assert.Equal(t, float64(300), alerts[0].Spent)
}

// -- Query tests --

func TestQueries_ByKindAndCategory(t *testing.T) {
	w := New()
	salary := addIncome(w, "Salary", 2000)
	food := addExpense(w, "Food", 50)

	assert.Equal(t, []*ledger.TransactionRecord{salary}, w.TransactionsByKind(ledger.Income))
	assert.Equal(t, []*ledger.TransactionRecord{food}, w.TransactionsByCategory("Food"))
	assert.Equal(t, map[string]float64{"Salary": 2000}, w.IncomeByCategory())
	assert.Equal(t, map[string]float64{"Food": 50}, w.ExpensesByCategory())
}

func TestRecent_DelegatesToLedger(t *testing.T) {
	w := New()
	addIncome(w, "Salary", 2000)
	latest := addExpense(w, "Food", 50)

	recent := w.Recent(1)

	assert.Len(t, recent, 1)
	assert.Same(t, latest, recent[0])
}

// -- Restore tests --

func TestRestore_RebuildsLedgerAndBudgets(t *testing.T) {
	records := []*ledger.TransactionRecord{
		ledger.NewRecord(ledger.Income, "Salary", 1000, ""),
		ledger.NewRecord(ledger.Expense, "Food", 200, ""),
	}
	w := Restore(records, map[string]float64{"Food": 250})

	assert.Equal(t, float64(800), w.Balance())
	assert.Equal(t, float64(50), w.RemainingBudget("Food"))
}
