// Package wallet composes one ledger with one budget tracker per user.
package wallet

import (
	"errors"

	"github.com/carson-networks/ledger-server/internal/budget"
	"github.com/carson-networks/ledger-server/internal/ledger"
)

var ErrInsufficientFunds = errors.New("insufficient funds")

// lowBalanceThreshold is the balance below which the wallet reports BalanceLow.
const lowBalanceThreshold = 1000

// BalanceLevel classifies the wallet balance for alerting.
type BalanceLevel int8

const (
	BalanceOK BalanceLevel = iota
	BalanceLow
	BalanceNegative
)

func (b BalanceLevel) String() string {
	switch b {
	case BalanceOK:
		return "ok"
	case BalanceLow:
		return "low"
	case BalanceNegative:
		return "negative"
	default:
		return "unknown"
	}
}

// Wallet owns exactly one ledger and one budget tracker. It lives as long as
// its user and is never shared between users.
type Wallet struct {
	ledger  *ledger.Ledger
	budgets *budget.Tracker
}

func New() *Wallet {
	return &Wallet{ledger: ledger.New(), budgets: budget.NewTracker()}
}

// Restore rebuilds a wallet from persisted records and caps.
func Restore(records []*ledger.TransactionRecord, caps map[string]float64) *Wallet {
	return &Wallet{ledger: ledger.Restore(records), budgets: budget.Restore(caps)}
}

// AddTransaction appends the record to the wallet's ledger.
func (w *Wallet) AddTransaction(r *ledger.TransactionRecord) {
	w.ledger.Append(r)
}

// RemoveTransaction removes a record by identity; corrective flows only.
func (w *Wallet) RemoveTransaction(r *ledger.TransactionRecord) bool {
	return w.ledger.Remove(r)
}

func (w *Wallet) SetBudget(category string, cap float64) error {
	return w.budgets.Set(category, cap)
}

func (w *Wallet) RemoveBudget(category string) bool {
	return w.budgets.Remove(category)
}

// RemainingBudget returns cap minus spend for the category, 0 if no cap is set.
func (w *Wallet) RemainingBudget(category string) float64 {
	return w.budgets.Remaining(category, w.ledger)
}

// Budgets returns a copy of the category-to-cap mapping.
func (w *Wallet) Budgets() map[string]float64 {
	return w.budgets.Caps()
}

// EvaluateAlerts classifies every capped category against current spending.
func (w *Wallet) EvaluateAlerts() []budget.Alert {
	return w.budgets.Evaluate(w.ledger)
}

func (w *Wallet) TotalIncome() float64 {
	return w.ledger.TotalByKind(ledger.Income)
}

func (w *Wallet) TotalExpense() float64 {
	return w.ledger.TotalByKind(ledger.Expense)
}

// Balance is total income minus total expense.
func (w *Wallet) Balance() float64 {
	return w.TotalIncome() - w.TotalExpense()
}

// BalanceAlert classifies the current balance: negative, below the low-water
// mark, or fine.
func (w *Wallet) BalanceAlert() BalanceLevel {
	balance := w.Balance()
	switch {
	case balance < 0:
		return BalanceNegative
	case balance < lowBalanceThreshold:
		return BalanceLow
	default:
		return BalanceOK
	}
}

func (w *Wallet) IncomeByCategory() map[string]float64 {
	return w.ledger.GroupByCategory(ledger.Income)
}

func (w *Wallet) ExpensesByCategory() map[string]float64 {
	return w.ledger.GroupByCategory(ledger.Expense)
}

// Transactions returns a copy of all records in insertion order.
func (w *Wallet) Transactions() []*ledger.TransactionRecord {
	return w.ledger.Records()
}

func (w *Wallet) TransactionsByKind(kind ledger.Kind) []*ledger.TransactionRecord {
	return w.ledger.FilterByKind(kind)
}

func (w *Wallet) TransactionsByCategory(category string) []*ledger.TransactionRecord {
	return w.ledger.FilterByCategory(category)
}

// Recent returns up to n records, newest first.
func (w *Wallet) Recent(n int) []*ledger.TransactionRecord {
	return w.ledger.Recent(n)
}
