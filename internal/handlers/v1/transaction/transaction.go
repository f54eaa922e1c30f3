// Package transaction exposes income/expense recording and recent-history
// endpoints.
package transaction

import (
	"context"
	"time"

	"github.com/carson-networks/ledger-server/internal/budget"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/money"
	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/service"
)

// transactionRecorder is the slice of the accounting service these handlers use.
type transactionRecorder interface {
	AddIncome(ctx context.Context, token, category string, amount float64, description string) (*service.MutationResult, error)
	AddExpense(ctx context.Context, token, category string, amount float64, description string) (*service.MutationResult, error)
}

// transactionLister is the read side for recent history.
type transactionLister interface {
	RecentTransactions(ctx context.Context, token string, count int) ([]*ledger.TransactionRecord, error)
}

// Transaction is the wire form of one ledger record.
type Transaction struct {
	ID          string `json:"id" doc:"Record UUID"`
	Kind        string `json:"kind" doc:"income or expense"`
	Amount      string `json:"amount" doc:"Decimal amount"`
	Category    string `json:"category" doc:"Category label"`
	Description string `json:"description,omitempty" doc:"Free-text description"`
	CreatedAt   string `json:"createdAt" doc:"RFC3339 creation time"`
}

// BudgetAlert is the wire form of one budget classification.
type BudgetAlert struct {
	Category string `json:"category" doc:"Capped category"`
	Level    string `json:"level" doc:"normal, near or exceeded"`
	Cap      string `json:"cap" doc:"Decimal cap"`
	Spent    string `json:"spent" doc:"Decimal spend to date"`
}

// RecordTransactionBody is the request body for recording income or expense.
type RecordTransactionBody struct {
	Category    string `json:"category" required:"true" doc:"Category label"`
	Amount      string `json:"amount" required:"true" doc:"Decimal amount, must be positive"`
	Description string `json:"description" doc:"Free-text description"`
}

// RecordTransactionResponseBody reports the new record and re-evaluated alerts.
type RecordTransactionResponseBody struct {
	ID           string        `json:"id" doc:"Record UUID"`
	BudgetAlerts []BudgetAlert `json:"budgetAlerts,omitempty" doc:"Budget state per capped category"`
	BalanceAlert string        `json:"balanceAlert" doc:"ok, low or negative"`
}

func fromRecord(r *ledger.TransactionRecord) Transaction {
	return Transaction{
		ID:          r.ID,
		Kind:        r.Kind.String(),
		Amount:      money.Format(r.Amount),
		Category:    r.Category,
		Description: r.Description,
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
	}
}

func fromAlerts(alerts []budget.Alert) []BudgetAlert {
	if len(alerts) == 0 {
		return nil
	}
	out := make([]BudgetAlert, len(alerts))
	for i, a := range alerts {
		out[i] = BudgetAlert{
			Category: a.Category,
			Level:    a.Level.String(),
			Cap:      money.Format(a.Cap),
			Spent:    money.Format(a.Spent),
		}
	}
	return out
}
