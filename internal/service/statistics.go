package service

import (
	"context"

	"github.com/carson-networks/ledger-server/internal/budget"
	"github.com/carson-networks/ledger-server/internal/directory"
	"github.com/carson-networks/ledger-server/internal/wallet"
)

// BudgetStatus is one capped category's standing in the statistics view.
type BudgetStatus struct {
	Category  string
	Cap       float64
	Spent     float64
	Remaining float64
	Level     budget.Level
}

// Statistics is everything the display layer needs to render the session
// user's financial summary.
type Statistics struct {
	TotalIncome        float64
	TotalExpense       float64
	Balance            float64
	IncomeByCategory   map[string]float64
	ExpensesByCategory map[string]float64
	Budgets            []BudgetStatus
	BalanceAlert       wallet.BalanceLevel
}

// Statistics aggregates the session user's wallet. Pure query: no mutation,
// no flush.
func (s *AccountingService) Statistics(ctx context.Context, token string) (*Statistics, error) {
	session, ok := s.sessions.Resolve(token)
	if !ok {
		return nil, ErrNotAuthenticated
	}

	var stats *Statistics
	err := s.state.View(func(dir *directory.Directory) error {
		user, err := dir.Resolve(session.Login)
		if err != nil {
			return err
		}

		w := user.Wallet
		expenses := w.ExpensesByCategory()

		alerts := w.EvaluateAlerts()
		budgets := make([]BudgetStatus, len(alerts))
		for i, alert := range alerts {
			budgets[i] = BudgetStatus{
				Category:  alert.Category,
				Cap:       alert.Cap,
				Spent:     alert.Spent,
				Remaining: alert.Cap - alert.Spent,
				Level:     alert.Level,
			}
		}

		stats = &Statistics{
			TotalIncome:        w.TotalIncome(),
			TotalExpense:       w.TotalExpense(),
			Balance:            w.Balance(),
			IncomeByCategory:   w.IncomeByCategory(),
			ExpensesByCategory: expenses,
			Budgets:            budgets,
			BalanceAlert:       w.BalanceAlert(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}
