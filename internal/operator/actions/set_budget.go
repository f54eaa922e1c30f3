package actions

import (
	"context"

	"github.com/carson-networks/ledger-server/internal/budget"
	"github.com/carson-networks/ledger-server/internal/directory"
	"github.com/carson-networks/ledger-server/internal/state"
)

// SetBudget inserts or overwrites one category cap and re-evaluates alerts.
type SetBudget struct {
	Login    string
	Category string
	Amount   float64

	// Results, valid after Perform succeeds.
	BudgetAlerts []budget.Alert
}

func (a *SetBudget) Perform(ctx context.Context, st *state.State) error {
	return st.Update(func(dir *directory.Directory) error {
		user, err := dir.Resolve(a.Login)
		if err != nil {
			return err
		}

		previous, hadPrevious := user.Wallet.Budgets()[a.Category]
		if err := user.Wallet.SetBudget(a.Category, a.Amount); err != nil {
			return err
		}

		if err := st.Flush(ctx); err != nil {
			if hadPrevious {
				user.Wallet.SetBudget(a.Category, previous)
			} else {
				user.Wallet.RemoveBudget(a.Category)
			}
			return err
		}

		a.BudgetAlerts = user.Wallet.EvaluateAlerts()
		return nil
	})
}

// RemoveBudget deletes one category cap if present.
type RemoveBudget struct {
	Login    string
	Category string

	// Removed reports whether a cap existed, valid after Perform succeeds.
	Removed bool
}

func (a *RemoveBudget) Perform(ctx context.Context, st *state.State) error {
	return st.Update(func(dir *directory.Directory) error {
		user, err := dir.Resolve(a.Login)
		if err != nil {
			return err
		}

		previous, hadPrevious := user.Wallet.Budgets()[a.Category]
		removed := user.Wallet.RemoveBudget(a.Category)
		if !removed {
			a.Removed = false
			return nil
		}

		if err := st.Flush(ctx); err != nil {
			if hadPrevious {
				user.Wallet.SetBudget(a.Category, previous)
			}
			return err
		}

		a.Removed = true
		return nil
	})
}
