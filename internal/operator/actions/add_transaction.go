package actions

import (
	"context"

	"github.com/carson-networks/ledger-server/internal/budget"
	"github.com/carson-networks/ledger-server/internal/directory"
	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/state"
	"github.com/carson-networks/ledger-server/internal/wallet"
)

// AddTransaction appends one income or expense record to a user's ledger and
// re-evaluates alerts. Amount and category are validated by the service
// before the action is enqueued.
type AddTransaction struct {
	Login       string
	Kind        ledger.Kind
	Category    string
	Amount      float64
	Description string

	// Results, valid after Perform succeeds.
	Record       *ledger.TransactionRecord
	BudgetAlerts []budget.Alert
	BalanceAlert wallet.BalanceLevel
}

func (a *AddTransaction) Perform(ctx context.Context, st *state.State) error {
	return st.Update(func(dir *directory.Directory) error {
		user, err := dir.Resolve(a.Login)
		if err != nil {
			return err
		}

		record := ledger.NewRecord(a.Kind, a.Category, a.Amount, a.Description)
		user.Wallet.AddTransaction(record)

		if err := st.Flush(ctx); err != nil {
			user.Wallet.RemoveTransaction(record)
			return err
		}

		a.Record = record
		a.BudgetAlerts = user.Wallet.EvaluateAlerts()
		a.BalanceAlert = user.Wallet.BalanceAlert()
		return nil
	})
}
