package actions

import (
	"context"
	"fmt"

	"github.com/carson-networks/ledger-server/internal/budget"
	"github.com/carson-networks/ledger-server/internal/directory"
	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/state"
	"github.com/carson-networks/ledger-server/internal/wallet"
)

// TransferCategory labels both legs of a transfer in the participants' ledgers.
const TransferCategory = "Transfer"

// Transfer moves funds between two wallets: an expense leg on the sender and
// an income leg on the recipient, recorded under one snapshot. The balance
// check and both appends run inside a single exclusive state update, so the
// effect is all-or-nothing even with concurrent callers.
type Transfer struct {
	FromLogin   string
	ToLogin     string
	Amount      float64
	Description string

	// Results for the sender's side, valid after Perform succeeds.
	Record       *ledger.TransactionRecord
	BudgetAlerts []budget.Alert
	BalanceAlert wallet.BalanceLevel
}

func (a *Transfer) Perform(ctx context.Context, st *state.State) error {
	return st.Update(func(dir *directory.Directory) error {
		sender, err := dir.Resolve(a.FromLogin)
		if err != nil {
			return err
		}
		recipient, err := dir.Resolve(a.ToLogin)
		if err != nil {
			return err
		}
		if sender.Wallet.Balance() < a.Amount {
			return wallet.ErrInsufficientFunds
		}

		debit := ledger.NewRecord(ledger.Expense, TransferCategory, a.Amount,
			fmt.Sprintf("Transfer to %s: %s", a.ToLogin, a.Description))
		credit := ledger.NewRecord(ledger.Income, TransferCategory, a.Amount,
			fmt.Sprintf("Transfer from %s: %s", a.FromLogin, a.Description))

		sender.Wallet.AddTransaction(debit)
		recipient.Wallet.AddTransaction(credit)

		if err := st.Flush(ctx); err != nil {
			recipient.Wallet.RemoveTransaction(credit)
			sender.Wallet.RemoveTransaction(debit)
			return err
		}

		a.Record = debit
		a.BudgetAlerts = sender.Wallet.EvaluateAlerts()
		a.BalanceAlert = sender.Wallet.BalanceAlert()
		return nil
	})
}
