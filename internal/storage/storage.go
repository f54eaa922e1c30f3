// Package storage defines the whole-directory snapshot contract and the data
// shapes shared by its backends.
package storage

import (
	"context"
	"time"

	"github.com/carson-networks/ledger-server/internal/directory"
	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/wallet"
)

// Snapshot persists the entire account directory as one unit. Load runs once
// at process start; Save runs synchronously at every flush point and must
// leave either the previous or the new snapshot on disk, never a mix.
type Snapshot interface {
	Load(ctx context.Context) (*directory.Directory, error)
	Save(ctx context.Context, dir *directory.Directory) error
	Close() error
}

// TransactionData is the persisted form of one ledger record.
type TransactionData struct {
	ID          string    `msgpack:"id"`
	Kind        int8      `msgpack:"kind"`
	Amount      float64   `msgpack:"amount"`
	Category    string    `msgpack:"category"`
	Description string    `msgpack:"description"`
	CreatedAt   time.Time `msgpack:"created_at"`
}

// UserData is the persisted form of one user with wallet contents.
type UserData struct {
	Login        string             `msgpack:"login"`
	Secret       string             `msgpack:"secret"`
	Transactions []TransactionData  `msgpack:"transactions"`
	Budgets      map[string]float64 `msgpack:"budgets"`
}

// Flatten converts the live directory into its persisted form. Transaction
// order within each user is insertion order; users are sorted by login.
func Flatten(dir *directory.Directory) []UserData {
	users := dir.Users()
	out := make([]UserData, len(users))
	for i, u := range users {
		records := u.Wallet.Transactions()
		txs := make([]TransactionData, len(records))
		for j, r := range records {
			txs[j] = TransactionData{
				ID:          r.ID,
				Kind:        int8(r.Kind),
				Amount:      r.Amount,
				Category:    r.Category,
				Description: r.Description,
				CreatedAt:   r.CreatedAt,
			}
		}
		out[i] = UserData{
			Login:        u.Login,
			Secret:       u.Secret,
			Transactions: txs,
			Budgets:      u.Wallet.Budgets(),
		}
	}
	return out
}

// Rebuild converts persisted users back into a live directory.
func Rebuild(users []UserData) *directory.Directory {
	restored := make([]*directory.User, len(users))
	for i, u := range users {
		records := make([]*ledger.TransactionRecord, len(u.Transactions))
		for j, tx := range u.Transactions {
			records[j] = &ledger.TransactionRecord{
				ID:          tx.ID,
				Kind:        ledger.Kind(tx.Kind),
				Amount:      tx.Amount,
				Category:    tx.Category,
				Description: tx.Description,
				CreatedAt:   tx.CreatedAt,
			}
		}
		restored[i] = &directory.User{
			Login:  u.Login,
			Secret: u.Secret,
			Wallet: wallet.Restore(records, u.Budgets),
		}
	}
	return directory.RestoreFromUsers(restored)
}
