// Package sqlite is a snapshot backend on a single SQLite database file.
// A save rewrites the whole directory inside one transaction, so the file
// always holds exactly one consistent snapshot.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/carson-networks/ledger-server/internal/directory"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// timeLayout round-trips timestamps at full precision.
const timeLayout = time.RFC3339Nano

type Store struct {
	db *sql.DB
}

// Open creates the store at dbPath, running schema migrations first.
func Open(dbPath string) (*Store, error) {
	if err := RunMigrations(dbPath); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", dbPath, err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Load(ctx context.Context) (*directory.Directory, error) {
	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	return storage.Rebuild(users), nil
}

func (s *Store) loadUsers(ctx context.Context) ([]storage.UserData, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT login, secret FROM users ORDER BY login")
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []storage.UserData
	index := make(map[string]int)
	for rows.Next() {
		var u storage.UserData
		if err := rows.Scan(&u.Login, &u.Secret); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		u.Budgets = make(map[string]float64)
		index[u.Login] = len(users)
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	txRows, err := s.db.QueryContext(ctx,
		"SELECT login, id, kind, amount, category, description, created_at FROM transactions ORDER BY login, seq")
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer txRows.Close()
	for txRows.Next() {
		var login, createdAt string
		var tx storage.TransactionData
		if err := txRows.Scan(&login, &tx.ID, &tx.Kind, &tx.Amount, &tx.Category, &tx.Description, &createdAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx.CreatedAt, err = time.Parse(timeLayout, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse transaction timestamp: %w", err)
		}
		i, ok := index[login]
		if !ok {
			return nil, fmt.Errorf("transaction %s references unknown login %q", tx.ID, login)
		}
		users[i].Transactions = append(users[i].Transactions, tx)
	}
	if err := txRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	budgetRows, err := s.db.QueryContext(ctx, "SELECT login, category, cap FROM budgets")
	if err != nil {
		return nil, fmt.Errorf("query budgets: %w", err)
	}
	defer budgetRows.Close()
	for budgetRows.Next() {
		var login, category string
		var cap float64
		if err := budgetRows.Scan(&login, &category, &cap); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		i, ok := index[login]
		if !ok {
			return nil, fmt.Errorf("budget %q references unknown login %q", category, login)
		}
		users[i].Budgets[category] = cap
	}
	if err := budgetRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate budgets: %w", err)
	}

	return users, nil
}

// Save replaces the stored snapshot with the directory's current contents.
// Everything happens in one transaction; a failure leaves the previous
// snapshot intact.
func (s *Store) Save(ctx context.Context, dir *directory.Directory) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"budgets", "transactions", "users"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, u := range storage.Flatten(dir) {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO users (login, secret) VALUES (?, ?)", u.Login, u.Secret); err != nil {
			return fmt.Errorf("insert user %q: %w", u.Login, err)
		}
		for seq, rec := range u.Transactions {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO transactions (id, login, seq, kind, amount, category, description, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
				rec.ID, u.Login, seq, rec.Kind, rec.Amount, rec.Category, rec.Description,
				rec.CreatedAt.Format(timeLayout)); err != nil {
				return fmt.Errorf("insert transaction %s: %w", rec.ID, err)
			}
		}
		for category, cap := range u.Budgets {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO budgets (login, category, cap) VALUES (?, ?, ?)", u.Login, category, cap); err != nil {
				return fmt.Errorf("insert budget %q for %q: %w", category, u.Login, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
