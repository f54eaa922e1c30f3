package ledger

import (
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
)

// Kind classifies a transaction as money in or money out.
type Kind int8

const (
	Income Kind = iota
	Expense
)

func (k Kind) String() string {
	switch k {
	case Income:
		return "income"
	case Expense:
		return "expense"
	default:
		return "unknown"
	}
}

var (
	ErrInvalidAmount   = errors.New("amount must be positive")
	ErrInvalidCategory = errors.New("category must not be empty")
)

// TransactionRecord is a single ledger entry. Records are immutable once
// created; callers must not modify fields after construction.
type TransactionRecord struct {
	ID          string
	Kind        Kind
	Amount      float64
	Category    string
	Description string
	CreatedAt   time.Time
}

// NewRecord builds a record with a fresh ID and the current wall-clock time.
// Amount and category validation is the caller's responsibility.
func NewRecord(kind Kind, category string, amount float64, description string) *TransactionRecord {
	return &TransactionRecord{
		ID:          uuid.Must(uuid.NewV4()).String(),
		Kind:        kind,
		Amount:      amount,
		Category:    category,
		Description: description,
		CreatedAt:   time.Now(),
	}
}
