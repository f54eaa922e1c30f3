// Package service orchestrates all ledger, budget, and account operations.
// It is the only mutator of wallets; every write goes through the operator
// so mutations serialize and every flush covers the whole directory.
package service

import (
	"github.com/carson-networks/ledger-server/internal/operator"
	"github.com/carson-networks/ledger-server/internal/state"
	"github.com/sirupsen/logrus"
)

// Service holds all business logic services.
type Service struct {
	Accounting *AccountingService
}

// NewService creates a new Service over the given state and operator.
func NewService(st *state.State, op *operator.OperatorDelegator, logger *logrus.Logger) *Service {
	return &Service{
		Accounting: NewAccountingService(st, op, logger),
	}
}
