package service

import (
	"context"
	"errors"
	"regexp"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-server/internal/budget"
	"github.com/carson-networks/ledger-server/internal/directory"
	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/operator"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/state"
	"github.com/carson-networks/ledger-server/internal/wallet"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrInvalidLogin     = errors.New("login must be at least 3 alphanumeric characters")
)

var loginPattern = regexp.MustCompile(`^[a-zA-Z0-9]{3,}$`)

// MutationResult carries what the embedding layer needs after a wallet
// mutation: the new record and the freshly evaluated alerts.
type MutationResult struct {
	Record       *ledger.TransactionRecord
	BudgetAlerts []budget.Alert
	BalanceAlert wallet.BalanceLevel
}

// AccountingService handles registration, sessions, and all wallet
// operations.
type AccountingService struct {
	state    *state.State
	operator *operator.OperatorDelegator
	sessions *SessionRegistry
	logger   *logrus.Logger
}

// NewAccountingService creates a new AccountingService.
func NewAccountingService(st *state.State, op *operator.OperatorDelegator, logger *logrus.Logger) *AccountingService {
	return &AccountingService{
		state:    st,
		operator: op,
		sessions: NewSessionRegistry(),
		logger:   logger,
	}
}

// Register creates an account after validating the login format. The new
// directory state is flushed before the call returns.
func (s *AccountingService) Register(ctx context.Context, login, secret string) error {
	if !loginPattern.MatchString(login) {
		return ErrInvalidLogin
	}

	action := &actions.RegisterUser{Login: login, Secret: secret}
	if err := s.operator.Process(ctx, action); err != nil {
		return err
	}
	s.logger.WithField("login", login).Info("AccountingService.Register.Complete")
	return nil
}

// Login checks the credentials and opens a session.
func (s *AccountingService) Login(ctx context.Context, login, secret string) (*Session, error) {
	err := s.state.View(func(dir *directory.Directory) error {
		_, err := dir.Authenticate(login, secret)
		return err
	})
	if err != nil {
		return nil, err
	}

	session := s.sessions.Create(login)
	s.logger.WithField("login", login).Info("AccountingService.Login.Complete")
	return session, nil
}

// Logout closes the session and flushes the directory.
func (s *AccountingService) Logout(ctx context.Context, token string) error {
	session, ok := s.sessions.Resolve(token)
	if !ok {
		return ErrNotAuthenticated
	}
	s.sessions.Remove(token)

	if err := s.operator.Process(ctx, &actions.Flush{}); err != nil {
		return err
	}
	s.logger.WithField("login", session.Login).Info("AccountingService.Logout.Complete")
	return nil
}

// AddIncome records an income transaction on the session user's wallet.
func (s *AccountingService) AddIncome(ctx context.Context, token, category string, amount float64, description string) (*MutationResult, error) {
	return s.addTransaction(ctx, token, ledger.Income, category, amount, description)
}

// AddExpense records an expense transaction on the session user's wallet.
func (s *AccountingService) AddExpense(ctx context.Context, token, category string, amount float64, description string) (*MutationResult, error) {
	return s.addTransaction(ctx, token, ledger.Expense, category, amount, description)
}

func (s *AccountingService) addTransaction(ctx context.Context, token string, kind ledger.Kind, category string, amount float64, description string) (*MutationResult, error) {
	session, ok := s.sessions.Resolve(token)
	if !ok {
		return nil, ErrNotAuthenticated
	}
	if amount <= 0 {
		return nil, ledger.ErrInvalidAmount
	}
	if category == "" {
		return nil, ledger.ErrInvalidCategory
	}

	action := &actions.AddTransaction{
		Login:       session.Login,
		Kind:        kind,
		Category:    category,
		Amount:      amount,
		Description: description,
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"login":    session.Login,
		"kind":     kind.String(),
		"category": category,
	}).Info("AccountingService.AddTransaction.Complete")

	return &MutationResult{
		Record:       action.Record,
		BudgetAlerts: action.BudgetAlerts,
		BalanceAlert: action.BalanceAlert,
	}, nil
}

// SetBudget sets or overwrites a category spending cap.
func (s *AccountingService) SetBudget(ctx context.Context, token, category string, amount float64) (*MutationResult, error) {
	session, ok := s.sessions.Resolve(token)
	if !ok {
		return nil, ErrNotAuthenticated
	}
	if amount <= 0 {
		return nil, ledger.ErrInvalidAmount
	}
	if category == "" {
		return nil, ledger.ErrInvalidCategory
	}

	action := &actions.SetBudget{Login: session.Login, Category: category, Amount: amount}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"login":    session.Login,
		"category": category,
	}).Info("AccountingService.SetBudget.Complete")

	return &MutationResult{BudgetAlerts: action.BudgetAlerts}, nil
}

// RemoveBudget deletes a category cap, reporting whether one existed.
func (s *AccountingService) RemoveBudget(ctx context.Context, token, category string) (bool, error) {
	session, ok := s.sessions.Resolve(token)
	if !ok {
		return false, ErrNotAuthenticated
	}

	action := &actions.RemoveBudget{Login: session.Login, Category: category}
	if err := s.operator.Process(ctx, action); err != nil {
		return false, err
	}
	return action.Removed, nil
}

// Transfer moves funds from the session user to another account. Validation
// order: session, amount, recipient, balance; the two ledger legs and the
// snapshot flush are atomic.
func (s *AccountingService) Transfer(ctx context.Context, token, toLogin string, amount float64, description string) (*MutationResult, error) {
	session, ok := s.sessions.Resolve(token)
	if !ok {
		return nil, ErrNotAuthenticated
	}
	if amount <= 0 {
		return nil, ledger.ErrInvalidAmount
	}

	action := &actions.Transfer{
		FromLogin:   session.Login,
		ToLogin:     toLogin,
		Amount:      amount,
		Description: description,
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"from": session.Login,
		"to":   toLogin,
	}).Info("AccountingService.Transfer.Complete")

	return &MutationResult{
		Record:       action.Record,
		BudgetAlerts: action.BudgetAlerts,
		BalanceAlert: action.BalanceAlert,
	}, nil
}

// RecentTransactions returns up to count records, newest first.
func (s *AccountingService) RecentTransactions(ctx context.Context, token string, count int) ([]*ledger.TransactionRecord, error) {
	session, ok := s.sessions.Resolve(token)
	if !ok {
		return nil, ErrNotAuthenticated
	}

	var records []*ledger.TransactionRecord
	err := s.state.View(func(dir *directory.Directory) error {
		user, err := dir.Resolve(session.Login)
		if err != nil {
			return err
		}
		records = user.Wallet.Recent(count)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}
