// Package auth exposes registration and session endpoints.
package auth

import (
	"context"

	"github.com/carson-networks/ledger-server/internal/service"
)

// accountService is the slice of the accounting service these handlers use.
type accountService interface {
	Register(ctx context.Context, login, secret string) error
	Login(ctx context.Context, login, secret string) (*service.Session, error)
	Logout(ctx context.Context, token string) error
}
