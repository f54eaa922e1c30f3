// Package httperr maps service errors onto HTTP error responses so every v1
// handler reports the same status for the same failure.
package httperr

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/directory"
	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/service"
	"github.com/carson-networks/ledger-server/internal/wallet"
)

// FromService translates a service error into a huma status error.
func FromService(err error) error {
	switch {
	case errors.Is(err, service.ErrNotAuthenticated):
		return huma.Error401Unauthorized("not authenticated", err)
	case errors.Is(err, directory.ErrAuthenticationFailed):
		return huma.Error401Unauthorized("invalid credentials", err)
	case errors.Is(err, directory.ErrDuplicateLogin):
		return huma.Error409Conflict("login already registered", err)
	case errors.Is(err, directory.ErrUserNotFound):
		return huma.Error404NotFound("user not found", err)
	case errors.Is(err, ledger.ErrInvalidAmount):
		return huma.Error400BadRequest("amount must be positive", err)
	case errors.Is(err, ledger.ErrInvalidCategory):
		return huma.Error400BadRequest("category must not be empty", err)
	case errors.Is(err, service.ErrInvalidLogin):
		return huma.Error400BadRequest("login must be at least 3 alphanumeric characters", err)
	case errors.Is(err, wallet.ErrInsufficientFunds):
		return huma.Error422UnprocessableEntity("insufficient funds", err)
	default:
		return huma.Error500InternalServerError("internal error", err)
	}
}
