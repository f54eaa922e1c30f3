package auth

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/httperr"
)

// LogoutInput is the Huma input for closing a session.
type LogoutInput struct {
	Token string `header:"X-Session-Token" required:"true" doc:"Session token"`
}

// LogoutOutput is the Huma output for closing a session.
type LogoutOutput struct {
	Status int
}

// LogoutHandler handles POST /v1/logout.
type LogoutHandler struct {
	Service accountService
}

// NewLogoutHandler creates a new LogoutHandler.
func NewLogoutHandler(svc accountService) *LogoutHandler {
	return &LogoutHandler{Service: svc}
}

// Register registers the endpoint with the Huma API.
func (h *LogoutHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "logout",
		Method:        http.MethodPost,
		Path:          "/v1/logout",
		Summary:       "Log out",
		Description:   "Closes the session and flushes the directory snapshot.",
		Tags:          []string{"Auth"},
		DefaultStatus: http.StatusNoContent,
	}, h.handle)
}

func (h *LogoutHandler) handle(ctx context.Context, input *LogoutInput) (*LogoutOutput, error) {
	if err := h.Service.Logout(ctx, input.Token); err != nil {
		return nil, httperr.FromService(err)
	}
	return &LogoutOutput{Status: http.StatusNoContent}, nil
}
