package auth

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/httperr"
)

// RegisterBody is the request body for creating an account.
type RegisterBody struct {
	Login  string `json:"login" required:"true" doc:"Unique login, at least 3 alphanumeric characters"`
	Secret string `json:"secret" required:"true" doc:"Credential secret"`
}

// RegisterInput is the Huma input for creating an account.
type RegisterInput struct {
	Body RegisterBody
}

// RegisterOutput is the Huma output for creating an account.
type RegisterOutput struct {
	Status int
}

// RegisterHandler handles POST /v1/register.
type RegisterHandler struct {
	Service accountService
}

// NewRegisterHandler creates a new RegisterHandler.
func NewRegisterHandler(svc accountService) *RegisterHandler {
	return &RegisterHandler{Service: svc}
}

// Register registers the endpoint with the Huma API.
func (h *RegisterHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "register",
		Method:        http.MethodPost,
		Path:          "/v1/register",
		Summary:       "Register account",
		Description:   "Creates a new user with an empty wallet.",
		Tags:          []string{"Auth"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func (h *RegisterHandler) handle(ctx context.Context, input *RegisterInput) (*RegisterOutput, error) {
	if err := h.Service.Register(ctx, input.Body.Login, input.Body.Secret); err != nil {
		return nil, httperr.FromService(err)
	}
	return &RegisterOutput{Status: http.StatusCreated}, nil
}
