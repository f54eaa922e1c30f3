package auth

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/httperr"
)

// LoginBody is the request body for opening a session.
type LoginBody struct {
	Login  string `json:"login" required:"true" doc:"Account login"`
	Secret string `json:"secret" required:"true" doc:"Credential secret"`
}

// LoginInput is the Huma input for opening a session.
type LoginInput struct {
	Body LoginBody
}

// LoginResponseBody carries the session token for subsequent requests.
type LoginResponseBody struct {
	Token string `json:"token" doc:"Session token, pass in the X-Session-Token header"`
}

// LoginOutput is the Huma output for opening a session.
type LoginOutput struct {
	Body LoginResponseBody
}

// LoginHandler handles POST /v1/login.
type LoginHandler struct {
	Service accountService
}

// NewLoginHandler creates a new LoginHandler.
func NewLoginHandler(svc accountService) *LoginHandler {
	return &LoginHandler{Service: svc}
}

// Register registers the endpoint with the Huma API.
func (h *LoginHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/v1/login",
		Summary:     "Log in",
		Description: "Opens a session and returns its token.",
		Tags:        []string{"Auth"},
	}, h.handle)
}

func (h *LoginHandler) handle(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	session, err := h.Service.Login(ctx, input.Body.Login, input.Body.Secret)
	if err != nil {
		return nil, httperr.FromService(err)
	}
	return &LoginOutput{Body: LoginResponseBody{Token: session.Token}}, nil
}
