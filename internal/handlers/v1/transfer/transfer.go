// Package transfer exposes the cross-account transfer endpoint.
package transfer

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/budget"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/money"
	"github.com/carson-networks/ledger-server/internal/service"
)

// transferService is the slice of the accounting service this handler uses.
type transferService interface {
	Transfer(ctx context.Context, token, toLogin string, amount float64, description string) (*service.MutationResult, error)
}

// TransferBody is the request body for a transfer.
type TransferBody struct {
	ToLogin     string `json:"toLogin" required:"true" doc:"Recipient login"`
	Amount      string `json:"amount" required:"true" doc:"Decimal amount, must be positive"`
	Description string `json:"description" doc:"Free-text note, embedded in both ledger legs"`
}

// TransferInput is the Huma input for a transfer.
type TransferInput struct {
	Token string `header:"X-Session-Token" required:"true" doc:"Session token"`
	Body  TransferBody
}

// BudgetAlert is the wire form of one budget classification for the sender.
type BudgetAlert struct {
	Category string `json:"category" doc:"Capped category"`
	Level    string `json:"level" doc:"normal, near or exceeded"`
	Cap      string `json:"cap" doc:"Decimal cap"`
	Spent    string `json:"spent" doc:"Decimal spend to date"`
}

// TransferResponseBody reports the sender-side record and alert state.
type TransferResponseBody struct {
	ID           string        `json:"id" doc:"Sender-side record UUID"`
	BudgetAlerts []BudgetAlert `json:"budgetAlerts,omitempty" doc:"Sender budget state per capped category"`
	BalanceAlert string        `json:"balanceAlert" doc:"ok, low or negative"`
}

func fromAlerts(alerts []budget.Alert) []BudgetAlert {
	if len(alerts) == 0 {
		return nil
	}
	out := make([]BudgetAlert, len(alerts))
	for i, a := range alerts {
		out[i] = BudgetAlert{
			Category: a.Category,
			Level:    a.Level.String(),
			Cap:      money.Format(a.Cap),
			Spent:    money.Format(a.Spent),
		}
	}
	return out
}

// TransferOutput is the Huma output for a transfer.
type TransferOutput struct {
	Status int
	Body   TransferResponseBody
}

// TransferHandler handles POST /v1/transfer.
type TransferHandler struct {
	Service transferService
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(svc transferService) *TransferHandler {
	return &TransferHandler{Service: svc}
}

// Register registers the endpoint with the Huma API.
func (h *TransferHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "transfer",
		Method:        http.MethodPost,
		Path:          "/v1/transfer",
		Summary:       "Transfer funds",
		Description:   "Moves funds from the session user to another account. Both ledger legs land in the same snapshot.",
		Tags:          []string{"Transfers"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func (h *TransferHandler) handle(ctx context.Context, input *TransferInput) (*TransferOutput, error) {
	amount, err := money.Parse(input.Body.Amount)
	if err != nil {
		return nil, huma.Error400BadRequest("invalid amount", err)
	}

	result, err := h.Service.Transfer(ctx, input.Token, input.Body.ToLogin, amount, input.Body.Description)
	if err != nil {
		return nil, httperr.FromService(err)
	}

	return &TransferOutput{
		Status: http.StatusCreated,
		Body: TransferResponseBody{
			ID:           result.Record.ID,
			BudgetAlerts: fromAlerts(result.BudgetAlerts),
			BalanceAlert: result.BalanceAlert.String(),
		},
	}, nil
}
