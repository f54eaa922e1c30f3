// Package budgets exposes category cap management endpoints.
package budgets

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/budget"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/money"
	"github.com/carson-networks/ledger-server/internal/service"
)

// budgetService is the slice of the accounting service these handlers use.
type budgetService interface {
	SetBudget(ctx context.Context, token, category string, amount float64) (*service.MutationResult, error)
	RemoveBudget(ctx context.Context, token, category string) (bool, error)
}

// BudgetAlert is the wire form of one budget classification.
type BudgetAlert struct {
	Category string `json:"category" doc:"Capped category"`
	Level    string `json:"level" doc:"normal, near or exceeded"`
	Cap      string `json:"cap" doc:"Decimal cap"`
	Spent    string `json:"spent" doc:"Decimal spend to date"`
}

// SetBudgetBody is the request body for setting a category cap.
type SetBudgetBody struct {
	Category string `json:"category" required:"true" doc:"Category label"`
	Amount   string `json:"amount" required:"true" doc:"Decimal cap, must be positive"`
}

// SetBudgetInput is the Huma input for setting a category cap.
type SetBudgetInput struct {
	Token string `header:"X-Session-Token" required:"true" doc:"Session token"`
	Body  SetBudgetBody
}

// SetBudgetResponseBody reports the re-evaluated budget alerts.
type SetBudgetResponseBody struct {
	BudgetAlerts []BudgetAlert `json:"budgetAlerts,omitempty" doc:"Budget state per capped category"`
}

// SetBudgetOutput is the Huma output for setting a category cap.
type SetBudgetOutput struct {
	Body SetBudgetResponseBody
}

// SetBudgetHandler handles PUT /v1/budget.
type SetBudgetHandler struct {
	Service budgetService
}

// NewSetBudgetHandler creates a new SetBudgetHandler.
func NewSetBudgetHandler(svc budgetService) *SetBudgetHandler {
	return &SetBudgetHandler{Service: svc}
}

// Register registers the endpoint with the Huma API.
func (h *SetBudgetHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "set-budget",
		Method:      http.MethodPut,
		Path:        "/v1/budget",
		Summary:     "Set budget",
		Description: "Sets or overwrites the spending cap for a category.",
		Tags:        []string{"Budgets"},
	}, h.handle)
}

func (h *SetBudgetHandler) handle(ctx context.Context, input *SetBudgetInput) (*SetBudgetOutput, error) {
	amount, err := money.Parse(input.Body.Amount)
	if err != nil {
		return nil, huma.Error400BadRequest("invalid amount", err)
	}

	result, err := h.Service.SetBudget(ctx, input.Token, input.Body.Category, amount)
	if err != nil {
		return nil, httperr.FromService(err)
	}
	return &SetBudgetOutput{Body: SetBudgetResponseBody{BudgetAlerts: fromAlerts(result.BudgetAlerts)}}, nil
}

// RemoveBudgetInput is the Huma input for removing a category cap.
type RemoveBudgetInput struct {
	Token    string `header:"X-Session-Token" required:"true" doc:"Session token"`
	Category string `path:"category" doc:"Category label"`
}

// RemoveBudgetResponseBody reports whether a cap existed.
type RemoveBudgetResponseBody struct {
	Removed bool `json:"removed" doc:"Whether a cap existed for the category"`
}

// RemoveBudgetOutput is the Huma output for removing a category cap.
type RemoveBudgetOutput struct {
	Body RemoveBudgetResponseBody
}

// RemoveBudgetHandler handles DELETE /v1/budget/{category}.
type RemoveBudgetHandler struct {
	Service budgetService
}

// NewRemoveBudgetHandler creates a new RemoveBudgetHandler.
func NewRemoveBudgetHandler(svc budgetService) *RemoveBudgetHandler {
	return &RemoveBudgetHandler{Service: svc}
}

// Register registers the endpoint with the Huma API.
func (h *RemoveBudgetHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "remove-budget",
		Method:      http.MethodDelete,
		Path:        "/v1/budget/{category}",
		Summary:     "Remove budget",
		Description: "Removes the spending cap for a category if one is set.",
		Tags:        []string{"Budgets"},
	}, h.handle)
}

func (h *RemoveBudgetHandler) handle(ctx context.Context, input *RemoveBudgetInput) (*RemoveBudgetOutput, error) {
	removed, err := h.Service.RemoveBudget(ctx, input.Token, input.Category)
	if err != nil {
		return nil, httperr.FromService(err)
	}
	return &RemoveBudgetOutput{Body: RemoveBudgetResponseBody{Removed: removed}}, nil
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
