package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/money"
	"github.com/carson-networks/ledger-server/internal/service"
)

// RecordTransactionInput is the Huma input for recording income or expense.
type RecordTransactionInput struct {
	Token string `header:"X-Session-Token" required:"true" doc:"Session token"`
	Body  RecordTransactionBody
}

// RecordTransactionOutput is the Huma output for recording income or expense.
type RecordTransactionOutput struct {
	Status int
	Body   RecordTransactionResponseBody
}

// RecordTransactionHandler handles POST /v1/income and POST /v1/expense.
// The two operations differ only in which service method records the entry.
type RecordTransactionHandler struct {
	Service transactionRecorder
}

// NewRecordTransactionHandler creates a new RecordTransactionHandler.
func NewRecordTransactionHandler(svc transactionRecorder) *RecordTransactionHandler {
	return &RecordTransactionHandler{Service: svc}
}

// Register registers both endpoints with the Huma API.
func (h *RecordTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "add-income",
		Method:        http.MethodPost,
		Path:          "/v1/income",
		Summary:       "Add income",
		Description:   "Records an income transaction on the session user's wallet.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusCreated,
	}, h.handleIncome)

	huma.Register(api, huma.Operation{
		OperationID:   "add-expense",
		Method:        http.MethodPost,
		Path:          "/v1/expense",
		Summary:       "Add expense",
		Description:   "Records an expense transaction on the session user's wallet.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusCreated,
	}, h.handleExpense)
}

func (h *RecordTransactionHandler) handleIncome(ctx context.Context, input *RecordTransactionInput) (*RecordTransactionOutput, error) {
	return h.handle(ctx, input, h.Service.AddIncome)
}

func (h *RecordTransactionHandler) handleExpense(ctx context.Context, input *RecordTransactionInput) (*RecordTransactionOutput, error) {
	return h.handle(ctx, input, h.Service.AddExpense)
}

type recordFunc func(ctx context.Context, token, category string, amount float64, description string) (*service.MutationResult, error)

func (h *RecordTransactionHandler) handle(ctx context.Context, input *RecordTransactionInput, record recordFunc) (*RecordTransactionOutput, error) {
	amount, err := money.Parse(input.Body.Amount)
	if err != nil {
		return nil, huma.Error400BadRequest("invalid amount", err)
	}

	result, err := record(ctx, input.Token, input.Body.Category, amount, input.Body.Description)
	if err != nil {
		return nil, httperr.FromService(err)
	}

	return &RecordTransactionOutput{
		Status: http.StatusCreated,
		Body: RecordTransactionResponseBody{
			ID:           result.Record.ID,
			BudgetAlerts: fromAlerts(result.BudgetAlerts),
			BalanceAlert: result.BalanceAlert.String(),
		},
	}, nil
}
