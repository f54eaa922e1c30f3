package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/httperr"
)

// RecentTransactionsInput is the Huma input for listing recent records.
type RecentTransactionsInput struct {
	Token string `header:"X-Session-Token" required:"true" doc:"Session token"`
	Count int    `query:"count" minimum:"1" maximum:"100" default:"10" doc:"Maximum records to return"`
}

// RecentTransactionsResponseBody is a page of records, newest first.
type RecentTransactionsResponseBody struct {
	Transactions []Transaction `json:"transactions" doc:"Records ordered newest first"`
}

// RecentTransactionsOutput is the Huma output for listing recent records.
type RecentTransactionsOutput struct {
	Body RecentTransactionsResponseBody
}

// RecentTransactionsHandler handles GET /v1/transactions/recent.
type RecentTransactionsHandler struct {
	Service transactionLister
}

// NewRecentTransactionsHandler creates a new RecentTransactionsHandler.
func NewRecentTransactionsHandler(svc transactionLister) *RecentTransactionsHandler {
	return &RecentTransactionsHandler{Service: svc}
}

// Register registers the endpoint with the Huma API.
func (h *RecentTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "recent-transactions",
		Method:      http.MethodGet,
		Path:        "/v1/transactions/recent",
		Summary:     "Recent transactions",
		Description: "Returns the most recent records from the session user's ledger.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *RecentTransactionsHandler) handle(ctx context.Context, input *RecentTransactionsInput) (*RecentTransactionsOutput, error) {
	records, err := h.Service.RecentTransactions(ctx, input.Token, input.Count)
	if err != nil {
		return nil, httperr.FromService(err)
	}

	out := make([]Transaction, len(records))
	for i, r := range records {
		out[i] = fromRecord(r)
	}
	return &RecentTransactionsOutput{Body: RecentTransactionsResponseBody{Transactions: out}}, nil
}
