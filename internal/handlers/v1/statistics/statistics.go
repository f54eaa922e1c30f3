// Package statistics exposes the aggregated financial summary endpoint.
package statistics

import (
	"context"
	"net/http"
	"sort"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/money"
	"github.com/carson-networks/ledger-server/internal/service"
)

// statisticsService is the slice of the accounting service this handler uses.
type statisticsService interface {
	Statistics(ctx context.Context, token string) (*service.Statistics, error)
}

// CategoryTotal is one category's aggregated amount.
type CategoryTotal struct {
	Category string `json:"category" doc:"Category label"`
	Total    string `json:"total" doc:"Decimal total"`
}

// BudgetStatus is one capped category's standing.
type BudgetStatus struct {
	Category  string `json:"category" doc:"Capped category"`
	Cap       string `json:"cap" doc:"Decimal cap"`
	Spent     string `json:"spent" doc:"Decimal spend to date"`
	Remaining string `json:"remaining" doc:"Decimal cap minus spend, negative when exceeded"`
	Level     string `json:"level" doc:"normal, near or exceeded"`
}

// StatisticsResponseBody is the full financial summary for the session user.
type StatisticsResponseBody struct {
	TotalIncome        string          `json:"totalIncome" doc:"Decimal sum of all income"`
	TotalExpense       string          `json:"totalExpense" doc:"Decimal sum of all expenses"`
	Balance            string          `json:"balance" doc:"Decimal income minus expenses"`
	IncomeByCategory   []CategoryTotal `json:"incomeByCategory" doc:"Income totals per category, sorted by category"`
	ExpensesByCategory []CategoryTotal `json:"expensesByCategory" doc:"Expense totals per category, sorted by category"`
	Budgets            []BudgetStatus  `json:"budgets" doc:"Budget standing per capped category, sorted by category"`
	BalanceAlert       string          `json:"balanceAlert" doc:"ok, low or negative"`
}

// StatisticsInput is the Huma input for the statistics query.
type StatisticsInput struct {
	Token string `header:"X-Session-Token" required:"true" doc:"Session token"`
}

// StatisticsOutput is the Huma output for the statistics query.
type StatisticsOutput struct {
	Body StatisticsResponseBody
}

// StatisticsHandler handles GET /v1/statistics.
type StatisticsHandler struct {
	Service statisticsService
}

// NewStatisticsHandler creates a new StatisticsHandler.
func NewStatisticsHandler(svc statisticsService) *StatisticsHandler {
	return &StatisticsHandler{Service: svc}
}

// Register registers the endpoint with the Huma API.
func (h *StatisticsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-statistics",
		Method:      http.MethodGet,
		Path:        "/v1/statistics",
		Summary:     "Get statistics",
		Description: "Aggregates the session user's wallet: totals, per-category breakdowns, budget standing and balance alert.",
		Tags:        []string{"Statistics"},
	}, h.handle)
}

func (h *StatisticsHandler) handle(ctx context.Context, input *StatisticsInput) (*StatisticsOutput, error) {
	stats, err := h.Service.Statistics(ctx, input.Token)
	if err != nil {
		return nil, httperr.FromService(err)
	}

	budgets := make([]BudgetStatus, len(stats.Budgets))
	for i, b := range stats.Budgets {
		budgets[i] = BudgetStatus{
			Category:  b.Category,
			Cap:       money.Format(b.Cap),
			Spent:     money.Format(b.Spent),
			Remaining: money.Format(b.Remaining),
			Level:     b.Level.String(),
		}
	}

	return &StatisticsOutput{
		Body: StatisticsResponseBody{
			TotalIncome:        money.Format(stats.TotalIncome),
			TotalExpense:       money.Format(stats.TotalExpense),
			Balance:            money.Format(stats.Balance),
			IncomeByCategory:   categoryTotals(stats.IncomeByCategory),
			ExpensesByCategory: categoryTotals(stats.ExpensesByCategory),
			Budgets:            budgets,
			BalanceAlert:       stats.BalanceAlert.String(),
		},
	}, nil
}

// categoryTotals renders a category map as a sorted list so the response is
// stable across requests.
func categoryTotals(totals map[string]float64) []CategoryTotal {
	categories := make([]string, 0, len(totals))
	for category := range totals {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	out := make([]CategoryTotal, len(categories))
	for i, category := range categories {
		out[i] = CategoryTotal{Category: category, Total: money.Format(totals[category])}
	}
	return out
}
