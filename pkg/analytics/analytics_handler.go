package analytics

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/trackwise/trackwise/internal/rest"
	"github.com/trackwise/trackwise/pkg/budget"
	"github.com/trackwise/trackwise/pkg/category"
	"github.com/trackwise/trackwise/pkg/transaction"
)

type PeriodTotalsDTO struct {
	Expenses string `json:"expenses"`
	Incomes  string `json:"incomes"`
	Balance  string `json:"balance"`
}

type CategoryTotalDTO struct {
	Category string `json:"category"`
	Total    string `json:"total"`
}

type BudgetReportDTO struct {
	Category   string  `json:"category"`
	Status     string  `json:"status"`
	Spent      string  `json:"spent"`
	Limit      string  `json:"limit"`
	Percentage float64 `json:"percentage"`
}

type RecentEntryDTO struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Kind     string `json:"kind"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetTotals(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	period, err := ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		writeBadPeriod(w, err)
		return
	}

	totals, err := h.service.TotalsByPeriod(r.Context(), period)
	if err != nil {
		if errors.Is(err, ErrInvalidPeriod) {
			writeBadPeriod(w, err)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	response := make(map[string]PeriodTotalsDTO, len(totals))
	for key, bucket := range totals {
		response[key] = PeriodTotalsDTO{
			Expenses: bucket.Expenses.String(),
			Incomes:  bucket.Incomes.String(),
			Balance:  bucket.Balance.String(),
		}
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) GetBreakdown(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	period, err := ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		writeBadPeriod(w, err)
		return
	}

	breakdown, err := h.service.CategoryBreakdown(r.Context(), period)
	if err != nil {
		if errors.Is(err, ErrNoData) {
			// Nothing to show is not a failure; callers rely on telling the
			// two apart.
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "No data for period"})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(breakdown); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) GetTopCategories(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ranked, err := h.service.TopSpendingCategories(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	response := make([]CategoryTotalDTO, 0, len(ranked))
	for _, entry := range ranked {
		response = append(response, CategoryTotalDTO{
			Category: string(entry.Category),
			Total:    entry.Total.String(),
		})
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) GetBudgetTracker(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	c := category.Category(r.URL.Query().Get("category"))
	report, err := h.service.BudgetTracker(r.Context(), c)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoCategory):
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Category is required"})
		case errors.Is(err, budget.ErrBudgetNotFound):
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Budget not found"})
		case errors.Is(err, ErrNoExpenses):
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "No expenses yet"})
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(BudgetReportDTO{
		Category:   string(report.Category),
		Status:     string(report.State),
		Spent:      report.CategoryTotal.String(),
		Limit:      report.Limit.String(),
		Percentage: report.Percentage,
	}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) GetRecent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	recent, err := h.service.RecentTransactions(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	response := make([]RecentEntryDTO, 0, len(recent))
	for _, entry := range recent {
		response = append(response, RecentEntryDTO{
			Category: entry.Category,
			Amount:   entry.Amount.String(),
			Kind:     kindLabel(entry.Kind),
		})
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeBadPeriod(w http.ResponseWriter, err error) {
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
		Error:   "Invalid period",
		Details: err.Error(),
	})
}

func kindLabel(kind transaction.Kind) string {
	if kind == transaction.KindIncome {
		return "Income"
	}
	return "Expense"
}
