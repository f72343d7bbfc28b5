package app

import (
	"github.com/gorilla/mux"
	"github.com/trackwise/trackwise/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Expenses
	r.HandleFunc("/api/expense", deps.ExpenseHandler.Record).Methods("POST")
	r.HandleFunc("/api/expense", deps.ExpenseHandler.List).Methods("GET")
	r.HandleFunc("/api/expense/{id}", deps.ExpenseHandler.Delete).Methods("DELETE")

	// Incomes
	r.HandleFunc("/api/income", deps.IncomeHandler.Record).Methods("POST")
	r.HandleFunc("/api/income", deps.IncomeHandler.List).Methods("GET")
	r.HandleFunc("/api/income/{id}", deps.IncomeHandler.Delete).Methods("DELETE")

	// Budgets
	r.HandleFunc("/api/budget", deps.BudgetHandler.Register).Methods("POST")
	r.HandleFunc("/api/budget", deps.BudgetHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/budget/{id}", deps.BudgetHandler.Update).Methods("PUT")
	r.HandleFunc("/api/budget/{id}", deps.BudgetHandler.Delete).Methods("DELETE")

	// Analytics
	r.HandleFunc("/api/analytics/totals", deps.AnalyticsHandler.GetTotals).Queries("period", "{period}").Methods("GET")
	r.HandleFunc("/api/analytics/breakdown", deps.AnalyticsHandler.GetBreakdown).Queries("period", "{period}").Methods("GET")
	r.HandleFunc("/api/analytics/top-categories", deps.AnalyticsHandler.GetTopCategories).Methods("GET")
	r.HandleFunc("/api/analytics/budget-tracker", deps.AnalyticsHandler.GetBudgetTracker).Queries("category", "{category}").Methods("GET")
	r.HandleFunc("/api/analytics/recent", deps.AnalyticsHandler.GetRecent).Methods("GET")

	// User management
	r.HandleFunc("/api/user", deps.UserHandler.Register).Methods("POST")
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
}
