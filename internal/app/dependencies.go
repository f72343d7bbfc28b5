package app

import (
	"database/sql"

	"github.com/trackwise/trackwise/internal/config"
	"github.com/trackwise/trackwise/internal/utils"
	"github.com/trackwise/trackwise/pkg/analytics"
	"github.com/trackwise/trackwise/pkg/budget"
	"github.com/trackwise/trackwise/pkg/transaction"
	"github.com/trackwise/trackwise/pkg/user"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	UserService user.Service
	UserHandler *user.Handler

	TransactionRepo    transaction.Repo
	TransactionService *transaction.ServiceImpl
	ExpenseHandler     *transaction.Handler
	IncomeHandler      *transaction.Handler

	BudgetRepo    budget.Repo
	BudgetService *budget.ServiceImpl
	BudgetHandler *budget.Handler

	AnalyticsService *analytics.ServiceImpl
	AnalyticsHandler *analytics.Handler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.UserService = user.NewUserService(user.NewUserRepo(db))
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.TransactionRepo = transaction.NewRepo(db)
	deps.TransactionService = transaction.NewServiceImpl(deps.TransactionRepo)
	deps.ExpenseHandler = transaction.NewExpenseHandler(deps.TransactionService)
	deps.IncomeHandler = transaction.NewIncomeHandler(deps.TransactionService)

	deps.BudgetRepo = budget.NewRepo(db)
	deps.BudgetService = budget.NewServiceImpl(deps.BudgetRepo)
	deps.BudgetHandler = budget.NewHandler(deps.BudgetService)

	deps.Clock = &utils.SystemClock{}
	deps.AnalyticsService = analytics.NewServiceImpl(deps.TransactionRepo, deps.BudgetRepo, deps.Clock)
	deps.AnalyticsHandler = analytics.NewHandler(deps.AnalyticsService)

	return deps
}
