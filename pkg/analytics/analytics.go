package analytics

import (
	"errors"

	"github.com/trackwise/trackwise/pkg/category"
	"github.com/trackwise/trackwise/pkg/transaction"
)

var (
	// ErrNoData marks a window with nothing to aggregate. It is a
	// "nothing to show" condition, not a failure.
	ErrNoData = errors.New("no data for period")
	// ErrNoCategory is returned when the budget tracker is called without a
	// category.
	ErrNoCategory = errors.New("no category provided")
	// ErrNoExpenses is returned when the user has no expense records at all.
	ErrNoExpenses = errors.New("no expenses yet")
)

// PeriodTotals are the income/expense sums of one bucket.
// Balance is always Incomes - Expenses.
type PeriodTotals struct {
	Expenses transaction.Money
	Incomes  transaction.Money
	Balance  transaction.Money
}

// CategoryTotal is one entry of the ranked top-spending list.
type CategoryTotal struct {
	Category category.Category
	Total    transaction.Money
}

// BudgetState classifies budget utilization. The three states are mutually
// exclusive and cover every total/limit pair with a positive limit.
type BudgetState string

const (
	BudgetOver        BudgetState = "over-budget"
	BudgetOnTrack     BudgetState = "on-track"
	BudgetApproaching BudgetState = "approaching-limit"
)

// BudgetReport is the outcome of tracking one category budget over its
// configured time frame.
type BudgetReport struct {
	Category      category.Category
	State         BudgetState
	CategoryTotal transaction.Money
	Limit         transaction.Money
	// Percentage is spent/limit in percent. Meaningless when State is
	// BudgetOver (it exceeds 100 by definition) but reported anyway.
	Percentage float64
}

// RecentEntry is one row of the recent-activity view. Kind comes straight
// from the record, never re-derived by matching categories.
type RecentEntry struct {
	Category string
	Amount   transaction.Money
	Kind     transaction.Kind
}
