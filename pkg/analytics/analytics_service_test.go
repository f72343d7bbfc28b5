package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/trackwise/trackwise/internal/utils"
	"github.com/trackwise/trackwise/pkg/budget"
	"github.com/trackwise/trackwise/pkg/category"
	"github.com/trackwise/trackwise/pkg/transaction"
	"github.com/trackwise/trackwise/pkg/user"
)

var clock = &utils.MockClock{FixedNow: time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)}
var transactionRepo = transaction.NewStubRepo()
var budgetRepo = budget.NewStubRepo()

func setup(t *testing.T) (Service, context.Context, func()) {
	service := NewServiceImpl(transactionRepo, budgetRepo, clock)
	ctx := user.WithUser(context.Background(), user.User{
		Id:    1,
		Uid:   uuid.NewString(),
		Name:  "Test User 1",
		Email: "test-user-1@example.com",
	})

	return service, ctx, func() {
		t.Log("Teardown after test")
		transactionRepo.Reset()
		budgetRepo.Reset()
		clock.SetNow(time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC))
	}
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	date, err := transaction.ParseDate(s)
	assert.NoError(t, err)
	return date
}

func addExpense(t *testing.T, ctx context.Context, cents int64, date string, timeOfDay string, c string) {
	t.Helper()
	_, err := transactionRepo.Store(ctx, 1, transaction.Transaction{
		Amount:    transaction.Money{Cents: cents},
		Date:      mustDate(t, date),
		TimeOfDay: timeOfDay,
		Category:  c,
		Kind:      transaction.KindExpense,
	})
	assert.NoError(t, err)
}

func addIncome(t *testing.T, ctx context.Context, cents int64, date string, timeOfDay string, c string) {
	t.Helper()
	_, err := transactionRepo.Store(ctx, 1, transaction.Transaction{
		Amount:    transaction.Money{Cents: cents},
		Date:      mustDate(t, date),
		TimeOfDay: timeOfDay,
		Category:  c,
		Kind:      transaction.KindIncome,
	})
	assert.NoError(t, err)
}

func TestServiceImpl_TotalsByPeriod_Daily(t *testing.T) {
	service, ctx, teardown := setup(t)
	defer teardown()

	// given
	addExpense(t, ctx, 5000, "01/06/2024", "09:00:00", "Food & Groceries")
	addExpense(t, ctx, 3000, "01/06/2024", "10:00:00", "Transport")
	addIncome(t, ctx, 20000, "01/06/2024", "08:00:00", "Salary")

	// when
	totals, err := service.TotalsByPeriod(ctx, PeriodDaily)

	// then
	assert.NoError(t, err)
	assert.Len(t, totals, 1)
	bucket := totals["01/06/2024"]
	assert.Equal(t, int64(8000), bucket.Expenses.Cents)
	assert.Equal(t, int64(20000), bucket.Incomes.Cents)
	assert.Equal(t, int64(12000), bucket.Balance.Cents)
}

func TestServiceImpl_TotalsByPeriod_OneSidedBuckets(t *testing.T) {
	service, ctx, teardown := setup(t)
	defer teardown()

	// given a day with only expenses and a day with only income
	addExpense(t, ctx, 4000, "01/06/2024", "09:00:00", "Transport")
	addIncome(t, ctx, 10000, "02/06/2024", "09:00:00", "Salary")

	// when
	totals, err := service.TotalsByPeriod(ctx, PeriodDaily)

	// then each bucket appears exactly once with the missing side at zero
	assert.NoError(t, err)
	assert.Len(t, totals, 2)
	assert.Equal(t, PeriodTotals{
		Expenses: transaction.Money{Cents: 4000},
		Incomes:  transaction.Money{},
		Balance:  transaction.Money{Cents: -4000},
	}, totals["01/06/2024"])
	assert.Equal(t, PeriodTotals{
		Expenses: transaction.Money{},
		Incomes:  transaction.Money{Cents: 10000},
		Balance:  transaction.Money{Cents: 10000},
	}, totals["02/06/2024"])
}

func TestServiceImpl_TotalsByPeriod_WeeklyAndMonthlyKeys(t *testing.T) {
	service, ctx, teardown := setup(t)
	defer teardown()

	// given expenses in two different ISO weeks of the same month
	addExpense(t, ctx, 1000, "03/06/2024", "09:00:00", "Transport") // week 23
	addExpense(t, ctx, 2000, "10/06/2024", "09:00:00", "Transport") // week 24

	// when / then weekly
	weekly, err := service.TotalsByPeriod(ctx, PeriodWeekly)
	assert.NoError(t, err)
	assert.Equal(t, int64(1000), weekly["Week 23"].Expenses.Cents)
	assert.Equal(t, int64(2000), weekly["Week 24"].Expenses.Cents)

	// when / then monthly collapses both into one bucket
	monthly, err := service.TotalsByPeriod(ctx, PeriodMonthly)
	assert.NoError(t, err)
	assert.Len(t, monthly, 1)
	assert.Equal(t, int64(3000), monthly["June"].Expenses.Cents)
}

func TestServiceImpl_TotalsByPeriod_NoRowDroppedOrDoubleCounted(t *testing.T) {
	service, ctx, teardown := setup(t)
	defer teardown()

	// given rows scattered over several days
	inputs := []struct {
		cents int64
		date  string
	}{
		{1100, "01/06/2024"}, {2200, "02/06/2024"}, {3300, "02/06/2024"},
		{4400, "15/06/2024"}, {5500, "30/06/2024"},
	}
	var rawExpenseSum int64
	for _, in := range inputs {
		addExpense(t, ctx, in.cents, in.date, "12:00:00", "Transport")
		rawExpenseSum += in.cents
	}
	addIncome(t, ctx, 7000, "02/06/2024", "12:00:00", "Salary")

	// when
	totals, err := service.TotalsByPeriod(ctx, PeriodDaily)

	// then the bucket sums reproduce the raw input exactly
	assert.NoError(t, err)
	var expenseSum, incomeSum int64
	for _, bucket := range totals {
		expenseSum += bucket.Expenses.Cents
		incomeSum += bucket.Incomes.Cents
		assert.Equal(t, bucket.Incomes.Cents-bucket.Expenses.Cents, bucket.Balance.Cents)
	}
	assert.Equal(t, rawExpenseSum, expenseSum)
	assert.Equal(t, int64(7000), incomeSum)
}

func TestServiceImpl_TotalsByPeriod_RejectsAllTime(t *testing.T) {
	service, ctx, teardown := setup(t)
	defer teardown()

	_, err := service.TotalsByPeriod(ctx, PeriodAllTime)

	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestServiceImpl_CategoryBreakdown_AllTime(t *testing.T) {
	service, ctx, teardown := setup(t)
	defer teardown()

	// given 75/25 split between two categories
	addExpense(t, ctx, 7500, "01/01/2024", "09:00:00", "Food & Groceries")
	addExpense(t, ctx, 2500, "15/03/2024", "09:00:00", "Transport")

	// when
	breakdown, err := service.CategoryBreakdown(ctx, PeriodAllTime)

	// then
	assert.NoError(t, err)
	assert.Equal(t, "75.00%", breakdown[category.FoodGroceries])
	assert.Equal(t, "25.00%", breakdown[category.Transport])
	assert.Equal(t, "0.00%", breakdown[category.HousingRent])
	assert.Equal(t, "0.00%", breakdown[category.ShoppingEntertainment])
	assert.Equal(t, "0.00%", breakdown[category.HealthPersonal])
}

func TestServiceImpl_CategoryBreakdown_DailyWindow(t *testing.T) {
	service, ctx, teardown := setup(t)
	defer teardown()

	// given one expense today and one outside the window
	addExpense(t, ctx, 5000, "01/06/2024", "09:00:00", "Transport")
	addExpense(t, ctx, 99900, "31/05/2024", "09:00:00", "Food & Groceries")

	// when
	breakdown, err := service.CategoryBreakdown(ctx, PeriodDaily)

	// then only today's spending is in the base
	assert.NoError(t, err)
	assert.Equal(t, "100.00%", breakdown[category.Transport])
	assert.Equal(t, "0.00%", breakdown[category.FoodGroceries])
}

func TestServiceImpl_CategoryBreakdown_ForeignCategoryShrinksShares(t *testing.T) {
	service, ctx, teardown := setup(t)
	defer teardown()

	// given a category outside the fixed five holding half the spending
	addExpense(t, ctx, 5000, "01/06/2024", "09:00:00", "Transport")
	addExpense(t, ctx, 5000, "01/06/2024", "10:00:00", "Crypto")

	// when
	breakdown, err := service.CategoryBreakdown(ctx, PeriodAllTime)

	// then the foreign category inflates the base but gets no key
	assert.NoError(t, err)
	assert.Equal(t, "50.00%", breakdown[category.Transport])
	assert.NotContains(t, breakdown, category.Category("Crypto"))
	assert.Len(t, breakdown, 5)
}

func TestServiceImpl_CategoryBreakdown_NoTransactions(t *testing.T) {
	service, ctx, teardown := setup(t)
	defer teardown()

	breakdown, err := service.CategoryBreakdown(ctx, PeriodAllTime)

	assert.ErrorIs(t, err, ErrNoData)
	assert.Nil(t, breakdown)
}

func TestServiceImpl_CategoryBreakdown_AllZeroAmounts(t *testing.T) {
	service, ctx, teardown := setup(t)
	defer teardown()

	// given a non-empty window whose total is zero
	addExpense(t, ctx, 0, "01/06/2024", "09:00:00", "Transport")

	// when
	_, err := service.CategoryBreakdown(ctx, PeriodDaily)

	// then the division is guarded, not attempted
	assert.ErrorIs(t, err, ErrNoData)
}

func TestServiceImpl_CategoryBreakdown_RejectsUnknownPeriod(t *testing.T) {
	service, ctx, teardown := setup(t)
	defer teardown()

	_, err := service.CategoryBreakdown(ctx, Period("yearly"))

	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestServiceImpl_TopSpendingCategories(t *testing.T) {
	service, ctx, teardown := setup(t)
	defer teardown()

	// given distinct lifetime totals
	addExpense(t, ctx, 30000, "01/01/2024", "09:00:00", "Housing & Rent")
	addExpense(t, ctx, 12000, "02/01/2024", "09:00:00", "Food & Groceries")
	addExpense(t, ctx, 6000, "03/01/2024", "09:00:00", "Transport")
	addExpense(t, ctx, 1000, "04/01/2024", "09:00:00", "Health & Personal")

	// when
	ranked, err := service.TopSpendingCategories(ctx)

	// then the top three come back highest first
	assert.NoError(t, err)
	assert.Len(t, ranked, 3)
	assert.Equal(t, category.HousingRent, ranked[0].Category)
	assert.Equal(t, int64(30000), ranked[0].Total.Cents)
	assert.Equal(t, category.FoodGroceries, ranked[1].Category)
	assert.Equal(t, category.Transport, ranked[2].Category)
}

func TestServiceImpl_TopSpendingCategories_TieBreaksByFixedOrder(t *testing.T) {
	service, ctx, teardown := setup(t)
	defer teardown()

	// given no expenses at all, every total is zero
	ranked, err := service.TopSpendingCategories(ctx)

	// then the first three fixed categories are selected, in order
	assert.NoError(t, err)
	assert.Len(t, ranked, 3)
	assert.Equal(t, category.FoodGroceries, ranked[0].Category)
	assert.Equal(t, category.ShoppingEntertainment, ranked[1].Category)
	assert.Equal(t, category.HousingRent, ranked[2].Category)
	for _, entry := range ranked {
		assert.Zero(t, entry.Total.Cents)
	}
}

func TestServiceImpl_TopSpendingCategories_Monotonic(t *testing.T) {
	service, ctx, teardown := setup(t)
	defer teardown()

	addExpense(t, ctx, 100, "01/01/2024", "09:00:00", "Transport")
	addExpense(t, ctx, 100, "01/01/2024", "10:00:00", "Housing & Rent")
	addExpense(t, ctx, 300, "01/01/2024", "11:00:00", "Health & Personal")

	ranked, err := service.TopSpendingCategories(ctx)

	assert.NoError(t, err)
	assert.Len(t, ranked, 3)
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Total.Cents, ranked[i].Total.Cents)
	}
}

func TestServiceImpl_BudgetTracker_OnTrack(t *testing.T) {
	service, ctx, teardown := setup(t)
	defer teardown()

	// given a daily Transport budget of 100 and 30 spent today
	_, err := budgetRepo.Store(ctx, 1, budget.Budget{
		Category:  category.Transport,
		Limit:     transaction.Money{Cents: 10000},
		TimeFrame: budget.TimeFrameDaily,
	})
	assert.NoError(t, err)
	addExpense(t, ctx, 3000, "01/06/2024", "09:00:00", "Transport")

	// when
	report, err := service.BudgetTracker(ctx, category.Transport)

	// then
	assert.NoError(t, err)
	assert.Equal(t, BudgetOnTrack, report.State)
	assert.Equal(t, int64(3000), report.CategoryTotal.Cents)
	assert.Equal(t, int64(10000), report.Limit.Cents)
	assert.Equal(t, 30.0, report.Percentage)
}

func TestServiceImpl_BudgetTracker_Approaching(t *testing.T) {
	service, ctx, teardown := setup(t)
	defer teardown()

	_, err := budgetRepo.Store(ctx, 1, budget.Budget{
		Category:  category.Transport,
		Limit:     transaction.Money{Cents: 10000},
		TimeFrame: budget.TimeFrameDaily,
	})
	assert.NoError(t, err)
	addExpense(t, ctx, 7500, "01/06/2024", "09:00:00", "Transport")

	report, err := service.BudgetTracker(ctx, category.Transport)

	assert.NoError(t, err)
	assert.Equal(t, BudgetApproaching, report.State)
	assert.Equal(t, 75.0, report.Percentage)
}

func TestServiceImpl_BudgetTracker_OverBudget(t *testing.T) {
	service, ctx, teardown := setup(t)
	defer teardown()

	_, err := budgetRepo.Store(ctx, 1, budget.Budget{
		Category:  category.Transport,
		Limit:     transaction.Money{Cents: 10000},
		TimeFrame: budget.TimeFrameDaily,
	})
	assert.NoError(t, err)
	addExpense(t, ctx, 12500, "01/06/2024", "09:00:00", "Transport")

	report, err := service.BudgetTracker(ctx, category.Transport)

	assert.NoError(t, err)
	assert.Equal(t, BudgetOver, report.State)
	assert.Equal(t, int64(12500), report.CategoryTotal.Cents)
}

func TestServiceImpl_BudgetTracker_ExactlyAtLimitIsNotOver(t *testing.T) {
	service, ctx, teardown := setup(t)
	defer teardown()

	_, err := budgetRepo.Store(ctx, 1, budget.Budget{
		Category:  category.Transport,
		Limit:     transaction.Money{Cents: 10000},
		TimeFrame: budget.TimeFrameDaily,
	})
	assert.NoError(t, err)
	addExpense(t, ctx, 10000, "01/06/2024", "09:00:00", "Transport")

	report, err := service.BudgetTracker(ctx, category.Transport)

	assert.NoError(t, err)
	assert.Equal(t, BudgetApproaching, report.State)
	assert.Equal(t, 100.0, report.Percentage)
}

func TestServiceImpl_BudgetTracker_WeeklyWindow(t *testing.T) {
	service, ctx, teardown := setup(t)
	defer teardown()

	// today (01/06/2024, Saturday) sits in ISO week 22: 27/05 - 02/06
	_, err := budgetRepo.Store(ctx, 1, budget.Budget{
		Category:  category.FoodGroceries,
		Limit:     transaction.Money{Cents: 20000},
		TimeFrame: budget.TimeFrameWeekly,
	})
	assert.NoError(t, err)
	addExpense(t, ctx, 4000, "27/05/2024", "09:00:00", "Food & Groceries") // in week
	addExpense(t, ctx, 5000, "01/06/2024", "09:00:00", "Food & Groceries") // in week
	addExpense(t, ctx, 9000, "26/05/2024", "09:00:00", "Food & Groceries") // previous week

	report, err := service.BudgetTracker(ctx, category.FoodGroceries)

	assert.NoError(t, err)
	assert.Equal(t, int64(9000), report.CategoryTotal.Cents)
	assert.Equal(t, 45.0, report.Percentage)
	assert.Equal(t, BudgetOnTrack, report.State)
}

func TestServiceImpl_BudgetTracker_NoCategory(t *testing.T) {
	service, ctx, teardown := setup(t)
	defer teardown()

	_, err := service.BudgetTracker(ctx, "")

	assert.ErrorIs(t, err, ErrNoCategory)
}

func TestServiceImpl_BudgetTracker_BudgetNotFound(t *testing.T) {
	service, ctx, teardown := setup(t)
	defer teardown()

	addExpense(t, ctx, 1000, "01/06/2024", "09:00:00", "Transport")

	_, err := service.BudgetTracker(ctx, category.Transport)

	assert.ErrorIs(t, err, budget.ErrBudgetNotFound)
}

func TestServiceImpl_BudgetTracker_NoExpensesYet(t *testing.T) {
	service, ctx, teardown := setup(t)
	defer teardown()

	_, err := budgetRepo.Store(ctx, 1, budget.Budget{
		Category:  category.Transport,
		Limit:     transaction.Money{Cents: 10000},
		TimeFrame: budget.TimeFrameDaily,
	})
	assert.NoError(t, err)

	_, err = service.BudgetTracker(ctx, category.Transport)

	assert.ErrorIs(t, err, ErrNoExpenses)
}

func TestServiceImpl_BudgetTracker_GuardsZeroLimit(t *testing.T) {
	service, ctx, teardown := setup(t)
	defer teardown()

	// a zero limit cannot pass Validate, but the tracker must not trust that
	_, err := budgetRepo.Store(ctx, 1, budget.Budget{
		Category:  category.Transport,
		Limit:     transaction.Money{Cents: 0},
		TimeFrame: budget.TimeFrameDaily,
	})
	assert.NoError(t, err)
	addExpense(t, ctx, 1000, "01/06/2024", "09:00:00", "Transport")

	_, err = service.BudgetTracker(ctx, category.Transport)

	assert.ErrorIs(t, err, budget.ErrInvalidLimit)
}

func TestServiceImpl_RecentTransactions(t *testing.T) {
	service, ctx, teardown := setup(t)
	defer teardown()

	// given four records across two days
	addExpense(t, ctx, 1000, "31/05/2024", "23:00:00", "Transport")
	addExpense(t, ctx, 2000, "01/06/2024", "08:00:00", "Food & Groceries")
	addIncome(t, ctx, 50000, "01/06/2024", "09:30:00", "Salary")
	addExpense(t, ctx, 3000, "01/06/2024", "21:00:00", "Shopping & Entertainment")

	// when
	recent, err := service.RecentTransactions(ctx)

	// then the newest three, most recent first, each with its own kind
	assert.NoError(t, err)
	assert.Len(t, recent, 3)
	assert.Equal(t, RecentEntry{
		Category: "Shopping & Entertainment",
		Amount:   transaction.Money{Cents: 3000},
		Kind:     transaction.KindExpense,
	}, recent[0])
	assert.Equal(t, RecentEntry{
		Category: "Salary",
		Amount:   transaction.Money{Cents: 50000},
		Kind:     transaction.KindIncome,
	}, recent[1])
	assert.Equal(t, RecentEntry{
		Category: "Food & Groceries",
		Amount:   transaction.Money{Cents: 2000},
		Kind:     transaction.KindExpense,
	}, recent[2])
}

func TestServiceImpl_RecentTransactions_SharedCategoryKeepsItsKind(t *testing.T) {
	service, ctx, teardown := setup(t)
	defer teardown()

	// given an expense and an income in the same category (a refund)
	addExpense(t, ctx, 4000, "01/06/2024", "10:00:00", "Transport")
	addIncome(t, ctx, 4000, "01/06/2024", "11:00:00", "Transport")

	// when
	recent, err := service.RecentTransactions(ctx)

	// then each entry keeps the kind it was recorded with
	assert.NoError(t, err)
	assert.Len(t, recent, 2)
	assert.Equal(t, transaction.KindIncome, recent[0].Kind)
	assert.Equal(t, transaction.KindExpense, recent[1].Kind)
}

func TestServiceImpl_RecentTransactions_FewerThanThree(t *testing.T) {
	service, ctx, teardown := setup(t)
	defer teardown()

	addExpense(t, ctx, 1000, "01/06/2024", "10:00:00", "Transport")

	recent, err := service.RecentTransactions(ctx)

	assert.NoError(t, err)
	assert.Len(t, recent, 1)
}

func TestServiceImpl_RequiresUserInContext(t *testing.T) {
	service, _, teardown := setup(t)
	defer teardown()

	_, err := service.TotalsByPeriod(context.Background(), PeriodDaily)

	assert.ErrorIs(t, err, user.ErrNoUser)
}
