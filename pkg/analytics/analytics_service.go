package analytics

import (
	"context"
	"fmt"
	"sort"

	"github.com/trackwise/trackwise/internal/utils"
	"github.com/trackwise/trackwise/pkg/budget"
	"github.com/trackwise/trackwise/pkg/category"
	"github.com/trackwise/trackwise/pkg/transaction"
	"github.com/trackwise/trackwise/pkg/user"
	log "github.com/sirupsen/logrus"
)

const topCategoriesCount = 3

const recentEntriesCount = 3

// Service derives aggregates from a user's transaction and budget snapshot.
// Every call reads the full snapshot and computes from scratch; nothing is
// cached between calls, and "today" comes from the injected clock at call
// time, so a long-running process observes day/week/month rollovers.
type Service interface {
	TotalsByPeriod(ctx context.Context, period Period) (map[string]PeriodTotals, error)
	CategoryBreakdown(ctx context.Context, period Period) (map[category.Category]string, error)
	TopSpendingCategories(ctx context.Context) ([]CategoryTotal, error)
	BudgetTracker(ctx context.Context, c category.Category) (BudgetReport, error)
	RecentTransactions(ctx context.Context) ([]RecentEntry, error)
}

type ServiceImpl struct {
	transactionRepo transaction.Repo
	budgetRepo      budget.Repo
	clock           utils.Clock
}

func NewServiceImpl(transactionRepo transaction.Repo, budgetRepo budget.Repo, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{
		transactionRepo: transactionRepo,
		budgetRepo:      budgetRepo,
		clock:           clock,
	}
}

// TotalsByPeriod partitions the user's expenses and incomes into buckets of
// the given granularity and sums each side independently. A bucket present
// in either partition appears exactly once; the missing side counts as zero.
func (s *ServiceImpl) TotalsByPeriod(ctx context.Context, period Period) (map[string]PeriodTotals, error) {
	keyOf, err := bucketKeyFunc(period)
	if err != nil {
		return nil, err
	}

	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	expenses, err := s.transactionRepo.ListByOwner(ctx, userId, transaction.KindExpense)
	if err != nil {
		return nil, err
	}
	incomes, err := s.transactionRepo.ListByOwner(ctx, userId, transaction.KindIncome)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]PeriodTotals)
	for _, e := range expenses {
		key := keyOf(e.Date)
		bucket := totals[key]
		bucket.Expenses = bucket.Expenses.Add(e.Amount)
		totals[key] = bucket
	}
	for _, i := range incomes {
		key := keyOf(i.Date)
		bucket := totals[key]
		bucket.Incomes = bucket.Incomes.Add(i.Amount)
		totals[key] = bucket
	}
	for key, bucket := range totals {
		bucket.Balance = bucket.Incomes.Sub(bucket.Expenses)
		totals[key] = bucket
	}

	log.Debugf("computed %s totals over %d buckets for user %d", period, len(totals), userId)
	return totals, nil
}

// CategoryBreakdown computes each fixed category's percentage share of the
// expense total inside the period window anchored at today. Expenses tagged
// with a category outside the fixed set count toward the window total but get
// no entry, so percentages then sum to less than 100.
func (s *ServiceImpl) CategoryBreakdown(ctx context.Context, period Period) (map[category.Category]string, error) {
	if _, err := ParsePeriod(string(period)); err != nil {
		return nil, err
	}

	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	expenses, err := s.transactionRepo.ListByOwner(ctx, userId, transaction.KindExpense)
	if err != nil {
		return nil, err
	}

	today := s.clock.Now()
	var window []transaction.Transaction
	for _, e := range expenses {
		if inWindow(period, today, e.Date) {
			window = append(window, e)
		}
	}
	if len(window) == 0 {
		return nil, ErrNoData
	}

	var windowTotal transaction.Money
	for _, e := range window {
		windowTotal = windowTotal.Add(e.Amount)
	}
	// All-zero amounts leave nothing to divide by. Same answer as an empty
	// window: there is no spending to break down.
	if windowTotal.Cents == 0 {
		return nil, ErrNoData
	}

	breakdown := make(map[category.Category]string, len(category.All()))
	for _, c := range category.All() {
		var categoryTotal transaction.Money
		for _, e := range window {
			if e.Category == string(c) {
				categoryTotal = categoryTotal.Add(e.Amount)
			}
		}
		percentage := 100 * float64(categoryTotal.Cents) / float64(windowTotal.Cents)
		breakdown[c] = fmt.Sprintf("%.2f%%", percentage)
	}

	return breakdown, nil
}

// TopSpendingCategories ranks the fixed categories by lifetime expense total
// and returns the top three, highest first. Ties resolve in fixed category
// order, so the result is deterministic even for all-zero histories.
func (s *ServiceImpl) TopSpendingCategories(ctx context.Context) ([]CategoryTotal, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	expenses, err := s.transactionRepo.ListByOwner(ctx, userId, transaction.KindExpense)
	if err != nil {
		return nil, err
	}

	totals := make(map[category.Category]transaction.Money, len(category.All()))
	for _, c := range category.All() {
		totals[c] = transaction.Money{}
	}
	for _, e := range expenses {
		if c := category.Category(e.Category); category.IsValid(e.Category) {
			totals[c] = totals[c].Add(e.Amount)
		}
	}

	remaining := category.All()
	ranked := make([]CategoryTotal, 0, topCategoriesCount)
	for len(ranked) < topCategoriesCount {
		// Strict greater-than keeps the first (fixed-order) category on ties.
		maxIdx := 0
		for i, c := range remaining {
			if totals[c].GreaterThan(totals[remaining[maxIdx]]) {
				maxIdx = i
			}
		}
		best := remaining[maxIdx]
		ranked = append(ranked, CategoryTotal{Category: best, Total: totals[best]})
		remaining = append(remaining[:maxIdx], remaining[maxIdx+1:]...)
	}

	return ranked, nil
}

// BudgetTracker reports how much of the category's budget has been spent in
// the budget's configured time frame window.
func (s *ServiceImpl) BudgetTracker(ctx context.Context, c category.Category) (BudgetReport, error) {
	if c == "" {
		return BudgetReport{}, ErrNoCategory
	}

	userId, err := user.CurrentId(ctx)
	if err != nil {
		return BudgetReport{}, fmt.Errorf("failed to get current user: %w", err)
	}

	b, err := s.budgetRepo.FindByCategory(ctx, userId, c)
	if err != nil {
		return BudgetReport{}, err
	}
	if b.Limit.Cents <= 0 {
		// Should be impossible past the write boundary, but a zero limit
		// would divide by zero below.
		log.Warnf("budget %d has non-positive limit %d", b.ID, b.Limit.Cents)
		return BudgetReport{}, budget.ErrInvalidLimit
	}

	expenses, err := s.transactionRepo.ListByOwner(ctx, userId, transaction.KindExpense)
	if err != nil {
		return BudgetReport{}, err
	}
	if len(expenses) == 0 {
		return BudgetReport{}, ErrNoExpenses
	}

	period := timeFramePeriod(b.TimeFrame)
	today := s.clock.Now()
	var categoryTotal transaction.Money
	for _, e := range expenses {
		if e.Category == string(c) && inWindow(period, today, e.Date) {
			categoryTotal = categoryTotal.Add(e.Amount)
		}
	}

	percentage := 100 * float64(categoryTotal.Cents) / float64(b.Limit.Cents)
	report := BudgetReport{
		Category:      c,
		CategoryTotal: categoryTotal,
		Limit:         b.Limit,
		Percentage:    percentage,
	}
	switch {
	case categoryTotal.GreaterThan(b.Limit):
		report.State = BudgetOver
	case percentage <= 50:
		report.State = BudgetOnTrack
	default:
		report.State = BudgetApproaching
	}

	return report, nil
}

// RecentTransactions merges both kinds, orders by (date, time-of-day) most
// recent first, and returns the newest three entries.
func (s *ServiceImpl) RecentTransactions(ctx context.Context) ([]RecentEntry, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	expenses, err := s.transactionRepo.ListByOwner(ctx, userId, transaction.KindExpense)
	if err != nil {
		return nil, err
	}
	incomes, err := s.transactionRepo.ListByOwner(ctx, userId, transaction.KindIncome)
	if err != nil {
		return nil, err
	}

	merged := append(expenses, incomes...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].MoreRecentThan(merged[j])
	})

	count := recentEntriesCount
	if len(merged) < count {
		count = len(merged)
	}
	recent := make([]RecentEntry, 0, count)
	for _, tx := range merged[:count] {
		recent = append(recent, RecentEntry{
			Category: tx.Category,
			Amount:   tx.Amount,
			Kind:     tx.Kind,
		})
	}

	return recent, nil
}

func timeFramePeriod(frame budget.TimeFrame) Period {
	switch frame {
	case budget.TimeFrameDaily:
		return PeriodDaily
	case budget.TimeFrameWeekly:
		return PeriodWeekly
	case budget.TimeFrameMonthly:
		return PeriodMonthly
	}
	return ""
}
