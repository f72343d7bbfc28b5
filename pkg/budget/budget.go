package budget

import (
	"errors"

	"github.com/trackwise/trackwise/pkg/category"
	"github.com/trackwise/trackwise/pkg/transaction"
)

// TimeFrame is the window a budget limit applies to.
type TimeFrame string

const (
	TimeFrameDaily   TimeFrame = "daily"
	TimeFrameWeekly  TimeFrame = "weekly"
	TimeFrameMonthly TimeFrame = "monthly"
)

var (
	ErrBudgetNotFound  = errors.New("budget not found")
	ErrDuplicateBudget = errors.New("budget already exists for category")
	ErrInvalidLimit    = errors.New("budget limit must be positive")
	ErrInvalidCategory = errors.New("unknown category")
	ErrInvalidFrame    = errors.New("unknown time frame")
)

// Budget caps spending in one category over one recurring time frame.
// A user has at most one budget per category.
type Budget struct {
	ID        int
	OwnerID   int
	Category  category.Category
	Limit     transaction.Money
	TimeFrame TimeFrame
}

func (f TimeFrame) Valid() bool {
	switch f {
	case TimeFrameDaily, TimeFrameWeekly, TimeFrameMonthly:
		return true
	}
	return false
}

// Validate checks the write-boundary invariants. Limit must be strictly
// positive so that utilization percentages are always well-defined.
func (b Budget) Validate() error {
	if b.Limit.Cents <= 0 {
		return ErrInvalidLimit
	}
	if !category.IsValid(string(b.Category)) {
		return ErrInvalidCategory
	}
	if !b.TimeFrame.Valid() {
		return ErrInvalidFrame
	}
	return nil
}
