package budget

import (
	"context"

	"github.com/trackwise/trackwise/pkg/category"
)

type StubRepo struct {
	nextId int
	data   map[int]Budget
}

func NewStubRepo() *StubRepo {
	return &StubRepo{data: map[int]Budget{}}
}

func (s *StubRepo) Store(ctx context.Context, userId int, budget Budget) (int, error) {
	s.nextId++
	budget.ID = s.nextId
	budget.OwnerID = userId
	s.data[s.nextId] = budget
	return s.nextId, nil
}

func (s *StubRepo) GetAll(ctx context.Context, userId int) ([]Budget, error) {
	var budgets []Budget
	for id := 1; id <= s.nextId; id++ {
		if budget, ok := s.data[id]; ok && budget.OwnerID == userId {
			budgets = append(budgets, budget)
		}
	}
	return budgets, nil
}

func (s *StubRepo) FindByCategory(ctx context.Context, userId int, c category.Category) (Budget, error) {
	for _, budget := range s.data {
		if budget.OwnerID == userId && budget.Category == c {
			return budget, nil
		}
	}
	return Budget{}, ErrBudgetNotFound
}

func (s *StubRepo) Update(ctx context.Context, userId int, budget Budget) (bool, error) {
	existing, ok := s.data[budget.ID]
	if !ok || existing.OwnerID != userId {
		return false, nil
	}
	budget.OwnerID = userId
	s.data[budget.ID] = budget
	return true, nil
}

func (s *StubRepo) Delete(ctx context.Context, userId int, budgetId int) (bool, error) {
	budget, ok := s.data[budgetId]
	if !ok || budget.OwnerID != userId {
		return false, nil
	}
	delete(s.data, budgetId)
	return true, nil
}

func (s *StubRepo) Reset() {
	s.nextId = 0
	s.data = map[int]Budget{}
}
