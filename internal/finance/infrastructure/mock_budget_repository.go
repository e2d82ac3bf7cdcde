package infrastructure

import (
	"smartpay/internal/finance/domain"
)

// MockBudgetRepository is a slice-backed stand-in for tests.
type MockBudgetRepository struct {
	Budgets []domain.Budget
	SaveErr error
}

func (m *MockBudgetRepository) Save(budget *domain.Budget) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	budget.ID = int64(len(m.Budgets) + 1)
	m.Budgets = append(m.Budgets, *budget)
	return nil
}

func (m *MockBudgetRepository) FindByUser(userID int64) ([]domain.Budget, error) {
	var owned []domain.Budget
	for _, budget := range m.Budgets {
		if budget.UserID == userID {
			owned = append(owned, budget)
		}
	}
	return owned, nil
}

func (m *MockBudgetRepository) FindByUserCategoryPeriod(userID int64, category, period string) (*domain.Budget, error) {
	for _, budget := range m.Budgets {
		if budget.UserID == userID && budget.Category == category && budget.Period == period {
			found := budget
			return &found, nil
		}
	}
	return nil, domain.ErrBudgetNotFound
}
