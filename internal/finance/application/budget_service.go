package application

import (
	"math"

	"smartpay/internal/finance/domain"
)

// SpendingAggregator is the slice of the transaction service the budget
// status computation needs.
type SpendingAggregator interface {
	SumSpending(userID int64, category, period string) (float64, error)
}

type BudgetService struct {
	repo       domain.BudgetRepository
	aggregator SpendingAggregator
}

func NewBudgetService(repo domain.BudgetRepository, aggregator SpendingAggregator) *BudgetService {
	return &BudgetService{repo: repo, aggregator: aggregator}
}

// BudgetStatus is a budget reconciled against the spending recorded for its
// category and period. Remaining goes negative on overspend, it is not
// clamped.
type BudgetStatus struct {
	domain.Budget
	Spent     float64 `json:"spent"`
	Remaining float64 `json:"remaining"`
}

func (s *BudgetService) CreateBudget(budget *domain.Budget) error {
	if err := budget.Validate(); err != nil {
		return err
	}
	return s.repo.Save(budget)
}

func (s *BudgetService) GetUserBudgets(userID int64) ([]domain.Budget, error) {
	return s.repo.FindByUser(userID)
}

// GetBudgetStatus looks up the budget matching the exact
// (user, category, period) triple and reconciles it against the summed
// spending for the same triple. Returns domain.ErrBudgetNotFound when no
// budget exists, regardless of any transaction data present.
func (s *BudgetService) GetBudgetStatus(userID int64, category, period string) (*BudgetStatus, error) {
	budget, err := s.repo.FindByUserCategoryPeriod(userID, category, period)
	if err != nil {
		return nil, err
	}

	spent, err := s.aggregator.SumSpending(userID, category, period)
	if err != nil {
		return nil, err
	}

	return &BudgetStatus{
		Budget:    *budget,
		Spent:     roundToTwoDecimalPlaces(spent),
		Remaining: roundToTwoDecimalPlaces(budget.Limit - spent),
	}, nil
}

func roundToTwoDecimalPlaces(value float64) float64 {
	return math.Round(value*100) / 100
}
