package domain

import (
	stderrors "errors"

	"smartpay/internal/finance/errors"
)

var ErrBudgetNotFound = stderrors.New("budget not found")

type BudgetRepository interface {
	Save(budget *Budget) error
	FindByUser(userID int64) ([]Budget, error)
	// FindByUserCategoryPeriod returns ErrBudgetNotFound when no budget
	// matches the exact (user, category, period) triple.
	FindByUserCategoryPeriod(userID int64, category, period string) (*Budget, error)
}

type Budget struct {
	ID       int64   `json:"id"`
	UserID   int64   `json:"user_id"`
	Category string  `json:"category"`
	Limit    float64 `json:"limit"`
	Period   string  `json:"period"`
}

func (b *Budget) Validate() error {
	if b.Limit <= 0 {
		return errors.NewValidationError("Limit must be greater than zero")
	}
	if b.Category == "" {
		return errors.NewValidationError("Category must not be empty")
	}
	if _, _, err := ParsePeriod(b.Period); err != nil {
		return err
	}
	return nil
}
