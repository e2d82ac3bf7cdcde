package domain

import (
	"time"

	"smartpay/internal/finance/errors"
)

type TransactionRepository interface {
	Save(transaction *Transaction) error
	FindByUser(userID int64, skip, limit int) ([]Transaction, error)
	FindByUserAndCategory(userID int64, category string) ([]Transaction, error)
}

type Transaction struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

func (t *Transaction) Validate() error {
	if t.Amount <= 0 {
		return errors.NewValidationError("Amount must be greater than zero")
	}
	if t.Category == "" {
		return errors.NewValidationError("Category must not be empty")
	}
	if len(t.Description) > 200 {
		return errors.NewValidationError("Description must be of length less than 200")
	}
	return nil
}
