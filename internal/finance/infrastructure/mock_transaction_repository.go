package infrastructure

import (
	"smartpay/internal/finance/domain"
)

// MockTransactionRepository is a slice-backed stand-in for tests.
type MockTransactionRepository struct {
	Transactions []domain.Transaction
	SaveErr      error
}

func (m *MockTransactionRepository) Save(transaction *domain.Transaction) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	transaction.ID = int64(len(m.Transactions) + 1)
	m.Transactions = append(m.Transactions, *transaction)
	return nil
}

func (m *MockTransactionRepository) FindByUser(userID int64, skip, limit int) ([]domain.Transaction, error) {
	var owned []domain.Transaction
	for _, transaction := range m.Transactions {
		if transaction.UserID == userID {
			owned = append(owned, transaction)
		}
	}
	if skip >= len(owned) {
		return nil, nil
	}
	owned = owned[skip:]
	if limit < len(owned) {
		owned = owned[:limit]
	}
	return owned, nil
}

func (m *MockTransactionRepository) FindByUserAndCategory(userID int64, category string) ([]domain.Transaction, error) {
	var filtered []domain.Transaction
	for _, transaction := range m.Transactions {
		if transaction.UserID == userID && transaction.Category == category {
			filtered = append(filtered, transaction)
		}
	}
	return filtered, nil
}
