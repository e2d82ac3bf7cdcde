package application

import (
	"time"

	"smartpay/internal/finance/domain"
)

const (
	defaultTransactionLimit = 100
	maxTransactionLimit     = 1000
)

type TransactionService struct {
	repo domain.TransactionRepository
}

func NewTransactionService(repo domain.TransactionRepository) *TransactionService {
	return &TransactionService{repo: repo}
}

// CreateTransaction validates and persists a new transaction. The timestamp
// defaults to the time of insertion and is never updated afterwards.
func (s *TransactionService) CreateTransaction(transaction *domain.Transaction) error {
	if transaction.Timestamp.IsZero() {
		transaction.Timestamp = time.Now().UTC()
	}
	if err := transaction.Validate(); err != nil {
		return err
	}
	return s.repo.Save(transaction)
}

func (s *TransactionService) GetUserTransactions(userID int64, skip, limit int) ([]domain.Transaction, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultTransactionLimit
	}
	if limit > maxTransactionLimit {
		limit = maxTransactionLimit
	}
	return s.repo.FindByUser(userID, skip, limit)
}

// SumSpending sums the amounts of all transactions owned by userID in the
// given category whose timestamp falls in the calendar month the period
// identifies. Category comparison is exact and case-sensitive. A period that
// does not parse yields zero spending rather than an error; callers that need
// to reject malformed periods validate them before getting here.
func (s *TransactionService) SumSpending(userID int64, category, period string) (float64, error) {
	year, month, err := domain.ParsePeriod(period)
	if err != nil {
		return 0, nil
	}

	transactions, err := s.repo.FindByUserAndCategory(userID, category)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, transaction := range transactions {
		if transaction.Timestamp.Year() == year && transaction.Timestamp.Month() == month {
			total += transaction.Amount
		}
	}
	return total, nil
}
