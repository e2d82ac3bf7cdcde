package infrastructure

import (
	"database/sql"

	"smartpay/internal/finance/domain"
)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Save(transaction *domain.Transaction) error {
	return r.db.QueryRow(
		`INSERT INTO transactions (user_id, amount, category, description, timestamp)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		transaction.UserID, transaction.Amount, transaction.Category,
		transaction.Description, transaction.Timestamp,
	).Scan(&transaction.ID)
}

func (r *TransactionRepository) FindByUser(userID int64, skip, limit int) ([]domain.Transaction, error) {
	rows, err := r.db.Query(
		`SELECT id, user_id, amount, category, description, timestamp
		 FROM transactions
		 WHERE user_id = $1
		 ORDER BY id
		 LIMIT $2 OFFSET $3`,
		userID, limit, skip,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func (r *TransactionRepository) FindByUserAndCategory(userID int64, category string) ([]domain.Transaction, error) {
	rows, err := r.db.Query(
		`SELECT id, user_id, amount, category, description, timestamp
		 FROM transactions
		 WHERE user_id = $1 AND category = $2`,
		userID, category,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func scanTransactions(rows *sql.Rows) ([]domain.Transaction, error) {
	var transactions []domain.Transaction
	for rows.Next() {
		var transaction domain.Transaction
		if err := rows.Scan(&transaction.ID, &transaction.UserID, &transaction.Amount,
			&transaction.Category, &transaction.Description, &transaction.Timestamp); err != nil {
			return nil, err
		}
		transactions = append(transactions, transaction)
	}
	return transactions, rows.Err()
}
