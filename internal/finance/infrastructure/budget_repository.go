package infrastructure

import (
	"database/sql"
	"errors"

	"smartpay/internal/finance/domain"
)

type BudgetRepository struct {
	db *sql.DB
}

func NewBudgetRepository(db *sql.DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

func (r *BudgetRepository) Save(budget *domain.Budget) error {
	return r.db.QueryRow(
		`INSERT INTO budgets (user_id, category, limit_amount, period)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		budget.UserID, budget.Category, budget.Limit, budget.Period,
	).Scan(&budget.ID)
}

func (r *BudgetRepository) FindByUser(userID int64) ([]domain.Budget, error) {
	rows, err := r.db.Query(
		`SELECT id, user_id, category, limit_amount, period
		 FROM budgets
		 WHERE user_id = $1
		 ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets []domain.Budget
	for rows.Next() {
		var budget domain.Budget
		if err := rows.Scan(&budget.ID, &budget.UserID, &budget.Category,
			&budget.Limit, &budget.Period); err != nil {
			return nil, err
		}
		budgets = append(budgets, budget)
	}
	return budgets, rows.Err()
}

func (r *BudgetRepository) FindByUserCategoryPeriod(userID int64, category, period string) (*domain.Budget, error) {
	var budget domain.Budget
	err := r.db.QueryRow(
		`SELECT id, user_id, category, limit_amount, period
		 FROM budgets
		 WHERE user_id = $1 AND category = $2 AND period = $3
		 ORDER BY id
		 LIMIT 1`,
		userID, category, period,
	).Scan(&budget.ID, &budget.UserID, &budget.Category, &budget.Limit, &budget.Period)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, err
	}
	return &budget, nil
}
