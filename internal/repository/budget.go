package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/riverajefer/gastos-hormiga/internal/models"
)

type BudgetRepository struct {
	db *pgxpool.Pool
}

// NewBudgetRepository создает репозиторий месячных лимитов.
func NewBudgetRepository(db *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{db: db}
}

// Get возвращает лимит за указанный месяц.
func (r *BudgetRepository) Get(ctx context.Context, month, year int) (models.MonthlyBudget, error) {
	var b models.MonthlyBudget

	err := r.db.QueryRow(ctx,
		"SELECT month, year, limit_amount, created_at, updated_at FROM monthly_budgets WHERE month = $1 AND year = $2",
		month, year,
	).Scan(&b.Month, &b.Year, &b.Limit, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return b, ErrNotFound
		}
		return b, err
	}

	return b, nil
}

// Set создает или обновляет лимит месяца.
func (r *BudgetRepository) Set(ctx context.Context, month, year int, limit int64) (models.MonthlyBudget, error) {
	var b models.MonthlyBudget

	err := r.db.QueryRow(ctx,
		`INSERT INTO monthly_budgets (month, year, limit_amount)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (month, year) DO UPDATE SET limit_amount = EXCLUDED.limit_amount, updated_at = NOW()
		 RETURNING month, year, limit_amount, created_at, updated_at`,
		month, year, limit,
	).Scan(&b.Month, &b.Year, &b.Limit, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return b, mapPgError(err)
	}

	return b, nil
}
