package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/riverajefer/gastos-hormiga/internal/category"
	"github.com/riverajefer/gastos-hormiga/internal/models"
)

const expenseColumns = "id, concept, amount, category, date, is_recurring, created_at, updated_at"

type ExpenseRepository struct {
	db *pgxpool.Pool
}

type CreateExpenseInput struct {
	Concept     string
	Amount      int64
	Category    category.ID
	Date        time.Time
	IsRecurring bool
}

type UpdateExpenseInput struct {
	Concept     *string
	Amount      *int64
	Category    *category.ID
	Date        *time.Time
	IsRecurring *bool
}

// ExpenseFilter описывает выборку расходов; To — исключающая граница.
type ExpenseFilter struct {
	From     *time.Time
	To       *time.Time
	Category *category.ID
	Search   string
}

// NewExpenseRepository создает репозиторий расходов.
func NewExpenseRepository(db *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// Create сохраняет новый расход.
func (r *ExpenseRepository) Create(ctx context.Context, input CreateExpenseInput) (models.Expense, error) {
	var e models.Expense

	err := r.db.QueryRow(ctx,
		`INSERT INTO expenses (id, concept, amount, category, date, is_recurring)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+expenseColumns,
		uuid.New(), input.Concept, input.Amount, input.Category, input.Date, input.IsRecurring,
	).Scan(&e.ID, &e.Concept, &e.Amount, &e.Category, &e.Date, &e.IsRecurring, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return e, mapPgError(err)
	}

	return e, nil
}

// List возвращает расходы по фильтру, новые первыми.
func (r *ExpenseRepository) List(ctx context.Context, filter ExpenseFilter) ([]models.Expense, error) {
	query := "SELECT " + expenseColumns + " FROM expenses"
	where := make([]string, 0, 4)
	args := make([]any, 0, 4)

	if filter.From != nil {
		args = append(args, *filter.From)
		where = append(where, fmt.Sprintf("date >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		where = append(where, fmt.Sprintf("date < $%d", len(args)))
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, filter.Search)
		where = append(where, fmt.Sprintf("concept ILIKE '%%' || $%d || '%%'", len(args)))
	}

	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY date DESC, created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanExpenses(rows)
}

// ListRange возвращает расходы за полуинтервал [from, to) для статистики.
func (r *ExpenseRepository) ListRange(ctx context.Context, from, to time.Time) ([]models.Expense, error) {
	return r.List(ctx, ExpenseFilter{From: &from, To: &to})
}

// GetByID возвращает расход по идентификатору.
func (r *ExpenseRepository) GetByID(ctx context.Context, id uuid.UUID) (models.Expense, error) {
	var e models.Expense

	err := r.db.QueryRow(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE id = $1",
		id,
	).Scan(&e.ID, &e.Concept, &e.Amount, &e.Category, &e.Date, &e.IsRecurring, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return e, ErrNotFound
		}
		return e, err
	}

	return e, nil
}

// Update частично обновляет расход; nil-поля остаются без изменений.
func (r *ExpenseRepository) Update(ctx context.Context, id uuid.UUID, input UpdateExpenseInput) (models.Expense, error) {
	var e models.Expense

	err := r.db.QueryRow(ctx,
		`UPDATE expenses
		 SET concept = COALESCE($2, concept),
		     amount = COALESCE($3, amount),
		     category = COALESCE($4, category),
		     date = COALESCE($5, date),
		     is_recurring = COALESCE($6, is_recurring),
		     updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+expenseColumns,
		id, input.Concept, input.Amount, input.Category, input.Date, input.IsRecurring,
	).Scan(&e.ID, &e.Concept, &e.Amount, &e.Category, &e.Date, &e.IsRecurring, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return e, ErrNotFound
		}
		return e, err
	}

	return e, nil
}

// Delete удаляет расход.
func (r *ExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.db.Exec(ctx, "DELETE FROM expenses WHERE id = $1", id)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Suggestions возвращает до 10 различных описаний по подстроке, свежие первыми.
func (r *ExpenseRepository) Suggestions(ctx context.Context, query string) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT concept FROM (
			SELECT concept, MAX(created_at) AS last_used
			FROM expenses
			WHERE concept ILIKE '%' || $1 || '%'
			GROUP BY concept
		 ) c
		 ORDER BY last_used DESC
		 LIMIT 10`,
		query,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	concepts := make([]string, 0)
	for rows.Next() {
		var concept string
		if err := rows.Scan(&concept); err != nil {
			return nil, err
		}
		concepts = append(concepts, concept)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return concepts, nil
}

func scanExpenses(rows pgx.Rows) ([]models.Expense, error) {
	expenses := make([]models.Expense, 0)
	for rows.Next() {
		var e models.Expense
		err := rows.Scan(&e.ID, &e.Concept, &e.Amount, &e.Category, &e.Date, &e.IsRecurring, &e.CreatedAt, &e.UpdatedAt)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return expenses, nil
}
