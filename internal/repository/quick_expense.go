package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/riverajefer/gastos-hormiga/internal/category"
	"github.com/riverajefer/gastos-hormiga/internal/models"
)

const quickExpenseColumns = "id, concept, amount, category, sort_order, usage_count, created_at, updated_at"

type QuickExpenseRepository struct {
	db *pgxpool.Pool
}

type CreateQuickExpenseInput struct {
	Concept  string
	Amount   int64
	Category category.ID
}

type UpdateQuickExpenseInput struct {
	Concept   *string
	Amount    *int64
	Category  *category.ID
	SortOrder *int
}

// NewQuickExpenseRepository создает репозиторий быстрых расходов.
func NewQuickExpenseRepository(db *pgxpool.Pool) *QuickExpenseRepository {
	return &QuickExpenseRepository{db: db}
}

// List возвращает шаблоны в порядке sort_order; равные — по числу использований.
func (r *QuickExpenseRepository) List(ctx context.Context) ([]models.QuickExpense, error) {
	rows, err := r.db.Query(ctx,
		"SELECT "+quickExpenseColumns+" FROM quick_expenses ORDER BY sort_order ASC, usage_count DESC",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanQuickExpenses(rows)
}

// Create добавляет шаблон в конец списка.
func (r *QuickExpenseRepository) Create(ctx context.Context, input CreateQuickExpenseInput) (models.QuickExpense, error) {
	var q models.QuickExpense

	err := r.db.QueryRow(ctx,
		`INSERT INTO quick_expenses (id, concept, amount, category, sort_order)
		 VALUES ($1, $2, $3, $4,
		         (SELECT COALESCE(MAX(sort_order), -1) + 1 FROM quick_expenses))
		 RETURNING `+quickExpenseColumns,
		uuid.New(), input.Concept, input.Amount, input.Category,
	).Scan(&q.ID, &q.Concept, &q.Amount, &q.Category, &q.SortOrder, &q.UsageCount, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return q, mapPgError(err)
	}

	return q, nil
}

// Update частично обновляет шаблон.
func (r *QuickExpenseRepository) Update(ctx context.Context, id uuid.UUID, input UpdateQuickExpenseInput) (models.QuickExpense, error) {
	var q models.QuickExpense

	err := r.db.QueryRow(ctx,
		`UPDATE quick_expenses
		 SET concept = COALESCE($2, concept),
		     amount = COALESCE($3, amount),
		     category = COALESCE($4, category),
		     sort_order = COALESCE($5, sort_order),
		     updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+quickExpenseColumns,
		id, input.Concept, input.Amount, input.Category, input.SortOrder,
	).Scan(&q.ID, &q.Concept, &q.Amount, &q.Category, &q.SortOrder, &q.UsageCount, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return q, ErrNotFound
		}
		return q, err
	}

	return q, nil
}

// Delete удаляет шаблон.
func (r *QuickExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.db.Exec(ctx, "DELETE FROM quick_expenses WHERE id = $1", id)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Use создает расход из шаблона и увеличивает счетчик использований.
// Обе записи выполняются в одной транзакции: либо обе, либо ни одной.
func (r *QuickExpenseRepository) Use(ctx context.Context, id uuid.UUID, date time.Time) (models.Expense, error) {
	var e models.Expense

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return e, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var q models.QuickExpense
	err = tx.QueryRow(ctx,
		"SELECT "+quickExpenseColumns+" FROM quick_expenses WHERE id = $1 FOR UPDATE",
		id,
	).Scan(&q.ID, &q.Concept, &q.Amount, &q.Category, &q.SortOrder, &q.UsageCount, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return e, ErrNotFound
		}
		return e, err
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO expenses (id, concept, amount, category, date)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+expenseColumns,
		uuid.New(), q.Concept, q.Amount, q.Category, date,
	).Scan(&e.ID, &e.Concept, &e.Amount, &e.Category, &e.Date, &e.IsRecurring, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return e, err
	}

	_, err = tx.Exec(ctx,
		"UPDATE quick_expenses SET usage_count = usage_count + 1, updated_at = NOW() WHERE id = $1",
		id,
	)
	if err != nil {
		return e, err
	}

	if err := tx.Commit(ctx); err != nil {
		return e, err
	}

	return e, nil
}

// Reorder переписывает sort_order по переданному порядку идентификаторов.
// Неизвестный идентификатор откатывает всю транзакцию.
func (r *QuickExpenseRepository) Reorder(ctx context.Context, ids []uuid.UUID) ([]models.QuickExpense, error) {
	if len(ids) == 0 {
		return nil, ErrInvalid
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	for idx, id := range ids {
		cmd, err := tx.Exec(ctx,
			"UPDATE quick_expenses SET sort_order = $2, updated_at = NOW() WHERE id = $1",
			id, idx,
		)
		if err != nil {
			return nil, err
		}
		if cmd.RowsAffected() == 0 {
			return nil, ErrNotFound
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return r.List(ctx)
}

func scanQuickExpenses(rows pgx.Rows) ([]models.QuickExpense, error) {
	items := make([]models.QuickExpense, 0)
	for rows.Next() {
		var q models.QuickExpense
		err := rows.Scan(&q.ID, &q.Concept, &q.Amount, &q.Category, &q.SortOrder, &q.UsageCount, &q.CreatedAt, &q.UpdatedAt)
		if err != nil {
			return nil, err
		}
		items = append(items, q)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
