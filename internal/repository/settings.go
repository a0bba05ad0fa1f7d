package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/riverajefer/gastos-hormiga/internal/models"
)

// settingsID — настройки хранятся единственной строкой.
const settingsID = "default"

const settingsColumns = "id, reminder_enabled, reminder_time, dark_mode, currency, updated_at"

type SettingsRepository struct {
	db *pgxpool.Pool
}

type UpdateSettingsInput struct {
	ReminderEnabled *bool
	ReminderTime    *string
	DarkMode        *bool
	Currency        *string
}

// NewSettingsRepository создает репозиторий настроек.
func NewSettingsRepository(db *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get возвращает настройки, создавая строку с дефолтами при первом обращении.
func (r *SettingsRepository) Get(ctx context.Context) (models.UserSettings, error) {
	var s models.UserSettings

	_, err := r.db.Exec(ctx,
		"INSERT INTO user_settings (id) VALUES ($1) ON CONFLICT (id) DO NOTHING",
		settingsID,
	)
	if err != nil {
		return s, err
	}

	err = r.db.QueryRow(ctx,
		"SELECT "+settingsColumns+" FROM user_settings WHERE id = $1",
		settingsID,
	).Scan(&s.ID, &s.ReminderEnabled, &s.ReminderTime, &s.DarkMode, &s.Currency, &s.UpdatedAt)
	if err != nil {
		return s, err
	}

	return s, nil
}

// Update частично обновляет настройки.
func (r *SettingsRepository) Update(ctx context.Context, input UpdateSettingsInput) (models.UserSettings, error) {
	var s models.UserSettings

	_, err := r.db.Exec(ctx,
		"INSERT INTO user_settings (id) VALUES ($1) ON CONFLICT (id) DO NOTHING",
		settingsID,
	)
	if err != nil {
		return s, err
	}

	err = r.db.QueryRow(ctx,
		`UPDATE user_settings
		 SET reminder_enabled = COALESCE($2, reminder_enabled),
		     reminder_time = COALESCE($3, reminder_time),
		     dark_mode = COALESCE($4, dark_mode),
		     currency = COALESCE($5, currency),
		     updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+settingsColumns,
		settingsID, input.ReminderEnabled, input.ReminderTime, input.DarkMode, input.Currency,
	).Scan(&s.ID, &s.ReminderEnabled, &s.ReminderTime, &s.DarkMode, &s.Currency, &s.UpdatedAt)
	if err != nil {
		return s, err
	}

	return s, nil
}
