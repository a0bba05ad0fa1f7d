package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/riverajefer/gastos-hormiga/internal/category"
)

type Expense struct {
	ID          uuid.UUID   `json:"id"`
	Concept     string      `json:"concept"`
	Amount      int64       `json:"amount"`
	Category    category.ID `json:"category"`
	Date        time.Time   `json:"date"`
	IsRecurring bool        `json:"is_recurring"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type QuickExpense struct {
	ID         uuid.UUID   `json:"id"`
	Concept    string      `json:"concept"`
	Amount     int64       `json:"amount"`
	Category   category.ID `json:"category"`
	SortOrder  int         `json:"sort_order"`
	UsageCount int         `json:"usage_count"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

type MonthlyBudget struct {
	Month     int       `json:"month"`
	Year      int       `json:"year"`
	Limit     int64     `json:"limit"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UserSettings struct {
	ID              string    `json:"id"`
	ReminderEnabled bool      `json:"reminder_enabled"`
	ReminderTime    string    `json:"reminder_time"`
	DarkMode        bool      `json:"dark_mode"`
	Currency        string    `json:"currency"`
	UpdatedAt       time.Time `json:"updated_at"`
}
