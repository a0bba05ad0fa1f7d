package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/riverajefer/gastos-hormiga/internal/models"
	"github.com/riverajefer/gastos-hormiga/internal/repository"
)

type SettingsHandler struct {
	Settings *repository.SettingsRepository
}

// NewSettingsHandler создает обработчик пользовательских настроек.
func NewSettingsHandler(settings *repository.SettingsRepository) *SettingsHandler {
	return &SettingsHandler{Settings: settings}
}

type UpdateSettingsRequest struct {
	ReminderEnabled *bool   `json:"reminder_enabled"`
	ReminderTime    *string `json:"reminder_time"`
	DarkMode        *bool   `json:"dark_mode"`
	Currency        *string `json:"currency" validate:"omitempty,len=3"`
}

type SettingsResponse struct {
	ReminderEnabled bool      `json:"reminder_enabled"`
	ReminderTime    string    `json:"reminder_time"`
	DarkMode        bool      `json:"dark_mode"`
	Currency        string    `json:"currency"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Get возвращает настройки, создавая дефолтные при первом обращении.
func (h *SettingsHandler) Get(c echo.Context) error {
	settings, err := h.Settings.Get(c.Request().Context())
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, toSettingsResponse(settings))
}

// Update частично обновляет настройки.
func (h *SettingsHandler) Update(c echo.Context) error {
	var req UpdateSettingsRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	var input repository.UpdateSettingsInput
	input.ReminderEnabled = req.ReminderEnabled
	input.DarkMode = req.DarkMode

	if req.ReminderTime != nil {
		value := strings.TrimSpace(*req.ReminderTime)
		if !isClockTime(value) {
			return badRequest(c, "reminder_time must be HH:MM")
		}
		input.ReminderTime = &value
	}

	if req.Currency != nil {
		value := strings.ToUpper(strings.TrimSpace(*req.Currency))
		if len(value) != 3 {
			return badRequest(c, "currency must be a 3-letter code")
		}
		input.Currency = &value
	}

	settings, err := h.Settings.Update(c.Request().Context(), input)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, toSettingsResponse(settings))
}

func isClockTime(value string) bool {
	_, err := time.Parse("15:04", value)
	return err == nil
}

func toSettingsResponse(s models.UserSettings) SettingsResponse {
	return SettingsResponse{
		ReminderEnabled: s.ReminderEnabled,
		ReminderTime:    s.ReminderTime,
		DarkMode:        s.DarkMode,
		Currency:        s.Currency,
		UpdatedAt:       s.UpdatedAt,
	}
}
