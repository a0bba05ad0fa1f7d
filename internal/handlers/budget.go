package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/riverajefer/gastos-hormiga/internal/models"
	"github.com/riverajefer/gastos-hormiga/internal/notifications"
	"github.com/riverajefer/gastos-hormiga/internal/repository"
)

type BudgetHandler struct {
	Budgets  *repository.BudgetRepository
	Notifier *notifications.Hub
}

// NewBudgetHandler создает обработчик месячных лимитов.
func NewBudgetHandler(budgets *repository.BudgetRepository, notifier *notifications.Hub) *BudgetHandler {
	return &BudgetHandler{Budgets: budgets, Notifier: notifier}
}

type BudgetRequest struct {
	Month int   `json:"month" validate:"required,min=1,max=12"`
	Year  int   `json:"year" validate:"required,min=2000,max=2100"`
	Limit int64 `json:"limit" validate:"gt=0"`
}

type BudgetResponse struct {
	Month int   `json:"month"`
	Year  int   `json:"year"`
	Limit int64 `json:"limit"`
}

// Get возвращает лимит за указанный месяц.
func (h *BudgetHandler) Get(c echo.Context) error {
	year, month, err := parseYearMonth(c.Param("year"), c.Param("month"))
	if err != nil {
		return badRequest(c, err.Error())
	}

	budget, err := h.Budgets.Get(c.Request().Context(), month, year)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "budget not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, toBudgetResponse(budget))
}

// Set создает или обновляет лимит месяца.
func (h *BudgetHandler) Set(c echo.Context) error {
	var req BudgetRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	budget, err := h.Budgets.Set(c.Request().Context(), req.Month, req.Year, req.Limit)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return conflict(c, "budget already exists")
		}
		return serverError(c)
	}

	response := toBudgetResponse(budget)
	h.Notifier.Publish(notifications.Event{Type: notifications.EventBudgetUpdated, Data: response})
	return c.JSON(http.StatusOK, response)
}

func toBudgetResponse(b models.MonthlyBudget) BudgetResponse {
	return BudgetResponse{Month: b.Month, Year: b.Year, Limit: b.Limit}
}
