package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/riverajefer/gastos-hormiga/internal/category"
	"github.com/riverajefer/gastos-hormiga/internal/models"
	"github.com/riverajefer/gastos-hormiga/internal/notifications"
	"github.com/riverajefer/gastos-hormiga/internal/repository"
)

type QuickExpenseHandler struct {
	QuickExpenses *repository.QuickExpenseRepository
	Notifier      *notifications.Hub
}

// NewQuickExpenseHandler создает обработчик шаблонов быстрых расходов.
func NewQuickExpenseHandler(quick *repository.QuickExpenseRepository, notifier *notifications.Hub) *QuickExpenseHandler {
	return &QuickExpenseHandler{QuickExpenses: quick, Notifier: notifier}
}

type QuickExpenseRequest struct {
	Concept  string  `json:"concept" validate:"required,max=200"`
	Amount   int64   `json:"amount" validate:"gt=0"`
	Category *string `json:"category" validate:"omitempty,category"`
}

type UpdateQuickExpenseRequest struct {
	Concept   *string `json:"concept" validate:"omitempty,max=200"`
	Amount    *int64  `json:"amount" validate:"omitempty,gt=0"`
	Category  *string `json:"category" validate:"omitempty,category"`
	SortOrder *int    `json:"sort_order" validate:"omitempty,gte=0"`
}

type UseQuickExpenseRequest struct {
	Date *string `json:"date"`
}

type ReorderRequest struct {
	IDs []string `json:"ids" validate:"required,min=1"`
}

type QuickExpenseResponse struct {
	ID         uuid.UUID   `json:"id"`
	Concept    string      `json:"concept"`
	Amount     int64       `json:"amount"`
	Category   category.ID `json:"category"`
	SortOrder  int         `json:"sort_order"`
	UsageCount int         `json:"usage_count"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// List возвращает шаблоны в пользовательском порядке.
func (h *QuickExpenseHandler) List(c echo.Context) error {
	items, err := h.QuickExpenses.List(c.Request().Context())
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, map[string][]QuickExpenseResponse{"quick_expenses": toQuickExpenseResponses(items)})
}

// Create добавляет шаблон в конец списка.
func (h *QuickExpenseHandler) Create(c echo.Context) error {
	var req QuickExpenseRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	concept := strings.TrimSpace(req.Concept)
	if concept == "" {
		return badRequest(c, "concept is required")
	}

	cat, err := resolveCategory(req.Category, concept)
	if err != nil {
		return badRequest(c, err.Error())
	}

	item, err := h.QuickExpenses.Create(c.Request().Context(), repository.CreateQuickExpenseInput{
		Concept:  concept,
		Amount:   req.Amount,
		Category: cat,
	})
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return conflict(c, "quick expense already exists")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusCreated, toQuickExpenseResponse(item))
}

// Update частично обновляет шаблон.
func (h *QuickExpenseHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid quick expense id")
	}

	var req UpdateQuickExpenseRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err = c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	var input repository.UpdateQuickExpenseInput

	if req.Concept != nil {
		concept := strings.TrimSpace(*req.Concept)
		if concept == "" {
			return badRequest(c, "concept must not be empty")
		}
		input.Concept = &concept
	}

	input.Amount = req.Amount
	input.SortOrder = req.SortOrder

	if req.Category != nil {
		cat := category.ID(strings.TrimSpace(*req.Category))
		if !category.Valid(cat) {
			return badRequest(c, "invalid category")
		}
		input.Category = &cat
	} else if input.Concept != nil {
		inferred := category.Infer(*input.Concept)
		input.Category = &inferred
	}

	item, err := h.QuickExpenses.Update(c.Request().Context(), id, input)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "quick expense not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, toQuickExpenseResponse(item))
}

// Delete удаляет шаблон.
func (h *QuickExpenseHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid quick expense id")
	}

	if err := h.QuickExpenses.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "quick expense not found")
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}

// Use создает расход из шаблона одним нажатием.
func (h *QuickExpenseHandler) Use(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid quick expense id")
	}

	var req UseQuickExpenseRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}

	date := time.Now().UTC()
	if req.Date != nil {
		date, err = parseDate(strings.TrimSpace(*req.Date))
		if err != nil {
			return badRequest(c, "invalid date format")
		}
	}

	expense, err := h.QuickExpenses.Use(c.Request().Context(), id, normalizeDate(date))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "quick expense not found")
		}
		return serverError(c)
	}

	response := toExpenseResponse(expense)
	h.Notifier.Publish(notifications.Event{Type: notifications.EventQuickExpenseUsed, Data: response})
	return c.JSON(http.StatusCreated, response)
}

// Reorder переставляет шаблоны в указанном порядке.
func (h *QuickExpenseHandler) Reorder(c echo.Context) error {
	var req ReorderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	ids, err := parseUUIDs(req.IDs)
	if err != nil {
		return badRequest(c, "invalid ids")
	}

	items, err := h.QuickExpenses.Reorder(c.Request().Context(), ids)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "quick expense not found")
		}
		if errors.Is(err, repository.ErrInvalid) {
			return badRequest(c, "invalid order")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, map[string][]QuickExpenseResponse{"quick_expenses": toQuickExpenseResponses(items)})
}

func parseUUIDs(values []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(values))
	seen := make(map[uuid.UUID]struct{}, len(values))

	for _, value := range values {
		parsed, err := uuid.Parse(strings.TrimSpace(value))
		if err != nil {
			return nil, err
		}

		if _, exists := seen[parsed]; exists {
			return nil, errors.New("duplicate id")
		}

		seen[parsed] = struct{}{}
		ids = append(ids, parsed)
	}

	return ids, nil
}

func toQuickExpenseResponse(q models.QuickExpense) QuickExpenseResponse {
	return QuickExpenseResponse{
		ID:         q.ID,
		Concept:    q.Concept,
		Amount:     q.Amount,
		Category:   q.Category,
		SortOrder:  q.SortOrder,
		UsageCount: q.UsageCount,
		CreatedAt:  q.CreatedAt,
		UpdatedAt:  q.UpdatedAt,
	}
}

func toQuickExpenseResponses(items []models.QuickExpense) []QuickExpenseResponse {
	response := make([]QuickExpenseResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toQuickExpenseResponse(item))
	}

	return response
}
