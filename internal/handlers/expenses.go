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

const dateLayout = "2006-01-02"

type ExpenseHandler struct {
	Expenses *repository.ExpenseRepository
	Notifier *notifications.Hub
}

// NewExpenseHandler создает обработчик расходов.
func NewExpenseHandler(expenses *repository.ExpenseRepository, notifier *notifications.Hub) *ExpenseHandler {
	return &ExpenseHandler{Expenses: expenses, Notifier: notifier}
}

type ExpenseRequest struct {
	Concept     string  `json:"concept" validate:"required,max=200"`
	Amount      int64   `json:"amount" validate:"gt=0"`
	Category    *string `json:"category" validate:"omitempty,category"`
	Date        *string `json:"date"`
	IsRecurring *bool   `json:"is_recurring"`
}

type UpdateExpenseRequest struct {
	Concept     *string `json:"concept" validate:"omitempty,max=200"`
	Amount      *int64  `json:"amount" validate:"omitempty,gt=0"`
	Category    *string `json:"category" validate:"omitempty,category"`
	Date        *string `json:"date"`
	IsRecurring *bool   `json:"is_recurring"`
}

type ExpenseResponse struct {
	ID          uuid.UUID   `json:"id"`
	Concept     string      `json:"concept"`
	Amount      int64       `json:"amount"`
	Category    category.ID `json:"category"`
	Date        time.Time   `json:"date"`
	IsRecurring bool        `json:"is_recurring"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// List возвращает расходы с фильтрами по периоду, категории и тексту.
// Пара month+year перекрывает границы from/to.
func (h *ExpenseHandler) List(c echo.Context) error {
	var filter repository.ExpenseFilter

	from, to, err := rangeFromQuery(
		strings.TrimSpace(c.QueryParam("month")),
		strings.TrimSpace(c.QueryParam("year")),
		strings.TrimSpace(c.QueryParam("from")),
		strings.TrimSpace(c.QueryParam("to")),
	)
	if err != nil {
		return badRequest(c, err.Error())
	}
	filter.From = from
	filter.To = to

	if raw := strings.TrimSpace(c.QueryParam("category")); raw != "" {
		id := category.ID(raw)
		if !category.Valid(id) {
			return badRequest(c, "invalid category")
		}
		filter.Category = &id
	}

	filter.Search = strings.TrimSpace(c.QueryParam("search"))

	expenses, err := h.Expenses.List(c.Request().Context(), filter)
	if err != nil {
		return serverError(c)
	}

	response := make([]ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		response = append(response, toExpenseResponse(e))
	}

	return c.JSON(http.StatusOK, map[string][]ExpenseResponse{"expenses": response})
}

// Create создает расход; категория выводится из описания, если не указана.
func (h *ExpenseHandler) Create(c echo.Context) error {
	var req ExpenseRequest
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

	date := time.Now().UTC()
	if req.Date != nil {
		date, err = parseDate(strings.TrimSpace(*req.Date))
		if err != nil {
			return badRequest(c, "invalid date format")
		}
	}

	isRecurring := false
	if req.IsRecurring != nil {
		isRecurring = *req.IsRecurring
	}

	expense, err := h.Expenses.Create(c.Request().Context(), repository.CreateExpenseInput{
		Concept:     concept,
		Amount:      req.Amount,
		Category:    cat,
		Date:        normalizeDate(date),
		IsRecurring: isRecurring,
	})
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return conflict(c, "expense already exists")
		}
		return serverError(c)
	}

	response := toExpenseResponse(expense)
	h.Notifier.Publish(notifications.Event{Type: notifications.EventExpenseCreated, Data: response})
	return c.JSON(http.StatusCreated, response)
}

// Get возвращает расход по идентификатору.
func (h *ExpenseHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid expense id")
	}

	expense, err := h.Expenses.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "expense not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, toExpenseResponse(expense))
}

// Update частично обновляет расход. Если описание изменилось без явной
// категории, категория выводится заново.
func (h *ExpenseHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid expense id")
	}

	var req UpdateExpenseRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err = c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	var input repository.UpdateExpenseInput

	if req.Concept != nil {
		concept := strings.TrimSpace(*req.Concept)
		if concept == "" {
			return badRequest(c, "concept must not be empty")
		}
		input.Concept = &concept
	}

	input.Amount = req.Amount
	input.IsRecurring = req.IsRecurring

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

	if req.Date != nil {
		date, err := parseDate(strings.TrimSpace(*req.Date))
		if err != nil {
			return badRequest(c, "invalid date format")
		}
		normalized := normalizeDate(date)
		input.Date = &normalized
	}

	expense, err := h.Expenses.Update(c.Request().Context(), id, input)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "expense not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, toExpenseResponse(expense))
}

// Delete удаляет расход.
func (h *ExpenseHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid expense id")
	}

	if err := h.Expenses.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "expense not found")
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}

// Suggestions возвращает недавние описания, подходящие под запрос.
func (h *ExpenseHandler) Suggestions(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))

	suggestions, err := h.Expenses.Suggestions(c.Request().Context(), query)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, map[string][]string{"suggestions": suggestions})
}

// resolveCategory проверяет явную категорию либо выводит ее из описания.
func resolveCategory(raw *string, concept string) (category.ID, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return category.Infer(concept), nil
	}

	id := category.ID(strings.TrimSpace(*raw))
	if !category.Valid(id) {
		return "", errors.New("invalid category")
	}

	return id, nil
}

// rangeFromQuery вычисляет границы выборки. Заданные вместе month и year
// задают календарный месяц, иначе действуют границы from/to (to включительно).
func rangeFromQuery(rawMonth, rawYear, rawFrom, rawTo string) (*time.Time, *time.Time, error) {
	if rawMonth != "" && rawYear != "" {
		year, month, err := parseYearMonth(rawYear, rawMonth)
		if err != nil {
			return nil, nil, err
		}
		from, to := monthRange(year, month)
		return &from, &to, nil
	}

	var fromPtr, toPtr *time.Time

	if rawFrom != "" {
		from, err := parseDate(rawFrom)
		if err != nil {
			return nil, nil, errors.New("invalid from date")
		}
		start := startOfDay(from)
		fromPtr = &start
	}

	if rawTo != "" {
		to, err := parseDate(rawTo)
		if err != nil {
			return nil, nil, errors.New("invalid to date")
		}
		end := startOfDay(to).AddDate(0, 0, 1)
		toPtr = &end
	}

	return fromPtr, toPtr, nil
}

// parseDate принимает дату в формате RFC3339 либо YYYY-MM-DD.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}

	return time.Parse(dateLayout, value)
}

// normalizeDate приводит дату к полудню UTC, чтобы день не сдвигался
// при переводе между часовыми поясами.
func normalizeDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC)
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func toExpenseResponse(e models.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		Concept:     e.Concept,
		Amount:      e.Amount,
		Category:    e.Category,
		Date:        e.Date,
		IsRecurring: e.IsRecurring,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
