package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/riverajefer/gastos-hormiga/internal/models"
	"github.com/riverajefer/gastos-hormiga/internal/repository"
	"github.com/riverajefer/gastos-hormiga/internal/stats"
)

type StatsHandler struct {
	Expenses *repository.ExpenseRepository
	Budgets  *repository.BudgetRepository
}

// NewStatsHandler создает обработчик статистики.
func NewStatsHandler(expenses *repository.ExpenseRepository, budgets *repository.BudgetRepository) *StatsHandler {
	return &StatsHandler{Expenses: expenses, Budgets: budgets}
}

// Monthly возвращает сводку за месяц.
func (h *StatsHandler) Monthly(c echo.Context) error {
	year, month, err := parseYearMonth(c.Param("year"), c.Param("month"))
	if err != nil {
		return badRequest(c, err.Error())
	}

	from, to := monthRange(year, month)
	expenses, err := h.Expenses.ListRange(c.Request().Context(), from, to)
	if err != nil {
		return serverError(c)
	}

	var budget *models.MonthlyBudget
	b, err := h.Budgets.Get(c.Request().Context(), month, year)
	if err == nil {
		budget = &b
	} else if !errors.Is(err, repository.ErrNotFound) {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, stats.Monthly(expenses, year, month, budget, time.Now().UTC()))
}

// Yearly возвращает сводку за год с годовыми проекциями.
func (h *StatsHandler) Yearly(c echo.Context) error {
	year, err := parseYear(c.Param("year"))
	if err != nil {
		return badRequest(c, err.Error())
	}

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)
	expenses, err := h.Expenses.ListRange(c.Request().Context(), from, to)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, stats.Yearly(expenses, year, time.Now().UTC()))
}

// Comparison сравнивает текущий месяц с предыдущим.
// Год и месяц задаются независимо; пропущенный параметр берется из текущей даты.
func (h *StatsHandler) Comparison(c echo.Context) error {
	year, month, err := comparisonPeriod(
		strings.TrimSpace(c.QueryParam("year")),
		strings.TrimSpace(c.QueryParam("month")),
		time.Now().UTC(),
	)
	if err != nil {
		return badRequest(c, err.Error())
	}

	prevYear, prevMonth := year, month-1
	if prevMonth < 1 {
		prevMonth = 12
		prevYear--
	}

	from, to := monthRange(year, month)
	current, err := h.Expenses.ListRange(c.Request().Context(), from, to)
	if err != nil {
		return serverError(c)
	}

	from, to = monthRange(prevYear, prevMonth)
	previous, err := h.Expenses.ListRange(c.Request().Context(), from, to)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, stats.Comparison(current, previous, year, month))
}

// ByCategory возвращает суммы по категориям за произвольный период.
func (h *StatsHandler) ByCategory(c echo.Context) error {
	expenses, err := h.listPeriod(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string][]stats.CategoryTotal{"by_category": stats.ByCategory(expenses)})
}

// ByWeekday возвращает суммы по дням недели за произвольный период.
func (h *StatsHandler) ByWeekday(c echo.Context) error {
	expenses, err := h.listPeriod(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string][]stats.WeekdayTotal{"by_weekday": stats.ByWeekday(expenses)})
}

// listPeriod загружает расходы за запрошенный период: месяц года либо
// весь год; без параметров берется текущий год. Ошибочный ввод сразу
// пишет ответ клиенту.
func (h *StatsHandler) listPeriod(c echo.Context) ([]models.Expense, error) {
	from, to, err := statsPeriod(
		strings.TrimSpace(c.QueryParam("year")),
		strings.TrimSpace(c.QueryParam("month")),
		time.Now().UTC(),
	)
	if err != nil {
		return nil, badRequest(c, err.Error())
	}

	expenses, err := h.Expenses.ListRange(c.Request().Context(), from, to)
	if err != nil {
		return nil, serverError(c)
	}

	return expenses, nil
}

// statsPeriod вычисляет границы выборки статистики: год+месяц дают месяц,
// один год дает весь год, пустые параметры дают текущий год.
func statsPeriod(rawYear, rawMonth string, now time.Time) (time.Time, time.Time, error) {
	year := now.Year()
	if rawYear != "" {
		parsed, err := parseYear(rawYear)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		year = parsed
	}

	if rawMonth != "" {
		month, err := parseMonth(rawMonth)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from, to := monthRange(year, month)
		return from, to, nil
	}

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(1, 0, 0), nil
}

// comparisonPeriod подставляет текущие год и месяц вместо пропущенных параметров.
func comparisonPeriod(rawYear, rawMonth string, now time.Time) (int, int, error) {
	year, month := now.Year(), int(now.Month())

	if rawYear != "" {
		parsed, err := parseYear(rawYear)
		if err != nil {
			return 0, 0, err
		}
		year = parsed
	}

	if rawMonth != "" {
		parsed, err := parseMonth(rawMonth)
		if err != nil {
			return 0, 0, err
		}
		month = parsed
	}

	return year, month, nil
}

func parseYear(raw string) (int, error) {
	year, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || year < 2000 || year > 2100 {
		return 0, errors.New("invalid year")
	}

	return year, nil
}

func parseMonth(raw string) (int, error) {
	month, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || month < 1 || month > 12 {
		return 0, errors.New("invalid month")
	}

	return month, nil
}

func parseYearMonth(rawYear, rawMonth string) (int, int, error) {
	year, err := parseYear(rawYear)
	if err != nil {
		return 0, 0, err
	}

	month, err := parseMonth(rawMonth)
	if err != nil {
		return 0, 0, err
	}

	return year, month, nil
}

func monthRange(year, month int) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}
