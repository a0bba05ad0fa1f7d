package handlers

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/riverajefer/gastos-hormiga/internal/models"
	"github.com/riverajefer/gastos-hormiga/internal/repository"
)

// ExportJSON выгружает расходы за период в JSON-файл.
func (h *ExpenseHandler) ExportJSON(c echo.Context) error {
	expenses, filename, done := h.listExport(c)
	if done {
		return nil
	}

	response := make([]ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		response = append(response, toExpenseResponse(e))
	}

	c.Response().Header().Set(echo.HeaderContentType, "application/json")
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\""+filename+".json\"")
	return c.JSON(http.StatusOK, map[string][]ExpenseResponse{"expenses": response})
}

// ExportCSV выгружает расходы за период в CSV-файл.
func (h *ExpenseHandler) ExportCSV(c echo.Context) error {
	expenses, filename, done := h.listExport(c)
	if done {
		return nil
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writeExpensesCSV(writer, expenses); err != nil {
		return serverError(c)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return serverError(c)
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\""+filename+".csv\"")
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// listExport загружает расходы по query-фильтрам выгрузки.
// При done=true ответ клиенту уже записан.
func (h *ExpenseHandler) listExport(c echo.Context) ([]models.Expense, string, bool) {
	var filter repository.ExpenseFilter
	filename := "expenses"

	if raw := strings.TrimSpace(c.QueryParam("from")); raw != "" {
		from, err := parseDate(raw)
		if err != nil {
			_ = badRequest(c, "invalid from date")
			return nil, "", true
		}
		start := startOfDay(from)
		filter.From = &start
		filename += "-from-" + start.Format(dateLayout)
	}

	if raw := strings.TrimSpace(c.QueryParam("to")); raw != "" {
		to, err := parseDate(raw)
		if err != nil {
			_ = badRequest(c, "invalid to date")
			return nil, "", true
		}
		end := startOfDay(to).AddDate(0, 0, 1)
		filter.To = &end
		filename += "-to-" + startOfDay(to).Format(dateLayout)
	}

	expenses, err := h.Expenses.List(c.Request().Context(), filter)
	if err != nil {
		_ = serverError(c)
		return nil, "", true
	}

	return expenses, filename, false
}

func writeExpensesCSV(writer *csv.Writer, expenses []models.Expense) error {
	header := []string{
		"id",
		"concept",
		"amount",
		"category",
		"date",
		"is_recurring",
		"created_at",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, e := range expenses {
		record := []string{
			e.ID.String(),
			e.Concept,
			strconv.FormatInt(e.Amount, 10),
			string(e.Category),
			e.Date.Format(dateLayout),
			formatBool(e.IsRecurring),
			e.CreatedAt.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}

func formatBool(value bool) string {
	if value {
		return "true"
	}
	return "false"
}
