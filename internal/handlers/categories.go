package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/riverajefer/gastos-hormiga/internal/category"
)

type CategoryHandler struct{}

// NewCategoryHandler создает обработчик каталога категорий.
func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// List возвращает каталог категорий в фиксированном порядке.
func (h *CategoryHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]category.Category{"categories": category.All()})
}
