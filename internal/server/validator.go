package server

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/riverajefer/gastos-hormiga/internal/category"
)

type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator создает валидатор на базе go-playground/validator
// с проверкой `category` для полей с идентификатором категории.
func NewValidator() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		value := strings.TrimSpace(fl.Field().String())
		// Пустое значение означает вывод категории из описания.
		if value == "" {
			return true
		}
		return category.Valid(category.ID(value))
	})

	return &CustomValidator{validator: v}
}

// Validate запускает проверку структуры по тегам.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
