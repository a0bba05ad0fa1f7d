package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Health возвращает простой статус сервиса.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok", Timestamp: time.Now().UTC()})
}
