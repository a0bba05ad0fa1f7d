package server

import (
	"github.com/labstack/echo/v4"

	"github.com/riverajefer/gastos-hormiga/internal/handlers"
)

func registerRoutes(
	e *echo.Echo,
	expenseHandler *handlers.ExpenseHandler,
	quickHandler *handlers.QuickExpenseHandler,
	statsHandler *handlers.StatsHandler,
	budgetHandler *handlers.BudgetHandler,
	settingsHandler *handlers.SettingsHandler,
	categoryHandler *handlers.CategoryHandler,
	notificationHandler *handlers.NotificationHandler,
	writeRateLimiter echo.MiddlewareFunc,
) {
	e.GET("/health", handlers.Health)

	api := e.Group("/api")

	expenses := api.Group("/expenses")
	expenses.GET("", expenseHandler.List)
	expenses.POST("", expenseHandler.Create, writeRateLimiter)
	expenses.GET("/export/json", expenseHandler.ExportJSON)
	expenses.GET("/export/csv", expenseHandler.ExportCSV)
	expenses.GET("/:id", expenseHandler.Get)
	expenses.PUT("/:id", expenseHandler.Update, writeRateLimiter)
	expenses.DELETE("/:id", expenseHandler.Delete, writeRateLimiter)

	api.GET("/concepts/suggestions", expenseHandler.Suggestions)

	quick := api.Group("/quick-expenses")
	quick.GET("", quickHandler.List)
	quick.POST("", quickHandler.Create, writeRateLimiter)
	quick.PUT("/reorder", quickHandler.Reorder, writeRateLimiter)
	quick.POST("/:id/use", quickHandler.Use, writeRateLimiter)
	quick.PUT("/:id", quickHandler.Update, writeRateLimiter)
	quick.DELETE("/:id", quickHandler.Delete, writeRateLimiter)

	stats := api.Group("/stats")
	stats.GET("/monthly/:year/:month", statsHandler.Monthly)
	stats.GET("/yearly/:year", statsHandler.Yearly)
	stats.GET("/comparison", statsHandler.Comparison)
	stats.GET("/by-category", statsHandler.ByCategory)
	stats.GET("/by-weekday", statsHandler.ByWeekday)

	api.GET("/budget/:year/:month", budgetHandler.Get)
	api.POST("/budget", budgetHandler.Set, writeRateLimiter)

	api.GET("/settings", settingsHandler.Get)
	api.PUT("/settings", settingsHandler.Update, writeRateLimiter)

	api.GET("/categories", categoryHandler.List)

	notifications := api.Group("/notifications")
	notifications.GET("/stream", notificationHandler.Stream)
}
