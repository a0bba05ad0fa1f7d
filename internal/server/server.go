package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/riverajefer/gastos-hormiga/internal/config"
	"github.com/riverajefer/gastos-hormiga/internal/handlers"
	"github.com/riverajefer/gastos-hormiga/internal/notifications"
	"github.com/riverajefer/gastos-hormiga/internal/repository"
)

// New собирает HTTP-сервер Echo с роутами и зависимостями.
func New(cfg config.Config, logger *slog.Logger, db *pgxpool.Pool) *echo.Echo {
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestLogger(logger))

	expenseRepo := repository.NewExpenseRepository(db)
	quickRepo := repository.NewQuickExpenseRepository(db)
	budgetRepo := repository.NewBudgetRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	notificationHub := notifications.NewHub()

	expenseHandler := handlers.NewExpenseHandler(expenseRepo, notificationHub)
	quickHandler := handlers.NewQuickExpenseHandler(quickRepo, notificationHub)
	statsHandler := handlers.NewStatsHandler(expenseRepo, budgetRepo)
	budgetHandler := handlers.NewBudgetHandler(budgetRepo, notificationHub)
	settingsHandler := handlers.NewSettingsHandler(settingsRepo)
	categoryHandler := handlers.NewCategoryHandler()
	notificationHandler := handlers.NewNotificationHandler(notificationHub)

	registerRoutes(
		e,
		expenseHandler,
		quickHandler,
		statsHandler,
		budgetHandler,
		settingsHandler,
		categoryHandler,
		notificationHandler,
		writeRateLimiter(cfg.RateLimit),
	)

	return e
}

// NewHTTPServer создает net/http сервер с заданными таймаутами.
func NewHTTPServer(cfg config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.String("remote_ip", v.RemoteIP),
				slog.Duration("latency", v.Latency),
			}

			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}

			msg := "request completed"
			if v.Status >= http.StatusInternalServerError {
				logger.LogAttrs(c.Request().Context(), slog.LevelError, msg, attrs...)
				return nil
			}

			logger.LogAttrs(c.Request().Context(), slog.LevelInfo, msg, attrs...)
			return nil
		},
	})
}

func writeRateLimiter(cfg config.RateLimitConfig) echo.MiddlewareFunc {
	limit := rate.Limit(float64(cfg.PerMinute) / 60.0)
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      limit,
		Burst:     cfg.Burst,
		ExpiresIn: time.Minute,
	})

	return middleware.RateLimiter(store)
}
