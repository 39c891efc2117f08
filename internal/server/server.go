package server

import (
	"account-service/internal/handler"
	"account-service/internal/middleware"
	"account-service/pkg/config"
	"account-service/pkg/database"
	"account-service/pkg/logger"
	"account-service/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// New builds the echo instance with all middleware and routes registered.
// The caller owns startup and shutdown.
func New(cfg *config.Config, db *database.DB, log *zap.Logger) *echo.Echo {
	// Initialize Prometheus metrics
	prometheus.InitMetrics(cfg)

	e := echo.New()
	e.Renderer = newRenderer()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(middleware.MetricsMiddleware)

	healthHandler := handler.NewHealthHandler(db)
	accountHandler := handler.NewAccountHandler(db)
	taskHandler := handler.NewTaskHandler(db)

	// Health and metrics
	e.GET("/", healthHandler.Root)
	e.GET("/health", healthHandler.Check)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Account routes
	e.GET("/accounts", accountHandler.List)
	e.POST("/accounts", accountHandler.Create)
	e.PUT("/accounts/:id", accountHandler.Update)
	e.DELETE("/accounts/:id", accountHandler.Delete)

	// Task routes
	e.GET("/tasks", taskHandler.List)
	e.POST("/tasks", taskHandler.Create)
	e.PUT("/tasks/:id", taskHandler.Update)
	e.DELETE("/tasks/:id", taskHandler.Delete)

	// Static HTML pages
	e.GET("/ui", handler.UI)
	e.GET("/dashboard", handler.Dashboard)
	e.GET("/tasks-ui", handler.TasksUI)

	return e
}
