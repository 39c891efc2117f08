package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// UI renders the account manager page
func UI(c echo.Context) error {
	return c.Render(http.StatusOK, "ui.html", nil)
}

// Dashboard renders the dashboard page
func Dashboard(c echo.Context) error {
	return c.Render(http.StatusOK, "dashboard.html", nil)
}

// TasksUI renders the task board page
func TasksUI(c echo.Context) error {
	return c.Render(http.StatusOK, "tasks.html", nil)
}
