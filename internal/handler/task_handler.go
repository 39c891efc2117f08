package handler

import (
	"net/http"
	"time"

	"account-service/internal/model"
	"account-service/pkg/database"
	"account-service/pkg/logger"
	"account-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TaskRequest defines the structure for task creation/update requests. DueAt
// accepts RFC 3339 as well as timezone-less ISO-8601 text.
type TaskRequest struct {
	AccountID   uint     `json:"account_id"`
	ContactID   *uint    `json:"contact_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	Priority    int      `json:"priority"`
	DueAt       *ISOTime `json:"due_at"`
}

// TaskHandler serves the /tasks endpoints
type TaskHandler struct {
	db *database.DB
}

// NewTaskHandler creates a TaskHandler bound to the given database
func NewTaskHandler(db *database.DB) *TaskHandler {
	return &TaskHandler{db: db}
}

// List handles retrieving all tasks
func (h *TaskHandler) List(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Listing tasks")
	prometheus.RecordTaskOperation("list")

	defer prometheus.TrackDBOperation("query")(time.Now())

	tasks := []model.Task{}
	err := h.db.WithSession(c.Request().Context(), func(tx *gorm.DB) error {
		return tx.Find(&tasks).Error
	})
	if err != nil {
		log.Error("Failed to list tasks", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Database error while listing tasks",
		})
	}

	log.Info("Tasks listed", zap.Int("count", len(tasks)))
	return c.JSON(http.StatusOK, tasks)
}

// Create handles creating a new task
func (h *TaskHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new task")
	prometheus.RecordTaskOperation("create")

	var req TaskRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	task := model.Task{
		AccountID:   req.AccountID,
		ContactID:   req.ContactID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueAt:       req.DueAt.TimePtr(),
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	err := h.db.WithSession(c.Request().Context(), func(tx *gorm.DB) error {
		if err := tx.Create(&task).Error; err != nil {
			return err
		}
		// Re-read so the response carries the stored identity, defaults and
		// timestamps exactly as persisted
		return tx.First(&task, task.ID).Error
	})
	if err != nil {
		log.Error("Failed to create task", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Database error while creating task",
		})
	}

	log.Info("Task created",
		zap.Uint("task_id", task.ID),
		zap.Uint("account_id", task.AccountID),
		zap.String("title", task.Title))
	return c.JSON(http.StatusOK, task)
}

// Update handles updating an existing task by id. Only the title, status,
// due date and account reference are writable here.
func (h *TaskHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Updating task", zap.String("task_id", c.Param("id")))
	prometheus.RecordTaskOperation("update")

	id, err := parseID(c.Param("id"))
	if err != nil {
		log.Warn("Invalid task id", zap.String("id", c.Param("id")))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Task not found",
		})
	}

	var req TaskRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	var task model.Task
	err = h.db.WithSession(c.Request().Context(), func(tx *gorm.DB) error {
		if err := tx.First(&task, id).Error; err != nil {
			return err
		}
		task.Title = req.Title
		task.Status = req.Status
		task.DueAt = req.DueAt.TimePtr()
		task.AccountID = req.AccountID
		return tx.Save(&task).Error
	})
	if database.IsNotFound(err) {
		log.Warn("Task not found for update", zap.Uint64("task_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Task not found",
		})
	}
	if err != nil {
		log.Error("Failed to update task", zap.Uint64("task_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Database error while updating task",
		})
	}

	log.Info("Task updated", zap.Uint64("task_id", id), zap.String("title", task.Title))
	return c.JSON(http.StatusOK, task)
}

// Delete handles removing a task by id
func (h *TaskHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Deleting task", zap.String("task_id", c.Param("id")))
	prometheus.RecordTaskOperation("delete")

	id, err := parseID(c.Param("id"))
	if err != nil {
		log.Warn("Invalid task id", zap.String("id", c.Param("id")))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Task not found",
		})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())

	err = h.db.WithSession(c.Request().Context(), func(tx *gorm.DB) error {
		var task model.Task
		if err := tx.First(&task, id).Error; err != nil {
			return err
		}
		return tx.Delete(&task).Error
	})
	if database.IsNotFound(err) {
		log.Warn("Task not found for deletion", zap.Uint64("task_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Task not found",
		})
	}
	if err != nil {
		log.Error("Failed to delete task", zap.Uint64("task_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Database error while deleting task",
		})
	}

	log.Info("Task deleted", zap.Uint64("task_id", id))
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}
