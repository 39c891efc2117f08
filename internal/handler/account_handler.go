package handler

import (
	"net/http"
	"strconv"
	"time"

	"account-service/internal/model"
	"account-service/pkg/database"
	"account-service/pkg/logger"
	"account-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AccountRequest defines the structure for account creation/update requests
type AccountRequest struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Tags   string `json:"tags"`
	Owner  string `json:"owner"`
}

// AccountHandler serves the /accounts endpoints. The persistence context is
// injected at construction; every operation runs inside one session.
type AccountHandler struct {
	db *database.DB
}

// NewAccountHandler creates an AccountHandler bound to the given database
func NewAccountHandler(db *database.DB) *AccountHandler {
	return &AccountHandler{db: db}
}

// List handles retrieving all accounts
func (h *AccountHandler) List(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Listing accounts")
	prometheus.RecordAccountOperation("list")

	defer prometheus.TrackDBOperation("query")(time.Now())

	accounts := []model.Account{}
	err := h.db.WithSession(c.Request().Context(), func(tx *gorm.DB) error {
		return tx.Find(&accounts).Error
	})
	if err != nil {
		log.Error("Failed to list accounts", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Database error while listing accounts",
		})
	}

	log.Info("Accounts listed", zap.Int("count", len(accounts)))
	return c.JSON(http.StatusOK, accounts)
}

// Create handles creating a new account
func (h *AccountHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new account")
	prometheus.RecordAccountOperation("create")

	var req AccountRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	account := model.Account{
		Name:   req.Name,
		Status: req.Status,
		Tags:   req.Tags,
		Owner:  req.Owner,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	err := h.db.WithSession(c.Request().Context(), func(tx *gorm.DB) error {
		if err := tx.Create(&account).Error; err != nil {
			return err
		}
		// Re-read so the response carries the stored identity, defaults and
		// timestamps exactly as persisted
		return tx.First(&account, account.ID).Error
	})
	if err != nil {
		log.Error("Failed to create account", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Database error while creating account",
		})
	}

	log.Info("Account created", zap.Uint("account_id", account.ID), zap.String("name", account.Name))
	return c.JSON(http.StatusOK, account)
}

// Update handles updating an existing account by id
func (h *AccountHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Updating account", zap.String("account_id", c.Param("id")))
	prometheus.RecordAccountOperation("update")

	id, err := parseID(c.Param("id"))
	if err != nil {
		log.Warn("Invalid account id", zap.String("id", c.Param("id")))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Account not found",
		})
	}

	var req AccountRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	var account model.Account
	err = h.db.WithSession(c.Request().Context(), func(tx *gorm.DB) error {
		if err := tx.First(&account, id).Error; err != nil {
			return err
		}
		account.Name = req.Name
		account.Status = req.Status
		account.Tags = req.Tags
		account.Owner = req.Owner
		return tx.Save(&account).Error
	})
	if database.IsNotFound(err) {
		log.Warn("Account not found for update", zap.Uint64("account_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Account not found",
		})
	}
	if err != nil {
		log.Error("Failed to update account", zap.Uint64("account_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Database error while updating account",
		})
	}

	log.Info("Account updated", zap.Uint64("account_id", id), zap.String("name", account.Name))
	return c.JSON(http.StatusOK, account)
}

// Delete handles removing an account by id
func (h *AccountHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Deleting account", zap.String("account_id", c.Param("id")))
	prometheus.RecordAccountOperation("delete")

	id, err := parseID(c.Param("id"))
	if err != nil {
		log.Warn("Invalid account id", zap.String("id", c.Param("id")))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Account not found",
		})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())

	err = h.db.WithSession(c.Request().Context(), func(tx *gorm.DB) error {
		var account model.Account
		if err := tx.First(&account, id).Error; err != nil {
			return err
		}
		return tx.Delete(&account).Error
	})
	if database.IsNotFound(err) {
		log.Warn("Account not found for deletion", zap.Uint64("account_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Account not found",
		})
	}
	if err != nil {
		log.Error("Failed to delete account", zap.Uint64("account_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Database error while deleting account",
		})
	}

	log.Info("Account deleted", zap.Uint64("account_id", id))
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

// parseID coerces a path parameter into a numeric identifier
func parseID(param string) (uint64, error) {
	return strconv.ParseUint(param, 10, 64)
}
