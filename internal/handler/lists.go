package handler

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/idanlevy/flickpick/internal/middleware"
	"github.com/idanlevy/flickpick/internal/model"
	"github.com/idanlevy/flickpick/internal/repository"
)

// ListStore is the persistence surface for the multi-list model and the
// legacy-watchlist migration.  *repository.ListRepo satisfies it.
type ListStore interface {
	HasDefaultList(ctx context.Context, email string) (bool, error)
	MigrateLegacy(ctx context.Context, email string) (int64, error)
	ListsByEmail(ctx context.Context, email string) ([]model.List, error)
	ItemsByList(ctx context.Context, email string, listID uint64) ([]model.ListItem, error)
}

// ListHandler serves the multi-list model and the one-time migration of
// legacy email-keyed watchlist rows into it.
type ListHandler struct {
	Store ListStore
}

func NewListHandler(s ListStore) *ListHandler { return &ListHandler{Store: s} }

// Lists returns the caller's lists, oldest first.
func (h *ListHandler) Lists(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	lists, err := h.Store.ListsByEmail(ctx, middleware.Email(c))
	if err != nil {
		c.Logger().Errorf("lists failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list failed"})
	}
	return c.JSON(http.StatusOK, lists)
}

// Items returns the items of one of the caller's lists.
func (h *ListHandler) Items(c echo.Context) error {
	listID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || listID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Store.ItemsByList(ctx, middleware.Email(c), listID)
	if err != nil {
		switch err {
		case sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "list not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		c.Logger().Errorf("list items failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list failed"})
	}
	return c.JSON(http.StatusOK, items)
}

// Migrate copies the caller's legacy watchlist rows into a fresh default
// list.  Running it again after the default list exists is a reported
// no-op, not an error.
func (h *ListHandler) Migrate(c echo.Context) error {
	email := middleware.Email(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	has, err := h.Store.HasDefaultList(ctx, email)
	if err != nil {
		c.Logger().Errorf("migration check failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "migration failed"})
	}
	if has {
		return c.JSON(http.StatusOK, echo.Map{
			"success":  true,
			"migrated": 0,
			"message":  "nothing to migrate",
		})
	}

	migrated, err := h.Store.MigrateLegacy(ctx, email)
	if err != nil {
		c.Logger().Errorf("migration failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "migration failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"migrated": migrated,
		"message":  fmt.Sprintf("migrated %d items", migrated),
	})
}
