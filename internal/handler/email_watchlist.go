package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/idanlevy/flickpick/internal/middleware"
	"github.com/idanlevy/flickpick/internal/model"
)

// EmailWatchlistStore is the persistence surface for the legacy email-keyed
// watchlist.  *repository.EmailWatchlistRepo satisfies it.
type EmailWatchlistStore interface {
	ListByEmail(ctx context.Context, email string) ([]model.EmailWatchlistEntry, error)
	Upsert(ctx context.Context, email string, e model.EmailWatchlistEntry) error
	Delete(ctx context.Context, email string, movieID int64) error
}

// EmailWatchlistHandler serves the legacy watchlist kept for owners who have
// not run the multi-list migration yet.  Same contract as WatchlistHandler,
// different owner key.
type EmailWatchlistHandler struct {
	Store EmailWatchlistStore
}

func NewEmailWatchlistHandler(s EmailWatchlistStore) *EmailWatchlistHandler {
	return &EmailWatchlistHandler{Store: s}
}

func (h *EmailWatchlistHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	entries, err := h.Store.ListByEmail(ctx, middleware.Email(c))
	if err != nil {
		c.Logger().Errorf("email watchlist list failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list failed"})
	}
	return c.JSON(http.StatusOK, entries)
}

func (h *EmailWatchlistHandler) Add(c echo.Context) error {
	var req watchlistAddReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.ID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id is required"})
	}
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	entry := model.EmailWatchlistEntry{
		MovieID:     req.ID,
		Title:       req.Title,
		PosterPath:  req.PosterPath,
		ReleaseDate: req.ReleaseDate,
		Overview:    req.Overview,
		VoteAverage: req.VoteAverage,
	}
	if err := h.Store.Upsert(ctx, middleware.Email(c), entry); err != nil {
		c.Logger().Errorf("email watchlist add failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "add failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "added to watchlist"})
}

func (h *EmailWatchlistHandler) Remove(c echo.Context) error {
	movieID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || movieID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Store.Delete(ctx, middleware.Email(c), movieID); err != nil {
		c.Logger().Errorf("email watchlist remove failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "remove failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "removed from watchlist"})
}
