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

// WatchlistStore is the persistence surface the watchlist endpoints need.
// *repository.WatchlistRepo satisfies it.
type WatchlistStore interface {
	ListByUser(ctx context.Context, userID uint64) ([]model.WatchlistEntry, error)
	Upsert(ctx context.Context, userID uint64, e model.WatchlistEntry) error
	Delete(ctx context.Context, userID uint64, movieID int64) error
}

// WatchlistHandler serves the primary, user-ID-keyed watchlist.
type WatchlistHandler struct {
	Store WatchlistStore
}

func NewWatchlistHandler(s WatchlistStore) *WatchlistHandler {
	return &WatchlistHandler{Store: s}
}

// watchlistAddReq carries the movie payload for an add.  The id and title
// are required; the remaining display fields are optional and nullable.
// The owner never comes from the body, always from the resolved token.
type watchlistAddReq struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	PosterPath  *string  `json:"poster_path"`
	ReleaseDate *string  `json:"release_date"`
	Overview    *string  `json:"overview"`
	VoteAverage *float64 `json:"vote_average"`
}

// List returns all of the caller's watchlist rows, oldest first.
func (h *WatchlistHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	entries, err := h.Store.ListByUser(ctx, middleware.UserID(c))
	if err != nil {
		c.Logger().Errorf("watchlist list failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list failed"})
	}
	return c.JSON(http.StatusOK, entries)
}

// Add upserts a movie onto the caller's watchlist.  Adding a movie that is
// already present refreshes its display fields instead of erroring.
func (h *WatchlistHandler) Add(c echo.Context) error {
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

	entry := model.WatchlistEntry{
		MovieID:     req.ID,
		Title:       req.Title,
		PosterPath:  req.PosterPath,
		ReleaseDate: req.ReleaseDate,
		Overview:    req.Overview,
		VoteAverage: req.VoteAverage,
	}
	if err := h.Store.Upsert(ctx, middleware.UserID(c), entry); err != nil {
		c.Logger().Errorf("watchlist add failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "add failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "added to watchlist"})
}

// Remove deletes at most one row, scoped to the caller.  Removing a movie
// that is not on the list still reports success.
func (h *WatchlistHandler) Remove(c echo.Context) error {
	movieID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || movieID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Store.Delete(ctx, middleware.UserID(c), movieID); err != nil {
		c.Logger().Errorf("watchlist remove failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "remove failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "removed from watchlist"})
}
