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

// WatchedStore is the persistence surface for watched-history records.
// *repository.WatchedRepo satisfies it.
type WatchedStore interface {
	MarkWatched(ctx context.Context, email string, movieID int64, rating *float64) error
	ListByEmail(ctx context.Context, email string) ([]model.WatchedMovie, error)
	WatchedByEmails(ctx context.Context, movieID int64, emails []string) ([]model.FriendWatch, error)
}

// FriendReader resolves the caller's accepted friend set for the overlap
// query.  *repository.FriendshipRepo satisfies it.
type FriendReader interface {
	AcceptedFriends(ctx context.Context, email string) ([]string, error)
}

// WatchedHandler serves watched history and the friends-who-watched query.
type WatchedHandler struct {
	Store   WatchedStore
	Friends FriendReader
}

func NewWatchedHandler(s WatchedStore, f FriendReader) *WatchedHandler {
	return &WatchedHandler{Store: s, Friends: f}
}

type markWatchedReq struct {
	ID     int64    `json:"id"`
	Rating *float64 `json:"rating"`
}

// Mark records that the caller watched a movie, with an optional rating.
// Marking an already-watched movie refreshes the rating and timestamp.
func (h *WatchedHandler) Mark(c echo.Context) error {
	var req markWatchedReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.ID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id is required"})
	}
	if req.Rating != nil && (*req.Rating < 0 || *req.Rating > 10) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 0 and 10"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Store.MarkWatched(ctx, middleware.Email(c), req.ID, req.Rating); err != nil {
		c.Logger().Errorf("mark watched failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "mark failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "marked as watched"})
}

// List returns the caller's watched history, most recent first.
func (h *WatchedHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	watched, err := h.Store.ListByEmail(ctx, middleware.Email(c))
	if err != nil {
		c.Logger().Errorf("watched list failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list failed"})
	}
	return c.JSON(http.StatusOK, watched)
}

// FriendsWhoWatched returns which accepted friends of the caller have a
// watched-record for the movie.  Resolving the friend set first keeps the
// second query's predicate small and skips it entirely when the caller has
// no accepted friends.
func (h *WatchedHandler) FriendsWhoWatched(c echo.Context) error {
	movieID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || movieID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	friends, err := h.Friends.AcceptedFriends(ctx, middleware.Email(c))
	if err != nil {
		c.Logger().Errorf("friend set resolve failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if len(friends) == 0 {
		return c.JSON(http.StatusOK, []model.FriendWatch{})
	}

	watches, err := h.Store.WatchedByEmails(ctx, movieID, friends)
	if err != nil {
		c.Logger().Errorf("friend overlap query failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, watches)
}
