package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/idanlevy/flickpick/internal/middleware"
	"github.com/idanlevy/flickpick/internal/model"
	"github.com/idanlevy/flickpick/internal/queue"
	"github.com/idanlevy/flickpick/internal/repository"
	queue_publisher "github.com/idanlevy/flickpick/internal/service"
)

// FriendStore is the persistence surface the friend endpoints need.
// *repository.FriendshipRepo satisfies it.
type FriendStore interface {
	CreateRequest(ctx context.Context, requester, recipient string) error
	Accept(ctx context.Context, caller, other string) error
	AcceptedFriends(ctx context.Context, email string) ([]string, error)
	PendingFor(ctx context.Context, email string) ([]model.Friendship, error)
}

// FriendHandler manages friend requests and the accepted-friend list.
// Publish is called after a successful mutation and may be nil; publish
// failures are logged and never fail the request.
type FriendHandler struct {
	Store   FriendStore
	Publish func(ctx context.Context, ev queue.FriendEvent) error
}

func NewFriendHandler(s FriendStore) *FriendHandler {
	return &FriendHandler{Store: s, Publish: queue_publisher.PublishFriendEvent}
}

type friendReq struct {
	Email string `json:"email"`
}

// Request sends a friend request from the caller to another account.
func (h *FriendHandler) Request(c echo.Context) error {
	var req friendReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	recipient := strings.ToLower(strings.TrimSpace(req.Email))
	caller := middleware.Email(c)
	if recipient == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email is required"})
	}
	if recipient == caller {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot friend yourself"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Store.CreateRequest(ctx, caller, recipient); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "relationship already exists"})
		}
		c.Logger().Errorf("friend request failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "request failed"})
	}

	h.publish(c, queue.FriendEvent{
		Type:           queue.FriendEventRequested,
		RequesterEmail: caller,
		RecipientEmail: recipient,
		OccurredAt:     time.Now().UTC().Format(time.RFC3339),
	})
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "friend request sent"})
}

// Accept confirms a pending request addressed to the caller.
func (h *FriendHandler) Accept(c echo.Context) error {
	var req friendReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	other := strings.ToLower(strings.TrimSpace(req.Email))
	caller := middleware.Email(c)
	if other == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Store.Accept(ctx, caller, other); err != nil {
		switch err {
		case sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no pending request"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "only the recipient can accept"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "already accepted"})
		}
		c.Logger().Errorf("friend accept failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "accept failed"})
	}

	h.publish(c, queue.FriendEvent{
		Type:           queue.FriendEventAccepted,
		RequesterEmail: other,
		RecipientEmail: caller,
		OccurredAt:     time.Now().UTC().Format(time.RFC3339),
	})
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "friend request accepted"})
}

// List returns the emails of the caller's accepted friends.
func (h *FriendHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	friends, err := h.Store.AcceptedFriends(ctx, middleware.Email(c))
	if err != nil {
		c.Logger().Errorf("friend list failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"friends": friends})
}

// Pending returns requests awaiting the caller's action.
func (h *FriendHandler) Pending(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	pending, err := h.Store.PendingFor(ctx, middleware.Email(c))
	if err != nil {
		c.Logger().Errorf("friend pending failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list failed"})
	}
	out := make([]echo.Map, 0, len(pending))
	for _, p := range pending {
		out = append(out, echo.Map{
			"requester_email": p.RequesterEmail,
			"created_at":      p.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *FriendHandler) publish(c echo.Context, ev queue.FriendEvent) {
	if h.Publish == nil {
		return
	}
	if err := h.Publish(c.Request().Context(), ev); err != nil {
		c.Logger().Warnf("friend event publish failed: %v", err)
	}
}
