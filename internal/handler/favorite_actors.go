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

// FavoriteActorStore is the persistence surface the favorite-actor
// endpoints need.  *repository.FavoriteActorRepo satisfies it.
type FavoriteActorStore interface {
	ListByEmail(ctx context.Context, email string) ([]model.FavoriteActor, error)
	Upsert(ctx context.Context, email string, a model.FavoriteActor) error
	Delete(ctx context.Context, email string, actorID int64) error
}

// FavoriteActorHandler serves the caller's favorite-actor list.
type FavoriteActorHandler struct {
	Store FavoriteActorStore
}

func NewFavoriteActorHandler(s FavoriteActorStore) *FavoriteActorHandler {
	return &FavoriteActorHandler{Store: s}
}

type favoriteActorAddReq struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	ProfilePath *string  `json:"profile_path"`
	Department  *string  `json:"department"`
	Popularity  *float64 `json:"popularity"`
}

func (h *FavoriteActorHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	actors, err := h.Store.ListByEmail(ctx, middleware.Email(c))
	if err != nil {
		c.Logger().Errorf("favorite actors list failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list failed"})
	}
	return c.JSON(http.StatusOK, actors)
}

func (h *FavoriteActorHandler) Add(c echo.Context) error {
	var req favoriteActorAddReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.ID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id is required"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	actor := model.FavoriteActor{
		ActorID:     req.ID,
		Name:        req.Name,
		ProfilePath: req.ProfilePath,
		Department:  req.Department,
		Popularity:  req.Popularity,
	}
	if err := h.Store.Upsert(ctx, middleware.Email(c), actor); err != nil {
		c.Logger().Errorf("favorite actors add failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "add failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "actor favorited"})
}

func (h *FavoriteActorHandler) Remove(c echo.Context) error {
	actorID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || actorID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Store.Delete(ctx, middleware.Email(c), actorID); err != nil {
		c.Logger().Errorf("favorite actors remove failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "remove failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "actor removed"})
}
