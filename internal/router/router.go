// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/idanlevy/flickpick/internal/handler"
	"github.com/idanlevy/flickpick/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the account endpoints.  Unauthenticated operations
// live under /v1/auth; /v1/me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.BearerAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// APIHandlers bundles the handlers mounted on the protected /v1 group.
type APIHandlers struct {
	Watchlist      *handler.WatchlistHandler
	EmailWatchlist *handler.EmailWatchlistHandler
	FavoriteActors *handler.FavoriteActorHandler
	Friends        *handler.FriendHandler
	Watched        *handler.WatchedHandler
	Lists          *handler.ListHandler
}

// RegisterAPI registers every list endpoint under /v1 behind bearer
// authentication.  The rate limiter is applied after identity resolution so
// buckets are keyed per account; passing nil skips rate limiting.
func RegisterAPI(e *echo.Echo, jwtSecret string, rateLimit echo.MiddlewareFunc, h APIHandlers) {
	g := e.Group("/v1")
	g.Use(middleware.BearerAuth(jwtSecret))
	if rateLimit != nil {
		g.Use(rateLimit)
	}

	// Primary watchlist, keyed by user ID.
	g.GET("/watchlist", h.Watchlist.List)
	g.POST("/watchlist", h.Watchlist.Add)
	g.DELETE("/watchlist/:id", h.Watchlist.Remove)

	// Legacy watchlist, keyed by email; source of the multi-list migration.
	g.GET("/email-watchlist", h.EmailWatchlist.List)
	g.POST("/email-watchlist", h.EmailWatchlist.Add)
	g.DELETE("/email-watchlist/:id", h.EmailWatchlist.Remove)

	g.GET("/favorite-actors", h.FavoriteActors.List)
	g.POST("/favorite-actors", h.FavoriteActors.Add)
	g.DELETE("/favorite-actors/:id", h.FavoriteActors.Remove)

	g.POST("/friends/request", h.Friends.Request)
	g.POST("/friends/accept", h.Friends.Accept)
	g.GET("/friends", h.Friends.List)
	g.GET("/friends/pending", h.Friends.Pending)

	g.GET("/watched", h.Watched.List)
	g.POST("/watched", h.Watched.Mark)
	g.GET("/watched/:id/friends", h.Watched.FriendsWhoWatched)

	g.GET("/lists", h.Lists.Lists)
	g.GET("/lists/:id/items", h.Lists.Items)
	g.POST("/migrate-watchlist", h.Lists.Migrate)
}
