package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/idanlevy/flickpick/internal/config"
	"github.com/idanlevy/flickpick/internal/database"
	"github.com/idanlevy/flickpick/internal/handler"
	"github.com/idanlevy/flickpick/internal/middleware"
	"github.com/idanlevy/flickpick/internal/queue"
	"github.com/idanlevy/flickpick/internal/repository"
	"github.com/idanlevy/flickpick/internal/router"
)

func main() {
	// Best-effort .env load for local development; production uses real env vars.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: without it the rate limiter disables itself.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, rate limiting disabled")
	}
	rateLimit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	watchlist := repository.NewWatchlistRepo(db)
	emailWatchlist := repository.NewEmailWatchlistRepo(db)
	favoriteActors := repository.NewFavoriteActorRepo(db)
	friendships := repository.NewFriendshipRepo(db)
	watched := repository.NewWatchedRepo(db)
	lists := repository.NewListRepo(db)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret)
	router.RegisterAPI(e, cfg.JWTSecret, rateLimit, router.APIHandlers{
		Watchlist:      handler.NewWatchlistHandler(watchlist),
		EmailWatchlist: handler.NewEmailWatchlistHandler(emailWatchlist),
		FavoriteActors: handler.NewFavoriteActorHandler(favoriteActors),
		Friends:        handler.NewFriendHandler(friendships),
		Watched:        handler.NewWatchedHandler(watched, friendships),
		Lists:          handler.NewListHandler(lists),
	})

	// Consume friend events in the background; reconnects on broker failures.
	go func() {
		if err := queue.StartFriendConsumer(); err != nil {
			log.Printf("friend consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
