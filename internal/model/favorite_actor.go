package model

import "time"

// FavoriteActor is an actor pinned by a user, keyed by the owner's email.
// Unique per (email, actor); re-adding refreshes the display fields.
type FavoriteActor struct {
	ID          uint64    `json:"id"`
	ActorID     int64     `json:"actor_id"`
	Name        string    `json:"name"`
	ProfilePath *string   `json:"profile_path"`
	Department  *string   `json:"department"`
	Popularity  *float64  `json:"popularity"`
	CreatedAt   time.Time `json:"created_at"`
}
