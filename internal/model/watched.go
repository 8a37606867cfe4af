package model

import "time"

// WatchedMovie records that a user has seen a movie, with an optional rating.
// Unique per (email, movie); marking a movie watched again refreshes the
// rating and timestamp.
type WatchedMovie struct {
	ID        uint64    `json:"id"`
	MovieID   int64     `json:"movie_id"`
	Rating    *float64  `json:"rating"`
	WatchedAt time.Time `json:"watched_at"`
}

// FriendWatch is one accepted friend's watched-record for a movie, as
// returned by the friend-overlap query.
type FriendWatch struct {
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	WatchedAt   time.Time `json:"watched_at"`
	Rating      *float64  `json:"rating"`
}
