package model

import "time"

// WatchlistEntry is a movie saved by a user for later viewing.  Rows are
// unique per (user, movie); re-adding a movie refreshes the display fields
// instead of creating a duplicate.  Display fields other than the title are
// nullable because the upstream metadata source does not guarantee them.
type WatchlistEntry struct {
	ID          uint64    `json:"id"`
	MovieID     int64     `json:"movie_id"`
	Title       string    `json:"title"`
	PosterPath  *string   `json:"poster_path"`
	ReleaseDate *string   `json:"release_date"`
	Overview    *string   `json:"overview"`
	VoteAverage *float64  `json:"vote_average"`
	CreatedAt   time.Time `json:"created_at"`
}

// EmailWatchlistEntry mirrors the legacy `email_watchlist` table, which keys
// rows by the owner's email instead of the numeric user ID.  New writes still
// land here for backwards compatibility until the multi-list migration has
// run for the owner.
type EmailWatchlistEntry struct {
	ID          uint64    `json:"id"`
	MovieID     int64     `json:"movie_id"`
	Title       string    `json:"title"`
	PosterPath  *string   `json:"poster_path"`
	ReleaseDate *string   `json:"release_date"`
	Overview    *string   `json:"overview"`
	VoteAverage *float64  `json:"vote_average"`
	CreatedAt   time.Time `json:"created_at"`
}
