package model

import "time"

// DefaultListName is the list created by the legacy-watchlist migration.
const DefaultListName = "Unsorted"

// List is a named, user-owned collection of movies in the multi-list model.
// Unique per (email, name).
type List struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ListItem is a movie inside a list.  Unique per (list, movie).
type ListItem struct {
	ID          uint64    `json:"id"`
	ListID      uint64    `json:"list_id"`
	MovieID     int64     `json:"movie_id"`
	Title       string    `json:"title"`
	PosterPath  *string   `json:"poster_path"`
	ReleaseDate *string   `json:"release_date"`
	Overview    *string   `json:"overview"`
	VoteAverage *float64  `json:"vote_average"`
	CreatedAt   time.Time `json:"created_at"`
}
