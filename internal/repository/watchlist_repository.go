package repository

import (
	"context"
	"database/sql"

	"github.com/idanlevy/flickpick/internal/model"
)

// WatchlistRepo provides CRUD operations for the `watchlist` table, keyed
// by the owner's numeric user ID.  Adds are upserts on the (user_id,
// movie_id) unique key so two concurrent adds for the same movie converge
// to a single row.
type WatchlistRepo struct {
	db *sql.DB
}

// NewWatchlistRepo returns a WatchlistRepo bound to the given database.
func NewWatchlistRepo(db *sql.DB) *WatchlistRepo { return &WatchlistRepo{db: db} }

// ListByUser returns every watchlist row owned by userID, oldest first.
// When no rows exist an empty slice is returned.
func (r *WatchlistRepo) ListByUser(ctx context.Context, userID uint64) ([]model.WatchlistEntry, error) {
	const q = `SELECT id, movie_id, title, poster_path, release_date, overview, vote_average, created_at
	           FROM watchlist
	           WHERE user_id = ?
	           ORDER BY created_at ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	entries := make([]model.WatchlistEntry, 0)
	for rows.Next() {
		var e model.WatchlistEntry
		if err := rows.Scan(&e.ID, &e.MovieID, &e.Title, &e.PosterPath, &e.ReleaseDate,
			&e.Overview, &e.VoteAverage, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Upsert inserts the entry for userID, or refreshes the mutable display
// fields when a row for (userID, movie) already exists.  created_at is only
// written on first insert.
func (r *WatchlistRepo) Upsert(ctx context.Context, userID uint64, e model.WatchlistEntry) error {
	const q = `INSERT INTO watchlist (user_id, movie_id, title, poster_path, release_date, overview, vote_average)
	           VALUES (?, ?, ?, ?, ?, ?, ?)
	           ON DUPLICATE KEY UPDATE
	               title = VALUES(title),
	               poster_path = VALUES(poster_path),
	               release_date = VALUES(release_date),
	               overview = VALUES(overview),
	               vote_average = VALUES(vote_average)`
	_, err := r.db.ExecContext(ctx, q, userID, e.MovieID, e.Title, e.PosterPath,
		e.ReleaseDate, e.Overview, e.VoteAverage)
	return err
}

// Delete removes at most one row, matching both the movie ID and the owner.
// Deleting an absent row is not an error.
func (r *WatchlistRepo) Delete(ctx context.Context, userID uint64, movieID int64) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM watchlist WHERE user_id = ? AND movie_id = ?", userID, movieID)
	return err
}
