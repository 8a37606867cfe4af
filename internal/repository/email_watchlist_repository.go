package repository

import (
	"context"
	"database/sql"

	"github.com/idanlevy/flickpick/internal/model"
)

// EmailWatchlistRepo covers the legacy `email_watchlist` table, which keys
// rows by the owner's email rather than the numeric user ID.  The contract
// matches WatchlistRepo; the table survives until every owner has run the
// multi-list migration.
type EmailWatchlistRepo struct {
	db *sql.DB
}

func NewEmailWatchlistRepo(db *sql.DB) *EmailWatchlistRepo { return &EmailWatchlistRepo{db: db} }

// ListByEmail returns every legacy row owned by email, oldest first.
func (r *EmailWatchlistRepo) ListByEmail(ctx context.Context, email string) ([]model.EmailWatchlistEntry, error) {
	const q = `SELECT id, movie_id, title, poster_path, release_date, overview, vote_average, created_at
	           FROM email_watchlist
	           WHERE email = ?
	           ORDER BY created_at ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, q, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	entries := make([]model.EmailWatchlistEntry, 0)
	for rows.Next() {
		var e model.EmailWatchlistEntry
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

// Upsert inserts or refreshes a legacy row for (email, movie).
func (r *EmailWatchlistRepo) Upsert(ctx context.Context, email string, e model.EmailWatchlistEntry) error {
	const q = `INSERT INTO email_watchlist (email, movie_id, title, poster_path, release_date, overview, vote_average)
	           VALUES (?, ?, ?, ?, ?, ?, ?)
	           ON DUPLICATE KEY UPDATE
	               title = VALUES(title),
	               poster_path = VALUES(poster_path),
	               release_date = VALUES(release_date),
	               overview = VALUES(overview),
	               vote_average = VALUES(vote_average)`
	_, err := r.db.ExecContext(ctx, q, email, e.MovieID, e.Title, e.PosterPath,
		e.ReleaseDate, e.Overview, e.VoteAverage)
	return err
}

// Delete removes at most one row matching both keys; absent rows are a no-op.
func (r *EmailWatchlistRepo) Delete(ctx context.Context, email string, movieID int64) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM email_watchlist WHERE email = ? AND movie_id = ?", email, movieID)
	return err
}
