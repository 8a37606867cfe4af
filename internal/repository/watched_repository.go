package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/idanlevy/flickpick/internal/model"
)

// WatchedRepo records which movies a user has seen.  These are the rows the
// friend-overlap query intersects against.
type WatchedRepo struct {
	db *sql.DB
}

func NewWatchedRepo(db *sql.DB) *WatchedRepo { return &WatchedRepo{db: db} }

// MarkWatched inserts a watched-record for (email, movie), or refreshes the
// rating and timestamp when one already exists.
func (r *WatchedRepo) MarkWatched(ctx context.Context, email string, movieID int64, rating *float64) error {
	const q = `INSERT INTO watched_movies (email, movie_id, rating)
	           VALUES (?, ?, ?)
	           ON DUPLICATE KEY UPDATE
	               rating = VALUES(rating),
	               watched_at = CURRENT_TIMESTAMP`
	_, err := r.db.ExecContext(ctx, q, email, movieID, rating)
	return err
}

// ListByEmail returns the caller's watched history, most recent first.
func (r *WatchedRepo) ListByEmail(ctx context.Context, email string) ([]model.WatchedMovie, error) {
	const q = `SELECT id, movie_id, rating, watched_at
	           FROM watched_movies
	           WHERE email = ?
	           ORDER BY watched_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.WatchedMovie, 0)
	for rows.Next() {
		var w model.WatchedMovie
		if err := rows.Scan(&w.ID, &w.MovieID, &w.Rating, &w.WatchedAt); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// WatchedByEmails returns the watched-records for movieID restricted to the
// given emails, joined with each watcher's display name.  Callers must pass
// a non-empty set; the friend-overlap handler short-circuits the empty case
// before reaching the database.
func (r *WatchedRepo) WatchedByEmails(ctx context.Context, movieID int64, emails []string) ([]model.FriendWatch, error) {
	placeholders := make([]string, len(emails))
	args := make([]interface{}, 0, len(emails)+1)
	args = append(args, movieID)
	for i, e := range emails {
		placeholders[i] = "?"
		args = append(args, e)
	}
	q := `SELECT w.email, u.display_name, w.watched_at, w.rating
	      FROM watched_movies w
	      JOIN users u ON u.email = w.email
	      WHERE w.movie_id = ? AND w.email IN (` + strings.Join(placeholders, ",") + `)
	      ORDER BY w.watched_at DESC`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.FriendWatch, 0)
	for rows.Next() {
		var fw model.FriendWatch
		if err := rows.Scan(&fw.Email, &fw.DisplayName, &fw.WatchedAt, &fw.Rating); err != nil {
			return nil, err
		}
		out = append(out, fw)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
