package repository

import (
	"context"
	"database/sql"

	"github.com/idanlevy/flickpick/internal/model"
)

// ListRepo manages the multi-list model (`lists` and `list_items`) and the
// one-time migration that moves legacy email-keyed watchlist rows into it.
type ListRepo struct {
	db *sql.DB
}

func NewListRepo(db *sql.DB) *ListRepo { return &ListRepo{db: db} }

// HasDefaultList reports whether the owner already has the default list.
// Its presence is the marker that the migration has run.
func (r *ListRepo) HasDefaultList(ctx context.Context, email string) (bool, error) {
	var id uint64
	err := r.db.QueryRowContext(ctx,
		"SELECT id FROM lists WHERE email = ? AND name = ? LIMIT 1",
		email, model.DefaultListName).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// MigrateLegacy creates the owner's default list and copies every legacy
// email_watchlist row into it, all inside one transaction.  It returns the
// number of rows copied.  When the default list already exists the routine
// is a no-op reporting zero migrated rows, so running it twice copies at
// most once.
func (r *ListRepo) MigrateLegacy(ctx context.Context, email string) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	// Re-check under the transaction; the unique (email, name) key backstops
	// two concurrent migrations.
	var listID uint64
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM lists WHERE email = ? AND name = ? LIMIT 1",
		email, model.DefaultListName).Scan(&listID)
	switch err {
	case sql.ErrNoRows:
		res, err := tx.ExecContext(ctx,
			"INSERT INTO lists (email, name) VALUES (?, ?)", email, model.DefaultListName)
		if err != nil {
			return 0, err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return 0, err
		}
		listID = uint64(id)
	case nil:
		// Default list already present: nothing to migrate.
		return 0, tx.Commit()
	default:
		return 0, err
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO list_items (list_id, movie_id, title, poster_path, release_date, overview, vote_average, created_at)
		 SELECT ?, movie_id, title, poster_path, release_date, overview, vote_average, created_at
		 FROM email_watchlist
		 WHERE email = ?`,
		listID, email)
	if err != nil {
		return 0, err
	}
	migrated, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return migrated, nil
}

// ListsByEmail returns the owner's lists, oldest first.
func (r *ListRepo) ListsByEmail(ctx context.Context, email string) ([]model.List, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, created_at FROM lists WHERE email = ? ORDER BY created_at ASC, id ASC", email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.List, 0)
	for rows.Next() {
		var l model.List
		if err := rows.Scan(&l.ID, &l.Name, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ItemsByList returns the items of a list after verifying the list belongs
// to the caller.  sql.ErrNoRows is returned for an unknown list and
// ErrForbidden when the list is owned by someone else.
func (r *ListRepo) ItemsByList(ctx context.Context, email string, listID uint64) ([]model.ListItem, error) {
	var owner string
	if err := r.db.QueryRowContext(ctx,
		"SELECT email FROM lists WHERE id = ? LIMIT 1", listID).Scan(&owner); err != nil {
		return nil, err
	}
	if owner != email {
		return nil, ErrForbidden
	}
	const q = `SELECT id, list_id, movie_id, title, poster_path, release_date, overview, vote_average, created_at
	           FROM list_items
	           WHERE list_id = ?
	           ORDER BY created_at ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, q, listID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.ListItem, 0)
	for rows.Next() {
		var it model.ListItem
		if err := rows.Scan(&it.ID, &it.ListID, &it.MovieID, &it.Title, &it.PosterPath,
			&it.ReleaseDate, &it.Overview, &it.VoteAverage, &it.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
