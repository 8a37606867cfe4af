package repository

import (
	"context"
	"database/sql"

	"github.com/idanlevy/flickpick/internal/model"
)

// FavoriteActorRepo provides CRUD operations for the `favorite_actors`
// table, keyed by the owner's email.
type FavoriteActorRepo struct {
	db *sql.DB
}

func NewFavoriteActorRepo(db *sql.DB) *FavoriteActorRepo { return &FavoriteActorRepo{db: db} }

// ListByEmail returns every favorite actor owned by email, oldest first.
func (r *FavoriteActorRepo) ListByEmail(ctx context.Context, email string) ([]model.FavoriteActor, error) {
	const q = `SELECT id, actor_id, name, profile_path, department, popularity, created_at
	           FROM favorite_actors
	           WHERE email = ?
	           ORDER BY created_at ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, q, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	actors := make([]model.FavoriteActor, 0)
	for rows.Next() {
		var a model.FavoriteActor
		if err := rows.Scan(&a.ID, &a.ActorID, &a.Name, &a.ProfilePath,
			&a.Department, &a.Popularity, &a.CreatedAt); err != nil {
			return nil, err
		}
		actors = append(actors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return actors, nil
}

// Upsert inserts or refreshes an actor row for (email, actor).
func (r *FavoriteActorRepo) Upsert(ctx context.Context, email string, a model.FavoriteActor) error {
	const q = `INSERT INTO favorite_actors (email, actor_id, name, profile_path, department, popularity)
	           VALUES (?, ?, ?, ?, ?, ?)
	           ON DUPLICATE KEY UPDATE
	               name = VALUES(name),
	               profile_path = VALUES(profile_path),
	               department = VALUES(department),
	               popularity = VALUES(popularity)`
	_, err := r.db.ExecContext(ctx, q, email, a.ActorID, a.Name, a.ProfilePath,
		a.Department, a.Popularity)
	return err
}

// Delete removes at most one row matching both keys; absent rows are a no-op.
func (r *FavoriteActorRepo) Delete(ctx context.Context, email string, actorID int64) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM favorite_actors WHERE email = ? AND actor_id = ?", email, actorID)
	return err
}
