package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/idanlevy/flickpick/internal/model"
)

// FriendshipRepo manages friend relationships.  A pair of users is stored
// exactly once with the two emails in lexicographic order, so the unique
// key on (email_a, email_b) covers both directions of a request.
type FriendshipRepo struct {
	db *sql.DB
}

func NewFriendshipRepo(db *sql.DB) *FriendshipRepo { return &FriendshipRepo{db: db} }

// NormalizePair orders two emails lexicographically after lowercasing.
func NormalizePair(x, y string) (a, b string) {
	x = strings.ToLower(strings.TrimSpace(x))
	y = strings.ToLower(strings.TrimSpace(y))
	if x <= y {
		return x, y
	}
	return y, x
}

// CreateRequest inserts a pending friendship from requester to recipient.
// ErrConflict is returned when a relationship already exists between the
// pair in either direction.
func (r *FriendshipRepo) CreateRequest(ctx context.Context, requester, recipient string) error {
	a, b := NormalizePair(requester, recipient)
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO friendships (email_a, email_b, requester_email) VALUES (?,?,?)",
		a, b, strings.ToLower(strings.TrimSpace(requester)))
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrConflict
		}
		return err
	}
	return nil
}

// Accept flips a pending relationship to accepted.  Only the recipient may
// accept: when the caller is the requester, ErrForbidden is returned; when
// no pending relationship exists, sql.ErrNoRows.
func (r *FriendshipRepo) Accept(ctx context.Context, caller, other string) error {
	a, b := NormalizePair(caller, other)
	var requester, status string
	err := r.db.QueryRowContext(ctx,
		"SELECT requester_email, status FROM friendships WHERE email_a=? AND email_b=? LIMIT 1",
		a, b).Scan(&requester, &status)
	if err != nil {
		return err
	}
	if status != model.FriendStatusPending {
		return ErrConflict
	}
	if requester == strings.ToLower(strings.TrimSpace(caller)) {
		return ErrForbidden
	}
	_, err = r.db.ExecContext(ctx,
		"UPDATE friendships SET status=? WHERE email_a=? AND email_b=?",
		model.FriendStatusAccepted, a, b)
	return err
}

// AcceptedFriends returns the emails of every accepted friend of the given
// caller, regardless of which side initiated the request.
func (r *FriendshipRepo) AcceptedFriends(ctx context.Context, email string) ([]string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	const q = `SELECT email_a, email_b FROM friendships
	           WHERE status = ? AND (email_a = ? OR email_b = ?)`
	rows, err := r.db.QueryContext(ctx, q, model.FriendStatusAccepted, email, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	friends := make([]string, 0)
	for rows.Next() {
		var a, b string
		if err := rows.Scan(&a, &b); err != nil {
			return nil, err
		}
		if a == email {
			friends = append(friends, b)
		} else {
			friends = append(friends, a)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return friends, nil
}

// PendingFor returns relationships awaiting action by the given caller,
// i.e. pending rows where the caller is the recipient.
func (r *FriendshipRepo) PendingFor(ctx context.Context, email string) ([]model.Friendship, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	const q = `SELECT id, email_a, email_b, requester_email, status, created_at, updated_at
	           FROM friendships
	           WHERE status = ? AND (email_a = ? OR email_b = ?) AND requester_email <> ?
	           ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, q, model.FriendStatusPending, email, email, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Friendship, 0)
	for rows.Next() {
		var f model.Friendship
		if err := rows.Scan(&f.ID, &f.EmailA, &f.EmailB, &f.RequesterEmail,
			&f.Status, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
