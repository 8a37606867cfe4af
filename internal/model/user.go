package model

import "time"

// User represents an application account as stored in the `users` table.
// Accounts carry two identities used by the list tables: the numeric ID
// keys the watchlist table, while the email keys the favorite-actor,
// legacy-watchlist, friendship and watched-history tables.
//
// Fields:
//
//	ID           – primary key identifier of the user.
//	Email        – unique email address, always stored lowercase.
//	PasswordHash – bcrypt hashed password.
//	DisplayName  – name shown to friends; may be empty.
//	IsActive     – whether the account is active.
//	CreatedAt    – timestamp of creation.
//	UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	DisplayName  string    // users.display_name
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  The plain
// token is never stored; only its SHA-256 hash.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
