package model

import "time"

// Friendship statuses.  Pending relationships grant no visibility into a
// friend's watched history.
const (
	FriendStatusPending  = "pending"
	FriendStatusAccepted = "accepted"
)

// Friendship mirrors the `friendships` table.  The pair is stored normalized
// (EmailA < EmailB lexicographically) so a single unique key covers both
// directions; RequesterEmail records which side initiated the request.
type Friendship struct {
	ID             uint64    // friendships.id
	EmailA         string    // friendships.email_a
	EmailB         string    // friendships.email_b
	RequesterEmail string    // friendships.requester_email
	Status         string    // friendships.status
	CreatedAt      time.Time // friendships.created_at
	UpdatedAt      time.Time // friendships.updated_at
}

// Other returns the counterpart of the given email within the pair.
func (f Friendship) Other(email string) string {
	if f.EmailA == email {
		return f.EmailB
	}
	return f.EmailA
}
