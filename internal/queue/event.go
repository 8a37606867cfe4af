// Package queue defines message payloads exchanged over the message broker
// and the background consumer that processes them.
package queue

// Friend event types published to the friend.events queue.
const (
	FriendEventRequested = "friend.requested"
	FriendEventAccepted  = "friend.accepted"
)

// FriendEvent is published when a friend request is sent or accepted.  It
// carries enough information for downstream consumers to notify users or
// feed analytics without querying the primary database.
type FriendEvent struct {
	Type           string `json:"type"`
	RequesterEmail string `json:"requester_email"`
	RecipientEmail string `json:"recipient_email"`
	OccurredAt     string `json:"occurred_at"`
}
