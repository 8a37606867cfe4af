package handler_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/idanlevy/flickpick/internal/handler"
	"github.com/idanlevy/flickpick/internal/model"
	"github.com/idanlevy/flickpick/internal/queue"
	"github.com/idanlevy/flickpick/internal/repository"
	"github.com/idanlevy/flickpick/internal/router"
)

type fakeFriendStore struct {
	rows []model.Friendship
}

func (s *fakeFriendStore) find(a, b string) *model.Friendship {
	for i := range s.rows {
		if s.rows[i].EmailA == a && s.rows[i].EmailB == b {
			return &s.rows[i]
		}
	}
	return nil
}

func (s *fakeFriendStore) CreateRequest(_ context.Context, requester, recipient string) error {
	a, b := repository.NormalizePair(requester, recipient)
	if s.find(a, b) != nil {
		return repository.ErrConflict
	}
	s.rows = append(s.rows, model.Friendship{
		EmailA: a, EmailB: b,
		RequesterEmail: requester,
		Status:         model.FriendStatusPending,
	})
	return nil
}

func (s *fakeFriendStore) Accept(_ context.Context, caller, other string) error {
	a, b := repository.NormalizePair(caller, other)
	f := s.find(a, b)
	if f == nil {
		return sql.ErrNoRows
	}
	if f.Status != model.FriendStatusPending {
		return repository.ErrConflict
	}
	if f.RequesterEmail == caller {
		return repository.ErrForbidden
	}
	f.Status = model.FriendStatusAccepted
	return nil
}

func (s *fakeFriendStore) AcceptedFriends(_ context.Context, email string) ([]string, error) {
	out := make([]string, 0)
	for _, f := range s.rows {
		if f.Status == model.FriendStatusAccepted && (f.EmailA == email || f.EmailB == email) {
			out = append(out, f.Other(email))
		}
	}
	return out, nil
}

func (s *fakeFriendStore) PendingFor(_ context.Context, email string) ([]model.Friendship, error) {
	out := make([]model.Friendship, 0)
	for _, f := range s.rows {
		if f.Status == model.FriendStatusPending && (f.EmailA == email || f.EmailB == email) && f.RequesterEmail != email {
			out = append(out, f)
		}
	}
	return out, nil
}

func TestFriendRequestAcceptFlow(t *testing.T) {
	store := &fakeFriendStore{}
	published := []queue.FriendEvent{}
	h := handler.NewFriendHandler(store)
	h.Publish = func(_ context.Context, ev queue.FriendEvent) error {
		published = append(published, ev)
		return nil
	}
	e := newTestServer(router.APIHandlers{Friends: h})

	ana := bearerFor(t, 1, "ana@example.com")
	ben := bearerFor(t, 2, "ben@example.com")

	rec := doJSON(e, http.MethodPost, "/v1/friends/request", ana, map[string]interface{}{"email": "ben@example.com"})
	require.Equal(t, http.StatusOK, rec.Code)

	// Duplicate request, either direction, conflicts.
	rec = doJSON(e, http.MethodPost, "/v1/friends/request", ben, map[string]interface{}{"email": "ana@example.com"})
	require.Equal(t, http.StatusConflict, rec.Code)

	// The requester cannot accept their own request.
	rec = doJSON(e, http.MethodPost, "/v1/friends/accept", ana, map[string]interface{}{"email": "ben@example.com"})
	require.Equal(t, http.StatusForbidden, rec.Code)

	// Pending is visible to the recipient only.
	var pending []map[string]interface{}
	rec = doJSON(e, http.MethodGet, "/v1/friends/pending", ben, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pending))
	require.Len(t, pending, 1)
	require.Equal(t, "ana@example.com", pending[0]["requester_email"])

	rec = doJSON(e, http.MethodPost, "/v1/friends/accept", ben, map[string]interface{}{"email": "ana@example.com"})
	require.Equal(t, http.StatusOK, rec.Code)

	var friends map[string][]string
	rec = doJSON(e, http.MethodGet, "/v1/friends", ana, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &friends))
	require.Equal(t, []string{"ben@example.com"}, friends["friends"])

	require.Len(t, published, 2)
	require.Equal(t, queue.FriendEventRequested, published[0].Type)
	require.Equal(t, queue.FriendEventAccepted, published[1].Type)
}

func TestFriendRequestValidation(t *testing.T) {
	h := handler.NewFriendHandler(&fakeFriendStore{})
	h.Publish = nil
	e := newTestServer(router.APIHandlers{Friends: h})
	ana := bearerFor(t, 1, "ana@example.com")

	rec := doJSON(e, http.MethodPost, "/v1/friends/request", ana, map[string]interface{}{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "email is required")

	rec = doJSON(e, http.MethodPost, "/v1/friends/request", ana, map[string]interface{}{"email": "ana@example.com"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "cannot friend yourself")
}

func TestFriendAcceptUnknownPair(t *testing.T) {
	h := handler.NewFriendHandler(&fakeFriendStore{})
	h.Publish = nil
	e := newTestServer(router.APIHandlers{Friends: h})
	ana := bearerFor(t, 1, "ana@example.com")

	rec := doJSON(e, http.MethodPost, "/v1/friends/accept", ana, map[string]interface{}{"email": "ben@example.com"})
	require.Equal(t, http.StatusNotFound, rec.Code)
}
