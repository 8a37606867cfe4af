package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/idanlevy/flickpick/internal/handler"
	"github.com/idanlevy/flickpick/internal/model"
	"github.com/idanlevy/flickpick/internal/router"
)

type fakeActorStore struct {
	rows   []fakeActorRow
	nextID uint64
	calls  int
}

type fakeActorRow struct {
	owner string
	actor model.FavoriteActor
}

func (s *fakeActorStore) ListByEmail(_ context.Context, email string) ([]model.FavoriteActor, error) {
	s.calls++
	out := make([]model.FavoriteActor, 0)
	for _, r := range s.rows {
		if r.owner == email {
			out = append(out, r.actor)
		}
	}
	return out, nil
}

func (s *fakeActorStore) Upsert(_ context.Context, email string, a model.FavoriteActor) error {
	s.calls++
	for i, r := range s.rows {
		if r.owner == email && r.actor.ActorID == a.ActorID {
			a.ID = r.actor.ID
			a.CreatedAt = r.actor.CreatedAt
			s.rows[i].actor = a
			return nil
		}
	}
	s.nextID++
	a.ID = s.nextID
	a.CreatedAt = time.Now().UTC()
	s.rows = append(s.rows, fakeActorRow{owner: email, actor: a})
	return nil
}

func (s *fakeActorStore) Delete(_ context.Context, email string, actorID int64) error {
	s.calls++
	for i, r := range s.rows {
		if r.owner == email && r.actor.ActorID == actorID {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

func TestFavoriteActorsRequiresBearer(t *testing.T) {
	store := &fakeActorStore{}
	e := newTestServer(router.APIHandlers{FavoriteActors: handler.NewFavoriteActorHandler(store)})

	rec := doJSON(e, http.MethodGet, "/v1/favorite-actors", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Zero(t, store.calls)
}

func TestFavoriteActorsAddValidation(t *testing.T) {
	store := &fakeActorStore{}
	e := newTestServer(router.APIHandlers{FavoriteActors: handler.NewFavoriteActorHandler(store)})
	auth := bearerFor(t, 1, "ana@example.com")

	rec := doJSON(e, http.MethodPost, "/v1/favorite-actors", auth, map[string]interface{}{"name": "Edward Norton"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "id is required")

	rec = doJSON(e, http.MethodPost, "/v1/favorite-actors", auth, map[string]interface{}{"id": 819})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "name is required")

	require.Zero(t, store.calls)
}

func TestFavoriteActorsUpsertAndRemove(t *testing.T) {
	store := &fakeActorStore{}
	e := newTestServer(router.APIHandlers{FavoriteActors: handler.NewFavoriteActorHandler(store)})
	auth := bearerFor(t, 1, "ana@example.com")

	rec := doJSON(e, http.MethodPost, "/v1/favorite-actors", auth,
		map[string]interface{}{"id": 819, "name": "Edward Norton", "department": "Acting"})
	require.Equal(t, http.StatusOK, rec.Code)

	// Re-add with different display fields: still one row, updated.
	rec = doJSON(e, http.MethodPost, "/v1/favorite-actors", auth,
		map[string]interface{}{"id": 819, "name": "Edward Harrison Norton"})
	require.Equal(t, http.StatusOK, rec.Code)

	var actors []model.FavoriteActor
	rec = doJSON(e, http.MethodGet, "/v1/favorite-actors", auth, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &actors))
	require.Len(t, actors, 1)
	require.Equal(t, "Edward Harrison Norton", actors[0].Name)

	rec = doJSON(e, http.MethodDelete, "/v1/favorite-actors/819", auth, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Deleting again is still a success.
	rec = doJSON(e, http.MethodDelete, "/v1/favorite-actors/819", auth, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodGet, "/v1/favorite-actors", auth, nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &actors))
	require.Empty(t, actors)
}
