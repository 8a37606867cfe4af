package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/idanlevy/flickpick/internal/handler"
	"github.com/idanlevy/flickpick/internal/model"
	"github.com/idanlevy/flickpick/internal/router"
)

type fakeListStore struct {
	hasDefault   map[string]bool
	legacyCounts map[string]int64
	migrateCalls int
}

func newFakeListStore() *fakeListStore {
	return &fakeListStore{
		hasDefault:   map[string]bool{},
		legacyCounts: map[string]int64{},
	}
}

func (s *fakeListStore) HasDefaultList(_ context.Context, email string) (bool, error) {
	return s.hasDefault[email], nil
}

func (s *fakeListStore) MigrateLegacy(_ context.Context, email string) (int64, error) {
	s.migrateCalls++
	if s.hasDefault[email] {
		return 0, nil
	}
	s.hasDefault[email] = true
	return s.legacyCounts[email], nil
}

func (s *fakeListStore) ListsByEmail(_ context.Context, email string) ([]model.List, error) {
	if s.hasDefault[email] {
		return []model.List{{ID: 1, Name: model.DefaultListName}}, nil
	}
	return []model.List{}, nil
}

func (s *fakeListStore) ItemsByList(_ context.Context, email string, listID uint64) ([]model.ListItem, error) {
	return []model.ListItem{}, nil
}

func TestMigrateCopiesOnceAndReportsCount(t *testing.T) {
	store := newFakeListStore()
	store.legacyCounts["ana@example.com"] = 3
	e := newTestServer(router.APIHandlers{Lists: handler.NewListHandler(store)})
	auth := bearerFor(t, 1, "ana@example.com")

	rec := doJSON(e, http.MethodPost, "/v1/migrate-watchlist", auth, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.EqualValues(t, 3, body["migrated"])

	// A second run is a no-op reported as success, not an error.
	rec = doJSON(e, http.MethodPost, "/v1/migrate-watchlist", auth, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.EqualValues(t, 0, body["migrated"])
	require.Equal(t, "nothing to migrate", body["message"])

	require.Equal(t, 1, store.migrateCalls, "copy must run at most once per caller")
}

func TestMigrateIsolatedPerCaller(t *testing.T) {
	store := newFakeListStore()
	store.legacyCounts["ana@example.com"] = 2
	store.legacyCounts["ben@example.com"] = 5
	e := newTestServer(router.APIHandlers{Lists: handler.NewListHandler(store)})

	var body map[string]interface{}
	rec := doJSON(e, http.MethodPost, "/v1/migrate-watchlist", bearerFor(t, 1, "ana@example.com"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.EqualValues(t, 2, body["migrated"])

	rec = doJSON(e, http.MethodPost, "/v1/migrate-watchlist", bearerFor(t, 2, "ben@example.com"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.EqualValues(t, 5, body["migrated"])
}

func TestListsRequireBearer(t *testing.T) {
	e := newTestServer(router.APIHandlers{Lists: handler.NewListHandler(newFakeListStore())})

	rec := doJSON(e, http.MethodGet, "/v1/lists", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(e, http.MethodPost, "/v1/migrate-watchlist", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
