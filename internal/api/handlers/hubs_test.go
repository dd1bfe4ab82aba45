package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"milk-collection-service/internal/adapters/repositories"
	"milk-collection-service/internal/api/dto"
	"milk-collection-service/internal/domain"
)

type stubHubRepo struct {
	hubs   map[int64]domain.StorageHub
	nextID int64
}

func newStubHubRepo() *stubHubRepo {
	return &stubHubRepo{hubs: make(map[int64]domain.StorageHub), nextID: 1}
}

func (r *stubHubRepo) List(ctx context.Context) ([]domain.StorageHub, error) {
	out := make([]domain.StorageHub, 0, len(r.hubs))
	for _, h := range r.hubs {
		out = append(out, h)
	}
	return out, nil
}

func (r *stubHubRepo) Get(ctx context.Context, id int64) (domain.StorageHub, error) {
	h, ok := r.hubs[id]
	if !ok {
		return domain.StorageHub{}, repositories.ErrNotFound
	}
	return h, nil
}

func (r *stubHubRepo) Create(ctx context.Context, hub domain.StorageHub) (int64, error) {
	hub.ID = r.nextID
	r.nextID++
	r.hubs[hub.ID] = hub
	return hub.ID, nil
}

func (r *stubHubRepo) Update(ctx context.Context, hub domain.StorageHub) error {
	if _, ok := r.hubs[hub.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.hubs[hub.ID] = hub
	return nil
}

func (r *stubHubRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.hubs[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.hubs, id)
	return nil
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestStorageHubCreateAndGet(t *testing.T) {
	repo := newStubHubRepo()
	h := &StorageHubHandler{Repo: repo}

	body, _ := json.Marshal(dto.StorageHubRequest{Name: "Pudukkottai Hub", Lat: 10.38, Lon: 78.80, CapacityLiters: 10000})
	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/api/v1/storage-hubs", bytes.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)

	var created dto.StorageHubResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, int64(1), created.ID)

	rec = httptest.NewRecorder()
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/storage-hubs/1", nil), "id", "1")
	h.Get(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got dto.StorageHubResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Pudukkottai Hub", got.Name)
}

func TestStorageHubCreateRequiresName(t *testing.T) {
	h := &StorageHubHandler{Repo: newStubHubRepo()}

	body, _ := json.Marshal(dto.StorageHubRequest{Lat: 10.38, Lon: 78.80})
	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/api/v1/storage-hubs", bytes.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStorageHubGetNotFound(t *testing.T) {
	h := &StorageHubHandler{Repo: newStubHubRepo()}

	rec := httptest.NewRecorder()
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/storage-hubs/99", nil), "id", "99")
	h.Get(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStorageHubDelete(t *testing.T) {
	repo := newStubHubRepo()
	repo.hubs[1] = domain.StorageHub{ID: 1, Name: "Pudukkottai Hub"}
	repo.nextID = 2
	h := &StorageHubHandler{Repo: repo}

	rec := httptest.NewRecorder()
	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/api/v1/storage-hubs/1", nil), "id", "1")
	h.Delete(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, repo.hubs)
}

func TestStorageHubInvalidID(t *testing.T) {
	h := &StorageHubHandler{Repo: newStubHubRepo()}

	rec := httptest.NewRecorder()
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/storage-hubs/abc", nil), "id", "abc")
	h.Get(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
