package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"milk-collection-service/internal/adapters/optimizer"
	"milk-collection-service/internal/api/handlers"
	"milk-collection-service/internal/domain"
	"milk-collection-service/internal/ports"
)

func testRouter() http.Handler {
	name := "Center A"
	doc := ports.RawScheduleDocument{Clusters: []ports.RawCluster{{Name: &name}}}

	return NewRouter(Deps{
		Schedule: &handlers.ScheduleHandler{
			Source:        &optimizer.MockScheduleSource{Doc: doc},
			DefaultAnchor: domain.Coordinate{Lat: 10.3833, Lon: 78.8001},
		},
		Hubs:     &handlers.StorageHubHandler{},
		Vehicles: &handlers.VehicleHandler{},
		Vendors:  &handlers.VendorHandler{},
		Uploads:  &handlers.UploadHandler{},
	})
}

func TestRouterHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouterScheduleRoute(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/trips/schedule", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Center A")
}

func TestRouterUnknownRoute(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v2/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
