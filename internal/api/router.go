package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"milk-collection-service/internal/api/handlers"
)

// Deps carries the wired handlers for route registration.
type Deps struct {
	Schedule *handlers.ScheduleHandler
	Hubs     *handlers.StorageHubHandler
	Vehicles *handlers.VehicleHandler
	Vendors  *handlers.VendorHandler
	Uploads  *handlers.UploadHandler
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", handlers.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/trips", func(r chi.Router) {
			r.Get("/schedule", deps.Schedule.Get)
			r.Put("/schedule", deps.Schedule.Save)
			r.Post("/schedule/reassign", deps.Schedule.Reassign)
			r.Get("/schedule/report", deps.Schedule.Report)
		})

		r.Route("/storage-hubs", func(r chi.Router) {
			r.Get("/", deps.Hubs.List)
			r.Post("/", deps.Hubs.Create)
			r.Get("/{id}", deps.Hubs.Get)
			r.Put("/{id}", deps.Hubs.Update)
			r.Delete("/{id}", deps.Hubs.Delete)
		})

		r.Route("/fleet", func(r chi.Router) {
			r.Get("/", deps.Vehicles.List)
			r.Post("/", deps.Vehicles.Create)
			r.Post("/upload", deps.Uploads.UploadFleet)
			r.Get("/{id}", deps.Vehicles.Get)
			r.Put("/{id}", deps.Vehicles.Update)
			r.Delete("/{id}", deps.Vehicles.Delete)
		})

		r.Route("/vendors", func(r chi.Router) {
			r.Get("/", deps.Vendors.List)
			r.Post("/", deps.Vendors.Create)
			r.Post("/upload", deps.Uploads.UploadVendors)
			r.Get("/{id}", deps.Vendors.Get)
			r.Put("/{id}", deps.Vendors.Update)
			r.Delete("/{id}", deps.Vendors.Delete)
		})
	})

	return r
}
