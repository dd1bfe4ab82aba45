package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"milk-collection-service/internal/api/dto"
	"milk-collection-service/internal/domain"
	"milk-collection-service/internal/export"
	"milk-collection-service/internal/ports"
	"milk-collection-service/internal/services"
)

// ScheduleHandler serves the normalized trip schedule and manual edits to it.
type ScheduleHandler struct {
	Source ports.ScheduleSource
	Sink   ports.ScheduleSink
	Cache  ports.ScheduleCache
	Runs   ports.RunRepository
	Fleet  ports.VehicleRepository
	Hubs   ports.StorageHubRepository

	TypeCapacities map[string]float64
	DefaultAnchor  domain.Coordinate
}

// Get returns the latest schedule, normalized. The optimizer is the primary
// source; when it is unreachable the last stored run is served instead so the
// dashboard keeps working through optimizer downtime.
func (h *ScheduleHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	doc, err := h.Source.FetchLatest(ctx)
	if err != nil {
		logrus.WithError(err).Warn("optimizer fetch failed, falling back to stored run")
		run, ok, runErr := h.Runs.Latest(ctx)
		if runErr != nil {
			writeError(w, http.StatusBadGateway, "schedule unavailable")
			return
		}
		if !ok {
			writeError(w, http.StatusNotFound, "no schedule available")
			return
		}
		if err := json.Unmarshal(run.Document, &doc); err != nil {
			writeError(w, http.StatusInternalServerError, "stored schedule is unreadable")
			return
		}
	}

	schedule := services.Normalize(doc, h.normalizeOptions(r))
	writeJSON(w, http.StatusOK, dto.FromSchedule(schedule))
}

// Reassign applies one manual stop move to the submitted schedule and returns
// the result with affected metrics recomputed. Nothing is persisted; the
// dashboard saves explicitly once the drag session is done.
func (h *ScheduleHandler) Reassign(w http.ResponseWriter, r *http.Request) {
	var req dto.MoveStopRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	schedule := req.Schedule.ToDomain()
	moved, err := services.MoveStop(
		schedule,
		domain.TripRef{ClusterName: req.Source.Cluster, TripID: req.Source.TripID},
		req.Source.Index,
		domain.TripRef{ClusterName: req.Destination.Cluster, TripID: req.Destination.TripID},
		req.Destination.Index,
	)
	if err != nil {
		if errors.Is(err, services.ErrTripNotFound) || errors.Is(err, services.ErrIndexOutOfRange) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "reassignment failed")
		return
	}

	writeJSON(w, http.StatusOK, dto.FromSchedule(moved))
}

// Save persists a manually edited schedule: a run row for history and
// fallback, a push to the optimizer backend, and a cache refresh so the next
// read sees the edit.
func (h *ScheduleHandler) Save(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.ScheduleResponse
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	doc := services.Denormalize(req.ToDomain())
	payload, err := json.Marshal(doc)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "encode schedule")
		return
	}

	run := domain.OptimizationRun{
		ID:          uuid.New(),
		TriggerType: domain.TriggerManualUpdate,
		Document:    payload,
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.Runs.Save(ctx, run); err != nil {
		logrus.WithError(err).Error("save manual run")
		writeError(w, http.StatusInternalServerError, "save schedule")
		return
	}

	if h.Sink != nil {
		if err := h.Sink.SaveManual(ctx, doc); err != nil {
			// The run row is already stored; the optimizer catches up on its
			// next sync.
			logrus.WithError(err).Warn("push manual schedule to optimizer failed")
		}
	}
	if h.Cache != nil {
		if err := h.Cache.Set(ctx, doc); err != nil {
			logrus.WithError(err).Warn("refresh schedule cache failed")
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "saved", "run_id": run.ID.String()})
}

// Report renders the latest schedule as a PDF.
func (h *ScheduleHandler) Report(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	doc, err := h.Source.FetchLatest(ctx)
	if err != nil {
		writeError(w, http.StatusBadGateway, "schedule unavailable")
		return
	}

	schedule := services.Normalize(doc, h.normalizeOptions(r))
	pdf, err := export.BuildScheduleReport(schedule)
	if err != nil {
		logrus.WithError(err).Error("build schedule report")
		writeError(w, http.StatusInternalServerError, "report generation failed")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="collection-schedule.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

// normalizeOptions gathers roster and hub enrichment for one request. Master
// data lookups are best effort; the schedule renders without them.
func (h *ScheduleHandler) normalizeOptions(r *http.Request) services.NormalizeOptions {
	ctx := r.Context()
	opts := services.NormalizeOptions{
		TypeCapacities: h.TypeCapacities,
		DefaultAnchor:  h.DefaultAnchor,
	}

	if h.Fleet != nil {
		roster, err := h.Fleet.Roster(ctx)
		if err != nil {
			logrus.WithError(err).Warn("fleet roster lookup failed")
		} else {
			opts.FleetRoster = roster
		}
	}

	if h.Hubs != nil {
		hubs, err := h.Hubs.List(ctx)
		if err != nil {
			logrus.WithError(err).Warn("storage hub lookup failed")
		} else {
			opts.HubLocations = make(map[string]domain.Coordinate, len(hubs))
			for _, hub := range hubs {
				opts.HubLocations[hub.Name] = hub.Location
			}
		}
	}

	return opts
}
