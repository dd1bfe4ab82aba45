package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"milk-collection-service/internal/adapters/repositories"
	"milk-collection-service/internal/api/dto"
	"milk-collection-service/internal/ports"
)

// VehicleHandler serves fleet master data.
type VehicleHandler struct {
	Repo ports.VehicleRepository
}

func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.Repo.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list vehicles")
		return
	}

	out := make([]dto.VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, dto.FromVehicle(v))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	v, err := h.Repo.Get(r.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		writeError(w, http.StatusNotFound, "vehicle not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "get vehicle")
		return
	}
	writeJSON(w, http.StatusOK, dto.FromVehicle(v))
}

func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.VehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.VehicleNumber) == "" {
		writeError(w, http.StatusBadRequest, "vehicle_number is required")
		return
	}
	if req.CapacityLiters < 0 {
		writeError(w, http.StatusBadRequest, "capacity_liters cannot be negative")
		return
	}

	v := req.ToDomain()
	id, err := h.Repo.Create(r.Context(), v)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "create vehicle")
		return
	}

	v.ID = id
	writeJSON(w, http.StatusCreated, dto.FromVehicle(v))
}

func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req dto.VehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	v := req.ToDomain()
	v.ID = id
	err := h.Repo.Update(r.Context(), v)
	if errors.Is(err, repositories.ErrNotFound) {
		writeError(w, http.StatusNotFound, "vehicle not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "update vehicle")
		return
	}
	writeJSON(w, http.StatusOK, dto.FromVehicle(v))
}

func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	err := h.Repo.Delete(r.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		writeError(w, http.StatusNotFound, "vehicle not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "delete vehicle")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
