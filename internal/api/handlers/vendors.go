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

// VendorHandler serves farmer master data.
type VendorHandler struct {
	Repo ports.VendorRepository
}

func (h *VendorHandler) List(w http.ResponseWriter, r *http.Request) {
	vendors, err := h.Repo.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list vendors")
		return
	}

	out := make([]dto.VendorResponse, 0, len(vendors))
	for _, v := range vendors {
		out = append(out, dto.FromVendor(v))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *VendorHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	v, err := h.Repo.Get(r.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		writeError(w, http.StatusNotFound, "vendor not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "get vendor")
		return
	}
	writeJSON(w, http.StatusOK, dto.FromVendor(v))
}

func (h *VendorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.VendorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.DailyMilkLiters < 0 {
		writeError(w, http.StatusBadRequest, "daily_milk_liters cannot be negative")
		return
	}

	v := req.ToDomain()
	id, err := h.Repo.Create(r.Context(), v)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "create vendor")
		return
	}

	v.ID = id
	writeJSON(w, http.StatusCreated, dto.FromVendor(v))
}

func (h *VendorHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req dto.VendorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	v := req.ToDomain()
	v.ID = id
	err := h.Repo.Update(r.Context(), v)
	if errors.Is(err, repositories.ErrNotFound) {
		writeError(w, http.StatusNotFound, "vendor not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "update vendor")
		return
	}
	writeJSON(w, http.StatusOK, dto.FromVendor(v))
}

func (h *VendorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	err := h.Repo.Delete(r.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		writeError(w, http.StatusNotFound, "vendor not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "delete vendor")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
