package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"milk-collection-service/internal/adapters/repositories"
	"milk-collection-service/internal/api/dto"
	"milk-collection-service/internal/ports"
)

// StorageHubHandler serves chilling center master data.
type StorageHubHandler struct {
	Repo ports.StorageHubRepository
}

func (h *StorageHubHandler) List(w http.ResponseWriter, r *http.Request) {
	hubs, err := h.Repo.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list storage hubs")
		return
	}

	out := make([]dto.StorageHubResponse, 0, len(hubs))
	for _, hub := range hubs {
		out = append(out, dto.FromStorageHub(hub))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *StorageHubHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	hub, err := h.Repo.Get(r.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		writeError(w, http.StatusNotFound, "storage hub not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "get storage hub")
		return
	}
	writeJSON(w, http.StatusOK, dto.FromStorageHub(hub))
}

func (h *StorageHubHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.StorageHubRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	hub := req.ToDomain()
	id, err := h.Repo.Create(r.Context(), hub)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "create storage hub")
		return
	}

	hub.ID = id
	writeJSON(w, http.StatusCreated, dto.FromStorageHub(hub))
}

func (h *StorageHubHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req dto.StorageHubRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	hub := req.ToDomain()
	hub.ID = id
	err := h.Repo.Update(r.Context(), hub)
	if errors.Is(err, repositories.ErrNotFound) {
		writeError(w, http.StatusNotFound, "storage hub not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "update storage hub")
		return
	}
	writeJSON(w, http.StatusOK, dto.FromStorageHub(hub))
}

func (h *StorageHubHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	err := h.Repo.Delete(r.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		writeError(w, http.StatusNotFound, "storage hub not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "delete storage hub")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pathID parses the {id} URL segment; on failure it writes a 400 and returns
// ok=false.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
