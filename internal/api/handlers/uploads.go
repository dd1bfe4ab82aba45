package handlers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"milk-collection-service/internal/api/dto"
	"milk-collection-service/internal/domain"
	"milk-collection-service/internal/importer"
	"milk-collection-service/internal/ports"
)

const maxUploadBytes = 10 << 20 // 10 MiB

// UploadHandler ingests xlsx bulk uploads of master data.
type UploadHandler struct {
	Fleet   ports.VehicleRepository
	Vendors ports.VendorRepository
	Hubs    ports.StorageHubRepository
}

func (h *UploadHandler) UploadFleet(w http.ResponseWriter, r *http.Request) {
	file, ok := openUpload(w, r)
	if !ok {
		return
	}
	defer file.Close()

	rows, err := importer.ParseFleetWorkbook(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.BulkUploadResponse{
			Success:          false,
			Message:          "workbook rejected",
			ValidationErrors: []string{err.Error()},
		})
		return
	}

	vehicles := make([]domain.Vehicle, 0, len(rows))
	for _, row := range rows {
		vehicles = append(vehicles, domain.Vehicle{
			VehicleNumber:  row.VehicleNumber,
			Category:       row.Category,
			CapacityLiters: row.CapacityLiters,
			DriverName:     row.DriverName,
			DriverContact:  row.DriverContact,
			IsAvailable:    true,
		})
	}

	inserted, err := h.Fleet.CreateBatch(r.Context(), vehicles)
	if err != nil {
		logrus.WithError(err).Error("fleet bulk insert")
		writeError(w, http.StatusInternalServerError, "bulk insert failed")
		return
	}

	writeJSON(w, http.StatusOK, dto.BulkUploadResponse{
		Success:       true,
		Message:       fmt.Sprintf("imported %d of %d vehicles", inserted, len(vehicles)),
		BatchID:       uuid.NewString(),
		InsertedCount: inserted,
		FailedCount:   len(vehicles) - inserted,
	})
}

func (h *UploadHandler) UploadVendors(w http.ResponseWriter, r *http.Request) {
	file, ok := openUpload(w, r)
	if !ok {
		return
	}
	defer file.Close()

	rows, err := importer.ParseVendorWorkbook(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.BulkUploadResponse{
			Success:          false,
			Message:          "workbook rejected",
			ValidationErrors: []string{err.Error()},
		})
		return
	}

	hubIDs, err := h.hubIDsByName(r)
	if err != nil {
		logrus.WithError(err).Error("storage hub lookup for vendor upload")
		writeError(w, http.StatusInternalServerError, "storage hub lookup failed")
		return
	}

	var validationErrors []string
	vendors := make([]domain.Vendor, 0, len(rows))
	for i, row := range rows {
		var hubID *int64
		if row.HubName != "" {
			id, ok := hubIDs[strings.ToLower(row.HubName)]
			if !ok {
				validationErrors = append(validationErrors, fmt.Sprintf("row %d: unknown storage hub %q", i+2, row.HubName))
				continue
			}
			hubID = &id
		}
		vendors = append(vendors, domain.Vendor{
			Name:            row.Name,
			Location:        domain.Coordinate{Lat: row.Lat, Lon: row.Lon},
			DailyMilkLiters: row.DailyMilkLiters,
			HubID:           hubID,
		})
	}

	inserted := 0
	if len(vendors) > 0 {
		inserted, err = h.Vendors.CreateBatch(r.Context(), vendors)
		if err != nil {
			logrus.WithError(err).Error("vendor bulk insert")
			writeError(w, http.StatusInternalServerError, "bulk insert failed")
			return
		}
	}

	writeJSON(w, http.StatusOK, dto.BulkUploadResponse{
		Success:          len(validationErrors) == 0,
		Message:          fmt.Sprintf("imported %d of %d vendors", inserted, len(rows)),
		BatchID:          uuid.NewString(),
		InsertedCount:    inserted,
		FailedCount:      len(rows) - inserted,
		ValidationErrors: validationErrors,
	})
}

func (h *UploadHandler) hubIDsByName(r *http.Request) (map[string]int64, error) {
	hubs, err := h.Hubs.List(r.Context())
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(hubs))
	for _, hub := range hubs {
		out[strings.ToLower(hub.Name)] = hub.ID
	}
	return out, nil
}

// openUpload extracts the "file" part of a multipart upload and enforces the
// xlsx extension. On failure it writes the error response and returns
// ok=false.
func openUpload(w http.ResponseWriter, r *http.Request) (multipart.File, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return nil, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, `missing "file" form field`)
		return nil, false
	}

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".xlsx") {
		file.Close()
		writeError(w, http.StatusBadRequest, "only .xlsx uploads are supported")
		return nil, false
	}
	return file, true
}
