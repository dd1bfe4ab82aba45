package dto

import "milk-collection-service/internal/domain"

type StorageHubRequest struct {
	Name           string  `json:"name"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	CapacityLiters float64 `json:"capacity_liters"`
}

type StorageHubResponse struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	CapacityLiters float64 `json:"capacity_liters"`
}

func FromStorageHub(h domain.StorageHub) StorageHubResponse {
	return StorageHubResponse{
		ID:             h.ID,
		Name:           h.Name,
		Lat:            h.Location.Lat,
		Lon:            h.Location.Lon,
		CapacityLiters: h.CapacityLiters,
	}
}

func (r StorageHubRequest) ToDomain() domain.StorageHub {
	return domain.StorageHub{
		Name:           r.Name,
		Location:       domain.Coordinate{Lat: r.Lat, Lon: r.Lon},
		CapacityLiters: r.CapacityLiters,
	}
}

type VehicleRequest struct {
	VehicleNumber  string  `json:"vehicle_number"`
	Category       string  `json:"category"`
	CapacityLiters float64 `json:"capacity_liters"`
	DriverName     string  `json:"driver_name"`
	DriverContact  string  `json:"driver_contact"`
	IsAvailable    *bool   `json:"is_available"`
}

type VehicleResponse struct {
	ID             int64   `json:"id"`
	VehicleNumber  string  `json:"vehicle_number"`
	Category       string  `json:"category"`
	CapacityLiters float64 `json:"capacity_liters"`
	DriverName     string  `json:"driver_name"`
	DriverContact  string  `json:"driver_contact"`
	IsAvailable    bool    `json:"is_available"`
}

func FromVehicle(v domain.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:             v.ID,
		VehicleNumber:  v.VehicleNumber,
		Category:       v.Category,
		CapacityLiters: v.CapacityLiters,
		DriverName:     v.DriverName,
		DriverContact:  v.DriverContact,
		IsAvailable:    v.IsAvailable,
	}
}

func (r VehicleRequest) ToDomain() domain.Vehicle {
	available := true
	if r.IsAvailable != nil {
		available = *r.IsAvailable
	}
	return domain.Vehicle{
		VehicleNumber:  r.VehicleNumber,
		Category:       r.Category,
		CapacityLiters: r.CapacityLiters,
		DriverName:     r.DriverName,
		DriverContact:  r.DriverContact,
		IsAvailable:    available,
	}
}

type VendorRequest struct {
	Name            string  `json:"name"`
	Lat             float64 `json:"lat"`
	Lon             float64 `json:"lon"`
	DailyMilkLiters float64 `json:"daily_milk_liters"`
	HubID           *int64  `json:"hub_id"`
}

type VendorResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Lat             float64 `json:"lat"`
	Lon             float64 `json:"lon"`
	DailyMilkLiters float64 `json:"daily_milk_liters"`
	HubID           *int64  `json:"hub_id"`
}

func FromVendor(v domain.Vendor) VendorResponse {
	return VendorResponse{
		ID:              v.ID,
		Name:            v.Name,
		Lat:             v.Location.Lat,
		Lon:             v.Location.Lon,
		DailyMilkLiters: v.DailyMilkLiters,
		HubID:           v.HubID,
	}
}

func (r VendorRequest) ToDomain() domain.Vendor {
	return domain.Vendor{
		Name:            r.Name,
		Location:        domain.Coordinate{Lat: r.Lat, Lon: r.Lon},
		DailyMilkLiters: r.DailyMilkLiters,
		HubID:           r.HubID,
	}
}

// BulkUploadResponse reports the outcome of an xlsx master-data upload.
type BulkUploadResponse struct {
	Success          bool     `json:"success"`
	Message          string   `json:"message"`
	BatchID          string   `json:"batch_id"`
	InsertedCount    int      `json:"inserted_count"`
	FailedCount      int      `json:"failed_count"`
	ValidationErrors []string `json:"validation_errors,omitempty"`
}
