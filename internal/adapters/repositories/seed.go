package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

type hubSeed struct {
	Name           string  `json:"name"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	CapacityLiters float64 `json:"capacity_liters"`
}

type vehicleSeed struct {
	VehicleNumber  string  `json:"vehicle_number"`
	Category       string  `json:"category"`
	CapacityLiters float64 `json:"capacity_liters"`
	DriverName     string  `json:"driver_name"`
	DriverContact  string  `json:"driver_contact"`
}

type vendorSeed struct {
	Name            string  `json:"name"`
	Lat             float64 `json:"lat"`
	Lon             float64 `json:"lon"`
	DailyMilkLiters float64 `json:"daily_milk_liters"`
	Hub             string  `json:"hub"`
}

type mastersSeed struct {
	StorageHubs []hubSeed     `json:"storage_hubs"`
	Fleet       []vehicleSeed `json:"fleet"`
	Vendors     []vendorSeed  `json:"vendors"`
}

// SeedFromJSON populates master data from a JSON file for local runs.
// Existing rows are left alone so reseeding is harmless.
func SeedFromJSON(ctx context.Context, db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed masters: read %q: %w", jsonPath, err)
	}

	var data mastersSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed masters: parse json: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed masters: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, h := range data.StorageHubs {
		if strings.TrimSpace(h.Name) == "" {
			return fmt.Errorf("seed masters: storage hub at index %d: name cannot be empty", i)
		}
		_, err := tx.ExecContext(ctx, `
		INSERT INTO storage_hubs (name, lat, lon, capacity_liters)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO NOTHING;
		`, h.Name, h.Lat, h.Lon, h.CapacityLiters)
		if err != nil {
			return fmt.Errorf("seed masters: insert storage hub %q: %w", h.Name, err)
		}
	}

	for i, v := range data.Fleet {
		if strings.TrimSpace(v.VehicleNumber) == "" {
			return fmt.Errorf("seed masters: vehicle at index %d: vehicle_number cannot be empty", i)
		}
		_, err := tx.ExecContext(ctx, `
		INSERT INTO fleet_vehicles (vehicle_number, category, capacity_liters, driver_name, driver_contact, is_available)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		ON CONFLICT (vehicle_number) DO NOTHING;
		`, v.VehicleNumber, v.Category, v.CapacityLiters, v.DriverName, v.DriverContact)
		if err != nil {
			return fmt.Errorf("seed masters: insert vehicle %q: %w", v.VehicleNumber, err)
		}
	}

	for i, v := range data.Vendors {
		if strings.TrimSpace(v.Name) == "" {
			return fmt.Errorf("seed masters: vendor at index %d: name cannot be empty", i)
		}
		_, err := tx.ExecContext(ctx, `
		INSERT INTO vendors (name, lat, lon, daily_milk_liters, hub_id)
		VALUES ($1, $2, $3, $4, (SELECT id FROM storage_hubs WHERE name = $5))
		ON CONFLICT (name) DO NOTHING;
		`, v.Name, v.Lat, v.Lon, v.DailyMilkLiters, v.Hub)
		if err != nil {
			return fmt.Errorf("seed masters: insert vendor %q: %w", v.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed masters: commit tx: %w", err)
	}
	return nil
}
