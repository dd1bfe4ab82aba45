package ports

import (
	"context"
	"milk-collection-service/internal/domain"
)

// RosterEntry maps a fleet category to a concrete plate number. Entries are
// delivered in listing order; the normalizer pins the first plate seen per
// category so labels stay stable between refreshes.
type RosterEntry struct {
	Category      string
	VehicleNumber string
}

// StorageHubRepository is the boundary for chilling center master data.
type StorageHubRepository interface {
	List(ctx context.Context) ([]domain.StorageHub, error)
	Get(ctx context.Context, id int64) (domain.StorageHub, error)
	Create(ctx context.Context, hub domain.StorageHub) (int64, error)
	Update(ctx context.Context, hub domain.StorageHub) error
	Delete(ctx context.Context, id int64) error
}

// VehicleRepository is the boundary for fleet master data.
type VehicleRepository interface {
	List(ctx context.Context) ([]domain.Vehicle, error)
	Get(ctx context.Context, id int64) (domain.Vehicle, error)
	Create(ctx context.Context, v domain.Vehicle) (int64, error)
	CreateBatch(ctx context.Context, vs []domain.Vehicle) (int, error)
	Update(ctx context.Context, v domain.Vehicle) error
	Delete(ctx context.Context, id int64) error
	// Roster lists (category, vehicle number) pairs for schedule labeling.
	Roster(ctx context.Context) ([]RosterEntry, error)
}

// VendorRepository is the boundary for farmer master data.
type VendorRepository interface {
	List(ctx context.Context) ([]domain.Vendor, error)
	Get(ctx context.Context, id int64) (domain.Vendor, error)
	Create(ctx context.Context, v domain.Vendor) (int64, error)
	CreateBatch(ctx context.Context, vs []domain.Vendor) (int, error)
	Update(ctx context.Context, v domain.Vendor) error
	Delete(ctx context.Context, id int64) error
}

// RunRepository stores optimization result documents, including manual
// scheduler overrides.
type RunRepository interface {
	Save(ctx context.Context, run domain.OptimizationRun) error
	// Latest returns the most recent run of any trigger type; ok is false
	// when no runs exist.
	Latest(ctx context.Context) (domain.OptimizationRun, bool, error)
}
