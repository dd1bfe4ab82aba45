package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"milk-collection-service/internal/domain"
	"milk-collection-service/internal/ports"
)

// Postgres-backed implementation of the VehicleRepository port.
type PostgresVehicleRepository struct{ DB *sql.DB }

func NewPostgresVehicleRepository(db *sql.DB) *PostgresVehicleRepository {
	return &PostgresVehicleRepository{DB: db}
}

func (r *PostgresVehicleRepository) List(ctx context.Context) ([]domain.Vehicle, error) {
	query := `
	SELECT id, vehicle_number, category, capacity_liters, driver_name, driver_contact, is_available
	FROM fleet_vehicles
	ORDER BY id;
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: query: %w", err)
	}
	defer rows.Close()

	vehicles := make([]domain.Vehicle, 0, 64)
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(&v.ID, &v.VehicleNumber, &v.Category, &v.CapacityLiters, &v.DriverName, &v.DriverContact, &v.IsAvailable); err != nil {
			return nil, fmt.Errorf("list vehicles: scan row: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list vehicles: row iteration: %w", err)
	}

	return vehicles, nil
}

func (r *PostgresVehicleRepository) Get(ctx context.Context, id int64) (domain.Vehicle, error) {
	query := `
	SELECT id, vehicle_number, category, capacity_liters, driver_name, driver_contact, is_available
	FROM fleet_vehicles
	WHERE id = $1;
	`
	var v domain.Vehicle
	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&v.ID, &v.VehicleNumber, &v.Category, &v.CapacityLiters, &v.DriverName, &v.DriverContact, &v.IsAvailable)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Vehicle{}, fmt.Errorf("get vehicle id=%d: %w", id, ErrNotFound)
	}
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("get vehicle id=%d: %w", id, err)
	}
	return v, nil
}

func (r *PostgresVehicleRepository) Create(ctx context.Context, v domain.Vehicle) (int64, error) {
	query := `
	INSERT INTO fleet_vehicles (vehicle_number, category, capacity_liters, driver_name, driver_contact, is_available)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id;
	`
	var id int64
	err := r.DB.QueryRowContext(ctx, query,
		v.VehicleNumber, v.Category, v.CapacityLiters, v.DriverName, v.DriverContact, v.IsAvailable).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create vehicle %q: %w", v.VehicleNumber, err)
	}
	return id, nil
}

// CreateBatch inserts vehicles in one transaction, used by bulk upload.
// Conflicting plate numbers update in place so re-uploads are idempotent.
func (r *PostgresVehicleRepository) CreateBatch(ctx context.Context, vs []domain.Vehicle) (int, error) {
	if len(vs) == 0 {
		return 0, nil
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("batch create vehicles: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO fleet_vehicles (vehicle_number, category, capacity_liters, driver_name, driver_contact, is_available)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (vehicle_number) DO UPDATE
	SET category = EXCLUDED.category,
	    capacity_liters = EXCLUDED.capacity_liters,
	    driver_name = EXCLUDED.driver_name,
	    driver_contact = EXCLUDED.driver_contact,
	    is_available = EXCLUDED.is_available;
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("batch create vehicles: prepare insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, v := range vs {
		if _, err := stmt.ExecContext(ctx, v.VehicleNumber, v.Category, v.CapacityLiters, v.DriverName, v.DriverContact, v.IsAvailable); err != nil {
			return 0, fmt.Errorf("batch create vehicles: insert %q: %w", v.VehicleNumber, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("batch create vehicles: commit tx: %w", err)
	}
	return inserted, nil
}

func (r *PostgresVehicleRepository) Update(ctx context.Context, v domain.Vehicle) error {
	query := `
	UPDATE fleet_vehicles
	SET vehicle_number = $2, category = $3, capacity_liters = $4, driver_name = $5, driver_contact = $6, is_available = $7
	WHERE id = $1;
	`
	res, err := r.DB.ExecContext(ctx, query,
		v.ID, v.VehicleNumber, v.Category, v.CapacityLiters, v.DriverName, v.DriverContact, v.IsAvailable)
	if err != nil {
		return fmt.Errorf("update vehicle id=%d: %w", v.ID, err)
	}
	return requireRow(res, "update vehicle", v.ID)
}

func (r *PostgresVehicleRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM fleet_vehicles WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete vehicle id=%d: %w", id, err)
	}
	return requireRow(res, "delete vehicle", id)
}

// Roster lists (category, plate) pairs in insertion order. The normalizer
// pins the first plate per category, so a stable order here keeps schedule
// labels stable between refreshes.
func (r *PostgresVehicleRepository) Roster(ctx context.Context) ([]ports.RosterEntry, error) {
	query := `
	SELECT category, vehicle_number
	FROM fleet_vehicles
	WHERE is_available
	ORDER BY id;
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("fleet roster: query: %w", err)
	}
	defer rows.Close()

	entries := make([]ports.RosterEntry, 0, 64)
	for rows.Next() {
		var e ports.RosterEntry
		if err := rows.Scan(&e.Category, &e.VehicleNumber); err != nil {
			return nil, fmt.Errorf("fleet roster: scan row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fleet roster: row iteration: %w", err)
	}

	return entries, nil
}
