package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"milk-collection-service/internal/domain"
)

// ErrNotFound is returned when a master data row does not exist.
var ErrNotFound = errors.New("repositories: not found")

// Postgres-backed implementation of the StorageHubRepository port.
type PostgresStorageHubRepository struct{ DB *sql.DB }

func NewPostgresStorageHubRepository(db *sql.DB) *PostgresStorageHubRepository {
	return &PostgresStorageHubRepository{DB: db}
}

func (r *PostgresStorageHubRepository) List(ctx context.Context) ([]domain.StorageHub, error) {
	query := `
	SELECT id, name, lat, lon, capacity_liters
	FROM storage_hubs
	ORDER BY id;
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list storage hubs: query: %w", err)
	}
	defer rows.Close()

	hubs := make([]domain.StorageHub, 0, 16)
	for rows.Next() {
		var h domain.StorageHub
		if err := rows.Scan(&h.ID, &h.Name, &h.Location.Lat, &h.Location.Lon, &h.CapacityLiters); err != nil {
			return nil, fmt.Errorf("list storage hubs: scan row: %w", err)
		}
		hubs = append(hubs, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list storage hubs: row iteration: %w", err)
	}

	return hubs, nil
}

func (r *PostgresStorageHubRepository) Get(ctx context.Context, id int64) (domain.StorageHub, error) {
	query := `
	SELECT id, name, lat, lon, capacity_liters
	FROM storage_hubs
	WHERE id = $1;
	`
	var h domain.StorageHub
	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&h.ID, &h.Name, &h.Location.Lat, &h.Location.Lon, &h.CapacityLiters)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.StorageHub{}, fmt.Errorf("get storage hub id=%d: %w", id, ErrNotFound)
	}
	if err != nil {
		return domain.StorageHub{}, fmt.Errorf("get storage hub id=%d: %w", id, err)
	}
	return h, nil
}

func (r *PostgresStorageHubRepository) Create(ctx context.Context, hub domain.StorageHub) (int64, error) {
	query := `
	INSERT INTO storage_hubs (name, lat, lon, capacity_liters)
	VALUES ($1, $2, $3, $4)
	RETURNING id;
	`
	var id int64
	err := r.DB.QueryRowContext(ctx, query, hub.Name, hub.Location.Lat, hub.Location.Lon, hub.CapacityLiters).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create storage hub %q: %w", hub.Name, err)
	}
	return id, nil
}

func (r *PostgresStorageHubRepository) Update(ctx context.Context, hub domain.StorageHub) error {
	query := `
	UPDATE storage_hubs
	SET name = $2, lat = $3, lon = $4, capacity_liters = $5
	WHERE id = $1;
	`
	res, err := r.DB.ExecContext(ctx, query, hub.ID, hub.Name, hub.Location.Lat, hub.Location.Lon, hub.CapacityLiters)
	if err != nil {
		return fmt.Errorf("update storage hub id=%d: %w", hub.ID, err)
	}
	return requireRow(res, "update storage hub", hub.ID)
}

func (r *PostgresStorageHubRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM storage_hubs WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete storage hub id=%d: %w", id, err)
	}
	return requireRow(res, "delete storage hub", id)
}

func requireRow(res sql.Result, op string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s id=%d: rows affected: %w", op, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s id=%d: %w", op, id, ErrNotFound)
	}
	return nil
}
