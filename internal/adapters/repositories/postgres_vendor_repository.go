package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"milk-collection-service/internal/domain"
)

// Postgres-backed implementation of the VendorRepository port.
type PostgresVendorRepository struct{ DB *sql.DB }

func NewPostgresVendorRepository(db *sql.DB) *PostgresVendorRepository {
	return &PostgresVendorRepository{DB: db}
}

func (r *PostgresVendorRepository) List(ctx context.Context) ([]domain.Vendor, error) {
	query := `
	SELECT id, name, lat, lon, daily_milk_liters, hub_id
	FROM vendors
	ORDER BY id;
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list vendors: query: %w", err)
	}
	defer rows.Close()

	vendors := make([]domain.Vendor, 0, 128)
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, fmt.Errorf("list vendors: %w", err)
		}
		vendors = append(vendors, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list vendors: row iteration: %w", err)
	}

	return vendors, nil
}

func (r *PostgresVendorRepository) Get(ctx context.Context, id int64) (domain.Vendor, error) {
	query := `
	SELECT id, name, lat, lon, daily_milk_liters, hub_id
	FROM vendors
	WHERE id = $1;
	`
	row := r.DB.QueryRowContext(ctx, query, id)

	var v domain.Vendor
	var hubID sql.NullInt64
	err := row.Scan(&v.ID, &v.Name, &v.Location.Lat, &v.Location.Lon, &v.DailyMilkLiters, &hubID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Vendor{}, fmt.Errorf("get vendor id=%d: %w", id, ErrNotFound)
	}
	if err != nil {
		return domain.Vendor{}, fmt.Errorf("get vendor id=%d: %w", id, err)
	}
	if hubID.Valid {
		v.HubID = &hubID.Int64
	}
	return v, nil
}

func (r *PostgresVendorRepository) Create(ctx context.Context, v domain.Vendor) (int64, error) {
	query := `
	INSERT INTO vendors (name, lat, lon, daily_milk_liters, hub_id)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id;
	`
	var id int64
	err := r.DB.QueryRowContext(ctx, query, v.Name, v.Location.Lat, v.Location.Lon, v.DailyMilkLiters, nullableID(v.HubID)).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create vendor %q: %w", v.Name, err)
	}
	return id, nil
}

// CreateBatch inserts vendors in one transaction, used by bulk upload.
func (r *PostgresVendorRepository) CreateBatch(ctx context.Context, vs []domain.Vendor) (int, error) {
	if len(vs) == 0 {
		return 0, nil
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("batch create vendors: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO vendors (name, lat, lon, daily_milk_liters, hub_id)
	VALUES ($1, $2, $3, $4, $5);
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("batch create vendors: prepare insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, v := range vs {
		if _, err := stmt.ExecContext(ctx, v.Name, v.Location.Lat, v.Location.Lon, v.DailyMilkLiters, nullableID(v.HubID)); err != nil {
			return 0, fmt.Errorf("batch create vendors: insert %q: %w", v.Name, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("batch create vendors: commit tx: %w", err)
	}
	return inserted, nil
}

func (r *PostgresVendorRepository) Update(ctx context.Context, v domain.Vendor) error {
	query := `
	UPDATE vendors
	SET name = $2, lat = $3, lon = $4, daily_milk_liters = $5, hub_id = $6
	WHERE id = $1;
	`
	res, err := r.DB.ExecContext(ctx, query, v.ID, v.Name, v.Location.Lat, v.Location.Lon, v.DailyMilkLiters, nullableID(v.HubID))
	if err != nil {
		return fmt.Errorf("update vendor id=%d: %w", v.ID, err)
	}
	return requireRow(res, "update vendor", v.ID)
}

func (r *PostgresVendorRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM vendors WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete vendor id=%d: %w", id, err)
	}
	return requireRow(res, "delete vendor", id)
}

func scanVendor(rows *sql.Rows) (domain.Vendor, error) {
	var v domain.Vendor
	var hubID sql.NullInt64
	if err := rows.Scan(&v.ID, &v.Name, &v.Location.Lat, &v.Location.Lon, &v.DailyMilkLiters, &hubID); err != nil {
		return domain.Vendor{}, fmt.Errorf("scan row: %w", err)
	}
	if hubID.Valid {
		v.HubID = &hubID.Int64
	}
	return v, nil
}

func nullableID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}
