// ABOUTME: Vehicle store methods for the SQLite backend
// ABOUTME: Vehicles belong to one account and cascade-delete their mileage records

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ListVehiclesForOwner returns all vehicles owned by the given account,
// ordered by name ascending. Returns an empty slice for unknown owners.
func (s *SQLiteStore) ListVehiclesForOwner(ctx context.Context, ownerID int64) ([]*Vehicle, error) {
	query := `
		SELECT id, owner_id, name, make, model, year, plate, created_at
		FROM vehicles
		WHERE owner_id = ?
		ORDER BY name ASC
	`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("querying vehicles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var vehicles []*Vehicle
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, vehicle)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating vehicles: %w", err)
	}

	return vehicles, nil
}

// GetVehicle retrieves a vehicle by ID. Returns ErrNotFound if it does not exist.
func (s *SQLiteStore) GetVehicle(ctx context.Context, id int64) (*Vehicle, error) {
	query := `
		SELECT id, owner_id, name, make, model, year, plate, created_at
		FROM vehicles
		WHERE id = ?
	`

	row := s.db.QueryRowContext(ctx, query, id)

	vehicle, err := scanVehicle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return vehicle, nil
}

// CreateVehicle inserts a new vehicle and fills in its assigned ID and
// creation time. Returns ErrOwnerMissing if the owner id does not reference
// an existing account.
func (s *SQLiteStore) CreateVehicle(ctx context.Context, vehicle *Vehicle) error {
	if vehicle.CreatedAt.IsZero() {
		vehicle.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO vehicles (owner_id, name, make, model, year, plate, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		vehicle.OwnerID,
		vehicle.Name,
		vehicle.Make,
		vehicle.Model,
		yearValue(vehicle.Year),
		vehicle.Plate,
		vehicle.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if isForeignKeyError(err) {
			return ErrOwnerMissing
		}
		return fmt.Errorf("inserting vehicle: %w", err)
	}

	vehicle.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting inserted vehicle id: %w", err)
	}

	s.logger.Info("created vehicle", "id", vehicle.ID, "owner_id", vehicle.OwnerID, "name", vehicle.Name)
	return nil
}

// UpdateVehicle replaces a vehicle's name and all optional fields.
// Returns ErrNotFound if the vehicle does not exist.
func (s *SQLiteStore) UpdateVehicle(ctx context.Context, vehicle *Vehicle) error {
	query := `
		UPDATE vehicles
		SET name = ?, make = ?, model = ?, year = ?, plate = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		vehicle.Name,
		vehicle.Make,
		vehicle.Model,
		yearValue(vehicle.Year),
		vehicle.Plate,
		vehicle.ID,
	)
	if err != nil {
		return fmt.Errorf("updating vehicle: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	s.logger.Info("updated vehicle", "id", vehicle.ID, "name", vehicle.Name)
	return nil
}

// DeleteVehicle deletes a vehicle and, via foreign-key cascade, all of its
// mileage records. Deleting a non-existent vehicle is a no-op.
func (s *SQLiteStore) DeleteVehicle(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM vehicles WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting vehicle: %w", err)
	}

	s.logger.Info("deleted vehicle", "id", id)
	return nil
}

func scanVehicle(sc scanner) (*Vehicle, error) {
	var vehicle Vehicle
	var year sql.NullInt64
	var createdAtStr string

	err := sc.Scan(
		&vehicle.ID,
		&vehicle.OwnerID,
		&vehicle.Name,
		&vehicle.Make,
		&vehicle.Model,
		&year,
		&vehicle.Plate,
		&createdAtStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning vehicle: %w", err)
	}

	if year.Valid {
		y := int(year.Int64)
		vehicle.Year = &y
	}

	vehicle.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	return &vehicle, nil
}

// yearValue converts an optional year to its SQL representation (NULL when unset).
func yearValue(year *int) any {
	if year == nil {
		return nil
	}
	return *year
}
