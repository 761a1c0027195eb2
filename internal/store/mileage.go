// ABOUTME: Mileage record store methods for the SQLite backend
// ABOUTME: Includes the odometer statistics queries (latest, total, count)

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ListMileageRecords returns mileage records for a vehicle ordered by date
// descending with record id descending as a tie-break, so same-day entries
// appear most-recently-inserted first. A limit <= 0 returns all records.
func (s *SQLiteStore) ListMileageRecords(ctx context.Context, vehicleID int64, limit int) ([]*MileageRecord, error) {
	query := `
		SELECT id, vehicle_id, odometer, date, notes, created_at
		FROM mileage_records
		WHERE vehicle_id = ?
		ORDER BY date DESC, id DESC
	`
	args := []any{vehicleID}

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying mileage records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []*MileageRecord
	for rows.Next() {
		record, err := scanMileageRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating mileage records: %w", err)
	}

	return records, nil
}

// GetMileageRecord retrieves a mileage record by ID.
// Returns ErrNotFound if it does not exist.
func (s *SQLiteStore) GetMileageRecord(ctx context.Context, id int64) (*MileageRecord, error) {
	query := `
		SELECT id, vehicle_id, odometer, date, notes, created_at
		FROM mileage_records
		WHERE id = ?
	`

	row := s.db.QueryRowContext(ctx, query, id)

	record, err := scanMileageRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return record, nil
}

// CreateMileageRecord inserts a new mileage record and fills in its assigned
// ID and creation time.
func (s *SQLiteStore) CreateMileageRecord(ctx context.Context, record *MileageRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO mileage_records (vehicle_id, odometer, date, notes, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		record.VehicleID,
		record.Odometer,
		record.Date,
		record.Notes,
		record.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting mileage record: %w", err)
	}

	record.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting inserted mileage record id: %w", err)
	}

	s.logger.Debug("created mileage record", "id", record.ID, "vehicle_id", record.VehicleID, "odometer", record.Odometer)
	return nil
}

// DeleteMileageRecord deletes a mileage record.
// Deleting a non-existent record is a no-op.
func (s *SQLiteStore) DeleteMileageRecord(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM mileage_records WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting mileage record: %w", err)
	}

	s.logger.Debug("deleted mileage record", "id", id)
	return nil
}

// LatestOdometer returns the odometer value of the most recent record for a
// vehicle, by (date, id) descending. The boolean is false when the vehicle
// has no records.
func (s *SQLiteStore) LatestOdometer(ctx context.Context, vehicleID int64) (float64, bool, error) {
	query := `
		SELECT odometer
		FROM mileage_records
		WHERE vehicle_id = ?
		ORDER BY date DESC, id DESC
		LIMIT 1
	`

	var odometer float64
	err := s.db.QueryRowContext(ctx, query, vehicleID).Scan(&odometer)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("querying latest odometer: %w", err)
	}

	return odometer, true, nil
}

// TotalMiles returns max(odometer) - min(odometer) across all records for a
// vehicle, regardless of date ordering. Returns 0 when the vehicle has no
// records.
func (s *SQLiteStore) TotalMiles(ctx context.Context, vehicleID int64) (float64, error) {
	query := `
		SELECT MAX(odometer) - MIN(odometer)
		FROM mileage_records
		WHERE vehicle_id = ?
	`

	var total sql.NullFloat64
	err := s.db.QueryRowContext(ctx, query, vehicleID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("querying total miles: %w", err)
	}

	if !total.Valid {
		return 0, nil
	}
	return total.Float64, nil
}

// CountMileageRecords returns the number of mileage records for a vehicle.
func (s *SQLiteStore) CountMileageRecords(ctx context.Context, vehicleID int64) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM mileage_records WHERE vehicle_id = ?", vehicleID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting mileage records: %w", err)
	}
	return count, nil
}

func scanMileageRecord(sc scanner) (*MileageRecord, error) {
	var record MileageRecord
	var createdAtStr string

	err := sc.Scan(
		&record.ID,
		&record.VehicleID,
		&record.Odometer,
		&record.Date,
		&record.Notes,
		&createdAtStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning mileage record: %w", err)
	}

	record.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	return &record, nil
}
