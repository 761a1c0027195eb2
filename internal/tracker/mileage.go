// ABOUTME: Mileage controller - odometer entry validation and statistics
// ABOUTME: Total miles is max minus min across all records, not a sum of deltas

package tracker

import (
	"context"
	"errors"
	"strings"

	"github.com/torquelabs/torque-tracker/internal/store"
)

// Mileage provides domain operations over mileage record persistence.
type Mileage struct {
	store store.MileageStore
}

// NewMileage creates a mileage controller backed by the given store.
func NewMileage(s store.MileageStore) *Mileage {
	return &Mileage{store: s}
}

// ListForVehicle returns the vehicle's records ordered by date descending,
// then id descending. A limit <= 0 returns all records.
func (m *Mileage) ListForVehicle(ctx context.Context, vehicleID int64, limit int) ([]*store.MileageRecord, error) {
	return m.store.ListMileageRecords(ctx, vehicleID, limit)
}

// Get returns the record with the given id, or nil if it does not exist.
func (m *Mileage) Get(ctx context.Context, id int64) (*store.MileageRecord, error) {
	record, err := m.store.GetMileageRecord(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	return record, err
}

// Add creates a new odometer entry. Returns a ValidationError for a negative
// odometer reading or an empty date. There is no upper bound and no
// monotonicity check against prior readings - out-of-order entries are
// accepted data.
func (m *Mileage) Add(ctx context.Context, vehicleID int64, odometer float64, date, notes string) (*store.MileageRecord, error) {
	if odometer < 0 {
		return nil, &ValidationError{Reason: "odometer reading cannot be negative"}
	}
	date = strings.TrimSpace(date)
	if date == "" {
		return nil, &ValidationError{Reason: "date is required"}
	}

	record := &store.MileageRecord{
		VehicleID: vehicleID,
		Odometer:  odometer,
		Date:      date,
		Notes:     notes,
	}
	if err := m.store.CreateMileageRecord(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

// Delete removes a record. Deleting an unknown id is a no-op.
func (m *Mileage) Delete(ctx context.Context, id int64) error {
	return m.store.DeleteMileageRecord(ctx, id)
}

// LatestOdometer returns the odometer value of the most recent record by
// (date, id). The boolean is false when the vehicle has no records.
func (m *Mileage) LatestOdometer(ctx context.Context, vehicleID int64) (float64, bool, error) {
	return m.store.LatestOdometer(ctx, vehicleID)
}

// TotalMiles returns max(odometer) - min(odometer) across the vehicle's
// records, or 0 when it has none. This tolerates out-of-order entry dates
// but is sensitive to a single outlier reading.
func (m *Mileage) TotalMiles(ctx context.Context, vehicleID int64) (float64, error) {
	return m.store.TotalMiles(ctx, vehicleID)
}

// Count returns the number of records for the vehicle.
func (m *Mileage) Count(ctx context.Context, vehicleID int64) (int, error) {
	return m.store.CountMileageRecords(ctx, vehicleID)
}
