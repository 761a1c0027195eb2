// ABOUTME: Vehicle controller - name validation and owner checks over the store
// ABOUTME: Updates are full replaces; omitted optional fields are cleared

package tracker

import (
	"context"
	"errors"
	"strings"

	"github.com/torquelabs/torque-tracker/internal/store"
)

// Vehicles provides domain operations over vehicle persistence.
type Vehicles struct {
	store store.VehicleStore
}

// NewVehicles creates a vehicle controller backed by the given store.
func NewVehicles(s store.VehicleStore) *Vehicles {
	return &Vehicles{store: s}
}

// ListForOwner returns the owner's vehicles ordered by name ascending.
func (v *Vehicles) ListForOwner(ctx context.Context, ownerID int64) ([]*store.Vehicle, error) {
	return v.store.ListVehiclesForOwner(ctx, ownerID)
}

// Get returns the vehicle with the given id, or nil if it does not exist.
func (v *Vehicles) Get(ctx context.Context, id int64) (*store.Vehicle, error) {
	vehicle, err := v.store.GetVehicle(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	return vehicle, err
}

// Create adds a vehicle for an owner. Returns a ValidationError when the
// trimmed name is empty or when the owner account does not exist.
func (v *Vehicles) Create(ctx context.Context, ownerID int64, name, make, model string, year *int, plate string) (*store.Vehicle, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Reason: "vehicle name cannot be empty"}
	}

	vehicle := &store.Vehicle{
		OwnerID: ownerID,
		Name:    name,
		Make:    make,
		Model:   model,
		Year:    year,
		Plate:   plate,
	}
	if err := v.store.CreateVehicle(ctx, vehicle); err != nil {
		if errors.Is(err, store.ErrOwnerMissing) {
			return nil, &ValidationError{Reason: "owner account does not exist"}
		}
		return nil, err
	}

	return vehicle, nil
}

// Update replaces the vehicle's name and all optional fields - there are no
// partial-update semantics, so callers re-supply every field. Returns the
// updated vehicle.
func (v *Vehicles) Update(ctx context.Context, id int64, name, make, model string, year *int, plate string) (*store.Vehicle, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Reason: "vehicle name cannot be empty"}
	}

	vehicle := &store.Vehicle{
		ID:    id,
		Name:  name,
		Make:  make,
		Model: model,
		Year:  year,
		Plate: plate,
	}
	if err := v.store.UpdateVehicle(ctx, vehicle); err != nil {
		return nil, err
	}

	return v.store.GetVehicle(ctx, id)
}

// Delete removes the vehicle and cascades to its mileage records.
// Deleting an unknown id is a no-op.
func (v *Vehicles) Delete(ctx context.Context, id int64) error {
	return v.store.DeleteVehicle(ctx, id)
}
