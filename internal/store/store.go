// ABOUTME: Store interfaces and entity types for torque-tracker persistence
// ABOUTME: Defines Account, Vehicle, MileageRecord and the per-entity store interfaces

package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ErrUsernameExists is returned when trying to create an account with an existing username.
var ErrUsernameExists = errors.New("username already exists")

// ErrOwnerMissing is returned when inserting a vehicle whose owner id does
// not reference an existing account.
var ErrOwnerMissing = errors.New("owner account does not exist")

// Account represents a login account. PasswordCredential is the opaque
// stored credential, never the plaintext.
type Account struct {
	ID                 int64
	Username           string
	PasswordCredential string
	Admin              bool
	CreatedAt          time.Time
}

// Vehicle represents a tracked vehicle owned by exactly one account.
type Vehicle struct {
	ID        int64
	OwnerID   int64
	Name      string
	Make      string
	Model     string
	Year      *int
	Plate     string
	CreatedAt time.Time
}

// DisplayName returns a human-readable label including year/make/model when
// available, e.g. "2019 Toyota Corolla (Daily)".
func (v *Vehicle) DisplayName() string {
	var parts []string
	if v.Year != nil {
		parts = append(parts, fmt.Sprintf("%d", *v.Year))
	}
	if v.Make != "" {
		parts = append(parts, v.Make)
	}
	if v.Model != "" {
		parts = append(parts, v.Model)
	}
	if len(parts) == 0 {
		return v.Name
	}
	return fmt.Sprintf("%s (%s)", strings.Join(parts, " "), v.Name)
}

// MileageRecord represents a single odometer entry for a vehicle.
// Date is a calendar date in YYYY-MM-DD form; the store does not enforce
// any ordering between dates and odometer values.
type MileageRecord struct {
	ID        int64
	VehicleID int64
	Odometer  float64
	Date      string
	Notes     string
	CreatedAt time.Time
}

// AccountStore defines the interface for account persistence.
type AccountStore interface {
	ListAccounts(ctx context.Context) ([]*Account, error)
	GetAccount(ctx context.Context, id int64) (*Account, error)
	GetAccountByUsername(ctx context.Context, username string) (*Account, error)
	CreateAccount(ctx context.Context, account *Account) error
	UpdateAccountCredential(ctx context.Context, id int64, credential string) error
	UpdateAccountAdmin(ctx context.Context, id int64, admin bool) error
	DeleteAccount(ctx context.Context, id int64) error
	CountAdmins(ctx context.Context) (int, error)
}

// VehicleStore defines the interface for vehicle persistence.
type VehicleStore interface {
	ListVehiclesForOwner(ctx context.Context, ownerID int64) ([]*Vehicle, error)
	GetVehicle(ctx context.Context, id int64) (*Vehicle, error)
	CreateVehicle(ctx context.Context, vehicle *Vehicle) error
	UpdateVehicle(ctx context.Context, vehicle *Vehicle) error
	DeleteVehicle(ctx context.Context, id int64) error
}

// MileageStore defines the interface for mileage record persistence.
type MileageStore interface {
	ListMileageRecords(ctx context.Context, vehicleID int64, limit int) ([]*MileageRecord, error)
	GetMileageRecord(ctx context.Context, id int64) (*MileageRecord, error)
	CreateMileageRecord(ctx context.Context, record *MileageRecord) error
	DeleteMileageRecord(ctx context.Context, id int64) error
	LatestOdometer(ctx context.Context, vehicleID int64) (float64, bool, error)
	TotalMiles(ctx context.Context, vehicleID int64) (float64, error)
	CountMileageRecords(ctx context.Context, vehicleID int64) (int, error)
}

// Store combines all persistence interfaces plus lifecycle management.
type Store interface {
	AccountStore
	VehicleStore
	MileageStore

	// Close releases the database connection
	Close() error
}
