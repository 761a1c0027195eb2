// ABOUTME: Tests for the mileage controller
// ABOUTME: Covers validation, ordering, limits, and the statistics operations

package tracker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/torquelabs/torque-tracker/internal/store"
)

func setupVehicle(t *testing.T) (*store.SQLiteStore, *Mileage, int64) {
	t.Helper()
	s := setupTest(t)
	ctx := context.Background()

	account, err := NewAccounts(s).Create(ctx, "alice", "hunter2", false)
	require.NoError(t, err)
	vehicle, err := NewVehicles(s).Create(ctx, account.ID, "Daily", "", "", nil, "")
	require.NoError(t, err)

	return s, NewMileage(s), vehicle.ID
}

func TestMileage_Add(t *testing.T) {
	_, mileage, vehicleID := setupVehicle(t)
	ctx := context.Background()

	record, err := mileage.Add(ctx, vehicleID, 12345.6, " 2024-03-01 ", "oil change")
	require.NoError(t, err)
	assert.Positive(t, record.ID)
	assert.Equal(t, "2024-03-01", record.Date, "date is trimmed")
	assert.Equal(t, "oil change", record.Notes)
}

func TestMileage_Add_Validation(t *testing.T) {
	_, mileage, vehicleID := setupVehicle(t)
	ctx := context.Background()

	_, err := mileage.Add(ctx, vehicleID, -1, "2024-01-01", "")
	assert.True(t, IsValidation(err), "negative odometer")

	_, err = mileage.Add(ctx, vehicleID, 100, "   ", "")
	assert.True(t, IsValidation(err), "empty date")

	count, err := mileage.Count(ctx, vehicleID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestMileage_Add_ZeroOdometerAllowed(t *testing.T) {
	_, mileage, vehicleID := setupVehicle(t)

	_, err := mileage.Add(context.Background(), vehicleID, 0, "2024-01-01", "")
	require.NoError(t, err)
}

func TestMileage_Add_NoMonotonicityCheck(t *testing.T) {
	_, mileage, vehicleID := setupVehicle(t)
	ctx := context.Background()

	// A later-dated entry with a smaller odometer value is accepted data
	_, err := mileage.Add(ctx, vehicleID, 500, "2024-01-01", "")
	require.NoError(t, err)
	_, err = mileage.Add(ctx, vehicleID, 450, "2024-01-02", "")
	require.NoError(t, err)
}

func TestMileage_ListForVehicle_OrderAndLimit(t *testing.T) {
	_, mileage, vehicleID := setupVehicle(t)
	ctx := context.Background()

	first, err := mileage.Add(ctx, vehicleID, 100, "2024-01-01", "")
	require.NoError(t, err)
	second, err := mileage.Add(ctx, vehicleID, 120, "2024-01-01", "")
	require.NoError(t, err)
	third, err := mileage.Add(ctx, vehicleID, 150, "2024-01-02", "")
	require.NoError(t, err)

	records, err := mileage.ListForVehicle(ctx, vehicleID, 0)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []int64{third.ID, second.ID, first.ID},
		[]int64{records[0].ID, records[1].ID, records[2].ID})

	limited, err := mileage.ListForVehicle(ctx, vehicleID, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, third.ID, limited[0].ID)
}

func TestMileage_Get_AbsentIsNil(t *testing.T) {
	_, mileage, _ := setupVehicle(t)

	record, err := mileage.Get(context.Background(), 9999)
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestMileage_Delete_Idempotent(t *testing.T) {
	_, mileage, vehicleID := setupVehicle(t)
	ctx := context.Background()

	record, err := mileage.Add(ctx, vehicleID, 100, "2024-01-01", "")
	require.NoError(t, err)

	require.NoError(t, mileage.Delete(ctx, record.ID))
	require.NoError(t, mileage.Delete(ctx, record.ID))
}

func TestMileage_LatestOdometer(t *testing.T) {
	_, mileage, vehicleID := setupVehicle(t)
	ctx := context.Background()

	_, ok, err := mileage.LatestOdometer(ctx, vehicleID)
	require.NoError(t, err)
	assert.False(t, ok, "no records yet")

	_, err = mileage.Add(ctx, vehicleID, 500, "2024-01-01", "")
	require.NoError(t, err)
	_, err = mileage.Add(ctx, vehicleID, 450, "2024-01-02", "")
	require.NoError(t, err)

	latest, ok, err := mileage.LatestOdometer(ctx, vehicleID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 450.0, latest, "latest by date, not by value")
}

func TestMileage_TotalMiles(t *testing.T) {
	_, mileage, vehicleID := setupVehicle(t)
	ctx := context.Background()

	total, err := mileage.TotalMiles(ctx, vehicleID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, total)

	// Any insertion order: total is max - min, not a sum of deltas
	for _, r := range []struct {
		odometer float64
		date     string
	}{
		{100, "2024-01-02"},
		{250, "2024-01-03"},
		{180, "2024-01-01"},
	} {
		_, err := mileage.Add(ctx, vehicleID, r.odometer, r.date, "")
		require.NoError(t, err)
	}

	total, err = mileage.TotalMiles(ctx, vehicleID)
	require.NoError(t, err)
	assert.Equal(t, 150.0, total)
}
