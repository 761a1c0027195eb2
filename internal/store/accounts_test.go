// ABOUTME: Tests for account store operations
// ABOUTME: Covers CRUD, username uniqueness, admin counting, and delete cascade

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountStore_Create(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	account := &Account{
		Username:           "alice",
		PasswordCredential: "stored-credential",
		Admin:              true,
	}
	err := store.CreateAccount(ctx, account)
	require.NoError(t, err)
	assert.Positive(t, account.ID)
	assert.False(t, account.CreatedAt.IsZero())

	got, err := store.GetAccount(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "stored-credential", got.PasswordCredential)
	assert.True(t, got.Admin)
}

func TestAccountStore_Create_DuplicateUsername(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	testAccount(t, store, "alice")

	err := store.CreateAccount(ctx, &Account{Username: "alice"})
	assert.ErrorIs(t, err, ErrUsernameExists)
}

func TestAccountStore_Get_NotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.GetAccount(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAccountStore_GetByUsername(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	created := testAccount(t, store, "bob")

	got, err := store.GetAccountByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	// Exact match only - no trimming at the store layer
	_, err = store.GetAccountByUsername(ctx, " bob ")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAccountStore_List_OrderedByUsername(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	testAccount(t, store, "charlie")
	testAccount(t, store, "alice")
	testAccount(t, store, "bob")

	accounts, err := store.ListAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 3)
	assert.Equal(t, "alice", accounts[0].Username)
	assert.Equal(t, "bob", accounts[1].Username)
	assert.Equal(t, "charlie", accounts[2].Username)
}

func TestAccountStore_UpdateCredential(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	account := testAccount(t, store, "alice")

	err := store.UpdateAccountCredential(ctx, account.ID, "new-credential")
	require.NoError(t, err)

	got, err := store.GetAccount(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-credential", got.PasswordCredential)
}

func TestAccountStore_UpdateCredential_NotFound(t *testing.T) {
	store := setupTestStore(t)

	err := store.UpdateAccountCredential(context.Background(), 9999, "credential")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAccountStore_UpdateAdmin(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	account := testAccount(t, store, "alice")
	assert.False(t, account.Admin)

	require.NoError(t, store.UpdateAccountAdmin(ctx, account.ID, true))

	got, err := store.GetAccount(ctx, account.ID)
	require.NoError(t, err)
	assert.True(t, got.Admin)
}

func TestAccountStore_CountAdmins(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	count, err := store.CountAdmins(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	alice := testAccount(t, store, "alice")
	require.NoError(t, store.UpdateAccountAdmin(ctx, alice.ID, true))
	testAccount(t, store, "bob")

	count, err = store.CountAdmins(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestAccountStore_Delete_Idempotent(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	account := testAccount(t, store, "alice")

	require.NoError(t, store.DeleteAccount(ctx, account.ID))
	// Second delete of the same id succeeds silently
	require.NoError(t, store.DeleteAccount(ctx, account.ID))

	_, err := store.GetAccount(ctx, account.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAccountStore_Delete_CascadesToVehiclesAndRecords(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	account := testAccount(t, store, "alice")
	vehicle := testVehicle(t, store, account.ID, "Daily")

	record := &MileageRecord{VehicleID: vehicle.ID, Odometer: 100, Date: "2024-01-01"}
	require.NoError(t, store.CreateMileageRecord(ctx, record))

	require.NoError(t, store.DeleteAccount(ctx, account.ID))

	_, err := store.GetVehicle(ctx, vehicle.ID)
	assert.ErrorIs(t, err, ErrNotFound, "vehicle should be cascade-deleted")

	_, err = store.GetMileageRecord(ctx, record.ID)
	assert.ErrorIs(t, err, ErrNotFound, "mileage record should be cascade-deleted")
}
