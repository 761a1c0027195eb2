// ABOUTME: Shared test setup for store tests
// ABOUTME: Opens a temp-dir SQLite database and registers cleanup

package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)

	t.Cleanup(func() {
		store.Close()
	})

	return store
}

// testAccount creates an account for tests that need an owner row.
func testAccount(t *testing.T, store *SQLiteStore, username string) *Account {
	t.Helper()
	account := &Account{
		Username:           username,
		PasswordCredential: "credential",
	}
	require.NoError(t, store.CreateAccount(context.Background(), account))
	return account
}

// testVehicle creates a vehicle for tests that need a parent row.
func testVehicle(t *testing.T, store *SQLiteStore, ownerID int64, name string) *Vehicle {
	t.Helper()
	vehicle := &Vehicle{
		OwnerID: ownerID,
		Name:    name,
	}
	require.NoError(t, store.CreateVehicle(context.Background(), vehicle))
	return vehicle
}

func TestNewSQLiteStore_CreatesParentDirs(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "dir", "test.db")

	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer store.Close()

	require.FileExists(t, dbPath)
}

func TestSQLiteStore_Close(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewSQLiteStore(filepath.Join(tmpDir, "test.db"))
	require.NoError(t, err)

	require.NoError(t, store.Close())
}
