// ABOUTME: Shared test setup for controller tests
// ABOUTME: Wires controllers to a real SQLite store in a temp dir

package tracker

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/torquelabs/torque-tracker/internal/store"
)

func setupTest(t *testing.T) *store.SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	s, err := store.NewSQLiteStore(dbPath)
	require.NoError(t, err)

	t.Cleanup(func() {
		s.Close()
	})

	return s
}
