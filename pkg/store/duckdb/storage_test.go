package duckdb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDB_BootstrapCreatesReportTables(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "duckdb-test-*")
	require.NoError(t, err)

	defer func() {
		err := os.RemoveAll(tmpDir)
		if err != nil {
			t.Errorf("failed to cleanup test directory: %v", err)
		}
	}()

	dbPath := filepath.Join(tmpDir, "test.db")
	db, err := NewDB(Settings{
		DbPath:      dbPath,
		TablePrefix: "mdl_",
		Bootstrap:   true,
	})
	require.NoError(t, err)
	require.NotNil(t, db)

	defer func() {
		err := db.Close()
		if err != nil {
			t.Errorf("failed to close database connection: %v", err)
		}
	}()

	_, err = db.Exec(
		`INSERT INTO mdl_user (id, username, email, firstname, lastname) VALUES (?, ?, ?, ?, ?)`,
		1, "jdoe", "jdoe@example.com", "Jane", "Doe",
	)
	require.NoError(t, err)

	_, err = db.Exec(
		`INSERT INTO mdl_enrol_cart (id, user_id, status, currency, price, payable, created_at, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		10, 1, 90, "USD", 100.0, 80.0, 1700000000, 1,
	)
	require.NoError(t, err)

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM mdl_enrol_cart c INNER JOIN mdl_user u ON c.user_id = u.id").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNewDB_WithoutBootstrapLeavesSchemaAlone(t *testing.T) {
	db, err := NewDB(Settings{DbPath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})

	_, err = db.Exec("SELECT COUNT(*) FROM enrol_cart")
	assert.Error(t, err)
}
