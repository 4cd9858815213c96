package testutil

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/lib/pq"
)

// SetupTestDB creates a connection to the test database.
// TEST_DATABASE_URL overrides the local default.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	connStr := os.Getenv("TEST_DATABASE_URL")
	if connStr == "" {
		connStr = "host=localhost port=5432 user=hospital password=hospital dbname=hospital_test sslmode=disable"
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	t.Cleanup(func() { db.Close() })

	return db
}

// SetupTestTransaction creates a test database connection and begins a
// transaction that is rolled back when the test ends.
func SetupTestTransaction(t *testing.T) (*sql.DB, *sql.Tx) {
	t.Helper()

	db := SetupTestDB(t)

	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		t.Fatalf("Failed to begin transaction: %v", err)
	}

	t.Cleanup(func() {
		tx.Rollback()
	})

	return db, tx
}

// CleanupTestDB removes test data. Use this if you're not using transactions.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	t.Helper()

	_, err := db.Exec("TRUNCATE TABLE bills, appointments, patients, doctors CASCADE")
	if err != nil {
		t.Logf("Warning: Failed to clean up test data: %v", err)
	}
}

// CreateTestDoctor inserts a doctor row and returns its id.
func CreateTestDoctor(t *testing.T, db *sql.DB, name string) string {
	t.Helper()

	var id string
	err := db.QueryRow(`
		INSERT INTO doctors
		(id, name, specialization, available_from, available_to, is_available, consultation_fee, created_at)
		VALUES (gen_random_uuid(), $1, 'General', '09:00', '17:00', true, 500, NOW())
		RETURNING id`, name).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test doctor: %v", err)
	}

	return id
}

// CreateTestPatient inserts a patient row and returns its id.
func CreateTestPatient(t *testing.T, db *sql.DB, name string) string {
	t.Helper()

	var id string
	err := db.QueryRow(`
		INSERT INTO patients
		(id, name, date_of_birth, gender, phone, blood_group, created_at)
		VALUES (gen_random_uuid(), $1, '1990-01-01', 'F', '9876543210', 'Unknown', NOW())
		RETURNING id`, name).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test patient: %v", err)
	}

	return id
}
