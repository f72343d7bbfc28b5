package test_utils

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"
)

// CreateTestUser inserts a user row and returns its id. Repository tests need
// a real owner because of the foreign keys on transactions and budget.
func CreateTestUser(t *testing.T, db *sql.DB, name string, email string) int {
	t.Helper()

	result, err := db.Exec(
		"INSERT INTO users (uid, name, email) VALUES (?, ?, ?)",
		uuid.NewString(), name, email,
	)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("Failed to get test user id: %v", err)
	}
	return int(id)
}
