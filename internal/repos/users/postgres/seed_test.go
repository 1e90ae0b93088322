package users

import (
	"database/sql"
	"testing"
)

func seedUser(t *testing.T, db *sql.DB, id uint64, balance int64) {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO users (id, balance) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET balance = EXCLUDED.balance
	`, id, balance)
	if err != nil {
		t.Fatalf("seed user(%d): %v", id, err)
	}
}
