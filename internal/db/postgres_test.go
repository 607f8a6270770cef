package db

import (
	"context"
	"os"
	"testing"

	"gymclub/config"
	"gymclub/internal/session"
	"gymclub/internal/session/sessiontest"
)

// Set GYMCLUB_TEST_DATABASE_URL to run against a real PostgreSQL.
const testDSNEnv = "GYMCLUB_TEST_DATABASE_URL"

func TestPostgresBackend(t *testing.T) {
	dsn := os.Getenv(testDSNEnv)
	if dsn == "" {
		t.Skipf("%s not set", testDSNEnv)
	}

	database, err := NewPostgresDB(context.Background(), config.DBConfig{DSN: dsn})
	if err != nil {
		t.Fatalf("NewPostgresDB() error: %v", err)
	}
	t.Cleanup(database.Close)

	sessiontest.TestBackend(t, func(*testing.T) session.Backend {
		return database
	})
}

func TestNewPostgresDBRejectsBadDSN(t *testing.T) {
	_, err := NewPostgresDB(context.Background(), config.DBConfig{DSN: "postgres://%zz"})
	if err == nil {
		t.Fatal("NewPostgresDB() with a malformed DSN succeeded, want error")
	}
}
