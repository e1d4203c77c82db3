package repo_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/gustavopolonio/nlw-journey/migrations"
	"github.com/gustavopolonio/nlw-journey/testutil"
)

// TestMain applies all pending migrations to the test database once for the
// whole package so individual tests never need to think about schema state.
// Without TEST_DATABASE_URL the integration tests skip themselves and only the
// pgxmock-based tests run.
func TestMain(m *testing.M) {
	if os.Getenv("TEST_DATABASE_URL") == "" {
		os.Exit(m.Run())
	}

	db := testutil.MustOpenSQLDB(os.Getenv("TEST_DATABASE_URL"))

	if _, err := migrations.Up(context.Background(), db); err != nil {
		db.Close()
		log.Fatalf("TestMain: run migrations: %v", err)
	}
	db.Close()

	os.Exit(m.Run())
}
