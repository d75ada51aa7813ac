package repo_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/pkordes/dinos/testutil"
)

// TestMain brings the test database schema up to date once for the package.
// Without TEST_DATABASE_URL the Postgres cases skip themselves and only the
// in-memory store runs.
func TestMain(m *testing.M) {
	if err := testutil.Migrate(context.Background()); err != nil {
		log.Fatalf("TestMain: %v", err)
	}
	os.Exit(m.Run())
}
