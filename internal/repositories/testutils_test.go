package repositories_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"cluetrack/internal/lifecycle"
	"cluetrack/internal/models"
	"cluetrack/internal/sqlite"
	"cluetrack/internal/testhelpers"
)

// newTestDB creates a new in-memory database for testing purposes.
func newTestDB(t *testing.T) *sqlite.Database {
	t.Helper()
	dbs, err := sqlite.NewDatabase(context.Background(), ":memory:", testhelpers.NewLogger(io.Discard))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err = dbs.Close(); err != nil {
			t.Fatal(err)
		}
	})
	return dbs
}

// newTestClue builds a pending clue through the lifecycle so that repository
// tests store realistic records.
func newTestClue(t *testing.T, name string, receiveDate time.Time) models.Clue {
	t.Helper()
	clue, err := lifecycle.Create(lifecycle.CreateInput{
		Name:        name,
		Source:      "Hotline",
		Location:    "Harbor district",
		Description: "Reported by an anonymous caller.",
		ReceiveDate: receiveDate,
	}, "operator1", time.Date(2024, time.January, 2, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return clue
}
