package parking

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protomem/parking-tracker/internal/model"
)

func newTestReporter(db *memDB, dir string) *Reporter {
	vehicles, sessions := db.stores()
	billing := NewBilling(DefaultRates(), vehicles, sessions)
	return NewReporter(newTestLogger(), dir, sessions, billing)
}

func TestReporter_Monthly(t *testing.T) {
	ctx := context.Background()
	db := newMemDB()
	vehicles, _ := db.stores()
	reporter := newTestReporter(db, t.TempDir())

	_, err := vehicles.Insert(ctx, "RES-001", model.ClassResident)
	require.NoError(t, err)
	_, err = vehicles.Insert(ctx, "RES-002", model.ClassResident)
	require.NoError(t, err)
	_, err = vehicles.Insert(ctx, "STD-001", model.ClassStandard)
	require.NoError(t, err)

	seedClosedSession(t, db, "RES-001", 30)
	seedClosedSession(t, db, "RES-001", 20)
	seedClosedSession(t, db, "RES-002", 10)
	seedClosedSession(t, db, "STD-001", 999)

	path, err := reporter.Monthly(ctx)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(reporter.Dir, "parking_monthly.txt"), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	require.Len(t, lines, 4, "header, separator and one row per resident vehicle")

	assert.Contains(t, lines[0], "Plate")
	assert.Contains(t, lines[0], "Parked time (min)")
	assert.Contains(t, lines[0], "Amount due")

	// Sessions of the same vehicle collapse into one row; rows are sorted
	// by plate. Standard vehicles never appear.
	assert.Regexp(t, `^RES-001\s+50\s+2\.50\s*$`, lines[2])
	assert.Regexp(t, `^RES-002\s+10\s+0\.50\s*$`, lines[3])
	assert.NotContains(t, string(raw), "STD-001")
}

func TestReporter_Monthly_NoResidents(t *testing.T) {
	ctx := context.Background()
	db := newMemDB()
	vehicles, _ := db.stores()
	reporter := newTestReporter(db, t.TempDir())

	_, err := vehicles.Insert(ctx, "STD-001", model.ClassStandard)
	require.NoError(t, err)
	seedClosedSession(t, db, "STD-001", 5)

	_, err = reporter.Monthly(ctx)
	assert.ErrorIs(t, err, model.ErrEmpty)
}

func TestReporter_Monthly_WriteFailure(t *testing.T) {
	ctx := context.Background()
	db := newMemDB()
	vehicles, _ := db.stores()

	// Point the output dir at an existing regular file so MkdirAll fails.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	reporter := newTestReporter(db, blocker)

	_, err := vehicles.Insert(ctx, "RES-001", model.ClassResident)
	require.NoError(t, err)
	seedClosedSession(t, db, "RES-001", 30)

	_, err = reporter.Monthly(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write report")
}
