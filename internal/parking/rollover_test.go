package parking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protomem/parking-tracker/internal/model"
)

// The period boundary is deliberately asymmetric: OFFICIAL history is
// purged, RESIDENT counters are zeroed but the rows stay, and STANDARD
// sessions carry over untouched.
func TestRollover_Selectivity(t *testing.T) {
	ctx := context.Background()
	db := newMemDB()
	vehicles, sessions := db.stores()
	job := NewRollover(newTestLogger(), sessions)

	_, err := vehicles.Insert(ctx, "OFF-001", model.ClassOfficial)
	require.NoError(t, err)
	_, err = vehicles.Insert(ctx, "RES-001", model.ClassResident)
	require.NoError(t, err)
	_, err = vehicles.Insert(ctx, "STD-001", model.ClassStandard)
	require.NoError(t, err)

	seedClosedSession(t, db, "OFF-001", 15)
	seedClosedSession(t, db, "RES-001", 42)
	seedClosedSession(t, db, "STD-001", 7)

	summary, err := job.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.Deleted)

	officials, err := sessions.AllByVehicle(ctx, "OFF-001")
	require.NoError(t, err)
	assert.Empty(t, officials)

	residents, err := sessions.AllByVehicle(ctx, "RES-001")
	require.NoError(t, err)
	require.Len(t, residents, 1)
	assert.Equal(t, 0, residents[0].Minutes)
	assert.NotNil(t, residents[0].Exit, "rollover must keep resident timestamps")

	standards, err := sessions.AllByVehicle(ctx, "STD-001")
	require.NoError(t, err)
	require.Len(t, standards, 1)
	assert.Equal(t, 7, standards[0].Minutes)
}

func TestRollover_CountsEveryOfficialSession(t *testing.T) {
	ctx := context.Background()
	db := newMemDB()
	vehicles, sessions := db.stores()
	job := NewRollover(newTestLogger(), sessions)

	_, err := vehicles.Insert(ctx, "OFF-001", model.ClassOfficial)
	require.NoError(t, err)

	seedClosedSession(t, db, "OFF-001", 5)
	seedClosedSession(t, db, "OFF-001", 10)
	seedClosedSession(t, db, "OFF-001", 20)

	summary, err := job.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), summary.Deleted)
}

func TestRollover_EmptyLedger(t *testing.T) {
	ctx := context.Background()
	_, sessions := newMemDB().stores()
	job := NewRollover(newTestLogger(), sessions)

	summary, err := job.Run(ctx)
	require.NoError(t, err)
	assert.Zero(t, summary.Deleted)
}
