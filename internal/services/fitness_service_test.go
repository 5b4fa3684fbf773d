package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soberlog/soberlog/internal/models"
	"github.com/soberlog/soberlog/internal/schema"
)

func TestTimeframeDefaultsWithoutPreference(t *testing.T) {
	store := newTestStore(t)
	svc := NewFitnessService(store, 30)
	assert.Equal(t, 30, svc.Timeframe(context.Background()))
}

func TestSetTimeframeRoundTrips(t *testing.T) {
	store := newTestStore(t)
	svc := NewFitnessService(store, 30)
	ctx := context.Background()

	require.NoError(t, svc.SetTimeframe(ctx, 90))
	assert.Equal(t, 90, svc.Timeframe(ctx))

	// Overwrite, not append.
	require.NoError(t, svc.SetTimeframe(ctx, 60))
	assert.Equal(t, 60, svc.Timeframe(ctx))

	prefs, err := store.GetAll(ctx, schema.Preferences)
	require.NoError(t, err)
	assert.Len(t, prefs, 1)
}

func TestSetTimeframeRejectsNonPositive(t *testing.T) {
	store := newTestStore(t)
	svc := NewFitnessService(store, 30)
	assert.Error(t, svc.SetTimeframe(context.Background(), 0))
}

func TestRecomputeOverwritesSnapshotIdempotently(t *testing.T) {
	store := newTestStore(t)
	fitnessSvc := NewFitnessService(store, 30)
	activitySvc := NewActivityService(store, nil)
	ctx := context.Background()

	for days := 1; days <= 3; days++ {
		_, err := activitySvc.LogActivity(ctx, models.Activity{
			UserID: "u1",
			Type:   models.ActivityMeeting,
			Date:   isoDaysAgo(days),
		})
		require.NoError(t, err)
	}

	first, err := fitnessSvc.Recompute(ctx, "u1")
	require.NoError(t, err)
	second, err := fitnessSvc.Recompute(ctx, "u1")
	require.NoError(t, err)

	assert.Equal(t, first.Score, second.Score, "same inputs must score identically")

	snaps, err := store.GetAll(ctx, schema.SpiritualFitness)
	require.NoError(t, err)
	assert.Len(t, snaps, 1, "recompute must overwrite, not version")
}

func TestRecomputeWithNoActivitiesStoresBaseline(t *testing.T) {
	store := newTestStore(t)
	svc := NewFitnessService(store, 30)
	ctx := context.Background()

	result, err := svc.Recompute(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 20.0, result.Score)
	assert.Empty(t, result.Breakdown)

	snap, err := svc.CurrentSnapshot(ctx, "u1", 30)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, 20.0, snap.Score)
}

func TestSnapshotsArePerUserAndTimeframe(t *testing.T) {
	store := newTestStore(t)
	fitnessSvc := NewFitnessService(store, 30)
	activitySvc := NewActivityService(store, nil)
	ctx := context.Background()

	_, err := activitySvc.LogActivity(ctx, models.Activity{
		UserID: "u1", Type: models.ActivityMeeting, Date: isoDaysAgo(1),
	})
	require.NoError(t, err)

	_, err = fitnessSvc.Recompute(ctx, "u1")
	require.NoError(t, err)
	_, err = fitnessSvc.Recompute(ctx, "u2")
	require.NoError(t, err)

	snaps, err := store.GetAll(ctx, schema.SpiritualFitness)
	require.NoError(t, err)
	assert.Len(t, snaps, 2)

	u1, err := fitnessSvc.CurrentSnapshot(ctx, "u1", 30)
	require.NoError(t, err)
	u2, err := fitnessSvc.CurrentSnapshot(ctx, "u2", 30)
	require.NoError(t, err)
	assert.Greater(t, u1.Score, u2.Score)
}
