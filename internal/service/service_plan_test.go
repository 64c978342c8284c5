package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-vault-sync/models"
)

func docWith(entries ...models.MetadataEntry) *models.MetadataDocument {
	doc := models.NewMetadataDocument()
	for _, e := range entries {
		doc.Upsert(e)
	}
	return doc
}

func live(id string, synced bool) models.MetadataEntry {
	return models.MetadataEntry{ItemID: id, Type: models.KindRecord, Synced: synced}
}

func tombstone(id string, version int64) models.MetadataEntry {
	at := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return models.MetadataEntry{
		ItemID:           id,
		Type:             models.KindRecord,
		Deleted:          true,
		DeletedAt:        &at,
		TombstoneVersion: version,
		Source:           models.SourceManual,
	}
}

func restored(id string, retainedVersion int64) models.MetadataEntry {
	e := live(id, false)
	e.TombstoneVersion = retainedVersion
	return e
}

func TestBuildSyncPlan(t *testing.T) {
	planner := NewPlanner()
	ctx := context.Background()

	// ── Upload cases ────────────────────────────────────────────────────────

	t.Run("new local item is uploaded", func(t *testing.T) {
		plan, err := planner.BuildSyncPlan(ctx, docWith(live("a", false)), docWith())
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, plan.Uploads)
		assert.Empty(t, plan.Downloads)
		assert.Empty(t, plan.Tombstones)
		assert.Empty(t, plan.LocalDeletes)
	})

	t.Run("unsynced local change is uploaded even when cloud is live", func(t *testing.T) {
		plan, err := planner.BuildSyncPlan(ctx, docWith(live("a", false)), docWith(live("a", true)))
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, plan.Uploads)
	})

	t.Run("restore past the cloud tombstone is uploaded", func(t *testing.T) {
		// The local side restored the item, retaining tombstone version 2:
		// equal to the cloud tombstone's version, so the restore wins.
		plan, err := planner.BuildSyncPlan(ctx, docWith(restored("a", 2)), docWith(tombstone("a", 2)))
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, plan.Uploads)
		assert.Empty(t, plan.LocalDeletes)
	})

	// ── Download cases ──────────────────────────────────────────────────────

	t.Run("cloud-only live item is downloaded", func(t *testing.T) {
		plan, err := planner.BuildSyncPlan(ctx, docWith(), docWith(live("b", true)))
		require.NoError(t, err)
		assert.Equal(t, []string{"b"}, plan.Downloads)
		assert.Empty(t, plan.Uploads)
	})

	t.Run("cloud restore supersedes the local tombstone", func(t *testing.T) {
		// Another session restored the item: its live entry retains a
		// tombstone version at or past ours, so the payload comes back.
		cloud := docWith(restored("a", 3))
		plan, err := planner.BuildSyncPlan(ctx, docWith(tombstone("a", 3)), cloud)
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, plan.Downloads)
		assert.Empty(t, plan.Tombstones)
	})

	// ── Tombstone propagation ───────────────────────────────────────────────

	t.Run("local tombstone unknown to the cloud propagates", func(t *testing.T) {
		plan, err := planner.BuildSyncPlan(ctx, docWith(tombstone("a", 1)), docWith())
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, plan.Tombstones)
	})

	t.Run("local tombstone beats an older cloud live entry", func(t *testing.T) {
		plan, err := planner.BuildSyncPlan(ctx, docWith(tombstone("a", 2)), docWith(live("a", true)))
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, plan.Tombstones)
	})

	t.Run("equal cloud tombstone needs no action", func(t *testing.T) {
		plan, err := planner.BuildSyncPlan(ctx, docWith(tombstone("a", 2)), docWith(tombstone("a", 2)))
		require.NoError(t, err)
		assert.True(t, plan.Empty())
	})

	// ── Local deletion cases ────────────────────────────────────────────────

	t.Run("strictly newer cloud tombstone deletes locally", func(t *testing.T) {
		plan, err := planner.BuildSyncPlan(ctx, docWith(restored("a", 1)), docWith(tombstone("a", 2)))
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, plan.LocalDeletes)
		assert.Empty(t, plan.Uploads)
	})

	t.Run("equal-version cloud tombstone deletes a synced local entry", func(t *testing.T) {
		local := live("a", true)
		local.TombstoneVersion = 1
		plan, err := planner.BuildSyncPlan(ctx, docWith(local), docWith(tombstone("a", 1)))
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, plan.LocalDeletes)
	})

	// ── Steady state ────────────────────────────────────────────────────────

	t.Run("fully reconciled documents produce an empty plan", func(t *testing.T) {
		local := docWith(live("a", true), tombstone("b", 1))
		cloud := docWith(live("a", true), tombstone("b", 1))
		plan, err := planner.BuildSyncPlan(ctx, local, cloud)
		require.NoError(t, err)
		assert.True(t, plan.Empty())
	})

	t.Run("cloud-only tombstone is adopted without a payload action", func(t *testing.T) {
		plan, err := planner.BuildSyncPlan(ctx, docWith(), docWith(tombstone("ghost", 4)))
		require.NoError(t, err)
		assert.True(t, plan.Empty())
	})
}

func TestBuildSyncPlanCancelled(t *testing.T) {
	planner := NewPlanner()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := planner.BuildSyncPlan(ctx, docWith(live("a", false)), docWith())
	assert.ErrorIs(t, err, context.Canceled)
}
