package models

import (
	"testing"
	"time"
)

func TestMarkDeletedBumpsVersionOnce(t *testing.T) {
	doc := NewMetadataDocument()
	at := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	entry := doc.MarkDeleted("records/1", KindRecord, SourceManual, at)
	if entry.TombstoneVersion != 1 {
		t.Fatalf("first deletion version = %d, want 1", entry.TombstoneVersion)
	}
	if !entry.Deleted || entry.Synced {
		t.Fatalf("unexpected entry state: %+v", entry)
	}

	// Deleting an already-deleted entry must not move the version.
	again := doc.MarkDeleted("records/1", KindRecord, SourceManual, at.Add(time.Hour))
	if again.TombstoneVersion != 1 {
		t.Fatalf("repeated deletion version = %d, want 1", again.TombstoneVersion)
	}
}

func TestDeleteRestoreDeleteStaysMonotone(t *testing.T) {
	doc := NewMetadataDocument()
	at := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	doc.MarkDeleted("records/1", KindRecord, SourceManual, at)

	restored, ok := doc.Restore("records/1")
	if !ok {
		t.Fatal("restore of a tombstone failed")
	}
	if restored.Deleted || restored.Synced {
		t.Fatalf("unexpected restored state: %+v", restored)
	}
	if restored.TombstoneVersion != 1 {
		t.Fatalf("restore dropped the retained version: %d", restored.TombstoneVersion)
	}
	if restored.DeletedAt != nil {
		t.Fatal("restore kept the deletion time")
	}

	second := doc.MarkDeleted("records/1", KindRecord, SourceManual, at.Add(time.Hour))
	if second.TombstoneVersion != 2 {
		t.Fatalf("second deletion version = %d, want 2", second.TombstoneVersion)
	}
}

func TestRestoreLiveEntryIsNoop(t *testing.T) {
	doc := NewMetadataDocument()
	doc.Upsert(MetadataEntry{ItemID: "a", Type: KindSetting, Synced: true})

	if _, ok := doc.Restore("a"); ok {
		t.Fatal("restoring a live entry must report false")
	}
	if _, ok := doc.Restore("missing"); ok {
		t.Fatal("restoring an unknown id must report false")
	}
}

func TestCloneIsDeep(t *testing.T) {
	doc := NewMetadataDocument()
	at := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	doc.MarkDeleted("records/1", KindRecord, SourceManual, at)

	clone := doc.Clone()
	clone.MarkDeleted("records/2", KindRecord, SourceManual, at)
	if _, ok := doc.Entry("records/2"); ok {
		t.Fatal("mutating the clone leaked into the original")
	}

	cloned, _ := clone.Entry("records/1")
	*cloned.DeletedAt = at.Add(time.Hour)
	original, _ := doc.Entry("records/1")
	if !original.DeletedAt.Equal(at) {
		t.Fatal("clone shares DeletedAt with the original")
	}
}

func TestTombstones(t *testing.T) {
	doc := NewMetadataDocument()
	doc.Upsert(MetadataEntry{ItemID: "live", Type: KindSetting, Synced: true})
	doc.MarkDeleted("dead", KindRecord, SourceManual, time.Now())

	stones := doc.Tombstones()
	if len(stones) != 1 || stones[0].ItemID != "dead" {
		t.Fatalf("unexpected tombstones: %+v", stones)
	}
}
