// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// DeletionSource records who initiated an item deletion. It is kept in the
// tombstone so a remote session can distinguish a user action from a
// deletion it is merely replaying.
type DeletionSource string

const (
	// SourceManual marks a deletion initiated by the user on this session.
	SourceManual DeletionSource = "manual"

	// SourceTombstoneSync marks a deletion applied while replaying a remote
	// tombstone. Deletions with this source never create a new tombstone.
	SourceTombstoneSync DeletionSource = "tombstone-sync"
)

// MetadataEntry is the sync state of one item id. One entry exists per known
// id in the shared metadata document, whether the item is live or deleted.
type MetadataEntry struct {
	// ItemID is the key of the item this entry describes.
	ItemID string `json:"item_id"`

	// Synced is true when the local payload matches the last-known-cloud
	// state. A false value marks the item for upload on the next sync.
	Synced bool `json:"synced"`

	// Deleted is true when the entry is a tombstone.
	Deleted bool `json:"deleted,omitempty"`

	// DeletedAt is the wall-clock deletion time. Informational only; the
	// reconciliation algorithm orders tombstones by TombstoneVersion, not
	// by time, to tolerate clock skew across sessions.
	DeletedAt *time.Time `json:"deleted_at,omitempty"`

	// TombstoneVersion increases by one every time the same id transitions
	// from live to deleted. It is retained across restores so that a
	// delete->restore->delete sequence stays strictly monotone.
	TombstoneVersion int64 `json:"tombstone_version,omitempty"`

	// Source records who initiated the deletion.
	Source DeletionSource `json:"source,omitempty"`

	// Type is the kind of the underlying item, needed to materialize a
	// downloaded payload into the right local store.
	Type ItemKind `json:"type"`

	// Digest is a fingerprint of the last payload this session observed.
	// A mismatch during enumeration marks the entry unsynced. Local-only:
	// it is stripped from the cloud copy of the document, and a merge
	// never adopts another session's digest over this one's.
	Digest string `json:"digest,omitempty"`
}

// MetadataDocument is the single shared document reconciled between local
// and cloud state. The cloud copy is authoritative for "last known cloud
// state"; an absent cloud copy means first sync.
type MetadataDocument struct {
	UpdatedAt time.Time                `json:"updated_at"`
	Entries   map[string]MetadataEntry `json:"entries"`
}

// NewMetadataDocument returns an empty document ready for use.
func NewMetadataDocument() *MetadataDocument {
	return &MetadataDocument{Entries: make(map[string]MetadataEntry)}
}

// Entry returns the metadata entry for id, reporting whether it exists.
func (d *MetadataDocument) Entry(id string) (MetadataEntry, bool) {
	if d == nil || d.Entries == nil {
		return MetadataEntry{}, false
	}
	e, ok := d.Entries[id]
	return e, ok
}

// Upsert stores entry under its item id, allocating the map if needed.
func (d *MetadataDocument) Upsert(entry MetadataEntry) {
	if d.Entries == nil {
		d.Entries = make(map[string]MetadataEntry)
	}
	d.Entries[entry.ItemID] = entry
}

// MarkDeleted turns the entry for id into a tombstone, bumping the
// tombstone version. A live item with no prior tombstone gets version 1;
// deleting again after a restore continues from the retained version.
// Marking an already-deleted entry is a no-op (the version must only
// move when the entry transitions from live to deleted).
func (d *MetadataDocument) MarkDeleted(id string, kind ItemKind, source DeletionSource, at time.Time) MetadataEntry {
	entry, ok := d.Entry(id)
	if ok && entry.Deleted {
		return entry
	}
	if !ok {
		entry = MetadataEntry{ItemID: id, Type: kind}
	}

	entry.Deleted = true
	entry.DeletedAt = &at
	entry.TombstoneVersion++
	entry.Source = source
	entry.Synced = false
	d.Upsert(entry)
	return entry
}

// Restore clears the tombstone state of id and marks the entry unsynced so
// the payload is re-uploaded. TombstoneVersion is retained: the restored
// live entry carries it as proof that it supersedes the old tombstone, and
// the next deletion bumps past it.
func (d *MetadataDocument) Restore(id string) (MetadataEntry, bool) {
	entry, ok := d.Entry(id)
	if !ok || !entry.Deleted {
		return entry, false
	}

	entry.Deleted = false
	entry.DeletedAt = nil
	entry.Source = ""
	entry.Synced = false
	d.Upsert(entry)
	return entry, true
}

// Tombstones returns all deleted entries.
func (d *MetadataDocument) Tombstones() []MetadataEntry {
	var out []MetadataEntry
	for _, e := range d.Entries {
		if e.Deleted {
			out = append(out, e)
		}
	}
	return out
}

// Clone returns a deep copy of the document.
func (d *MetadataDocument) Clone() *MetadataDocument {
	out := &MetadataDocument{
		UpdatedAt: d.UpdatedAt,
		Entries:   make(map[string]MetadataEntry, len(d.Entries)),
	}
	for id, e := range d.Entries {
		if e.DeletedAt != nil {
			at := *e.DeletedAt
			e.DeletedAt = &at
		}
		out.Entries[id] = e
	}
	return out
}
