package service

import (
	"context"

	"github.com/MKhiriev/go-vault-sync/models"
)

// syncPlanner is the concrete implementation of Planner. It performs a
// purely in-memory comparison of the local and cloud metadata documents;
// no storage layer or logger is required because the operation is
// stateless and produces no side effects.
type syncPlanner struct{}

// NewPlanner constructs a Planner ready for use.
func NewPlanner() Planner {
	return &syncPlanner{}
}

// BuildSyncPlan implements Planner.
//
// It walks the union of ids known to either document and classifies each
// into at most one action. Ordering between tombstones and live data is
// decided by TombstoneVersion, never by wall-clock time:
//
//   - a tombstone only beats live data when its version is strictly newer
//     than the version the live entry retains, or equal while the live
//     side has nothing unsynced to defend;
//   - a live entry with Synced=0 carrying a version equal to or above the
//     tombstone's is a restore and wins.
//
// ctx cancellation is checked per iteration so callers can abort early on
// large documents.
func (p *syncPlanner) BuildSyncPlan(
	ctx context.Context,
	local, cloud *models.MetadataDocument,
) (models.SyncPlan, error) {
	var plan models.SyncPlan

	seen := make(map[string]struct{}, len(local.Entries)+len(cloud.Entries))

	// ── Pass 1: iterate over local entries ──────────────────────────────────
	for id, le := range local.Entries {
		if err := ctx.Err(); err != nil {
			return models.SyncPlan{}, err
		}
		seen[id] = struct{}{}

		ce, existsInCloud := cloud.Entry(id)

		if le.Deleted {
			// Local tombstone. Propagate unless the cloud already carries it
			// at this version or newer, or the cloud restored past it.
			switch {
			case !existsInCloud:
				plan.Tombstones = append(plan.Tombstones, id)

			case ce.Deleted && ce.TombstoneVersion >= le.TombstoneVersion:
				// Cloud already has an equal-or-newer tombstone, nothing to do.

			case !ce.Deleted && ce.TombstoneVersion >= le.TombstoneVersion:
				// Cloud restored the item at or past our tombstone's version
				// -> the restore supersedes the deletion, pull it back.
				plan.Downloads = append(plan.Downloads, id)

			default:
				plan.Tombstones = append(plan.Tombstones, id)
			}
			continue
		}

		// Local live entry.
		switch {
		case existsInCloud && ce.Deleted && ce.TombstoneVersion > le.TombstoneVersion:
			// Cloud tombstone is strictly newer than anything this entry
			// retains -> the deletion wins, remove locally.
			plan.LocalDeletes = append(plan.LocalDeletes, id)

		case existsInCloud && ce.Deleted && ce.TombstoneVersion == le.TombstoneVersion && le.Synced:
			// Same version and nothing unsynced to defend -> deletion wins.
			plan.LocalDeletes = append(plan.LocalDeletes, id)

		case !le.Synced || !existsInCloud:
			// Unsynced local change, a restore overriding an older tombstone,
			// or an entry the cloud document lost -> upload.
			plan.Uploads = append(plan.Uploads, id)

		default:
			// Live on both sides and synced -> already reconciled.
		}
	}

	// ── Pass 2: cloud-only entries (absent locally) ─────────────────────────
	for id, ce := range cloud.Entries {
		if err := ctx.Err(); err != nil {
			return models.SyncPlan{}, err
		}
		if _, ok := seen[id]; ok {
			continue
		}

		if !ce.Deleted {
			// Live item this session has never seen -> download.
			plan.Downloads = append(plan.Downloads, id)
		}
		// ce.Deleted && unknown locally: the item was created and deleted
		// elsewhere before this session ever synced it. Adopt the tombstone
		// entry during the merge, no payload action.
	}

	return plan, nil
}
