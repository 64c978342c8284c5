// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// TombstoneMirror is the payload of a deletion marker written into the
// settings store under the tombstone key prefix. Mirrors survive a crash
// between the local delete and the next metadata reconciliation, and they
// travel through sync like any other non-excluded setting so a peer session
// learns about the deletion even before metadata exchange.
type TombstoneMirror struct {
	Kind      ItemKind       `json:"kind"`
	DeletedAt time.Time      `json:"deleted_at"`
	Source    DeletionSource `json:"source"`
}
