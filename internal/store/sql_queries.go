// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

const (
	getSetting = `
		SELECT value
		FROM settings
		WHERE key = $1;`

	upsertSetting = `
		INSERT INTO settings (key, value, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value      = excluded.value,
			updated_at = CURRENT_TIMESTAMP;`

	deleteSetting = `
		DELETE FROM settings
		WHERE key = $1;`

	listSettingsByPrefix = `
		SELECT key, value
		FROM settings
		WHERE key LIKE $1 || '%';`

	statSettings = `
		SELECT key, LENGTH(value)
		FROM settings
		ORDER BY key;`

	getRecord = `
		SELECT id, kind, payload, field_count
		FROM records
		WHERE id = $1 AND kind = $2;`

	upsertRecord = `
		INSERT INTO records (id, kind, payload, field_count, updated_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP)
		ON CONFLICT(id, kind) DO UPDATE SET
			payload     = excluded.payload,
			field_count = excluded.field_count,
			updated_at  = CURRENT_TIMESTAMP;`

	deleteRecord = `
		DELETE FROM records
		WHERE id = $1 AND kind = $2;`

	statRecords = `
		SELECT id, kind, field_count, LENGTH(payload)
		FROM records
		ORDER BY id;`
)
