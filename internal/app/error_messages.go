// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// sync agent's control API handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
// Keeping them in one place ensures consistent wording throughout the API.
package app

const (
	// MsgInvalidJSON is returned when the request body cannot be decoded.
	MsgInvalidJSON = "Invalid JSON was passed"

	// MsgConfirmRequired is returned when a destructive operation is called
	// without the explicit confirm=true query parameter.
	MsgConfirmRequired = "destructive operation requires confirm=true"

	// MsgBackupKeyRequired is returned when a backup route is called with an
	// empty key parameter.
	MsgBackupKeyRequired = "backup key is required"

	// MsgTombstoneIDRequired is returned when the purge route is called with
	// an empty id parameter.
	MsgTombstoneIDRequired = "tombstone id is required"

	// MsgIDsRequired is returned when a tombstone restore request carries an
	// empty id list.
	MsgIDsRequired = "at least one id is required"

	// MsgSavingSettings is returned when persisting runtime settings fails.
	MsgSavingSettings = "error saving settings"

	// MsgRequestTimedOut is written by the control server's timeout wrapper
	// when a request exceeds the configured limit.
	MsgRequestTimedOut = "control request timed out"
)
