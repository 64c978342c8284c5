// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for payload fingerprinting, JSON response writing,
// JWT expiry inspection, and UUID generation.
package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest returns the hex-encoded SHA-256 fingerprint of data. Used to
// detect local payload changes between sync runs without storing the
// payload itself.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
