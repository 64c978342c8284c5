// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

// Service defines the contract for encrypting and decrypting sync payloads
// with a key derived from the user's passphrase. The passphrase must be set
// via SetPassphrase before any encrypt or decrypt call; operations without a
// passphrase fail with [ErrNoEncryptionKey] and are never retried.
type Service interface {
	// SetPassphrase stores the passphrase used to derive the payload key.
	// Derived keys are cached, so repeated calls with the same passphrase
	// do not re-run the derivation.
	SetPassphrase(passphrase string)

	// Encrypt marshals v to JSON, optionally compresses it, and seals it
	// with AES-256-GCM. Output layout: nonce (12 bytes) || ciphertext.
	// contextID, when given, is attached to error messages for diagnosis;
	// it does not participate in the cryptography.
	Encrypt(v any, contextID ...string) ([]byte, error)

	// Decrypt reverses Encrypt: splits the nonce, opens the ciphertext,
	// attempts decompression (falling back to the raw bytes for data
	// written before compression was introduced), and unmarshals the JSON
	// into target.
	Decrypt(data []byte, target any) error

	// EncryptBytes seals raw bytes without the JSON envelope. Used for
	// binary blobs and attachments.
	EncryptBytes(plain []byte) ([]byte, error)

	// DecryptBytes reverses EncryptBytes.
	DecryptBytes(data []byte) ([]byte, error)

	// Close stops the background cache sweeper.
	Close()
}

// Obfuscator hides credential values at rest in the settings store. This is
// deliberately not the payload encryption: it uses a keystream derived from
// the passphrase with a distinct KDF so a leaked settings dump does not
// expose provider credentials in plain text, while the payload key stays
// unused outside the sync path.
type Obfuscator interface {
	// Obfuscate returns the at-rest form of plain: the "enc:" marker
	// followed by base64 of plain XORed with the passphrase keystream.
	Obfuscate(plain, passphrase string) string

	// Deobfuscate reverses Obfuscate. Returns an error if value does not
	// carry the marker or cannot be decoded.
	Deobfuscate(value, passphrase string) (string, error)

	// IsObfuscated reports whether value carries the "enc:" marker.
	IsObfuscated(value string) bool
}
