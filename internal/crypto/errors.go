package crypto

import "errors"

var (
	// ErrNoEncryptionKey is returned when an encrypt or decrypt operation
	// is attempted before a passphrase has been set. This is a hard
	// failure: callers must not retry, no network call may be attempted.
	ErrNoEncryptionKey = errors.New("no encryption key configured")

	// ErrCiphertextTooShort is returned when the input is shorter than the
	// GCM nonce and therefore cannot contain a valid sealed payload.
	ErrCiphertextTooShort = errors.New("ciphertext too short")

	// ErrNotObfuscated is returned by Deobfuscate when the value does not
	// carry the obfuscation marker.
	ErrNotObfuscated = errors.New("value is not obfuscated")
)
