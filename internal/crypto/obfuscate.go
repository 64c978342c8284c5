// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// obfuscationMarker prefixes every obfuscated value so loaders can tell an
// at-rest credential apart from one entered in plain text.
const obfuscationMarker = "enc:"

// obfuscationSalt domain-separates the credential keystream from the payload
// encryption key. Changing it invalidates every stored credential, so it is
// a constant, not configuration.
const obfuscationSalt = "go-vault-sync/credential-obfuscation/v1"

const obfuscationIterations = 4096

type xorObfuscator struct{}

// NewObfuscator constructs the credential [Obfuscator].
func NewObfuscator() Obfuscator {
	return &xorObfuscator{}
}

// Obfuscate implements [Obfuscator].
func (o *xorObfuscator) Obfuscate(plain, passphrase string) string {
	if plain == "" {
		return ""
	}

	stream := keystream(passphrase, len(plain))
	out := make([]byte, len(plain))
	for i := 0; i < len(plain); i++ {
		out[i] = plain[i] ^ stream[i]
	}

	return obfuscationMarker + base64.StdEncoding.EncodeToString(out)
}

// Deobfuscate implements [Obfuscator].
func (o *xorObfuscator) Deobfuscate(value, passphrase string) (string, error) {
	if !o.IsObfuscated(value) {
		return "", ErrNotObfuscated
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(value, obfuscationMarker))
	if err != nil {
		return "", fmt.Errorf("decode obfuscated value: %w", err)
	}

	stream := keystream(passphrase, len(raw))
	out := make([]byte, len(raw))
	for i := range raw {
		out[i] = raw[i] ^ stream[i]
	}

	return string(out), nil
}

// IsObfuscated implements [Obfuscator].
func (o *xorObfuscator) IsObfuscated(value string) bool {
	return strings.HasPrefix(value, obfuscationMarker)
}

// keystream derives length bytes from the passphrase with PBKDF2-SHA256.
// Equal-length inputs under the same passphrase share a keystream prefix,
// which is acceptable here: the goal is hiding credentials from casual
// settings-store inspection, not authenticated encryption (that is the
// payload path's job).
func keystream(passphrase string, length int) []byte {
	return pbkdf2.Key([]byte(passphrase), []byte(obfuscationSalt), obfuscationIterations, length, sha256.New)
}
