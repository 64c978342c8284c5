// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/golang/snappy"
	"github.com/jonboulle/clockwork"

	"github.com/MKhiriev/go-vault-sync/internal/logger"
)

const (
	// keyCacheCapacity bounds the number of derived keys kept in memory.
	keyCacheCapacity = 10

	// sweepInterval is how often the cache sweeper runs. When the cache is
	// over half-full the sweeper evicts the oldest half; this bounds memory
	// without per-entry TTL bookkeeping.
	sweepInterval = 30 * time.Minute
)

type cachedKey struct {
	aead cipher.AEAD
}

// service is the private implementation of [Service].
type service struct {
	clock    clockwork.Clock
	log      *logger.Logger
	compress bool

	mu         sync.Mutex
	passphrase string
	cache      map[string]cachedKey
	order      []string // derivation order, oldest first

	stopOnce sync.Once
	stop     chan struct{}
}

// NewService constructs a [Service] with compression enabled and starts the
// background key-cache sweeper. Callers must Close the service on shutdown.
func NewService(log *logger.Logger) Service {
	return newService(log, clockwork.NewRealClock(), true)
}

// NewServiceWithOptions is like [NewService] but allows disabling the
// pre-encryption compression step and injecting a clock for tests.
func NewServiceWithOptions(log *logger.Logger, clock clockwork.Clock, compress bool) Service {
	return newService(log, clock, compress)
}

func newService(log *logger.Logger, clock clockwork.Clock, compress bool) *service {
	s := &service{
		clock:    clock,
		log:      log,
		compress: compress,
		cache:    make(map[string]cachedKey),
		stop:     make(chan struct{}),
	}
	go s.sweepLoop()
	return s
}

func (s *service) SetPassphrase(passphrase string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.passphrase = passphrase
}

// Close implements [Service].
func (s *service) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// deriveKey returns the AEAD for the current passphrase, deriving and
// caching it on first use. The key is SHA-256 of the passphrase imported as
// an AES-256-GCM key, matching the format used by every session of the
// same user so ciphertexts are portable across devices.
func (s *service) deriveKey() (cipher.AEAD, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.passphrase == "" {
		return nil, ErrNoEncryptionKey
	}

	digest := sha256.Sum256([]byte(s.passphrase))
	cacheKey := hex.EncodeToString(digest[:])

	if entry, ok := s.cache[cacheKey]; ok {
		return entry.aead, nil
	}

	block, err := aes.NewCipher(digest[:])
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	if len(s.cache) >= keyCacheCapacity {
		s.evictOldestLocked(1)
	}
	s.cache[cacheKey] = cachedKey{aead: gcm}
	s.order = append(s.order, cacheKey)

	return gcm, nil
}

// evictOldestLocked drops the n oldest cache entries. Caller holds s.mu.
func (s *service) evictOldestLocked(n int) {
	for i := 0; i < n && len(s.order) > 0; i++ {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.cache, oldest)
	}
}

// sweepLoop periodically evicts the oldest half of the key cache whenever
// it is more than half-full.
func (s *service) sweepLoop() {
	ticker := s.clock.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.Chan():
			s.mu.Lock()
			if len(s.cache) > keyCacheCapacity/2 {
				evicted := len(s.cache) / 2
				s.evictOldestLocked(evicted)
				s.log.Debug().
					Str("func", "crypto.service.sweepLoop").
					Int("evicted", evicted).
					Int("remaining", len(s.cache)).
					Msg("key cache sweep")
			}
			s.mu.Unlock()
		}
	}
}

// Encrypt implements [Service].
func (s *service) Encrypt(v any, contextID ...string) ([]byte, error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal payload%s: %w", contextSuffix(contextID), err)
	}

	sealed, err := s.seal(plaintext)
	if err != nil {
		return nil, fmt.Errorf("encrypt payload%s: %w", contextSuffix(contextID), err)
	}
	return sealed, nil
}

// Decrypt implements [Service].
func (s *service) Decrypt(data []byte, target any) error {
	plaintext, err := s.open(data)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(plaintext, target); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}
	return nil
}

// EncryptBytes implements [Service].
func (s *service) EncryptBytes(plain []byte) ([]byte, error) {
	return s.seal(plain)
}

// DecryptBytes implements [Service].
func (s *service) DecryptBytes(data []byte) ([]byte, error) {
	return s.open(data)
}

// seal compresses (when enabled) and AES-GCM-encrypts plaintext under the
// derived key. Output layout: nonce (12 bytes) || ciphertext.
func (s *service) seal(plaintext []byte) ([]byte, error) {
	gcm, err := s.deriveKey()
	if err != nil {
		return nil, err
	}

	if s.compress {
		// Compression failure must never fail the operation; the
		// decrypt side detects whether the payload was compressed.
		if compressed := snappy.Encode(nil, plaintext); len(compressed) < len(plaintext) {
			plaintext = compressed
		}
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)
	return append(nonce, ciphertext...), nil
}

// open splits the nonce, decrypts, and attempts decompression. Data that
// fails to decompress is returned as-is: payloads written before the
// compression step was introduced are plain JSON and must keep decrypting.
func (s *service) open(data []byte) ([]byte, error) {
	gcm, err := s.deriveKey()
	if err != nil {
		return nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return nil, ErrCiphertextTooShort
	}
	nonce, ciphertext := data[:nonceSize], data[nonceSize:]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decrypt payload: %w", err)
	}

	if decompressed, err := snappy.Decode(nil, plaintext); err == nil {
		return decompressed, nil
	}
	return plaintext, nil
}

func contextSuffix(contextID []string) string {
	if len(contextID) == 0 || contextID[0] == "" {
		return ""
	}
	return fmt.Sprintf(" (item %s)", contextID[0])
}
