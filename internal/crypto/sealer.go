// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

const saltSize = 16

var (
	// ErrEmptyPassphrase is returned by Seal and Open when no key is configured.
	ErrEmptyPassphrase = errors.New("session key is empty")

	// ErrSealBroken means the blob is truncated, tampered with or sealed
	// under another passphrase.
	ErrSealBroken = errors.New("sealed value cannot be opened")
)

// sessionSealer is the private implementation of [SessionSealer].
type sessionSealer struct {
	passphrase []byte

	// Argon2id tuning parameters. Stored in the struct so they can be
	// adjusted per deployment target.
	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8
	argonKeyLen  uint32
}

// NewSessionSealer constructs a [SessionSealer] with the Argon2id
// parameters recommended by OWASP (2024):
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
//   - key length:  32 bytes (256 bits)
func NewSessionSealer(passphrase string) SessionSealer {
	return &sessionSealer{
		passphrase:   []byte(passphrase),
		argonTime:    1,
		argonMemory:  64 * 1024, // 64 MiB
		argonThreads: 4,
		argonKeyLen:  32, // 256 bits
	}
}

// Seal implements [SessionSealer].
func (s *sessionSealer) Seal(v any) ([]byte, error) {
	if len(s.passphrase) == 0 {
		return nil, ErrEmptyPassphrase
	}

	// 1. Serialize to JSON
	plaintext, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal data: %w", err)
	}

	// 2. Fresh salt per seal, key derived from it
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	gcm, err := s.newGCM(salt)
	if err != nil {
		return nil, err
	}

	// 3. Generate a random nonce
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	// 4. Encrypt: salt || nonce || ciphertext
	blob := make([]byte, 0, saltSize+len(nonce)+len(plaintext)+gcm.Overhead())
	blob = append(blob, salt...)
	blob = append(blob, nonce...)
	blob = gcm.Seal(blob, nonce, plaintext, nil)

	out := make([]byte, base64.StdEncoding.EncodedLen(len(blob)))
	base64.StdEncoding.Encode(out, blob)
	return out, nil
}

// Open implements [SessionSealer].
func (s *sessionSealer) Open(sealed []byte, target any) error {
	if len(s.passphrase) == 0 {
		return ErrEmptyPassphrase
	}

	// 1. Decode base64 blob
	blob := make([]byte, base64.StdEncoding.DecodedLen(len(sealed)))
	n, err := base64.StdEncoding.Decode(blob, sealed)
	if err != nil {
		return fmt.Errorf("%w: decode base64: %v", ErrSealBroken, err)
	}
	blob = blob[:n]

	if len(blob) < saltSize {
		return fmt.Errorf("%w: blob too short", ErrSealBroken)
	}
	salt, rest := blob[:saltSize], blob[saltSize:]

	gcm, err := s.newGCM(salt)
	if err != nil {
		return err
	}

	// 2. Split nonce and ciphertext
	nonceSize := gcm.NonceSize()
	if len(rest) < nonceSize {
		return fmt.Errorf("%w: ciphertext too short", ErrSealBroken)
	}
	nonce, ciphertext := rest[:nonceSize], rest[nonceSize:]

	// 3. Decrypt and verify auth tag
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSealBroken, err)
	}

	// 4. Unmarshal JSON into target
	if err := json.Unmarshal(plaintext, target); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	return nil
}

func (s *sessionSealer) newGCM(salt []byte) (cipher.AEAD, error) {
	key := argon2.IDKey(s.passphrase, salt, s.argonTime, s.argonMemory, s.argonThreads, s.argonKeyLen)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}
