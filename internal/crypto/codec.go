// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CryptaTrack Authors

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"

	"github.com/cryptatrack/cryptatrack/models"
)

// ErrDecryptFailed is returned when an envelope cannot be opened: wrong
// password, corrupted ciphertext, or an authentication-tag mismatch.
var ErrDecryptFailed = errors.New("decrypt failed")

// FallbackPublicKey tags EncryptedValues produced by the local codec rather
// than the remote network.
const FallbackPublicKey = "fallback"

// envelopeVersion is the first byte of every envelope blob. Bump it on any
// format change so old envelopes stay decodable.
const envelopeVersion = 0x01

const saltSize = 16

// codec is the private implementation of [Codec].
type codec struct {
	// Argon2id tuning parameters. Stored in the struct so they can be
	// adjusted per deployment target.
	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8
	argonKeyLen  uint32
}

// NewCodec constructs a [Codec] with the Argon2id parameters recommended by
// OWASP (2024):
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
//   - key length:  32 bytes (256 bits)
func NewCodec() Codec {
	return &codec{
		argonTime:    1,
		argonMemory:  64 * 1024, // 64 MiB
		argonThreads: 4,
		argonKeyLen:  32, // 256 bits
	}
}

// Encrypt implements [Codec]. Each call draws a fresh random salt and nonce,
// derives a 256-bit key from password via Argon2id, and seals the JSON
// plaintext with AES-256-GCM. The output is a Base64 (standard encoding)
// string of the blob: version (1 byte) ‖ salt (16 bytes) ‖ nonce (12 bytes)
// ‖ ciphertext.
func (c *codec) Encrypt(v any, password string) (string, error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal data: %w", err)
	}

	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	gcm, err := c.newGCM(password, salt)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)

	blob := make([]byte, 0, 1+len(salt)+len(nonce)+len(ciphertext))
	blob = append(blob, envelopeVersion)
	blob = append(blob, salt...)
	blob = append(blob, nonce...)
	blob = append(blob, ciphertext...)

	return base64.StdEncoding.EncodeToString(blob), nil
}

// Decrypt implements [Codec]. It splits the blob into version, salt, nonce,
// and ciphertext, re-derives the key, decrypts, and unmarshals the JSON into
// target. All open failures map to ErrDecryptFailed so a caller cannot tell
// a wrong password from tampering.
func (c *codec) Decrypt(envelope string, password string, target any) error {
	blob, err := base64.StdEncoding.DecodeString(envelope)
	if err != nil {
		return fmt.Errorf("%w: decode base64: %w", ErrDecryptFailed, err)
	}

	if len(blob) < 1 || blob[0] != envelopeVersion {
		return fmt.Errorf("%w: unsupported envelope version", ErrDecryptFailed)
	}
	blob = blob[1:]

	if len(blob) < saltSize {
		return fmt.Errorf("%w: envelope too short", ErrDecryptFailed)
	}
	salt, rest := blob[:saltSize], blob[saltSize:]

	gcm, err := c.newGCM(password, salt)
	if err != nil {
		return err
	}

	nonceSize := gcm.NonceSize()
	if len(rest) < nonceSize {
		return fmt.Errorf("%w: envelope too short", ErrDecryptFailed)
	}
	nonce, ciphertext := rest[:nonceSize], rest[nonceSize:]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		// Almost always a wrong password producing a wrong key.
		return fmt.Errorf("%w: %w", ErrDecryptFailed, err)
	}

	if err := json.Unmarshal(plaintext, target); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}

	return nil
}

// EncryptValue implements [Codec].
func (c *codec) EncryptValue(v any, password string) (models.EncryptedValue, error) {
	envelope, err := c.Encrypt(v, password)
	if err != nil {
		return models.EncryptedValue{}, err
	}

	nonce := make([]byte, 12)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return models.EncryptedValue{}, fmt.Errorf("generate nonce tag: %w", err)
	}

	return models.EncryptedValue{
		Encrypted: envelope,
		Nonce:     hex.EncodeToString(nonce),
		PublicKey: FallbackPublicKey,
	}, nil
}

// newGCM derives the AES key from password and salt and builds the GCM AEAD.
func (c *codec) newGCM(password string, salt []byte) (cipher.AEAD, error) {
	key := argon2.IDKey(
		[]byte(password),
		salt,
		c.argonTime,
		c.argonMemory,
		c.argonThreads,
		c.argonKeyLen,
	)

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
