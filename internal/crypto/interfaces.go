// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CryptaTrack Authors

package crypto

import "github.com/cryptatrack/cryptatrack/models"

// Codec is the local symmetric fallback used when the remote network cannot
// encrypt a value. Envelopes produced here are not interoperable with values
// produced remotely; consumers must not assume otherwise.
type Codec interface {
	// Encrypt marshals v to JSON and seals it under a key derived from
	// password. The returned envelope is self-contained: it embeds the salt
	// and nonce needed for decryption.
	Encrypt(v any, password string) (string, error)

	// Decrypt opens an envelope produced by Encrypt and unmarshals the
	// plaintext JSON into target, which must be a non-nil pointer. A wrong
	// password or tampered ciphertext yields ErrDecryptFailed.
	Decrypt(envelope string, password string, target any) error

	// EncryptValue wraps Encrypt into the EncryptedValue wire shape with the
	// fallback public-key tag.
	EncryptValue(v any, password string) (models.EncryptedValue, error)
}
