package models

// EncryptedValue is the opaque envelope exchanged everywhere an amount is
// passed between layers. Encrypted is self-contained: decoding it needs only
// the password or key held by the owning client, never side-channel state.
// Values are immutable once created and replaced wholesale, never mutated.
type EncryptedValue struct {
	Encrypted string `json:"encrypted"`
	Nonce     string `json:"nonce"`
	PublicKey string `json:"publicKey"`
}

// IsZero reports whether the value carries no ciphertext at all.
func (v EncryptedValue) IsZero() bool {
	return v.Encrypted == ""
}
