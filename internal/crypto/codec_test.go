package crypto

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/cryptatrack/cryptatrack/models"
)

type payload struct {
	Value string `json:"value"`
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	c := NewCodec()

	in := payload{Value: "1234.56"}
	envelope, err := c.Encrypt(in, "portfolio")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	var out payload
	if err := c.Decrypt(envelope, "portfolio", &out); err != nil {
		t.Fatalf("Decrypt error: %v", err)
	}
	if out != in {
		t.Fatalf("round trip mismatch: got %+v, want %+v", out, in)
	}
}

func TestDecrypt_WrongPassword(t *testing.T) {
	c := NewCodec()

	envelope, err := c.Encrypt(payload{Value: "42"}, "correct horse")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	var out payload
	err = c.Decrypt(envelope, "battery staple", &out)
	if !errors.Is(err, ErrDecryptFailed) {
		t.Fatalf("Decrypt error = %v, want ErrDecryptFailed", err)
	}
}

func TestDecrypt_TamperedCiphertext(t *testing.T) {
	c := NewCodec()

	envelope, err := c.Encrypt(payload{Value: "42"}, "pw")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	blob, err := base64.StdEncoding.DecodeString(envelope)
	if err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	blob[len(blob)-1] ^= 0xFF
	tampered := base64.StdEncoding.EncodeToString(blob)

	var out payload
	err = c.Decrypt(tampered, "pw", &out)
	if !errors.Is(err, ErrDecryptFailed) {
		t.Fatalf("Decrypt error = %v, want ErrDecryptFailed", err)
	}
}

func TestDecrypt_UnsupportedVersion(t *testing.T) {
	c := NewCodec()

	envelope, err := c.Encrypt(payload{Value: "42"}, "pw")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	blob, _ := base64.StdEncoding.DecodeString(envelope)
	blob[0] = 0x7F
	bad := base64.StdEncoding.EncodeToString(blob)

	var out payload
	err = c.Decrypt(bad, "pw", &out)
	if !errors.Is(err, ErrDecryptFailed) {
		t.Fatalf("Decrypt error = %v, want ErrDecryptFailed", err)
	}
}

func TestEncrypt_FreshSaltPerEnvelope(t *testing.T) {
	c := NewCodec()

	e1, err := c.Encrypt(payload{Value: "same"}, "pw")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	e2, err := c.Encrypt(payload{Value: "same"}, "pw")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	if e1 == e2 {
		t.Fatalf("expected distinct envelopes for identical plaintext")
	}

	b1, _ := base64.StdEncoding.DecodeString(e1)
	b2, _ := base64.StdEncoding.DecodeString(e2)
	if strings.EqualFold(string(b1[1:1+saltSize]), string(b2[1:1+saltSize])) {
		t.Fatalf("expected distinct salts, got equal")
	}
}

func TestEncryptValue_FallbackShape(t *testing.T) {
	c := NewCodec()

	ev, err := c.EncryptValue(payload{Value: "9.75"}, "pw")
	if err != nil {
		t.Fatalf("EncryptValue error: %v", err)
	}

	if ev.PublicKey != FallbackPublicKey {
		t.Fatalf("PublicKey = %q, want %q", ev.PublicKey, FallbackPublicKey)
	}
	if ev.Nonce == "" {
		t.Fatalf("expected non-empty nonce tag")
	}

	var out payload
	if err := c.Decrypt(ev.Encrypted, "pw", &out); err != nil {
		t.Fatalf("Decrypt error: %v", err)
	}
	if out.Value != "9.75" {
		t.Fatalf("Value = %q, want %q", out.Value, "9.75")
	}

	var zero models.EncryptedValue
	if zero.IsZero() != true || ev.IsZero() {
		t.Fatalf("IsZero misbehaves")
	}
}
