package sessionkeys

import (
	"crypto/aes"
	"encoding/hex"

	keywrap "github.com/NickBall/go-aes-key-wrap"
	"github.com/pkg/errors"
)

// Envelope is a session key as handed back to a caller that may or may
// not have supplied a key-encryption key: AESKey is the raw hex key
// when no KEK is configured, or the RFC 3394 key-wrapped ciphertext
// (hex-encoded) when KEKLabel is set.
type Envelope struct {
	KEKLabel string `json:"kekLabel,omitempty"`
	AESKey   string `json:"aesKey"`
}

// Wrap builds the Envelope for key under the named KEK, or returns the
// key unwrapped if kekLabel is empty (no KEK configured for the
// caller's network).
func Wrap(kekLabel string, kek []byte, key [16]byte) (Envelope, error) {
	if kekLabel == "" || len(kek) == 0 {
		return Envelope{AESKey: hex.EncodeToString(key[:])}, nil
	}

	block, err := aes.NewCipher(kek)
	if err != nil {
		return Envelope{}, errors.Wrap(err, "new cipher")
	}

	wrapped, err := keywrap.Wrap(block, key[:])
	if err != nil {
		return Envelope{}, errors.Wrap(err, "key wrap")
	}

	return Envelope{
		KEKLabel: kekLabel,
		AESKey:   hex.EncodeToString(wrapped),
	}, nil
}
