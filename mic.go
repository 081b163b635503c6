package lorawan

import (
	"database/sql/driver"
	"encoding/hex"
	"errors"
	"fmt"
)

// AES128Key is a 128-bit AES key (AppKey, NwkSKey, AppSKey, ...), stored
// host-order.
type AES128Key [16]byte

// String implements fmt.Stringer.
func (k AES128Key) String() string {
	return hex.EncodeToString(k[:])
}

// MarshalText implements encoding.TextMarshaler.
func (k AES128Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *AES128Key) UnmarshalText(text []byte) error {
	b, err := hex.DecodeString(string(text))
	if err != nil {
		return err
	}
	if len(b) != len(k) {
		return fmt.Errorf("lorawan: exactly %d bytes are expected", len(k))
	}
	copy(k[:], b)
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (k AES128Key) MarshalBinary() ([]byte, error) {
	out := make([]byte, len(k))
	copy(out, k[:])
	return out, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (k *AES128Key) UnmarshalBinary(data []byte) error {
	if len(data) != len(k) {
		return fmt.Errorf("lorawan: %d bytes of data are expected", len(k))
	}
	copy(k[:], data)
	return nil
}

// Value implements driver.Valuer.
func (k AES128Key) Value() (driver.Value, error) {
	return k[:], nil
}

// Scan implements sql.Scanner.
func (k *AES128Key) Scan(src interface{}) error {
	b, ok := src.([]byte)
	if !ok {
		return errors.New("lorawan: []byte type expected")
	}
	if len(b) != len(k) {
		return fmt.Errorf("lorawan: []byte must have length %d", len(k))
	}
	copy(k[:], b)
	return nil
}

// MIC is a 4-byte Message Integrity Code, stored host-order: the first
// 4 bytes of the relevant AES-CMAC tag, byte-reversed. The wire
// representation reverses back to the raw tag prefix (see
// MarshalBinary).
type MIC [4]byte

// String implements fmt.Stringer.
func (m MIC) String() string {
	return hex.EncodeToString(m[:])
}

// MarshalText implements encoding.TextMarshaler.
func (m MIC) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The text is the
// host-order hex form produced by MarshalText, not the wire bytes.
func (m *MIC) UnmarshalText(text []byte) error {
	b, err := hex.DecodeString(string(text))
	if err != nil {
		return err
	}
	if len(b) != len(m) {
		return fmt.Errorf("lorawan: exactly %d bytes are expected", len(m))
	}
	copy(m[:], b)
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler. It produces the
// 4 wire bytes, which are the host-order bytes reversed.
func (m MIC) MarshalBinary() ([]byte, error) {
	return []byte{m[3], m[2], m[1], m[0]}, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. It takes the 4
// wire bytes (as they appear at the tail of a PHY PDU) and stores them
// host-order, i.e. reversed.
func (m *MIC) UnmarshalBinary(data []byte) error {
	if len(data) != len(m) {
		return fmt.Errorf("lorawan: %d bytes of data are expected", len(m))
	}
	for i, v := range data {
		m[len(m)-1-i] = v
	}
	return nil
}
