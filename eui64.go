package lorawan

import (
	"database/sql/driver"
	"encoding/hex"
	"errors"
	"fmt"
)

// EUI64 is an IEEE EUI-64 identifier (AppEUI/JoinEUI, DevEUI), stored
// host-order. The wire form is little-endian, reversed on marshal.
type EUI64 [8]byte

// String implements fmt.Stringer.
func (e EUI64) String() string {
	return hex.EncodeToString(e[:])
}

// MarshalText implements encoding.TextMarshaler.
func (e EUI64) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *EUI64) UnmarshalText(text []byte) error {
	b, err := hex.DecodeString(string(text))
	if err != nil {
		return err
	}
	if len(b) != len(e) {
		return fmt.Errorf("lorawan: exactly %d bytes are expected", len(e))
	}
	copy(e[:], b)
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler, reversing to the
// little-endian wire form.
func (e EUI64) MarshalBinary() ([]byte, error) {
	out := make([]byte, len(e))
	for i, v := range e {
		out[len(e)-1-i] = v
	}
	return out, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler, reversing the
// little-endian wire form back to host order.
func (e *EUI64) UnmarshalBinary(data []byte) error {
	if len(data) != len(e) {
		return fmt.Errorf("lorawan: %d bytes of data are expected", len(e))
	}
	for i, v := range data {
		e[len(e)-1-i] = v
	}
	return nil
}

// Value implements driver.Valuer.
func (e EUI64) Value() (driver.Value, error) {
	return e[:], nil
}

// Scan implements sql.Scanner.
func (e *EUI64) Scan(src interface{}) error {
	b, ok := src.([]byte)
	if !ok {
		return errors.New("lorawan: []byte type expected")
	}
	if len(b) != len(e) {
		return fmt.Errorf("lorawan: []byte must have length %d", len(e))
	}
	copy(e[:], b)
	return nil
}

// DevNonce is the 2-byte device nonce carried in a Join Request, stored
// host-order; wire form is little-endian.
type DevNonce [2]byte

// MarshalBinary implements encoding.BinaryMarshaler.
func (n DevNonce) MarshalBinary() ([]byte, error) {
	return []byte{n[1], n[0]}, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (n *DevNonce) UnmarshalBinary(data []byte) error {
	if len(data) != len(n) {
		return fmt.Errorf("lorawan: %d bytes of data are expected", len(n))
	}
	n[0], n[1] = data[1], data[0]
	return nil
}

// AppNonce is the 3-byte join-server nonce carried in a Join Accept,
// stored host-order; wire form is little-endian.
type AppNonce [3]byte

// MarshalBinary implements encoding.BinaryMarshaler.
func (n AppNonce) MarshalBinary() ([]byte, error) {
	return []byte{n[2], n[1], n[0]}, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (n *AppNonce) UnmarshalBinary(data []byte) error {
	if len(data) != len(n) {
		return fmt.Errorf("lorawan: %d bytes of data are expected", len(n))
	}
	n[0], n[1], n[2] = data[2], data[1], data[0]
	return nil
}
