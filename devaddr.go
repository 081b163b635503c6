package lorawan

import (
	"database/sql/driver"
	"encoding/hex"
	"errors"
	"fmt"
)

// DevAddr is the 4-byte device address, stored host-order; the wire form
// is little-endian, reversed on marshal.
type DevAddr [4]byte

// String implements fmt.Stringer.
func (a DevAddr) String() string {
	return hex.EncodeToString(a[:])
}

// MarshalText implements encoding.TextMarshaler.
func (a DevAddr) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *DevAddr) UnmarshalText(text []byte) error {
	b, err := hex.DecodeString(string(text))
	if err != nil {
		return err
	}
	if len(b) != len(a) {
		return fmt.Errorf("lorawan: exactly %d bytes are expected", len(a))
	}
	copy(a[:], b)
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (a DevAddr) MarshalBinary() ([]byte, error) {
	out := make([]byte, len(a))
	for i, v := range a {
		out[len(a)-1-i] = v
	}
	return out, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (a *DevAddr) UnmarshalBinary(data []byte) error {
	if len(data) != len(a) {
		return fmt.Errorf("lorawan: %d bytes of data are expected", len(a))
	}
	for i, v := range data {
		a[len(a)-1-i] = v
	}
	return nil
}

// Value implements driver.Valuer.
func (a DevAddr) Value() (driver.Value, error) {
	return a[:], nil
}

// Scan implements sql.Scanner.
func (a *DevAddr) Scan(src interface{}) error {
	b, ok := src.([]byte)
	if !ok {
		return errors.New("lorawan: []byte type expected")
	}
	if len(b) != len(a) {
		return fmt.Errorf("lorawan: []byte must have length %d", len(a))
	}
	copy(a[:], b)
	return nil
}

// FCtrl is the raw frame-control byte. Bits 7 (ADR), 5 (ACK) and 3..0
// (FOptsLen) mean the same thing regardless of direction or version;
// bits 6 and 4 are interpreted by DecodeFCtrl according to Direction and
// MACVersion.
type FCtrl byte

// ADR returns the adaptive-data-rate control bit (bit 7).
func (c FCtrl) ADR() bool { return c&(1<<7) != 0 }

// ACK returns the acknowledgment bit (bit 5).
func (c FCtrl) ACK() bool { return c&(1<<5) != 0 }

// FOptsLen returns the number of FOpts bytes (bits 3..0), 0-15.
func (c FCtrl) FOptsLen() uint8 { return uint8(c) & 0x0F }

func (c FCtrl) bit6() bool { return c&(1<<6) != 0 }
func (c FCtrl) bit4() bool { return c&(1<<4) != 0 }

// MACVersion selects how FCtrl bits 4 and 6 are interpreted (see
// DecodeFCtrl) and whether a Join Accept's DLSettings byte is decoded
// or treated as RFU. LoRaWAN 1.1 is
// treated identically to 1.0.3 by this package (see Non-goals).
type MACVersion string

// Supported MACVersion values.
const (
	MACVersion10  MACVersion = "1.0"
	MACVersion103 MACVersion = "1.0.3"
	MACVersion11  MACVersion = "1.1"
)

// FCtrlFields is the direction- and version-aware interpretation of an
// FCtrl byte.
type FCtrlFields struct {
	ADR       bool
	ADRACKReq bool
	ACK       bool
	FPending  bool // meaningful for Down only
	ClassB    bool // meaningful for Up, MACVersion103+, only
	FOptsLen  uint8
}

// DecodeFCtrl interprets the direction- and version-dependent bits of an
// FCtrl byte: bit 6 is ADRACKReq for Up always, and for
// Down only from MACVersion103 onward (RFU under MACVersion10); bit 4 is
// FPending for Down always, and ClassB for Up only from MACVersion103
// onward (RFU under MACVersion10).
func DecodeFCtrl(c FCtrl, dir Direction, version MACVersion) FCtrlFields {
	f := FCtrlFields{
		ADR:      c.ADR(),
		ACK:      c.ACK(),
		FOptsLen: c.FOptsLen(),
	}

	switch dir {
	case Down:
		f.FPending = c.bit4()
		if version != MACVersion10 {
			f.ADRACKReq = c.bit6()
		}
	case Up:
		f.ADRACKReq = c.bit6()
		if version != MACVersion10 {
			f.ClassB = c.bit4()
		}
	}

	return f
}

// FHDR is the frame header of a data frame: DevAddr(4) | FCtrl(1) |
// FCnt(2 on the wire, surfaced as 32 bits) | FOpts(0-15 bytes).
type FHDR struct {
	DevAddr DevAddr
	FCtrl   FCtrl
	// FCnt is the full 32-bit frame counter: the caller-supplied upper 16
	// bits (see Options.UpperFCnt) form the high half, the 16 bits read
	// from the wire form the low half. Only the low 16 bits are ever
	// read from phy_pdu; the high 16 bits are never transmitted.
	FCnt  uint32
	FOpts []MACCommand
}
