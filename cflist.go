package lorawan

import (
	"errors"
	"fmt"
)

// DLSettings represents the downlink settings byte: bit 7 RFU, bits
// 6..4 RX1DROffset (0-7), bits 3..0 RX2DataRate (0-15). Under
// MACVersion10 the whole Join Accept byte is RFU and DLSettings is
// left zero.
type DLSettings struct {
	RX1DROffset uint8 `json:"rx1DROffset"`
	RX2DataRate uint8 `json:"rx2DataRate"`
}

// MarshalBinary marshals the object in binary form.
func (s DLSettings) MarshalBinary() ([]byte, error) {
	if s.RX2DataRate > 15 {
		return nil, errors.New("lorawan: max value of RX2DataRate is 15")
	}
	if s.RX1DROffset > 7 {
		return nil, errors.New("lorawan: max value of RX1DROffset is 7")
	}
	return []byte{s.RX2DataRate | s.RX1DROffset<<4}, nil
}

// UnmarshalBinary decodes the object from binary form.
func (s *DLSettings) UnmarshalBinary(data []byte) error {
	if len(data) != 1 {
		return errors.New("lorawan: 1 byte of data is expected")
	}
	s.RX1DROffset = (data[0] >> 4) & 0x07
	s.RX2DataRate = data[0] & 0x0F
	return nil
}

// CFListType distinguishes the two CFList encodings LoRaWAN defines; this
// repository only decodes the frequency-list form (0), which is the only
// one the regions in scope (AS923, EU868) use for a Join Accept CFList.
type CFListType byte

// Region selects the channel numbering applied when decoding a Join
// Accept CFList; it has no other effect on dissection.
type Region string

// Supported regions.
const (
	RegionAS923 Region = "AS923"
	RegionEU868 Region = "EU868"
	RegionUS920 Region = "US920"
)

// channelStart is the index of the first CFList channel in each region's
// channel plan (CH2 for AS923, CH3 for EU868). US920 is intentionally
// absent: its CFList layout is a channel-mask bitmap, not a 5x3-byte
// frequency list, and decoding it is out of scope.
var channelStart = map[Region]int{
	RegionAS923: 2,
	RegionEU868: 3,
}

// CFListChannel is one decoded CFList entry.
type CFListChannel struct {
	Channel     int // region channel index (e.g. CH3 for EU868's first entry)
	FrequencyHz uint32
}

// CFList is the optional 16-byte channel-frequency list appended to a
// 33-byte Join Accept.
type CFList struct {
	Channels []CFListChannel
	Type     CFListType
}

// decodeCFList parses the 16-byte CFList: 5 little-endian 3-byte
// frequencies in 100 Hz units, followed by a 1-byte CFListType.
func decodeCFList(b []byte, region Region) (CFList, error) {
	if len(b) != 16 {
		return CFList{}, fmt.Errorf("lorawan: CFList must be 16 bytes, got %d", len(b))
	}
	start, ok := channelStart[region]
	if !ok {
		return CFList{}, fmt.Errorf("lorawan: CFList decoding for region %s is unimplemented", region)
	}

	var cf CFList
	for i := 0; i < 5; i++ {
		chunk := b[i*3 : i*3+3]
		freq := uint32(chunk[0]) | uint32(chunk[1])<<8 | uint32(chunk[2])<<16
		cf.Channels = append(cf.Channels, CFListChannel{
			Channel:     start + i,
			FrequencyHz: freq * 100,
		})
	}
	cf.Type = CFListType(b[15])
	return cf, nil
}
