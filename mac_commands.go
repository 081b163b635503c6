package lorawan

import (
	"encoding/binary"
	"errors"
)

// CID is the MAC command identifier byte. The same CID means a different
// command depending on Direction.
type CID byte

// Recognised CIDs. Req/Ans/Ind/Conf suffixes follow the
// LoRaWAN 1.0.x naming; which one applies to a given CID depends on
// Direction.
const (
	CIDResetIndOrConf  CID = 0x01
	CIDLinkCheck       CID = 0x02
	CIDLinkADR         CID = 0x03
	CIDDutyCycle       CID = 0x04
	CIDRXParamSetup    CID = 0x05
	CIDDevStatus       CID = 0x06
	CIDNewChannel      CID = 0x07
	CIDRXTimingSetup   CID = 0x08
	CIDTxParamSetup    CID = 0x09
	CIDDlChannel       CID = 0x0A
	CIDPingSlotInfo    CID = 0x10
	CIDPingSlotChannel CID = 0x11
	CIDBeaconTiming    CID = 0x12
	CIDBeaconFreq      CID = 0x13
	CIDDeviceMode      CID = 0x20
)

// MACCommandPayload is the interface that every MACCommand payload
// must implement.
type MACCommandPayload interface {
	MarshalBinary() (data []byte, err error)
	UnmarshalBinary(data []byte) error
}

// macPayloadInfo is one (CID, direction) registry entry: the command
// name, its fixed wire length, and a constructor for its payload type
// (nil for commands that carry no payload).
type macPayloadInfo struct {
	name    string
	size    int
	payload func() MACCommandPayload
}

var macPayloadRegistry = map[CID]map[Direction]macPayloadInfo{
	CIDResetIndOrConf: {
		Up:   {"ResetInd", 1, func() MACCommandPayload { return &ResetIndPayload{} }},
		Down: {"ResetConf", 1, func() MACCommandPayload { return &ResetConfPayload{} }},
	},
	CIDLinkCheck: {
		Up:   {"LinkCheckReq", 0, nil},
		Down: {"LinkCheckAns", 2, func() MACCommandPayload { return &LinkCheckAnsPayload{} }},
	},
	CIDLinkADR: {
		Up:   {"LinkADRAns", 1, func() MACCommandPayload { return &LinkADRAnsPayload{} }},
		Down: {"LinkADRReq", 4, func() MACCommandPayload { return &LinkADRReqPayload{} }},
	},
	CIDDutyCycle: {
		Up:   {"DutyCycleAns", 0, nil},
		Down: {"DutyCycleReq", 1, func() MACCommandPayload { return &DutyCycleReqPayload{} }},
	},
	CIDRXParamSetup: {
		Up:   {"RXParamSetupAns", 1, func() MACCommandPayload { return &RXParamSetupAnsPayload{} }},
		Down: {"RXParamSetupReq", 4, func() MACCommandPayload { return &RXParamSetupReqPayload{} }},
	},
	CIDDevStatus: {
		Up:   {"DevStatusAns", 2, func() MACCommandPayload { return &DevStatusAnsPayload{} }},
		Down: {"DevStatusReq", 0, nil},
	},
	CIDNewChannel: {
		Up:   {"NewChannelAns", 1, func() MACCommandPayload { return &NewChannelAnsPayload{} }},
		Down: {"NewChannelReq", 5, func() MACCommandPayload { return &NewChannelReqPayload{} }},
	},
	CIDRXTimingSetup: {
		Up:   {"RXTimingSetupAns", 0, nil},
		Down: {"RXTimingSetupReq", 1, func() MACCommandPayload { return &RXTimingSetupReqPayload{} }},
	},
	CIDTxParamSetup: {
		Up:   {"TxParamSetupAns", 0, nil},
		Down: {"TxParamSetupReq", 1, func() MACCommandPayload { return &TXParamSetupReqPayload{} }},
	},
	CIDDlChannel: {
		Up:   {"DlChannelAns", 1, func() MACCommandPayload { return &DLChannelAnsPayload{} }},
		Down: {"DlChannelReq", 4, func() MACCommandPayload { return &DLChannelReqPayload{} }},
	},
	CIDPingSlotInfo: {
		Up:   {"PingSlotInfoReq", 1, func() MACCommandPayload { return &PingSlotInfoReqPayload{} }},
		Down: {"PingSlotInfoAns", 0, nil},
	},
	CIDPingSlotChannel: {
		Up:   {"PingSlotChannelAns", 4, func() MACCommandPayload { return &PingSlotChannelAnsPayload{} }},
		Down: {"PingSlotChannelReq", 4, func() MACCommandPayload { return &PingSlotChannelReqPayload{} }},
	},
	CIDBeaconTiming: {
		Up:   {"BeaconTimingReq", 0, nil},
		Down: {"BeaconTimingAns", 3, func() MACCommandPayload { return &BeaconTimingAnsPayload{} }},
	},
	CIDBeaconFreq: {
		Up:   {"BeaconFreqAns", 1, func() MACCommandPayload { return &BeaconFreqAnsPayload{} }},
		Down: {"BeaconFreqReq", 3, func() MACCommandPayload { return &BeaconFreqReqPayload{} }},
	},
	CIDDeviceMode: {
		Up:   {"DeviceModeInd", 1, func() MACCommandPayload { return &DeviceModeIndPayload{} }},
		Down: {"DeviceModeConf", 1, func() MACCommandPayload { return &DeviceModeConfPayload{} }},
	},
}

// MACCommand is a single decoded MAC command. Payload is nil for
// commands that carry none (e.g. LinkCheckReq).
type MACCommand struct {
	CID       CID
	Direction Direction
	Name      string
	Payload   MACCommandPayload
	Raw       []byte
}

// ResetIndPayload represents the ResetInd payload.
type ResetIndPayload struct {
	MinorVersion uint8 `json:"minorVersion"`
}

// MarshalBinary marshals the object in binary form.
func (p ResetIndPayload) MarshalBinary() ([]byte, error) {
	if p.MinorVersion > 15 {
		return nil, errors.New("lorawan: max value of MinorVersion is 15")
	}
	return []byte{p.MinorVersion}, nil
}

// UnmarshalBinary decodes the object from binary form.
func (p *ResetIndPayload) UnmarshalBinary(data []byte) error {
	if len(data) != 1 {
		return errors.New("lorawan: 1 byte of data is expected")
	}
	p.MinorVersion = data[0] & 0x0F
	return nil
}

// ResetConfPayload represents the ResetConf payload.
type ResetConfPayload struct {
	MinorVersion uint8 `json:"minorVersion"`
}

// MarshalBinary marshals the object in binary form.
func (p ResetConfPayload) MarshalBinary() ([]byte, error) {
	if p.MinorVersion > 15 {
		return nil, errors.New("lorawan: max value of MinorVersion is 15")
	}
	return []byte{p.MinorVersion}, nil
}

// UnmarshalBinary decodes the object from binary form.
func (p *ResetConfPayload) UnmarshalBinary(data []byte) error {
	if len(data) != 1 {
		return errors.New("lorawan: 1 byte of data is expected")
	}
	p.MinorVersion = data[0] & 0x0F
	return nil
}

// LinkCheckAnsPayload represents the LinkCheckAns payload.
type LinkCheckAnsPayload struct {
	Margin uint8 `json:"margin"`
	GwCnt  uint8 `json:"gwCnt"`
}

// MarshalBinary marshals the object in binary form.
func (p LinkCheckAnsPayload) MarshalBinary() ([]byte, error) {
	return []byte{p.Margin, p.GwCnt}, nil
}

// UnmarshalBinary decodes the object from binary form.
func (p *LinkCheckAnsPayload) UnmarshalBinary(data []byte) error {
	if len(data) != 2 {
		return errors.New("lorawan: 2 bytes of data are expected")
	}
	p.Margin = data[0]
	p.GwCnt = data[1]
	return nil
}

// ChMask encodes the channels usable for uplink access. 0 = channel 1,
// 15 = channel 16.
type ChMask [16]bool

// MarshalBinary marshals the object in binary form.
func (m ChMask) MarshalBinary() ([]byte, error) {
	b := make([]byte, 2)
	for i := uint8(0); i < 16; i++ {
		if m[i] {
			b[i/8] = b[i/8] ^ 1<<(i%8)
		}
	}
	return b, nil
}

// UnmarshalBinary decodes the object from binary form.
func (m *ChMask) UnmarshalBinary(data []byte) error {
	if len(data) != 2 {
		return errors.New("lorawan: 2 bytes of data are expected")
	}
	for i := uint(0); i < 16; i++ {
		m[i] = data[i/8]&(1<<(i%8)) != 0
	}
	return nil
}

// Redundancy represents the redundancy field: NbTrans in the low
// nibble, the region-specific 3-bit ChMaskCntl kept as raw bits.
type Redundancy struct {
	ChMaskCntl uint8 `json:"chMaskCntl"`
	NbTrans    uint8 `json:"nbTrans"`
}

// MarshalBinary marshals the object in binary form.
func (r Redundancy) MarshalBinary() ([]byte, error) {
	if r.NbTrans > 15 {
		return nil, errors.New("lorawan: max value of NbTrans is 15")
	}
	if r.ChMaskCntl > 7 {
		return nil, errors.New("lorawan: max value of ChMaskCntl is 7")
	}
	return []byte{r.NbTrans | r.ChMaskCntl<<4}, nil
}

// UnmarshalBinary decodes the object from binary form.
func (r *Redundancy) UnmarshalBinary(data []byte) error {
	if len(data) != 1 {
		return errors.New("lorawan: 1 byte of data is expected")
	}
	r.NbTrans = data[0] & 0x0F
	r.ChMaskCntl = (data[0] >> 4) & 0x07
	return nil
}

// LinkADRReqPayload represents the LinkADRReq payload. A DataRate or
// TXPower of 15 means "ignore, keep the current value".
type LinkADRReqPayload struct {
	DataRate   uint8      `json:"dataRate"`
	TXPower    uint8      `json:"txPower"`
	ChMask     ChMask     `json:"chMask"`
	Redundancy Redundancy `json:"redundancy"`
}

// MarshalBinary marshals the object in binary form.
func (p LinkADRReqPayload) MarshalBinary() ([]byte, error) {
	b := make([]byte, 0, 4)
	if p.DataRate > 15 {
		return b, errors.New("lorawan: the max value of DataRate is 15")
	}
	if p.TXPower > 15 {
		return b, errors.New("lorawan: the max value of TXPower is 15")
	}

	cm, err := p.ChMask.MarshalBinary()
	if err != nil {
		return b, err
	}
	r, err := p.Redundancy.MarshalBinary()
	if err != nil {
		return b, err
	}

	b = append(b, p.TXPower|p.DataRate<<4)
	b = append(b, cm...)
	b = append(b, r...)
	return b, nil
}

// UnmarshalBinary decodes the object from binary form.
func (p *LinkADRReqPayload) UnmarshalBinary(data []byte) error {
	if len(data) != 4 {
		return errors.New("lorawan: 4 bytes of data are expected")
	}
	p.DataRate = data[0] >> 4
	p.TXPower = data[0] & 0x0F

	if err := p.ChMask.UnmarshalBinary(data[1:3]); err != nil {
		return err
	}
	return p.Redundancy.UnmarshalBinary(data[3:4])
}

// LinkADRAnsPayload represents the LinkADRAns payload.
type LinkADRAnsPayload struct {
	ChannelMaskACK bool `json:"channelMaskAck"`
	DataRateACK    bool `json:"dataRateAck"`
	PowerACK       bool `json:"powerAck"`
}

// MarshalBinary marshals the object in binary form.
func (p LinkADRAnsPayload) MarshalBinary() ([]byte, error) {
	var b byte
	if p.ChannelMaskACK {
		b = b ^ (1 << 0)
	}
	if p.DataRateACK {
		b = b ^ (1 << 1)
	}
	if p.PowerACK {
		b = b ^ (1 << 2)
	}
	return []byte{b}, nil
}

// UnmarshalBinary decodes the object from binary form.
func (p *LinkADRAnsPayload) UnmarshalBinary(data []byte) error {
	if len(data) != 1 {
		return errors.New("lorawan: 1 byte of data is expected")
	}
	p.ChannelMaskACK = data[0]&(1<<0) != 0
	p.DataRateACK = data[0]&(1<<1) != 0
	p.PowerACK = data[0]&(1<<2) != 0
	return nil
}

// DutyCycleReqPayload represents the DutyCycleReq payload. MaxDCycle 0
// means no duty-cycle limit; otherwise the aggregated duty cycle is
// 1 / 2^MaxDCycle.
type DutyCycleReqPayload struct {
	MaxDCycle uint8 `json:"maxDCycle"`
}

// MarshalBinary marshals the object in binary form.
func (p DutyCycleReqPayload) MarshalBinary() ([]byte, error) {
	if p.MaxDCycle > 15 {
		return nil, errors.New("lorawan: max value of MaxDCycle is 15")
	}
	return []byte{p.MaxDCycle}, nil
}

// UnmarshalBinary decodes the object from binary form.
func (p *DutyCycleReqPayload) UnmarshalBinary(data []byte) error {
	if len(data) != 1 {
		return errors.New("lorawan: 1 byte of data is expected")
	}
	p.MaxDCycle = data[0] & 0x0F
	return nil
}

// RXParamSetupReqPayload represents the RXParamSetupReq payload.
type RXParamSetupReqPayload struct {
	DLSettings DLSettings `json:"dlSettings"`
	Frequency  uint32     `json:"frequency"`
}

// MarshalBinary marshals the object in binary form.
func (p RXParamSetupReqPayload) MarshalBinary() ([]byte, error) {
	b := make([]byte, 5)
	if p.Frequency/100 >= 16777216 { // 2^24
		return nil, errors.New("lorawan: max value of Frequency is 2^24 - 1")
	}
	if p.Frequency%100 != 0 {
		return nil, errors.New("lorawan: Frequency must be a multiple of 100")
	}
	dl, err := p.DLSettings.MarshalBinary()
	if err != nil {
		return nil, err
	}
	b[0] = dl[0]
	binary.LittleEndian.PutUint32(b[1:5], p.Frequency/100)
	return b[0:4], nil
}

// UnmarshalBinary decodes the object from binary form.
func (p *RXParamSetupReqPayload) UnmarshalBinary(data []byte) error {
	if len(data) != 4 {
		return errors.New("lorawan: 4 bytes of data are expected")
	}
	if err := p.DLSettings.UnmarshalBinary(data[0:1]); err != nil {
		return err
	}
	b := make([]byte, 4)
	copy(b, data[1:])
	p.Frequency = binary.LittleEndian.Uint32(b) * 100
	return nil
}

// RXParamSetupAnsPayload represents the RXParamSetupAns payload.
type RXParamSetupAnsPayload struct {
	ChannelACK     bool `json:"channelAck"`
	RX2DataRateACK bool `json:"rx2DataRateAck"`
	RX1DROffsetACK bool `json:"rx1DROffsetAck"`
}

// MarshalBinary marshals the object in binary form.
func (p RXParamSetupAnsPayload) MarshalBinary() ([]byte, error) {
	var b byte
	if p.ChannelACK {
		b = b ^ (1 << 0)
	}
	if p.RX2DataRateACK {
		b = b ^ (1 << 1)
	}
	if p.RX1DROffsetACK {
		b = b ^ (1 << 2)
	}
	return []byte{b}, nil
}

// UnmarshalBinary decodes the object from binary form.
func (p *RXParamSetupAnsPayload) UnmarshalBinary(data []byte) error {
	if len(data) != 1 {
		return errors.New("lorawan: 1 byte of data is expected")
	}
	p.ChannelACK = data[0]&(1<<0) != 0
	p.RX2DataRateACK = data[0]&(1<<1) != 0
	p.RX1DROffsetACK = data[0]&(1<<2) != 0
	return nil
}

// DevStatusAnsPayload represents the DevStatusAns payload.
type DevStatusAnsPayload struct {
	Battery uint8 `json:"battery"`
	Margin  int8  `json:"margin"`
}

// MarshalBinary marshals the object in binary form.
func (p DevStatusAnsPayload) MarshalBinary() ([]byte, error) {
	b := make([]byte, 0, 2)
	if p.Margin < -32 {
		return b, errors.New("lorawan: min value of Margin is -32")
	}
	if p.Margin > 31 {
		return b, errors.New("lorawan: max value of Margin is 31")
	}

	b = append(b, p.Battery)
	if p.Margin < 0 {
		b = append(b, uint8(31-int32(p.Margin)))
	} else {
		b = append(b, uint8(p.Margin))
	}
	return b, nil
}

// UnmarshalBinary decodes the object from binary form. Margin is a
// 6-bit signed value in [-32, 31]: with the MSB clear it is the low 6
// bits as-is, with the MSB set it reconstructs as ^value + 32
// (equivalently 31 - value), so 0x3F is -32 and 0x20 is -1.
func (p *DevStatusAnsPayload) UnmarshalBinary(data []byte) error {
	if len(data) != 2 {
		return errors.New("lorawan: 2 bytes of data are expected")
	}
	p.Battery = data[0]
	m := data[1] & 0x3F
	if m > 31 {
		p.Margin = int8(31 - int32(m))
	} else {
		p.Margin = int8(m)
	}
	return nil
}

// NewChannelReqPayload represents the NewChannelReq payload. A Freq of
// 0 disables the channel.
type NewChannelReqPayload struct {
	ChIndex uint8  `json:"chIndex"`
	Freq    uint32 `json:"freq"`
	MaxDR   uint8  `json:"maxDR"`
	MinDR   uint8  `json:"minDR"`
}

// MarshalBinary marshals the object in binary form.
func (p NewChannelReqPayload) MarshalBinary() ([]byte, error) {
	b := make([]byte, 5)
	if p.Freq/100 >= 16777216 { // 2^24
		return b, errors.New("lorawan: max value of Freq is 2^24 - 1")
	}
	if p.Freq%100 != 0 {
		return b, errors.New("lorawan: Freq must be a multiple of 100")
	}
	if p.MaxDR > 15 {
		return b, errors.New("lorawan: max value of MaxDR is 15")
	}
	if p.MinDR > 15 {
		return b, errors.New("lorawan: max value of MinDR is 15")
	}

	// borrow b[4] for PutUint32; Freq/100 < 2^24 keeps it zero
	binary.LittleEndian.PutUint32(b[1:5], p.Freq/100)
	b[0] = p.ChIndex
	b[4] = p.MinDR | p.MaxDR<<4
	return b, nil
}

// UnmarshalBinary decodes the object from binary form.
func (p *NewChannelReqPayload) UnmarshalBinary(data []byte) error {
	if len(data) != 5 {
		return errors.New("lorawan: 5 bytes of data are expected")
	}
	p.ChIndex = data[0]
	b := make([]byte, 4)
	copy(b, data[1:4])
	p.Freq = binary.LittleEndian.Uint32(b) * 100
	p.MinDR = data[4] & 0x0F
	p.MaxDR = data[4] >> 4
	return nil
}

// NewChannelAnsPayload represents the NewChannelAns payload.
type NewChannelAnsPayload struct {
	ChannelFrequencyOK bool `json:"channelFrequencyOK"`
	DataRateRangeOK    bool `json:"dataRateRangeOK"`
}

// MarshalBinary marshals the object in binary form.
func (p NewChannelAnsPayload) MarshalBinary() ([]byte, error) {
	var b byte
	if p.ChannelFrequencyOK {
		b = b ^ (1 << 0)
	}
	if p.DataRateRangeOK {
		b = b ^ (1 << 1)
	}
	return []byte{b}, nil
}

// UnmarshalBinary decodes the object from binary form.
func (p *NewChannelAnsPayload) UnmarshalBinary(data []byte) error {
	if len(data) != 1 {
		return errors.New("lorawan: 1 byte of data is expected")
	}
	p.ChannelFrequencyOK = data[0]&(1<<0) != 0
	p.DataRateRangeOK = data[0]&(1<<1) != 0
	return nil
}

// RXTimingSetupReqPayload represents the RXTimingSetupReq payload.
// Delay is in seconds; the wire encoding 0 means 1 second and is
// normalised on decode.
type RXTimingSetupReqPayload struct {
	Delay uint8 `json:"delay"`
}

// MarshalBinary marshals the object in binary form.
func (p RXTimingSetupReqPayload) MarshalBinary() ([]byte, error) {
	if p.Delay > 15 {
		return nil, errors.New("lorawan: the max value of Delay is 15")
	}
	return []byte{p.Delay}, nil
}

// UnmarshalBinary decodes the object from binary form.
func (p *RXTimingSetupReqPayload) UnmarshalBinary(data []byte) error {
	if len(data) != 1 {
		return errors.New("lorawan: 1 byte of data is expected")
	}
	p.Delay = data[0] & 0x0F
	if p.Delay == 0 {
		p.Delay = 1
	}
	return nil
}

// DwellTime enumerates the TxParamSetup dwell-time values.
type DwellTime int

// Supported dwell times.
const (
	DwellTimeNoLimit DwellTime = iota
	DwellTime400ms
)

// TXParamSetupReqPayload represents the TxParamSetupReq payload.
// MaxEIRP is in dBm, already looked up from the 4-bit wire index.
type TXParamSetupReqPayload struct {
	DownlinkDwellTime DwellTime `json:"downlinkDwellTime"`
	UplinkDwellTime   DwellTime `json:"uplinkDwellTime"`
	MaxEIRP           float32   `json:"maxEIRP"`
}

// MarshalBinary marshals the object in binary form.
func (p TXParamSetupReqPayload) MarshalBinary() ([]byte, error) {
	idx := -1
	for i, v := range maxEIRPTable {
		if v == p.MaxEIRP {
			idx = i
		}
	}
	if idx == -1 {
		return nil, errors.New("lorawan: invalid MaxEIRP value")
	}

	b := uint8(idx)
	if p.UplinkDwellTime == DwellTime400ms {
		b = b ^ (1 << 4)
	}
	if p.DownlinkDwellTime == DwellTime400ms {
		b = b ^ (1 << 5)
	}
	return []byte{b}, nil
}

// UnmarshalBinary decodes the object from binary form.
func (p *TXParamSetupReqPayload) UnmarshalBinary(data []byte) error {
	if len(data) != 1 {
		return errors.New("lorawan: 1 byte of data is expected")
	}
	if data[0]&(1<<4) != 0 {
		p.UplinkDwellTime = DwellTime400ms
	}
	if data[0]&(1<<5) != 0 {
		p.DownlinkDwellTime = DwellTime400ms
	}
	p.MaxEIRP = maxEIRP(data[0] & 0x0F)
	return nil
}

// DLChannelReqPayload represents the DlChannelReq payload.
type DLChannelReqPayload struct {
	ChIndex uint8  `json:"chIndex"`
	Freq    uint32 `json:"freq"`
}

// MarshalBinary marshals the object in binary form.
func (p DLChannelReqPayload) MarshalBinary() ([]byte, error) {
	b := make([]byte, 5) // one byte more for PutUint32
	if p.Freq/100 >= 16777216 { // 2^24
		return nil, errors.New("lorawan: max value of Freq is 2^24 - 1")
	}
	if p.Freq%100 != 0 {
		return nil, errors.New("lorawan: Freq must be a multiple of 100")
	}
	b[0] = p.ChIndex
	binary.LittleEndian.PutUint32(b[1:5], p.Freq/100)
	return b[0:4], nil
}

// UnmarshalBinary decodes the object from binary form.
func (p *DLChannelReqPayload) UnmarshalBinary(data []byte) error {
	if len(data) != 4 {
		return errors.New("lorawan: 4 bytes of data are expected")
	}
	p.ChIndex = data[0]
	b := make([]byte, 4)
	copy(b, data[1:])
	p.Freq = binary.LittleEndian.Uint32(b) * 100
	return nil
}

// DLChannelAnsPayload represents the DlChannelAns payload.
type DLChannelAnsPayload struct {
	UplinkFrequencyExists bool `json:"uplinkFrequencyExists"`
	ChannelFrequencyOK    bool `json:"channelFrequencyOK"`
}

// MarshalBinary marshals the object in binary form.
func (p DLChannelAnsPayload) MarshalBinary() ([]byte, error) {
	var b byte
	if p.ChannelFrequencyOK {
		b = b ^ (1 << 0)
	}
	if p.UplinkFrequencyExists {
		b = b ^ (1 << 1)
	}
	return []byte{b}, nil
}

// UnmarshalBinary decodes the object from binary form.
func (p *DLChannelAnsPayload) UnmarshalBinary(data []byte) error {
	if len(data) != 1 {
		return errors.New("lorawan: 1 byte of data is expected")
	}
	p.ChannelFrequencyOK = data[0]&(1<<0) != 0
	p.UplinkFrequencyExists = data[0]&(1<<1) != 0
	return nil
}

// PingSlotInfoReqPayload represents the PingSlotInfoReq payload. The
// resulting ping-slot period is 2^Periodicity seconds.
type PingSlotInfoReqPayload struct {
	Periodicity uint8 `json:"periodicity"`
}

// MarshalBinary marshals the object in binary form.
func (p PingSlotInfoReqPayload) MarshalBinary() ([]byte, error) {
	if p.Periodicity > 7 {
		return nil, errors.New("lorawan: max value of Periodicity is 7")
	}
	return []byte{p.Periodicity}, nil
}

// UnmarshalBinary decodes the object from binary form.
func (p *PingSlotInfoReqPayload) UnmarshalBinary(data []byte) error {
	if len(data) != 1 {
		return errors.New("lorawan: 1 byte of data is expected")
	}
	p.Periodicity = data[0] & 0x07
	return nil
}

// PingSlotChannelReqPayload represents the PingSlotChannelReq payload.
type PingSlotChannelReqPayload struct {
	Frequency uint32 `json:"frequency"`
	DR        uint8  `json:"dr"`
}

// MarshalBinary marshals the object in binary form.
func (p PingSlotChannelReqPayload) MarshalBinary() ([]byte, error) {
	if p.Frequency/100 >= 16777216 { // 2^24
		return nil, errors.New("lorawan: max value of Frequency is 2^24 - 1")
	}
	if p.Frequency%100 != 0 {
		return nil, errors.New("lorawan: Frequency must be a multiple of 100")
	}
	if p.DR > 15 {
		return nil, errors.New("lorawan: max value of DR is 15")
	}

	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, p.Frequency/100)
	b[3] = p.DR
	return b, nil
}

// UnmarshalBinary decodes the object from binary form.
func (p *PingSlotChannelReqPayload) UnmarshalBinary(data []byte) error {
	if len(data) != 4 {
		return errors.New("lorawan: 4 bytes of data are expected")
	}
	b := make([]byte, 4)
	copy(b, data)
	b[3] = 0
	p.Frequency = binary.LittleEndian.Uint32(b) * 100
	p.DR = data[3] & 0x0F
	return nil
}

// PingSlotChannelAnsPayload represents the PingSlotChannelAns payload.
type PingSlotChannelAnsPayload struct {
	DataRateOK         bool `json:"dataRateOK"`
	ChannelFrequencyOK bool `json:"channelFrequencyOK"`
}

// MarshalBinary marshals the object in binary form.
func (p PingSlotChannelAnsPayload) MarshalBinary() ([]byte, error) {
	var b byte
	if p.ChannelFrequencyOK {
		b = b ^ (1 << 0)
	}
	if p.DataRateOK {
		b = b ^ (1 << 1)
	}
	return []byte{b}, nil
}

// UnmarshalBinary decodes the object from binary form.
func (p *PingSlotChannelAnsPayload) UnmarshalBinary(data []byte) error {
	if len(data) != 1 {
		return errors.New("lorawan: 1 byte of data is expected")
	}
	p.ChannelFrequencyOK = data[0]&(1<<0) != 0
	p.DataRateOK = data[0]&(1<<1) != 0
	return nil
}

// BeaconTimingAnsPayload represents the BeaconTimingAns payload. The
// time to the next beacon satisfies 30ms*Delay <= RTime < 30ms*(Delay+1).
type BeaconTimingAnsPayload struct {
	Delay   uint16 `json:"delay"`
	Channel uint8  `json:"channel"`
}

// MarshalBinary marshals the object in binary form.
func (p BeaconTimingAnsPayload) MarshalBinary() ([]byte, error) {
	b := make([]byte, 3)
	binary.LittleEndian.PutUint16(b[0:2], p.Delay)
	b[2] = p.Channel
	return b, nil
}

// UnmarshalBinary decodes the object from binary form.
func (p *BeaconTimingAnsPayload) UnmarshalBinary(data []byte) error {
	if len(data) != 3 {
		return errors.New("lorawan: 3 bytes of data are expected")
	}
	p.Delay = binary.LittleEndian.Uint16(data[0:2])
	p.Channel = data[2]
	return nil
}

// BeaconFreqReqPayload represents the BeaconFreqReq payload. A
// Frequency of 0 resumes the region's default beacon plan.
type BeaconFreqReqPayload struct {
	Frequency uint32 `json:"frequency"`
}

// MarshalBinary marshals the object in binary form.
func (p BeaconFreqReqPayload) MarshalBinary() ([]byte, error) {
	if p.Frequency/100 >= 16777216 { // 2^24
		return nil, errors.New("lorawan: max value of Frequency is 2^24 - 1")
	}
	if p.Frequency%100 != 0 {
		return nil, errors.New("lorawan: Frequency must be a multiple of 100")
	}

	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, p.Frequency/100)
	return b[0:3], nil
}

// UnmarshalBinary decodes the object from binary form.
func (p *BeaconFreqReqPayload) UnmarshalBinary(data []byte) error {
	if len(data) != 3 {
		return errors.New("lorawan: 3 bytes of data are expected")
	}
	b := make([]byte, 4)
	copy(b, data)
	p.Frequency = binary.LittleEndian.Uint32(b) * 100
	return nil
}

// BeaconFreqAnsPayload represents the BeaconFreqAns payload.
type BeaconFreqAnsPayload struct {
	BeaconFrequencyOK bool `json:"beaconFrequencyOK"`
}

// MarshalBinary marshals the object in binary form.
func (p BeaconFreqAnsPayload) MarshalBinary() ([]byte, error) {
	var b byte
	if p.BeaconFrequencyOK {
		b = 1 << 0
	}
	return []byte{b}, nil
}

// UnmarshalBinary decodes the object from binary form.
func (p *BeaconFreqAnsPayload) UnmarshalBinary(data []byte) error {
	if len(data) != 1 {
		return errors.New("lorawan: 1 byte of data is expected")
	}
	p.BeaconFrequencyOK = data[0]&(1<<0) != 0
	return nil
}

// DeviceModeIndPayload represents the DeviceModeInd payload.
type DeviceModeIndPayload struct {
	Class uint8 `json:"class"`
}

// MarshalBinary marshals the object in binary form.
func (p DeviceModeIndPayload) MarshalBinary() ([]byte, error) {
	return []byte{p.Class}, nil
}

// UnmarshalBinary decodes the object from binary form.
func (p *DeviceModeIndPayload) UnmarshalBinary(data []byte) error {
	if len(data) != 1 {
		return errors.New("lorawan: 1 byte of data is expected")
	}
	p.Class = data[0]
	return nil
}

// DeviceModeConfPayload represents the DeviceModeConf payload.
type DeviceModeConfPayload struct {
	Class uint8 `json:"class"`
}

// MarshalBinary marshals the object in binary form.
func (p DeviceModeConfPayload) MarshalBinary() ([]byte, error) {
	return []byte{p.Class}, nil
}

// UnmarshalBinary decodes the object from binary form.
func (p *DeviceModeConfPayload) UnmarshalBinary(data []byte) error {
	if len(data) != 1 {
		return errors.New("lorawan: 1 byte of data is expected")
	}
	p.Class = data[0]
	return nil
}

// decodeMacCommands walks a FOpts or decrypted-FRMPayload byte slice,
// emitting one MACCommand per recognised CID. It stops at the first
// unrecognised CID: the remainder of the slice cannot be
// length-accounted for, so parsing halts there, and a diagnostic is
// appended for the caller.
func decodeMacCommands(data []byte, dir Direction, diags *Diagnostics) []MACCommand {
	var cmds []MACCommand
	i := 0
	for i < len(data) {
		cid := CID(data[i])
		byDir, ok := macPayloadRegistry[cid]
		if !ok {
			diags.Warn(CategoryUnknownCommand, "proprietary/unknown MAC command CID 0x%02X at offset %d", cid, i)
			break
		}
		info, ok := byDir[dir]
		if !ok {
			diags.Warn(CategoryUnknownCommand, "MAC command CID 0x%02X has no %s variant", cid, dir)
			break
		}
		i++
		if i+info.size > len(data) {
			diags.Warn(CategoryLengthMismatch, "MAC command %s (CID 0x%02X) expects %d bytes, only %d remain", info.name, cid, info.size, len(data)-i)
			break
		}
		raw := data[i : i+info.size]
		cmd := MACCommand{
			CID:       cid,
			Direction: dir,
			Name:      info.name,
			Raw:       append([]byte(nil), raw...),
		}
		if info.payload != nil {
			p := info.payload()
			if err := p.UnmarshalBinary(raw); err != nil {
				diags.Warn(CategoryLengthMismatch, "MAC command %s (CID 0x%02X) failed to decode: %v", info.name, cid, err)
				break
			}
			cmd.Payload = p
		}
		cmds = append(cmds, cmd)
		i += info.size
	}
	return cmds
}
