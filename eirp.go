package lorawan

// maxEIRPTable maps a TxParamSetupReq MaxEIRP nibble (0-15) to dBm.
var maxEIRPTable = [16]float32{
	8, 10, 12, 13, 14, 16, 18, 20, 21, 24, 26, 27, 29, 30, 33, 36,
}

// maxEIRP looks up the dBm value for a MaxEIRP nibble. The reverse
// direction (dBm -> index) is a table scan in
// TXParamSetupReqPayload.MarshalBinary.
func maxEIRP(index uint8) float32 {
	return maxEIRPTable[index&0x0F]
}
