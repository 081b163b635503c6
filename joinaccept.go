package lorawan

// JoinAcceptPayload is the decoded OTAA join-accept body.
type JoinAcceptPayload struct {
	AppNonce   AppNonce
	NetID      NetID
	DevAddr    DevAddr
	DLSettings DLSettings
	RXDelaySec uint8
	CFList     *CFList
}

// joinAcceptLenNoCFList / joinAcceptLenCFList are the two valid total PHY
// PDU lengths for a Join Accept.
const (
	joinAcceptLenNoCFList = 17
	joinAcceptLenCFList   = 33
)

// dissectJoinAccept applies the "encrypt-to-decrypt" trick: the
// server encrypted the body with ECB-decrypt, so the
// device (and this dissector) recovers plaintext via ECB-encrypt. If
// appKey is nil the body cannot be decrypted at all and only the
// presence/absence is reported via diagnostics.
func dissectJoinAccept(phyPDU []byte, appKey *AES128Key, version MACVersion, region Region, diags *Diagnostics) (ja *JoinAcceptPayload, micInFrame *MIC, micDerived *MIC) {
	if len(phyPDU) != joinAcceptLenNoCFList && len(phyPDU) != joinAcceptLenCFList {
		diags.Warn(CategoryLengthMismatch, "Join Accept PDU length must be %d or %d, got %d", joinAcceptLenNoCFList, joinAcceptLenCFList, len(phyPDU))
	}

	if appKey == nil {
		diags.Warn(CategoryMissingKey, "AppKey not supplied: Join Accept cannot be decrypted")
		return nil, nil, nil
	}

	body := phyPDU[1:]
	if len(body)%16 != 0 {
		diags.Warn(CategoryLengthMismatch, "Join Accept body length %d is not a multiple of 16", len(body))
		return nil, nil, nil
	}

	plaintext, err := aes128Encrypt(*appKey, body)
	if err != nil {
		diags.Warn(CategoryMissingKey, "Join Accept decrypt failed: %v", err)
		return nil, nil, nil
	}

	if len(plaintext) < 16 {
		diags.Warn(CategoryLengthMismatch, "Join Accept plaintext too short")
		return nil, nil, nil
	}

	ja = &JoinAcceptPayload{}
	_ = ja.AppNonce.UnmarshalBinary(plaintext[0:3])
	_ = ja.NetID.UnmarshalBinary(plaintext[3:6])
	_ = ja.DevAddr.UnmarshalBinary(plaintext[6:10])

	if version == MACVersion10 {
		diags.Warn(CategoryUnsupported, "MACVersion 1.0: DLSettings byte treated as RFU")
	} else {
		_ = ja.DLSettings.UnmarshalBinary(plaintext[10:11])
	}

	rxDelay := plaintext[11]
	if rxDelay == 0 {
		rxDelay = 1
	}
	ja.RXDelaySec = rxDelay

	if len(plaintext) >= 28+4 {
		cf, err := decodeCFList(plaintext[12:28], region)
		if err != nil {
			diags.Warn(CategoryUnsupported, "%v", err)
		} else {
			ja.CFList = &cf
		}
	}

	plainMICOff := len(plaintext) - 4
	var wireMIC MIC
	for i := 0; i < 4; i++ {
		wireMIC[i] = plaintext[len(plaintext)-1-i]
	}
	micInFrame = &wireMIC

	msg := append([]byte{phyPDU[0]}, plaintext[:plainMICOff]...)
	wireTag, err := aesCMAC(*appKey, msg)
	if err != nil {
		diags.Warn(CategoryMissingKey, "Join Accept MIC derivation failed: %v", err)
		return ja, micInFrame, nil
	}
	mic := reverseMIC(wireTag)
	micDerived = &mic
	return ja, micInFrame, micDerived
}
