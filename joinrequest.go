package lorawan

// JoinRequestPayload is the decoded OTAA join-request body.
type JoinRequestPayload struct {
	AppEUI   EUI64
	DevEUI   EUI64
	DevNonce DevNonce
}

// joinRequestLen is the expected total PHY PDU length for a Join
// Request.
const joinRequestLen = 23

func dissectJoinRequest(phyPDU []byte, appKey *AES128Key, diags *Diagnostics) (JoinRequestPayload, *MIC) {
	if len(phyPDU) != joinRequestLen {
		diags.Warn(CategoryLengthMismatch, "Join Request PDU length must be %d, got %d", joinRequestLen, len(phyPDU))
	}

	body := phyPDU[1:]
	var jr JoinRequestPayload
	if len(body) >= 8 {
		_ = jr.AppEUI.UnmarshalBinary(body[0:8])
	}
	if len(body) >= 16 {
		_ = jr.DevEUI.UnmarshalBinary(body[8:16])
	}
	if len(body) >= 18 {
		_ = jr.DevNonce.UnmarshalBinary(body[16:18])
	}

	if appKey == nil {
		diags.Warn(CategoryMissingKey, "AppKey not supplied: Join Request MIC not derived")
		return jr, nil
	}

	if len(phyPDU) < 4 {
		return jr, nil
	}
	tag, err := aesCMAC(*appKey, phyPDU[:len(phyPDU)-4])
	if err != nil {
		diags.Warn(CategoryMissingKey, "Join Request MIC derivation failed: %v", err)
		return jr, nil
	}
	mic := reverseMIC(tag)
	return jr, &mic
}
