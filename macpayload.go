package lorawan

// MacPayload is the decoded body of a data frame: FHDR, optional FPort,
// and optional decrypted FRMPayload.
type MacPayload struct {
	FHDR          FHDR
	FPort         *uint8
	FRMPayloadRaw []byte       // FRMPayload as it appears on the wire (ciphertext)
	FRMPayload    []byte       // decrypted application/test payload (FPort != 0)
	FRMPayloadMAC []MACCommand // FPort == 0: MAC commands carried in FRMPayload
}

func dissectMacPayload(phyPDU []byte, mtype MType, opts Options, diags *Diagnostics) (MacPayload, *MIC) {
	dir := DirectionOf(mtype)
	body := phyPDU[1 : len(phyPDU)-4]

	var mp MacPayload
	mp.FHDR.FCnt = uint32(opts.UpperFCnt) << 16

	if len(body) < 7 {
		diags.Warn(CategoryLengthMismatch, "MAC payload shorter than a bare FHDR (%d bytes)", len(body))
		return mp, nil
	}

	_ = mp.FHDR.DevAddr.UnmarshalBinary(body[0:4])
	mp.FHDR.FCtrl = FCtrl(body[4])
	fcntLSB := uint16(body[5]) | uint16(body[6])<<8
	mp.FHDR.FCnt |= uint32(fcntLSB)

	fOptsLen := int(mp.FHDR.FCtrl.FOptsLen())
	if 7+fOptsLen > len(body) {
		diags.Warn(CategoryLengthMismatch, "FOptsLen %d exceeds remaining MAC payload (%d bytes)", fOptsLen, len(body)-7)
		fOptsLen = len(body) - 7
	}
	fOpts := body[7 : 7+fOptsLen]
	if len(fOpts) > 0 {
		mp.FHDR.FOpts = decodeMacCommands(fOpts, dir, diags)
	}

	var mic *MIC
	if opts.NwkSKey != nil {
		m, _, err := computeMIC(*opts.NwkSKey, dir, mp.FHDR.DevAddr, mp.FHDR.FCnt, phyPDU[:len(phyPDU)-4])
		if err != nil {
			diags.Warn(CategoryMissingKey, "MAC payload MIC derivation failed: %v", err)
		} else {
			mic = &m
		}
	} else {
		diags.Warn(CategoryMissingKey, "NwkSKey not supplied: MAC payload MIC not derived")
	}

	rest := body[7+fOptsLen:]
	if len(rest) == 0 {
		return mp, mic
	}

	fport := rest[0]
	mp.FPort = &fport
	ciphertext := rest[1:]
	mp.FRMPayloadRaw = append([]byte(nil), ciphertext...)

	switch {
	case fport == 0:
		if fOptsLen > 0 {
			diags.Warn(CategoryLengthMismatch, "FPort 0 with non-empty FOpts: MAC commands present in both")
		}
		if opts.NwkSKey == nil {
			diags.Warn(CategoryMissingKey, "NwkSKey not supplied: FPort 0 FRMPayload not decrypted")
			break
		}
		plaintext, err := encryptFRMPayload(*opts.NwkSKey, dir, mp.FHDR.DevAddr, mp.FHDR.FCnt, ciphertext)
		if err != nil {
			diags.Warn(CategoryMissingKey, "FRMPayload decrypt failed: %v", err)
			break
		}
		mp.FRMPayloadMAC = decodeMacCommands(plaintext, dir, diags)
	default:
		// fport == 224 (test) or 1..223 (application); 225..255 reserved
		// but still decrypted the same way.
		if opts.AppSKey == nil {
			diags.Warn(CategoryMissingKey, "AppSKey not supplied: FPort %d FRMPayload not decrypted", fport)
			break
		}
		plaintext, err := encryptFRMPayload(*opts.AppSKey, dir, mp.FHDR.DevAddr, mp.FHDR.FCnt, ciphertext)
		if err != nil {
			diags.Warn(CategoryMissingKey, "FRMPayload decrypt failed: %v", err)
			break
		}
		mp.FRMPayload = plaintext
	}

	return mp, mic
}
