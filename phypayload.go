package lorawan

import "errors"

// Options carries every optional input the dissector accepts.
// A nil key disables the decrypt/MIC step it gates; the structural
// fields are always returned regardless.
type Options struct {
	AppKey    *AES128Key
	NwkSKey   *AES128Key
	AppSKey   *AES128Key
	Version   MACVersion
	UpperFCnt uint16
	Region    Region
	// ParseOnly asks the caller's rendering sink to stay quiet. The
	// core itself never renders, so the flag only passes through for
	// sinks that inspect it; the tree is returned either way.
	ParseOnly bool
}

// PhyPdu is the top-level, immutable parse-tree node returned by
// Dissect.
type PhyPdu struct {
	MHDR        MHDR
	Body        interface{} // *JoinRequestPayload | *JoinAcceptPayload | *MacPayload | ProprietaryBody
	MICInFrame  *MIC
	MICDerived  *MIC
	Diagnostics Diagnostics
}

// ProprietaryBody is returned for MType RFU and Proprietary:
// the dissector does not know how to further decode these, so it
// surfaces the raw bytes between MHDR and the wire MIC.
type ProprietaryBody struct {
	Raw []byte
}

// Dissect parses one PHY PDU into a PhyPdu tree. It never aborts on a
// malformed or undecryptable frame; an error is returned only when
// phyPDU is too short to even read an MHDR.
func Dissect(phyPDU []byte, opts Options) (*PhyPdu, error) {
	if len(phyPDU) < 1 {
		return nil, errors.New("lorawan: PHY PDU must be at least 1 byte")
	}

	tree := &PhyPdu{}
	if err := tree.MHDR.UnmarshalBinary(phyPDU[0:1]); err != nil {
		return nil, err
	}

	if len(phyPDU) >= 5 {
		var mic MIC
		copy(mic[:], []byte{phyPDU[len(phyPDU)-1], phyPDU[len(phyPDU)-2], phyPDU[len(phyPDU)-3], phyPDU[len(phyPDU)-4]})
		tree.MICInFrame = &mic
	} else {
		tree.Diagnostics.Warn(CategoryLengthMismatch, "PHY PDU too short (%d bytes) to carry a MIC", len(phyPDU))
	}

	switch tree.MHDR.MType {
	case JoinRequest:
		jr, mic := dissectJoinRequest(phyPDU, opts.AppKey, &tree.Diagnostics)
		tree.Body = &jr
		tree.MICDerived = mic
	case JoinAccept:
		// The phyPDU trailer is ciphertext for an encrypted Join Accept,
		// not a plain wire MIC; MICInFrame is only meaningful once the
		// body has been decrypted, so dissectJoinAccept supplies it from
		// the recovered plaintext instead of the generic trailer read
		// above.
		tree.MICInFrame = nil
		ja, micInFrame, micDerived := dissectJoinAccept(phyPDU, opts.AppKey, opts.Version, opts.Region, &tree.Diagnostics)
		if ja != nil {
			tree.Body = ja
		}
		tree.MICInFrame = micInFrame
		tree.MICDerived = micDerived
	case UnconfirmedDataUp, UnconfirmedDataDown, ConfirmedDataUp, ConfirmedDataDown:
		if len(phyPDU) < 5 {
			tree.Diagnostics.Warn(CategoryLengthMismatch, "data frame too short to hold FHDR and MIC")
			break
		}
		mp, mic := dissectMacPayload(phyPDU, tree.MHDR.MType, opts, &tree.Diagnostics)
		tree.Body = &mp
		tree.MICDerived = mic
	case MTypeRFU:
		tree.Diagnostics.Warn(CategoryUnsupported, "MType RFU (110) is not a defined frame type")
		tree.Body = ProprietaryBody{Raw: bodyBetweenMHDRAndMIC(phyPDU)}
	case Proprietary:
		tree.Body = ProprietaryBody{Raw: bodyBetweenMHDRAndMIC(phyPDU)}
	}

	return tree, nil
}

// bodyBetweenMHDRAndMIC returns the bytes after MHDR and before the
// trailing 4-byte MIC, or nil if the PDU is too short to hold both.
func bodyBetweenMHDRAndMIC(phyPDU []byte) []byte {
	if len(phyPDU) < 5 {
		return nil
	}
	return phyPDU[1 : len(phyPDU)-4]
}
