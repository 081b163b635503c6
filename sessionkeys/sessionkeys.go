// Package sessionkeys derives the LoRaWAN 1.0.x OTAA session keys
// (NwkSKey, AppSKey) from a device's AppKey and the nonces exchanged
// during a join. It is the only key-derivation path the dissector
// needs: 1.0.x has no FNwkSIntKey/SNwkSIntKey/NwkSEncKey split.
package sessionkeys

import (
	"crypto/aes"

	"github.com/pkg/errors"

	lorawan "github.com/brocaar/lwdissect"
)

// typNwkSKey and typAppSKey are the leading derivation-constant bytes
// of the AES-128 block fed through ECB-encrypt.
const (
	typNwkSKey byte = 0x01
	typAppSKey byte = 0x02
)

// Derive computes NwkSKey and AppSKey from the device's AppKey and the
// three join nonces, following the same block layout as the Join
// Accept encrypt-to-decrypt trick: typ ‖ AppNonce(LE) ‖ NetID(LE) ‖
// DevNonce(LE), zero-padded to 16 bytes, ECB-encrypted under AppKey.
func Derive(appKey lorawan.AES128Key, appNonce lorawan.AppNonce, netID lorawan.NetID, devNonce lorawan.DevNonce) (nwkSKey, appSKey lorawan.AES128Key, err error) {
	nwkSKey, err = getSKey(typNwkSKey, appKey, appNonce, netID, devNonce)
	if err != nil {
		return nwkSKey, appSKey, errors.Wrap(err, "derive NwkSKey")
	}
	appSKey, err = getSKey(typAppSKey, appKey, appNonce, netID, devNonce)
	if err != nil {
		return nwkSKey, appSKey, errors.Wrap(err, "derive AppSKey")
	}
	return nwkSKey, appSKey, nil
}

func getSKey(typ byte, appKey lorawan.AES128Key, appNonce lorawan.AppNonce, netID lorawan.NetID, devNonce lorawan.DevNonce) (lorawan.AES128Key, error) {
	var key lorawan.AES128Key
	b := make([]byte, 16)
	b[0] = typ

	appNonceB, err := appNonce.MarshalBinary()
	if err != nil {
		return key, errors.Wrap(err, "marshal AppNonce")
	}
	netIDB, err := netID.MarshalBinary()
	if err != nil {
		return key, errors.Wrap(err, "marshal NetID")
	}
	devNonceB, err := devNonce.MarshalBinary()
	if err != nil {
		return key, errors.Wrap(err, "marshal DevNonce")
	}

	copy(b[1:4], appNonceB)
	copy(b[4:7], netIDB)
	copy(b[7:9], devNonceB)

	block, err := aes.NewCipher(appKey[:])
	if err != nil {
		return key, errors.Wrap(err, "new cipher")
	}
	if block.BlockSize() != len(b) {
		return key, errors.Errorf("block-size of %d bytes is expected", len(b))
	}
	block.Encrypt(key[:], b)

	return key, nil
}
