package lorawan

import (
	"crypto/aes"
	"encoding/binary"
	"errors"

	"github.com/jacobsa/crypto/cmac"
)

// aes128BlockEncrypt ECB-encrypts a single 16-byte block with key.
func aes128BlockEncrypt(key AES128Key, block []byte) ([]byte, error) {
	if len(block) != 16 {
		return nil, errors.New("lorawan: block must be 16 bytes")
	}
	c, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	out := make([]byte, 16)
	c.Encrypt(out, block)
	return out, nil
}

// aes128BlockDecrypt ECB-decrypts a single 16-byte block with key.
func aes128BlockDecrypt(key AES128Key, block []byte) ([]byte, error) {
	if len(block) != 16 {
		return nil, errors.New("lorawan: block must be 16 bytes")
	}
	c, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	out := make([]byte, 16)
	c.Decrypt(out, block)
	return out, nil
}

// aes128Encrypt is the bulk AES-128 ECB encrypt helper used for key
// derivation and for the Join Accept "encrypt-to-decrypt" trick: it
// zero-pads the final block to 16 bytes and concatenates per-block
// output. It is never used for general FRMPayload plaintext, only for
// these two fixed-size inputs: the 9-byte key-derivation block (padded
// here to 16) and the 16- or 32-byte Join Accept body.
func aes128Encrypt(key AES128Key, msg []byte) ([]byte, error) {
	padded := msg
	if r := len(msg) % 16; r != 0 {
		padded = make([]byte, len(msg)+16-r)
		copy(padded, msg)
	}

	out := make([]byte, 0, len(padded))
	for off := 0; off < len(padded); off += 16 {
		blk, err := aes128BlockEncrypt(key, padded[off:off+16])
		if err != nil {
			return nil, err
		}
		out = append(out, blk...)
	}
	return out, nil
}

// aes128Decrypt requires a 16-byte-aligned input. It is the "server"
// side of the Join Accept encrypt-to-decrypt trick: ECB-decrypting a
// 16- or 32-byte Join Accept plaintext yields the wire ciphertext. The
// dissector itself recovers plaintext with aes128Encrypt.
func aes128Decrypt(key AES128Key, msg []byte) ([]byte, error) {
	if len(msg)%16 != 0 {
		return nil, errors.New("lorawan: aes128Decrypt requires input a multiple of 16 bytes")
	}
	out := make([]byte, 0, len(msg))
	for off := 0; off < len(msg); off += 16 {
		blk, err := aes128BlockDecrypt(key, msg[off:off+16])
		if err != nil {
			return nil, err
		}
		out = append(out, blk...)
	}
	return out, nil
}

// aesCMAC returns the full 16-byte AES-CMAC tag (RFC 4493) of msg under key.
func aesCMAC(key AES128Key, msg []byte) ([16]byte, error) {
	var tag [16]byte
	h, err := cmac.New(key[:])
	if err != nil {
		return tag, err
	}
	if _, err := h.Write(msg); err != nil {
		return tag, err
	}
	sum := h.Sum(nil)
	if len(sum) < 16 {
		return tag, errors.New("lorawan: cmac returned less than 16 bytes")
	}
	copy(tag[:], sum[:16])
	return tag, nil
}

// reverseMIC turns a CMAC tag's leading 4 bytes into a host-order MIC:
// tag[0..4] byte-reversed. The wire bytes (MIC.MarshalBinary) are
// tag[0..4] as-is.
func reverseMIC(tag [16]byte) MIC {
	var m MIC
	m[0], m[1], m[2], m[3] = tag[3], tag[2], tag[1], tag[0]
	return m
}

// aBlock assembles the A_i keystream-generator block used by both
// FRMPayload encryption and (as B_0, with a different leading byte and
// trailing length) MIC computation. devAddr and fcnt are host-order;
// they are reversed into the block
func aBlock(leading byte, dir Direction, devAddr DevAddr, fcnt uint32, counter byte) []byte {
	b := make([]byte, 16)
	b[0] = leading
	if dir == Down {
		b[5] = 0x01
	}
	b[6], b[7], b[8], b[9] = devAddr[3], devAddr[2], devAddr[1], devAddr[0]
	binary.LittleEndian.PutUint32(b[10:14], fcnt)
	b[15] = counter
	return b
}

// encryptFRMPayload is the CCM*-style keystream XOR (LoRaWAN 1.0.x §4.3.3):
// symmetric, so it is used for both encryption and decryption. key is
// NwkSKey (FPort 0) or AppSKey (FPort 1-255); dir/devAddr/fcnt feed the
// A_i block construction.
func encryptFRMPayload(key AES128Key, dir Direction, devAddr DevAddr, fcnt uint32, data []byte) ([]byte, error) {
	out := make([]byte, len(data))
	copy(out, data)

	counter := byte(1)
	for off := 0; off < len(out); off += 16 {
		a := aBlock(0x01, dir, devAddr, fcnt, counter)
		s, err := aes128BlockEncrypt(key, a)
		if err != nil {
			return nil, err
		}
		n := 16
		if rem := len(out) - off; rem < 16 {
			n = rem
		}
		for i := 0; i < n; i++ {
			out[off+i] ^= s[i]
		}
		counter++
	}
	return out, nil
}

// computeMIC computes the MIC over msg (MHDR‖FHDR‖FPort‖FRMPayload as
// it appears on the wire) using key, direction, devAddr and fcnt. It
// returns both the host-order MIC and the raw CMAC tag, so a caller
// can compare either form.
func computeMIC(key AES128Key, dir Direction, devAddr DevAddr, fcnt uint32, msg []byte) (MIC, [16]byte, error) {
	b0 := aBlock(0x49, dir, devAddr, fcnt, 0)
	b0[15] = byte(len(msg))

	tag, err := aesCMAC(key, append(b0, msg...))
	if err != nil {
		return MIC{}, tag, err
	}
	return reverseMIC(tag), tag, nil
}

// deriveSessionKeys implements the v1.0.x OTAA key derivation:
// base = AppNonce(LE) ‖ NetID(LE) ‖ DevNonce(LE), zero-padded to
// 16 bytes with the leading derivation-constant byte included.
func deriveSessionKeys(appKey AES128Key, appNonce AppNonce, netID NetID, devNonce DevNonce) (nwkSKey, appSKey AES128Key, err error) {
	base := make([]byte, 0, 8)
	base = append(base, appNonce[2], appNonce[1], appNonce[0])
	base = append(base, netID[2], netID[1], netID[0])
	base = append(base, devNonce[1], devNonce[0])

	nk, err := aes128Encrypt(appKey, append([]byte{0x01}, base...))
	if err != nil {
		return nwkSKey, appSKey, err
	}
	ak, err := aes128Encrypt(appKey, append([]byte{0x02}, base...))
	if err != nil {
		return nwkSKey, appSKey, err
	}
	copy(nwkSKey[:], nk[:16])
	copy(appSKey[:], ak[:16])
	return nwkSKey, appSKey, nil
}
