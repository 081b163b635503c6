package lorawan

import (
	"encoding/hex"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func mustHexKey(s string) AES128Key {
	var k AES128Key
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != 16 {
		panic("bad test key")
	}
	copy(k[:], b)
	return k
}

func mustHexBytes(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic("bad test bytes")
	}
	return b
}

// TestAESCMACRFC4493Vectors checks aesCMAC against the RFC 4493 §4
// published test vectors for key 2b7e151628aed2a6abf7158809cf4f3c.
func TestAESCMACRFC4493Vectors(t *testing.T) {
	key := mustHexKey("2b7e151628aed2a6abf7158809cf4f3c")

	Convey("Given the RFC 4493 test key", t, func() {
		Convey("Example 1: empty message", func() {
			tag, err := aesCMAC(key, nil)
			So(err, ShouldBeNil)
			So(hex.EncodeToString(tag[:]), ShouldEqual, "bb1d6929e95937287fa37d129b756746")
		})

		Convey("Example 2: one 16-byte block", func() {
			msg := mustHexBytes("6bc1bee22e409f96e93d7e117393172a")
			tag, err := aesCMAC(key, msg)
			So(err, ShouldBeNil)
			So(hex.EncodeToString(tag[:]), ShouldEqual, "070a16b46b4d4144f79bdd9dd04a287c")
		})

		Convey("Example 3: 40-byte message", func() {
			msg := mustHexBytes("6bc1bee22e409f96e93d7e117393172a" +
				"ae2d8a571e03ac9c9eb76fac45af8e51" +
				"30c81c46a35ce411")
			tag, err := aesCMAC(key, msg)
			So(err, ShouldBeNil)
			So(hex.EncodeToString(tag[:]), ShouldEqual, "dfa66747de9ae63030ca32611497c827")
		})

		Convey("Example 4: 64-byte message", func() {
			msg := mustHexBytes("6bc1bee22e409f96e93d7e117393172a" +
				"ae2d8a571e03ac9c9eb76fac45af8e51" +
				"30c81c46a35ce411e5fbc1191a0a52ef" +
				"f69f2445df4f9b17ad2b417be66c3710")
			tag, err := aesCMAC(key, msg)
			So(err, ShouldBeNil)
			So(hex.EncodeToString(tag[:]), ShouldEqual, "51f0bebf7e3b9d92fc49741779363cfe")
		})
	})
}

func TestAES128BlockRoundTrip(t *testing.T) {
	Convey("Given a key and a 16-byte block", t, func() {
		key := mustHexKey("000102030405060708090a0b0c0d0e0f")
		block := mustHexBytes("00112233445566778899aabbccddeeff")

		Convey("Then decrypt(encrypt(block)) == block", func() {
			ct, err := aes128BlockEncrypt(key, block)
			So(err, ShouldBeNil)
			pt, err := aes128BlockDecrypt(key, ct)
			So(err, ShouldBeNil)
			So(pt, ShouldResemble, block)
		})
	})
}

func TestEncryptFRMPayloadIsSymmetric(t *testing.T) {
	Convey("Given a key, direction, DevAddr and FCnt", t, func() {
		key := mustHexKey("2b7e151628aed2a6abf7158809cf4f3c")
		devAddr := DevAddr{0x04, 0x03, 0x02, 0x01}
		plaintext := []byte("hello lorawan!!!") // 16 bytes

		Convey("Then encrypting then encrypting again with the same inputs recovers the plaintext", func() {
			ct, err := encryptFRMPayload(key, Up, devAddr, 1, plaintext)
			So(err, ShouldBeNil)
			So(ct, ShouldNotResemble, plaintext)

			pt, err := encryptFRMPayload(key, Up, devAddr, 1, ct)
			So(err, ShouldBeNil)
			So(pt, ShouldResemble, plaintext)
		})

		Convey("Then a different FCnt produces different ciphertext", func() {
			ct1, _ := encryptFRMPayload(key, Up, devAddr, 1, plaintext)
			ct2, _ := encryptFRMPayload(key, Up, devAddr, 2, plaintext)
			So(ct1, ShouldNotResemble, ct2)
		})
	})
}

func TestComputeMICIsDeterministic(t *testing.T) {
	Convey("Given identical inputs", t, func() {
		key := mustHexKey("2b7e151628aed2a6abf7158809cf4f3c")
		devAddr := DevAddr{0x04, 0x03, 0x02, 0x01}
		msg := []byte{0x40, 0x01, 0x02, 0x03, 0x04, 0x00, 0x00, 0x01}

		Convey("Then computeMIC returns the same MIC every time", func() {
			mic1, _, err := computeMIC(key, Up, devAddr, 1, msg)
			So(err, ShouldBeNil)
			mic2, _, err := computeMIC(key, Up, devAddr, 1, msg)
			So(err, ShouldBeNil)
			So(mic1, ShouldEqual, mic2)
		})

		Convey("Then flipping direction changes the MIC", func() {
			micUp, _, _ := computeMIC(key, Up, devAddr, 1, msg)
			micDown, _, _ := computeMIC(key, Down, devAddr, 1, msg)
			So(micUp, ShouldNotEqual, micDown)
		})
	})
}

func TestDeriveSessionKeys(t *testing.T) {
	Convey("Given an AppKey and a set of join nonces", t, func() {
		appKey := mustHexKey("2b7e151628aed2a6abf7158809cf4f3c")
		appNonce := AppNonce{0x01, 0x02, 0x03}
		netID := NetID{0x04, 0x05, 0x06}
		devNonce := DevNonce{0x07, 0x08}

		Convey("Then NwkSKey and AppSKey are distinct 16-byte keys", func() {
			nwkSKey, appSKey, err := deriveSessionKeys(appKey, appNonce, netID, devNonce)
			So(err, ShouldBeNil)
			So(nwkSKey, ShouldNotEqual, appSKey)
		})

		Convey("Then derivation is deterministic", func() {
			nwkSKey1, appSKey1, _ := deriveSessionKeys(appKey, appNonce, netID, devNonce)
			nwkSKey2, appSKey2, _ := deriveSessionKeys(appKey, appNonce, netID, devNonce)
			So(nwkSKey1, ShouldEqual, nwkSKey2)
			So(appSKey1, ShouldEqual, appSKey2)
		})
	})
}
