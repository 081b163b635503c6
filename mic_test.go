package lorawan

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestAES128Key(t *testing.T) {
	Convey("Given the hex string 00112233445566778899aabbccddeeff0", t, func() {
		Convey("Then UnmarshalText rejects an odd-length 33-character string", func() {
			var k AES128Key
			err := k.UnmarshalText([]byte("00112233445566778899aabbccddeeff0"))
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Given the key 000102030405060708090a0b0c0d0e0f", t, func() {
		var k AES128Key
		err := k.UnmarshalText([]byte("000102030405060708090a0b0c0d0e0f"))
		So(err, ShouldBeNil)

		Convey("Then String round-trips to the same hex", func() {
			So(k.String(), ShouldEqual, "000102030405060708090a0b0c0d0e0f")
		})

		Convey("Then MarshalBinary/UnmarshalBinary round-trip", func() {
			b, err := k.MarshalBinary()
			So(err, ShouldBeNil)
			var k2 AES128Key
			So(k2.UnmarshalBinary(b), ShouldBeNil)
			So(k2, ShouldEqual, k)
		})
	})
}

func TestMIC(t *testing.T) {
	Convey("Given the wire bytes {0x04, 0x03, 0x02, 0x01}", t, func() {
		var m MIC
		err := m.UnmarshalBinary([]byte{0x04, 0x03, 0x02, 0x01})
		So(err, ShouldBeNil)

		Convey("Then the host-order value is reversed", func() {
			So(m, ShouldEqual, MIC{0x01, 0x02, 0x03, 0x04})
		})

		Convey("Then MarshalBinary reverses back to the original wire bytes", func() {
			b, err := m.MarshalBinary()
			So(err, ShouldBeNil)
			So(b, ShouldResemble, []byte{0x04, 0x03, 0x02, 0x01})
		})
	})
}
