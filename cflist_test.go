package lorawan

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDLSettings(t *testing.T) {
	Convey("Given the byte 0b0_101_0011", t, func() {
		var dl DLSettings
		So(dl.UnmarshalBinary([]byte{0x53}), ShouldBeNil)

		Convey("Then RX1DROffset is bits 6..4 and RX2DataRate is bits 3..0", func() {
			So(dl.RX1DROffset, ShouldEqual, uint8(5))
			So(dl.RX2DataRate, ShouldEqual, uint8(3))
		})

		Convey("Then MarshalBinary reproduces the byte", func() {
			b, err := dl.MarshalBinary()
			So(err, ShouldBeNil)
			So(b, ShouldResemble, []byte{0x53})
		})
	})

	Convey("Given out-of-range fields", t, func() {
		Convey("Then MarshalBinary returns an error", func() {
			_, err := DLSettings{RX1DROffset: 8}.MarshalBinary()
			So(err, ShouldNotBeNil)
		})
	})
}

func TestDecodeCFList(t *testing.T) {
	Convey("Given a 16-byte CFList with 5 ascending frequencies", t, func() {
		b := make([]byte, 16)
		for i := 0; i < 5; i++ {
			freq := uint32(868100 + i*200) // in 100 Hz units upstream, here direct value
			b[i*3] = byte(freq)
			b[i*3+1] = byte(freq >> 8)
			b[i*3+2] = byte(freq >> 16)
		}
		b[15] = 0

		Convey("When decoded for EU868 (channel start 3)", func() {
			cf, err := decodeCFList(b, RegionEU868)
			So(err, ShouldBeNil)
			So(len(cf.Channels), ShouldEqual, 5)
			So(cf.Channels[0].Channel, ShouldEqual, 3)
			So(cf.Channels[4].Channel, ShouldEqual, 7)
		})

		Convey("When decoded for AS923 (channel start 2)", func() {
			cf, err := decodeCFList(b, RegionAS923)
			So(err, ShouldBeNil)
			So(cf.Channels[0].Channel, ShouldEqual, 2)
		})

		Convey("When decoded for an unimplemented region", func() {
			_, err := decodeCFList(b, RegionUS920)
			So(err, ShouldNotBeNil)
		})

		Convey("When the slice is not 16 bytes", func() {
			_, err := decodeCFList(b[:10], RegionEU868)
			So(err, ShouldNotBeNil)
		})
	})
}
