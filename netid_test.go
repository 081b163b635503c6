package lorawan

import (
	"database/sql/driver"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNetID(t *testing.T) {
	Convey("Given an empty NetID", t, func() {
		var netID NetID

		Convey("When the value is [3]{1, 2, 219}", func() {
			netID = [3]byte{1, 2, 219}

			Convey("Then MarshalText returns 0102db", func() {
				b, err := netID.MarshalText()
				So(err, ShouldBeNil)
				So(string(b), ShouldEqual, "0102db")
			})

			Convey("Then NwkID returns the top 7 bits of the first byte", func() {
				So(netID.NwkID(), ShouldEqual, byte(0))
			})

			Convey("Then Value returns the expected value", func() {
				v, err := netID.Value()
				So(err, ShouldBeNil)
				So(v, ShouldResemble, driver.Value(netID[:]))
			})
		})

		Convey("Given the string 0102db", func() {
			Convey("Then UnmarshalText returns NetID{1, 2, 219}", func() {
				err := netID.UnmarshalText([]byte("0102db"))
				So(err, ShouldBeNil)
				So(netID, ShouldEqual, NetID{1, 2, 219})
			})
		})

		Convey("Given a byteslice", func() {
			b := []byte{1, 2, 3}
			Convey("Then Scan scans the value correctly", func() {
				So(netID.Scan(b), ShouldBeNil)
				So(netID[:], ShouldResemble, b)
			})
		})
	})
}

func TestEUI64AndNonces(t *testing.T) {
	Convey("Given an EUI64 {1,2,3,4,5,6,7,8}", t, func() {
		eui := EUI64{1, 2, 3, 4, 5, 6, 7, 8}

		Convey("Then MarshalBinary reverses to wire order", func() {
			b, err := eui.MarshalBinary()
			So(err, ShouldBeNil)
			So(b, ShouldResemble, []byte{8, 7, 6, 5, 4, 3, 2, 1})
		})

		Convey("Then a round trip through UnmarshalBinary restores the value", func() {
			b, _ := eui.MarshalBinary()
			var back EUI64
			So(back.UnmarshalBinary(b), ShouldBeNil)
			So(back, ShouldEqual, eui)
		})
	})

	Convey("Given a DevNonce {0x34, 0x12}", t, func() {
		n := DevNonce{0x34, 0x12}

		Convey("Then MarshalBinary produces the little-endian wire bytes", func() {
			b, err := n.MarshalBinary()
			So(err, ShouldBeNil)
			So(b, ShouldResemble, []byte{0x12, 0x34})
		})
	})

	Convey("Given an AppNonce {0x03, 0x02, 0x01}", t, func() {
		n := AppNonce{0x03, 0x02, 0x01}

		Convey("Then MarshalBinary produces the little-endian wire bytes", func() {
			b, err := n.MarshalBinary()
			So(err, ShouldBeNil)
			So(b, ShouldResemble, []byte{0x01, 0x02, 0x03})
		})
	})
}
