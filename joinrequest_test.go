package lorawan

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDissectJoinRequest(t *testing.T) {
	Convey("Given an AppKey and a well-formed Join Request PHY PDU", t, func() {
		appKey := mustHexKey("2b7e151628aed2a6abf7158809cf4f3c")

		body := make([]byte, 0, joinRequestLen)
		body = append(body, byte(JoinRequest)<<5) // MHDR, Major LoRaWANR1
		appEUI := [8]byte{1, 2, 3, 4, 5, 6, 7, 8}
		devEUI := [8]byte{8, 7, 6, 5, 4, 3, 2, 1}
		for i := 7; i >= 0; i-- {
			body = append(body, appEUI[i])
		}
		for i := 7; i >= 0; i-- {
			body = append(body, devEUI[i])
		}
		body = append(body, 0x34, 0x12) // DevNonce wire bytes

		tag, err := aesCMAC(appKey, body)
		So(err, ShouldBeNil)
		mic := reverseMIC(tag)
		micWire, err := mic.MarshalBinary()
		So(err, ShouldBeNil)
		phyPDU := append(body, micWire...)
		So(len(phyPDU), ShouldEqual, joinRequestLen)

		Convey("When dissected with the correct AppKey", func() {
			var diags Diagnostics
			jr, derivedMIC := dissectJoinRequest(phyPDU, &appKey, &diags)

			Convey("Then AppEUI/DevEUI/DevNonce are reconstructed in host order", func() {
				So(jr.AppEUI, ShouldEqual, EUI64(appEUI))
				So(jr.DevEUI, ShouldEqual, EUI64(devEUI))
				So(jr.DevNonce, ShouldEqual, DevNonce{0x12, 0x34})
			})

			Convey("Then the derived MIC matches the one embedded on the wire", func() {
				So(derivedMIC, ShouldNotBeNil)
				So(*derivedMIC, ShouldEqual, mic)
			})
		})

		Convey("When dissected without an AppKey", func() {
			var diags Diagnostics
			_, derivedMIC := dissectJoinRequest(phyPDU, nil, &diags)

			Convey("Then no MIC is derived and a missing-key diagnostic is recorded", func() {
				So(derivedMIC, ShouldBeNil)
				So(diags, ShouldNotBeEmpty)
				So(diags[0].Category, ShouldEqual, CategoryMissingKey)
			})
		})

		Convey("When the PDU is truncated", func() {
			var diags Diagnostics
			dissectJoinRequest(phyPDU[:10], &appKey, &diags)

			Convey("Then a length-mismatch diagnostic is recorded", func() {
				So(diags, ShouldNotBeEmpty)
				So(diags[0].Category, ShouldEqual, CategoryLengthMismatch)
			})
		})
	})
}
