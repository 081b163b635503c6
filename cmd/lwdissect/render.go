package main

import (
	"fmt"
	"strings"

	lorawan "github.com/brocaar/lwdissect"
)

// render walks the parse tree and builds the human-readable form.
// Package lorawan never renders anything itself.
func render(tree *lorawan.PhyPdu) string {
	var b strings.Builder

	fmt.Fprintf(&b, "MHDR: MType=%s Major=%d\n", tree.MHDR.MType, tree.MHDR.Major)

	switch body := tree.Body.(type) {
	case *lorawan.JoinRequestPayload:
		fmt.Fprintf(&b, "JoinRequest: AppEUI=%s DevEUI=%s DevNonce=%v\n", body.AppEUI, body.DevEUI, body.DevNonce)
	case *lorawan.JoinAcceptPayload:
		fmt.Fprintf(&b, "JoinAccept: AppNonce=%v NetID=%s DevAddr=%s RXDelaySec=%d\n",
			body.AppNonce, body.NetID, body.DevAddr, body.RXDelaySec)
		if body.CFList != nil {
			fmt.Fprintf(&b, "  CFList: %+v\n", *body.CFList)
		}
	case *lorawan.MacPayload:
		fmt.Fprintf(&b, "FHDR: DevAddr=%s FCtrl=%08b FCnt=%d\n", body.FHDR.DevAddr, byte(body.FHDR.FCtrl), body.FHDR.FCnt)
		renderMACCommands(&b, "FOpts", body.FHDR.FOpts)
		if body.FPort != nil {
			fmt.Fprintf(&b, "FPort: %d\n", *body.FPort)
		}
		if len(body.FRMPayloadMAC) > 0 {
			renderMACCommands(&b, "FRMPayload (MAC commands)", body.FRMPayloadMAC)
		} else if body.FRMPayload != nil {
			fmt.Fprintf(&b, "FRMPayload: %x\n", body.FRMPayload)
		} else if body.FRMPayloadRaw != nil {
			fmt.Fprintf(&b, "FRMPayload (not decrypted): %x\n", body.FRMPayloadRaw)
		}
	case lorawan.ProprietaryBody:
		fmt.Fprintf(&b, "Raw: %x\n", body.Raw)
	}

	if tree.MICInFrame != nil {
		fmt.Fprintf(&b, "MICInFrame: %s\n", tree.MICInFrame)
	}
	if tree.MICDerived != nil {
		fmt.Fprintf(&b, "MICDerived: %s\n", tree.MICDerived)
		if tree.MICInFrame != nil {
			fmt.Fprintf(&b, "MICMatch: %v\n", *tree.MICInFrame == *tree.MICDerived)
		}
	}

	for _, d := range tree.Diagnostics {
		fmt.Fprintf(&b, "[%s] %s: %s\n", d.Severity, d.Category, d.Message)
	}

	return b.String()
}

func renderMACCommands(b *strings.Builder, label string, cmds []lorawan.MACCommand) {
	if len(cmds) == 0 {
		return
	}
	fmt.Fprintf(b, "%s:\n", label)
	for _, c := range cmds {
		fmt.Fprintf(b, "  %s (CID=0x%02X, %s)", c.Name, byte(c.CID), c.Direction)
		if c.Payload != nil {
			fmt.Fprintf(b, ": %+v", c.Payload)
		}
		b.WriteString("\n")
	}
}
