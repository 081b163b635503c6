package main

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

// normalizePHYPayload accepts a PHY PDU in any of the forms an operator
// is likely to paste from a gateway log: hex (with or without a single
// leading "0x" prefix and colon/dash/dot/comma/space/tab separators)
// or base64. A "0x" in front of each byte is not removed. Hex is
// tried first since it is the overwhelmingly common case and base64
// alphabets overlap with hex digits.
func normalizePHYPayload(s string) ([]byte, error) {
	stripped := stripHexSeparators(s)

	if b, err := hex.DecodeString(stripped); err == nil {
		return b, nil
	}

	if b, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s)); err == nil {
		return b, nil
	}

	return nil, fmt.Errorf("lwdissect: %q is neither valid hex nor base64", s)
}

func stripHexSeparators(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "0x")
	s = strings.TrimPrefix(s, "0X")
	replacer := strings.NewReplacer(":", "", "-", "", ".", "", ",", "", " ", "", "\t", "")
	return replacer.Replace(s)
}
