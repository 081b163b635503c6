package sessionkeys

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lorawan "github.com/brocaar/lwdissect"
)

func mustKey(t *testing.T, hexKey string) lorawan.AES128Key {
	t.Helper()
	var k lorawan.AES128Key
	require.NoError(t, k.UnmarshalText([]byte(hexKey)))
	return k
}

func TestDerive(t *testing.T) {
	appKey := mustKey(t, "2b7e151628aed2a6abf7158809cf4f3c")
	appNonce := lorawan.AppNonce{0x01, 0x02, 0x03}
	netID := lorawan.NetID{0x04, 0x05, 0x06}
	devNonce := lorawan.DevNonce{0x07, 0x08}

	nwkSKey, appSKey, err := Derive(appKey, appNonce, netID, devNonce)
	require.NoError(t, err)
	assert.NotEqual(t, nwkSKey, appSKey)

	nwkSKey2, appSKey2, err := Derive(appKey, appNonce, netID, devNonce)
	require.NoError(t, err)
	assert.Equal(t, nwkSKey, nwkSKey2)
	assert.Equal(t, appSKey, appSKey2)
}

func TestDeriveDifferentNoncesDiffer(t *testing.T) {
	appKey := mustKey(t, "2b7e151628aed2a6abf7158809cf4f3c")
	netID := lorawan.NetID{0x04, 0x05, 0x06}
	devNonce := lorawan.DevNonce{0x07, 0x08}

	nwkSKeyA, _, err := Derive(appKey, lorawan.AppNonce{0x01, 0x02, 0x03}, netID, devNonce)
	require.NoError(t, err)
	nwkSKeyB, _, err := Derive(appKey, lorawan.AppNonce{0x09, 0x09, 0x09}, netID, devNonce)
	require.NoError(t, err)

	assert.NotEqual(t, nwkSKeyA, nwkSKeyB)
}
