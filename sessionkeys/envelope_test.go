package sessionkeys

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapWithoutKEK(t *testing.T) {
	var key [16]byte
	copy(key[:], []byte("0123456789abcdef"))

	env, err := Wrap("", nil, key)
	require.NoError(t, err)
	assert.Empty(t, env.KEKLabel)
	assert.Equal(t, hex.EncodeToString(key[:]), env.AESKey)
}

func TestWrapWithKEK(t *testing.T) {
	var key [16]byte
	copy(key[:], []byte("0123456789abcdef"))
	kek := []byte("fedcba9876543210")

	env, err := Wrap("kek-1", kek, key)
	require.NoError(t, err)
	assert.Equal(t, "kek-1", env.KEKLabel)
	assert.NotEqual(t, hex.EncodeToString(key[:]), env.AESKey)

	wrapped, err := hex.DecodeString(env.AESKey)
	require.NoError(t, err)
	assert.Len(t, wrapped, 24) // RFC 3394: 16-byte key wraps to 24 bytes
}
