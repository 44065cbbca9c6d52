package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsWalletAddress(t *testing.T) {
	cases := map[string]bool{
		"0x52908400098527886E0F7030069857D2E4169EE7": true,
		"52908400098527886e0f7030069857d2e4169ee7":   true,
		"0X52908400098527886E0F7030069857D2E4169EE7": true,
		"0x52908400098527886E0F7030069857D2E4169EE":  false,
		"0x52908400098527886E0F7030069857D2E4169EEZ": false,
		"creator-42": false,
		"":           false,
	}
	for in, want := range cases {
		assert.Equal(t, want, IsWalletAddress(in), in)
	}
}

func TestNormalizeAddress(t *testing.T) {
	assert.Equal(t, "0xabcdef0000000000000000000000000000000001", NormalizeAddress("ABCDEF0000000000000000000000000000000001"))
	assert.Equal(t, "0xabcdef0000000000000000000000000000000001", NormalizeAddress(" 0xABCDEF0000000000000000000000000000000001 "))
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	assert.Len(t, a, 12)
	assert.NotEqual(t, a, b)
}
