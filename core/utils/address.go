package utils

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// IsWalletAddress accepts 40 hex characters, with or without the 0x prefix, any case.
func IsWalletAddress(addr string) bool {
	return common.IsHexAddress(strings.TrimSpace(addr))
}

// NormalizeAddress lower-cases and adds the 0x prefix so rows compare with plain equality.
// Callers must validate with IsWalletAddress first.
func NormalizeAddress(addr string) string {
	addr = strings.ToLower(strings.TrimSpace(addr))
	if !strings.HasPrefix(addr, "0x") {
		addr = "0x" + addr
	}
	return addr
}
