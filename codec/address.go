package codec

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	addresscodec "github.com/Peersyst/xrpl-go/address-codec"
)

const accountIDLength = 20

// Decoded payload sizes, checksum excluded.
const (
	classicPayloadLength  = 1 + accountIDLength
	xAddressPayloadLength = 2 + accountIDLength + 1 + 8
)

// IsClassicAddress reports whether s is a checksummed r-address.
func IsClassicAddress(s string) bool {
	if s == "" || s[0] != 'r' {
		return false
	}
	payload, err := addresscodec.Base58CheckDecode(s)
	return err == nil && len(payload) == classicPayloadLength && payload[0] == 0x00
}

// IsXAddress reports whether s is a checksummed X-address.
func IsXAddress(s string) bool {
	if s == "" {
		return false
	}
	payload, err := addresscodec.Base58CheckDecode(s)
	if err != nil || len(payload) != xAddressPayloadLength {
		return false
	}
	return addresscodec.IsValidXAddress(s)
}

// NormalizeAccount turns "address:tag" into a mainnet X-address. Input
// without a tag separator, with a bad base address, or that fails to encode,
// is returned unchanged.
// A tag of "false" or an empty tag encodes the address without a tag.
func NormalizeAccount(id string) string {
	if !strings.Contains(id, ":") {
		return id
	}
	parts := strings.Split(id, ":")
	if !IsClassicAddress(parts[0]) {
		return id
	}
	var tag uint64
	tagged := false
	if len(parts) > 1 && parts[1] != "" && parts[1] != "false" {
		t, err := strconv.ParseUint(parts[1], 10, 32)
		if err != nil {
			return id
		}
		tag, tagged = t, true
	}
	xAddress, err := addresscodec.ClassicAddressToXAddress(parts[0], uint32(tag), tagged, false)
	if err != nil {
		return id
	}
	return xAddress
}

// EncodeAccountID encodes a 40 hex character account id as a classic address.
func EncodeAccountID(accountID string) (string, error) {
	b, err := hex.DecodeString(accountID)
	if err != nil {
		return "", fmt.Errorf("decode account id: %w", err)
	}
	if len(b) != accountIDLength {
		return "", fmt.Errorf("account id must be %d bytes, got %d", accountIDLength, len(b))
	}
	return addresscodec.EncodeAccountIDToClassicAddress(b)
}
