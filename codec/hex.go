package codec

import (
	"strconv"
	"strings"
)

// HexToString decodes a hex string two characters at a time. Bytes that are
// zero or that do not parse as hex are skipped, so malformed input degrades
// to a partial string instead of failing.
func HexToString(hex string) string {
	var b strings.Builder
	for i := 0; i < len(hex); i += 2 {
		end := i + 2
		if end > len(hex) {
			end = len(hex)
		}
		code, err := strconv.ParseUint(hex[i:end], 16, 8)
		if err != nil || code == 0 {
			continue
		}
		b.WriteRune(rune(code))
	}
	return b.String()
}

// isHex reports whether s is non-empty and made of hex digits only.
func isHex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}
