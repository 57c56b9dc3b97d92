package codec

import (
	"strings"
	"unicode/utf8"
)

// https://xrpl.org/currency-formats.html#nonstandard-currency-codes
const NonStandardCodeLength = 40

// All issued LP tokens start with 0x03
const LPTokenMarker = "03"

// Prefix for 3 character codes hidden inside a non-standard code
const FakePrefix = "Fake"

// Network describes how the native currency is displayed
type Network struct {
	DisplaySymbol string
	NativeCodes   []string
}

var DefaultNetwork = Network{
	DisplaySymbol: "PFT",
	NativeCodes:   []string{"XRP", "PFT"},
}

// NewNetwork builds a Network, falling back to DefaultNetwork values for
// empty arguments.
func NewNetwork(symbol string, nativeCodes []string) Network {
	n := Network{DisplaySymbol: symbol, NativeCodes: nativeCodes}
	if n.DisplaySymbol == "" {
		n.DisplaySymbol = DefaultNetwork.DisplaySymbol
	}
	if len(n.NativeCodes) == 0 {
		n.NativeCodes = DefaultNetwork.NativeCodes
	}
	return n
}

// IsNative reports whether code names the network's native currency.
func (n Network) IsNative(code string) bool {
	for _, native := range n.NativeCodes {
		if code == native {
			return true
		}
	}
	return false
}

// Currency resolves a wire currency code into its display form.
//
// A 40 hex character code that is not an LP token is hex-decoded. If the
// decoded code is exactly 3 characters long it is prefixed with "Fake" so it
// cannot pass for a standard ISO style code. Native codes are replaced by
// the network's display symbol.
func (n Network) Currency(code string) string {
	display := code
	if len(code) == NonStandardCodeLength && !strings.HasPrefix(code, LPTokenMarker) {
		display = HexToString(code)
		if utf8.RuneCountInString(display) == 3 {
			display = FakePrefix + display
		}
	}
	if n.IsNative(display) {
		return n.DisplaySymbol
	}
	return display
}

// Currency resolves code using DefaultNetwork.
func Currency(code string) string {
	return DefaultNetwork.Currency(code)
}

// IsLPToken reports whether code is a non-standard code carrying the LP
// token marker.
func IsLPToken(code string) bool {
	return len(code) == NonStandardCodeLength && strings.HasPrefix(code, LPTokenMarker)
}
