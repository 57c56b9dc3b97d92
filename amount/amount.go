package amount

import (
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/xrpscan/explorer/codec"
)

// 1 native unit = 1,000,000 drops
const DropsExponent int32 = 6

// Amount is the uniform shape of native, issued and MPT amounts. Value is
// always a decimal string in display units.
type Amount struct {
	Value         string `json:"value"`
	Currency      string `json:"currency,omitempty"`
	Issuer        string `json:"issuer,omitempty"`
	MPTIssuanceID string `json:"mpt_issuance_id,omitempty"`
}

// IsNative reports whether a is denominated in the network currency.
func (a Amount) IsNative() bool {
	return a.Issuer == "" && a.MPTIssuanceID == ""
}

func (a Amount) String() string {
	switch {
	case a.MPTIssuanceID != "":
		return a.Value + " MPT(" + a.MPTIssuanceID + ")"
	case a.Issuer != "":
		return a.Value + " " + a.Currency + "." + a.Issuer
	default:
		return a.Value + " " + a.Currency
	}
}

type Formatter struct {
	Network codec.Network
}

func NewFormatter(network codec.Network) Formatter {
	return Formatter{Network: network}
}

var Default = Formatter{Network: codec.DefaultNetwork}

// Format converts a wire amount into an Amount. Drops strings (or numbers)
// are divided by 1e6, issued currency objects have their currency code
// resolved and MPT objects keep their issuance id. Malformed values become
// "0"; Format never fails.
func (f Formatter) Format(raw interface{}) Amount {
	switch v := raw.(type) {
	case map[string]interface{}:
		return f.formatObject(v)
	case nil:
		return Amount{Value: "0", Currency: f.Network.DisplaySymbol}
	default:
		return Amount{Value: f.FormatDrops(v), Currency: f.Network.DisplaySymbol}
	}
}

func (f Formatter) formatObject(m map[string]interface{}) Amount {
	value := normalize(m["value"])
	if id, ok := m["mpt_issuance_id"].(string); ok && id != "" {
		return Amount{Value: value, MPTIssuanceID: id}
	}
	currency, _ := m["currency"].(string)
	issuer, _ := m["issuer"].(string)
	if issuer == "" && f.Network.IsNative(currency) {
		return Amount{Value: value, Currency: f.Network.DisplaySymbol}
	}
	return Amount{
		Value:    value,
		Currency: f.Network.Currency(currency),
		Issuer:   issuer,
	}
}

// FormatDrops converts a drops value into display units.
func (f Formatter) FormatDrops(raw interface{}) string {
	d, ok := Decimal(raw)
	if !ok {
		return "0"
	}
	return d.Shift(-DropsExponent).String()
}

// Format uses the default network.
func Format(raw interface{}) Amount {
	return Default.Format(raw)
}

// FormatDrops uses the default network.
func FormatDrops(raw interface{}) string {
	return Default.FormatDrops(raw)
}

// Present reports whether raw carries an amount worth formatting.
func Present(raw interface{}) bool {
	switch v := raw.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case map[string]interface{}:
		return len(v) > 0
	default:
		return true
	}
}

// Decimal parses the numeric encodings found in decoded node JSON.
func Decimal(raw interface{}) (decimal.Decimal, bool) {
	switch v := raw.(type) {
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	case float64:
		return decimal.NewFromFloat(v), true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	case uint32:
		return decimal.NewFromInt(int64(v)), true
	case uint64:
		d, err := decimal.NewFromString(strconv.FormatUint(v, 10))
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	}
	return decimal.Zero, false
}

func normalize(raw interface{}) string {
	d, ok := Decimal(raw)
	if !ok {
		return "0"
	}
	return d.String()
}
