package summary

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/xrpscan/explorer/amount"
	"github.com/xrpscan/explorer/codec"
)

var ErrMalformedField = errors.New("malformed field")

// Detail is one type specific field of a summary. Simple details are also
// shown in the one line view.
type Detail struct {
	Key    string
	Value  interface{}
	Simple bool
}

// Details keeps type specific fields in the order the parser added them.
type Details []Detail

// Add appends key unless value is empty. Nil, "", false and empty slices
// count as empty.
func (d *Details) Add(key string, value interface{}) {
	d.add(key, value, false)
}

// AddSimple appends key and marks it for the simple view.
func (d *Details) AddSimple(key string, value interface{}) {
	d.add(key, value, true)
}

func (d *Details) add(key string, value interface{}, simple bool) {
	if isEmpty(value) {
		return
	}
	*d = append(*d, Detail{Key: key, Value: value, Simple: simple})
}

func (d Details) Get(key string) (interface{}, bool) {
	for _, detail := range d {
		if detail.Key == key {
			return detail.Value, true
		}
	}
	return nil, false
}

// MarshalJSON renders Details as an object with keys in insertion order.
func (d Details) MarshalJSON() ([]byte, error) {
	if d == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, detail := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(detail.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(detail.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func isEmpty(v interface{}) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case bool:
		return !x
	case *amount.Amount:
		return x == nil
	case *codec.NFTokenID:
		return x == nil
	case []string:
		return len(x) == 0
	case []interface{}:
		return len(x) == 0
	case []map[string]interface{}:
		return len(x) == 0
	}
	return false
}

// Parser gives detail parsers access to the summarizer's formatters.
type Parser struct {
	Amounts amount.Formatter
}

// ParserFunc extracts the type specific fields of one transaction type.
type ParserFunc func(p *Parser, tx, meta map[string]interface{}) (Details, error)

var (
	parsersMu sync.RWMutex
	parsers   = map[string]ParserFunc{}
)

// Register installs the detail parser for a transaction type, replacing any
// earlier registration.
func Register(transactionType string, fn ParserFunc) {
	parsersMu.Lock()
	defer parsersMu.Unlock()
	parsers[transactionType] = fn
}

func parserFor(transactionType string) (ParserFunc, bool) {
	parsersMu.RLock()
	defer parsersMu.RUnlock()
	fn, ok := parsers[transactionType]
	return fn, ok
}

// guard runs fn and turns a panic into an error.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}

// Amount formats an optional amount field. A present field that is neither
// a numeric string nor an amount object is an error.
func (p *Parser) Amount(m map[string]interface{}, key string) (*amount.Amount, error) {
	raw, ok := m[key]
	if !ok || !amount.Present(raw) {
		return nil, nil
	}
	switch v := raw.(type) {
	case string:
		if _, ok := amount.Decimal(v); !ok {
			return nil, fmt.Errorf("%w: %s %q", ErrMalformedField, key, v)
		}
	case map[string]interface{}:
		if value, ok := v["value"]; ok {
			if _, ok := amount.Decimal(value); !ok {
				return nil, fmt.Errorf("%w: %s.value %v", ErrMalformedField, key, value)
			}
		}
	default:
		return nil, fmt.Errorf("%w: %s has type %T", ErrMalformedField, key, raw)
	}
	a := p.Amounts.Format(raw)
	return &a, nil
}

// RequiredAmount is Amount for fields the transaction type cannot omit.
func (p *Parser) RequiredAmount(m map[string]interface{}, key string) (*amount.Amount, error) {
	a, err := p.Amount(m, key)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("%w: %s missing", ErrMalformedField, key)
	}
	return a, nil
}

// Asset renders an issue ({currency, issuer} or {mpt_issuance_id}) without a
// value.
func (p *Parser) Asset(m map[string]interface{}, key string) string {
	issue := mapOf(m, key)
	if issue == nil {
		return ""
	}
	if id := str(issue, "mpt_issuance_id"); id != "" {
		return id
	}
	currency := str(issue, "currency")
	issuer := str(issue, "issuer")
	if issuer == "" {
		return p.Amounts.Network.Currency(currency)
	}
	return p.Amounts.Network.Currency(currency) + "." + issuer
}

// Drops formats an optional drops field in display units.
func (p *Parser) Drops(m map[string]interface{}, key string) string {
	raw, ok := m[key]
	if !ok {
		return ""
	}
	return p.Amounts.FormatDrops(raw)
}

// optUint32 returns the field as uint32, or nil when absent. A present field
// that is not an unsigned integer is an error.
func optUint32(m map[string]interface{}, key string) (interface{}, error) {
	raw, ok := m[key]
	if !ok {
		return nil, nil
	}
	u, ok := toUint32(raw)
	if !ok {
		return nil, fmt.Errorf("%w: %s %v", ErrMalformedField, key, raw)
	}
	return u, nil
}

// rippleTime converts an optional ripple epoch field to unix seconds.
func rippleTime(m map[string]interface{}, key string) (interface{}, error) {
	v, err := optUint32(m, key)
	if err != nil || v == nil {
		return nil, err
	}
	return RippleToUnix(v.(uint32)), nil
}

// percentOf renders parts per unit of scale as a percentage, e.g. a transfer
// fee of 500 with scale 100000 is "0.5%".
func percentOf(v uint32, scale int64) string {
	return decimal.NewFromInt(int64(v)).Mul(decimal.NewFromInt(100)).Div(decimal.NewFromInt(scale)).String() + "%"
}

// FindNode returns the first affected node of nodeType ("CreatedNode",
// "ModifiedNode" or "DeletedNode") whose LedgerEntryType is entryType.
func FindNode(meta map[string]interface{}, nodeType, entryType string) map[string]interface{} {
	for _, raw := range sliceOf(meta, "AffectedNodes") {
		wrapper, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		node := mapOf(wrapper, nodeType)
		if node == nil {
			continue
		}
		if str(node, "LedgerEntryType") == entryType {
			return node
		}
	}
	return nil
}

// createdIndex is the ledger index of the first created entry of entryType.
func createdIndex(meta map[string]interface{}, entryType string) string {
	return str(FindNode(meta, "CreatedNode", entryType), "LedgerIndex")
}
