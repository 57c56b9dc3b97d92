package summary

import (
	"encoding/json"
	"math"
	"strconv"
)

// Ripple epoch starts on 2000-01-01T00:00:00Z
const rippleToUnix int64 = 946684800

// RippleToUnix converts seconds since the ripple epoch to unix seconds.
func RippleToUnix(t uint32) int64 {
	return int64(t) + rippleToUnix
}

func str(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}

func mapOf(m map[string]interface{}, key string) map[string]interface{} {
	v, _ := m[key].(map[string]interface{})
	return v
}

func sliceOf(m map[string]interface{}, key string) []interface{} {
	v, _ := m[key].([]interface{})
	return v
}

// toUint32 accepts the encodings a uint32 field takes in decoded node JSON.
// The ledger command encodes ledger_index as a string, the stream as a
// number.
func toUint32(v interface{}) (uint32, bool) {
	switch n := v.(type) {
	case float64:
		if n < 0 || n > math.MaxUint32 || n != math.Trunc(n) {
			return 0, false
		}
		return uint32(n), true
	case json.Number:
		u, err := strconv.ParseUint(n.String(), 10, 32)
		return uint32(u), err == nil
	case string:
		u, err := strconv.ParseUint(n, 10, 32)
		return uint32(u), err == nil
	case int:
		if n < 0 || int64(n) > math.MaxUint32 {
			return 0, false
		}
		return uint32(n), true
	case int64:
		if n < 0 || n > math.MaxUint32 {
			return 0, false
		}
		return uint32(n), true
	case uint32:
		return n, true
	}
	return 0, false
}

func uint32Of(m map[string]interface{}, key string) uint32 {
	u, _ := toUint32(m[key])
	return u
}
