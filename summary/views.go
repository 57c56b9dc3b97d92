package summary

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/xrpscan/explorer/amount"
	"github.com/xrpscan/explorer/codec"
)

// Row is one label/value line of a rendered summary.
type Row struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Simple renders the short view: who did what, plus the details the type
// parser marked as simple. Without such details the destination and amount
// are shown.
func (t Transaction) Simple() []Row {
	rows := []Row{
		{"type", t.Type},
		{"account", t.Account},
	}
	n := len(rows)
	for _, d := range t.Details {
		if d.Simple {
			rows = append(rows, Row{d.Key, render(d.Value)})
		}
	}
	if len(rows) == n {
		if t.Destination != "" {
			rows = append(rows, Row{"destination", t.Destination})
		}
		if t.Amount != nil {
			rows = append(rows, Row{"amount", t.Amount.String()})
		}
	}
	return rows
}

// Detailed renders every field of the summary.
func (t Transaction) Detailed() []Row {
	rows := []Row{
		{"hash", t.Hash},
		{"type", t.Type},
		{"result", t.Result},
		{"action", string(t.Action)},
		{"category", string(t.Category)},
		{"account", t.Account},
	}
	if t.Destination != "" {
		rows = append(rows, Row{"destination", t.Destination})
	}
	if t.Amount != nil {
		rows = append(rows, Row{"amount", t.Amount.String()})
	}
	rows = append(rows,
		Row{"fee", t.Fee},
		Row{"sequence", render(t.Sequence)},
		Row{"ledger_index", render(t.LedgerIndex)},
		Row{"index", render(t.Index)},
	)
	if t.Date != 0 {
		rows = append(rows, Row{"date", renderTime(t.Date)})
	}
	if len(t.Flags) > 0 {
		rows = append(rows, Row{"flags", strings.Join(t.Flags, ", ")})
	}
	for i, m := range t.Memos {
		rows = append(rows, Row{fmt.Sprintf("memo[%d]", i), m.String()})
	}
	for _, d := range t.Details {
		rows = append(rows, Row{d.Key, render(d.Value)})
	}
	if t.Partial {
		rows = append(rows, Row{"partial", "true"})
	}
	return rows
}

func renderTime(unix int64) string {
	return time.Unix(unix, 0).UTC().Format(time.RFC3339)
}

func render(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case *amount.Amount:
		return x.String()
	case []string:
		return strings.Join(x, ", ")
	case *codec.NFTokenID:
		return fmt.Sprintf("taxon %d, serial %d, flags [%s], transfer fee %s",
			x.Taxon, x.Serial, strings.Join(x.FlagNames(), " "), x.TransferFeePercent())
	case []map[string]interface{}:
		parts := make([]string, 0, len(x))
		for _, m := range x {
			parts = append(parts, renderMap(m))
		}
		return strings.Join(parts, "; ")
	default:
		return fmt.Sprintf("%v", x)
	}
}

// renderMap prints keys in sorted order.
func renderMap(m map[string]interface{}) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+render(m[k]))
	}
	return strings.Join(parts, " ")
}
