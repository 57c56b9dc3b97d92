package socketio

import "github.com/xrpscan/explorer/summary"

const (
	EventLedgerClosed  = "ledger_closed"
	EventLedgerSummary = "ledger_summary"
)

// LedgerClosedEvent is sent as soon as the stream reports a closed ledger
type LedgerClosedEvent struct {
	LedgerIndex uint32 `json:"ledger_index"`
	LedgerHash  string `json:"ledger_hash"`
	TxnCount    uint32 `json:"txn_count"`
	Timestamp   int64  `json:"timestamp"`
}

// LedgerSummaryEvent follows once the ledger's transactions are summarized
type LedgerSummaryEvent struct {
	summary.Ledger
	Types []string `json:"types"`
}

func NewLedgerSummaryEvent(ledger summary.Ledger) LedgerSummaryEvent {
	return LedgerSummaryEvent{Ledger: ledger, Types: ledger.Types()}
}
