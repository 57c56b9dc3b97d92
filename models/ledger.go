package models

import (
	"encoding/json"
	"errors"
	"strconv"
)

// LedgerStream type is constant 'ledgerClosed' - https://xrpl.org/subscribe.html#ledger-stream
const LEDGER_STREAM_TYPE string = "ledgerClosed"

var ErrInvalidLedgerStream = errors.New("invalid LedgerStream object")

// LedgerStream struct represents ledger object emitted by ledger stream
// Ref: https://xrpl.org/subscribe.html#ledger-stream
type LedgerStream struct {
	Type             string `json:"type,omitempty"`
	LedgerHash       string `json:"ledger_hash,omitempty"`
	ValidatedLedgers string `json:"validated_ledgers,omitempty"`
	FeeBase          uint64 `json:"fee_base,omitempty"`
	FeeRef           uint64 `json:"fee_ref,omitempty"`
	ReserveBase      uint64 `json:"reserve_base,omitempty"`
	ReserveInc       uint64 `json:"reserve_inc,omitempty"`
	LedgerIndex      uint32 `json:"ledger_index,omitempty"`
	LedgerTime       uint32 `json:"ledger_time,omitempty"`
	TxnCount         uint32 `json:"txn_count,omitempty"`
}

func (ledger *LedgerStream) Validate() error {
	if ledger.Type != LEDGER_STREAM_TYPE {
		return ErrInvalidLedgerStream
	}
	if ledger.LedgerIndex == 0 {
		return errors.New("invalid ledger_index")
	}
	return nil
}

// ParseLedgerStream decodes and validates a ledger stream message.
func ParseLedgerStream(message []byte) (LedgerStream, error) {
	var ledger LedgerStream
	if err := json.Unmarshal(message, &ledger); err != nil {
		return LedgerStream{}, err
	}
	return ledger, ledger.Validate()
}

// LedgerIndexOf reads ledger_index from a JSON message. The ledger stream
// encodes it as a number, `ledger` responses as a string.
func LedgerIndexOf(message []byte) (uint32, error) {
	var data map[string]interface{}
	if err := json.Unmarshal(message, &data); err != nil {
		return 0, err
	}

	switch v := data["ledger_index"].(type) {
	case float64:
		if v < 0 || v > float64(^uint32(0)) {
			return 0, errors.New("ledger_index out of range")
		}
		return uint32(v), nil
	case string:
		li, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return 0, err
		}
		return uint32(li), nil
	}
	return 0, errors.New("ledger_index not found")
}
