package summary

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/xrpscan/explorer/amount"
	"github.com/xrpscan/explorer/logger"
)

// Ledger is the display summary of a closed ledger.
type Ledger struct {
	LedgerIndex  uint32        `json:"ledger_index"`
	LedgerHash   string        `json:"ledger_hash"`
	ParentHash   string        `json:"parent_hash"`
	CloseTime    int64         `json:"close_time"`
	TotalCoins   string        `json:"total_coins"`
	TotalFees    string        `json:"total_fees"`
	Transactions []Transaction `json:"transactions"`
}

// Types lists the transaction types of the ledger in ledger order.
func (l Ledger) Types() []string {
	types := make([]string, 0, len(l.Transactions))
	for _, t := range l.Transactions {
		types = append(types, t.Type)
	}
	return types
}

// SummarizeLedger summarizes an expanded ledger object, or a ledger
// command result wrapping one. Every transaction object yields exactly one
// summary; entries that are not objects are logged and skipped. Fees are
// summed in drops and converted once.
func (s *Summarizer) SummarizeLedger(ctx context.Context, raw map[string]interface{}) Ledger {
	if inner := mapOf(raw, "ledger"); inner != nil {
		raw = inner
	}

	l := Ledger{
		LedgerHash:   firstString(str(raw, "ledger_hash"), str(raw, "hash")),
		ParentHash:   str(raw, "parent_hash"),
		TotalCoins:   s.Amounts.FormatDrops(firstPresent(raw, "total_coins", "totalCoins")),
		Transactions: []Transaction{},
	}
	l.LedgerIndex, _ = toUint32(firstPresent(raw, "ledger_index", "seqNum"))
	if closeTime, ok := toUint32(raw["close_time"]); ok {
		l.CloseTime = RippleToUnix(closeTime)
	}

	fees := decimal.Zero
	for i, entry := range sliceOf(raw, "transactions") {
		m, ok := entry.(map[string]interface{})
		if !ok {
			logger.Log.Warn().
				Uint32("ledger_index", l.LedgerIndex).
				Int("position", i).
				Msg("Skipping ledger transaction that is not an object")
			continue
		}
		rawTx := NewRawTransaction(m)
		if rawTx.LedgerIndex == 0 {
			rawTx.LedgerIndex = l.LedgerIndex
		}

		t := s.Summarize(ctx, rawTx)
		t.CloseTime = l.CloseTime
		l.Transactions = append(l.Transactions, t)

		if fee, ok := amount.Decimal(rawTx.Tx["Fee"]); ok {
			fees = fees.Add(fee)
		} else {
			logger.Log.Warn().Str("hash", t.Hash).Uint32("ledger_index", l.LedgerIndex).Msg("Transaction has no readable fee")
		}
	}
	l.TotalFees = fees.Shift(-amount.DropsExponent).String()

	sort.SliceStable(l.Transactions, func(i, j int) bool {
		return l.Transactions[i].Index < l.Transactions[j].Index
	})
	return l
}

func firstPresent(m map[string]interface{}, keys ...string) interface{} {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v
		}
	}
	return nil
}
