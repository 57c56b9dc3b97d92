package summary

import (
	"context"

	"github.com/xrpscan/explorer/amount"
	"github.com/xrpscan/explorer/classify"
	"github.com/xrpscan/explorer/codec"
	"github.com/xrpscan/explorer/logger"
	"github.com/xrpscan/explorer/memo"
)

// Transaction is the display summary of one transaction.
type Transaction struct {
	Hash        string            `json:"hash"`
	Type        string            `json:"type"`
	Result      string            `json:"result"`
	Account     string            `json:"account"`
	Destination string            `json:"destination,omitempty"`
	Amount      *amount.Amount    `json:"amount,omitempty"`
	Fee         string            `json:"fee"`
	Sequence    uint32            `json:"sequence"`
	Date        int64             `json:"date,omitempty"`
	LedgerIndex uint32            `json:"ledger_index"`
	Index       uint32            `json:"index"`
	Action      classify.Action   `json:"action"`
	Category    classify.Category `json:"category"`
	Memos       []memo.MemoInfo   `json:"memos"`
	Flags       []string          `json:"flags"`
	Details     Details           `json:"details"`
	CloseTime   int64             `json:"close_time,omitempty"`
	Partial     bool              `json:"partial,omitempty"`
}

// Successful reports whether the transaction applied with tesSUCCESS.
func (t Transaction) Successful() bool {
	return t.Result == "tesSUCCESS"
}

type Summarizer struct {
	Amounts amount.Formatter
	Memos   *memo.Decoder
}

// NewSummarizer builds a Summarizer for network. A nil decoder uses the
// default memo registry.
func NewSummarizer(network codec.Network, memos *memo.Decoder) *Summarizer {
	if memos == nil {
		memos = memo.NewDecoder(nil)
	}
	return &Summarizer{Amounts: amount.NewFormatter(network), Memos: memos}
}

// Summarize builds the summary of raw. Failures in the type specific part
// degrade the summary to its base fields with Partial set; Summarize itself
// never fails.
func (s *Summarizer) Summarize(ctx context.Context, raw RawTransaction) Transaction {
	t := s.base(raw)
	err := guard(func() error {
		return s.enrich(ctx, raw, &t)
	})
	if err != nil {
		logger.Log.Warn().
			Str("hash", t.Hash).
			Str("type", t.Type).
			Uint32("ledger_index", t.LedgerIndex).
			Err(err).
			Msg("Transaction summary degraded to base fields")
		t = s.base(raw)
		t.Partial = true
	}
	return t
}

// SummarizeMap summarizes a transaction in any node response shape.
func (s *Summarizer) SummarizeMap(ctx context.Context, m map[string]interface{}) Transaction {
	return s.Summarize(ctx, NewRawTransaction(m))
}

func (s *Summarizer) base(raw RawTransaction) Transaction {
	txType := raw.Type()
	c := classify.Classify(txType)
	t := Transaction{
		Hash:        raw.Hash,
		Type:        txType,
		Result:      str(raw.Meta, "TransactionResult"),
		Account:     str(raw.Tx, "Account"),
		Fee:         s.Amounts.FormatDrops(raw.Tx["Fee"]),
		Sequence:    uint32Of(raw.Tx, "Sequence"),
		LedgerIndex: raw.LedgerIndex,
		Index:       raw.Index(),
		Action:      c.Action,
		Category:    c.Category,
		Memos:       []memo.MemoInfo{},
		Flags:       []string{},
	}
	if raw.Date != 0 {
		t.Date = RippleToUnix(raw.Date)
	}
	return t
}

func (s *Summarizer) enrich(ctx context.Context, raw RawTransaction, t *Transaction) error {
	t.Destination = str(raw.Tx, "Destination")
	if key := deliverKey(raw.Tx); amount.Present(raw.Tx[key]) {
		a := s.Amounts.Format(raw.Tx[key])
		t.Amount = &a
	}
	t.Memos = s.Memos.Decode(ctx, memo.FromTx(raw.Tx))
	t.Flags = Flags(t.Type, uint32Of(raw.Tx, "Flags"))

	fn, ok := parserFor(t.Type)
	if !ok {
		return nil
	}
	details, err := fn(&Parser{Amounts: s.Amounts}, raw.Tx, raw.Meta)
	if err != nil {
		return err
	}
	t.Details = details
	return nil
}
