package summary

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ledgerTx(hash string, index int, fee string) map[string]interface{} {
	return map[string]interface{}{
		"TransactionType": "Payment",
		"Account":         alice,
		"Destination":     bob,
		"Amount":          "1000000",
		"Fee":             fee,
		"hash":            hash,
		"metaData": map[string]interface{}{
			"TransactionResult": "tesSUCCESS",
			"TransactionIndex":  float64(index),
		},
	}
}

func TestSummarizeLedger(t *testing.T) {
	raw := map[string]interface{}{
		"ledger_index": "1000",
		"ledger_hash":  "LEDGERHASH",
		"parent_hash":  "PARENTHASH",
		"close_time":   float64(700000000),
		"total_coins":  "99999999999999990",
		"transactions": []interface{}{
			ledgerTx("A", 2, "30"),
			ledgerTx("B", 0, "10"),
			ledgerTx("C", 1, "20"),
		},
	}
	l := newSummarizer().SummarizeLedger(context.Background(), raw)

	assert.Equal(t, uint32(1000), l.LedgerIndex)
	assert.Equal(t, "LEDGERHASH", l.LedgerHash)
	assert.Equal(t, "PARENTHASH", l.ParentHash)
	assert.Equal(t, int64(700000000+946684800), l.CloseTime)
	assert.Equal(t, "99999999999.99999", l.TotalCoins)
	assert.Equal(t, "0.00006", l.TotalFees)

	require.Len(t, l.Transactions, 3)
	assert.Equal(t, []string{"B", "C", "A"}, []string{l.Transactions[0].Hash, l.Transactions[1].Hash, l.Transactions[2].Hash})
	for i, tx := range l.Transactions {
		assert.Equal(t, uint32(i), tx.Index)
		assert.Equal(t, l.CloseTime, tx.CloseTime)
		assert.Equal(t, uint32(1000), tx.LedgerIndex)
	}
	assert.Equal(t, []string{"Payment", "Payment", "Payment"}, l.Types())
}

func TestSummarizeLedgerUnwrapsCommandResult(t *testing.T) {
	raw := map[string]interface{}{
		"ledger": map[string]interface{}{
			"ledger_index": float64(5),
			"hash":         "H",
			"transactions": []interface{}{ledgerTx("A", 0, "10")},
		},
		"validated": true,
	}
	l := newSummarizer().SummarizeLedger(context.Background(), raw)
	assert.Equal(t, uint32(5), l.LedgerIndex)
	assert.Equal(t, "H", l.LedgerHash)
	assert.Len(t, l.Transactions, 1)
}

func TestSummarizeLedgerIsolatesFaults(t *testing.T) {
	broken := ledgerTx("BROKEN", 1, "20")
	broken["Amount"] = []interface{}{"unexpected"}

	raw := map[string]interface{}{
		"ledger_index": float64(7),
		"transactions": []interface{}{
			ledgerTx("A", 0, "10"),
			broken,
			ledgerTx("C", 2, "30"),
		},
	}
	l := newSummarizer().SummarizeLedger(context.Background(), raw)

	require.Len(t, l.Transactions, 3)
	assert.False(t, l.Transactions[0].Partial)
	assert.True(t, l.Transactions[1].Partial)
	assert.Equal(t, "BROKEN", l.Transactions[1].Hash)
	assert.Nil(t, l.Transactions[1].Details)
	assert.False(t, l.Transactions[2].Partial)
	assert.Equal(t, "0.00006", l.TotalFees)
}

func TestSummarizeLedgerSkipsNonObjects(t *testing.T) {
	raw := map[string]interface{}{
		"ledger_index": float64(8),
		"transactions": []interface{}{
			"E08D6E9754025BA2534A78707605E0601F03ACE063687A0CA1BDDACFCD1698C7",
			ledgerTx("A", 0, "15"),
		},
	}
	l := newSummarizer().SummarizeLedger(context.Background(), raw)
	require.Len(t, l.Transactions, 1)
	assert.Equal(t, "0.000015", l.TotalFees)
}

func TestSummarizeEmptyLedger(t *testing.T) {
	l := newSummarizer().SummarizeLedger(context.Background(), map[string]interface{}{})
	assert.Equal(t, "0", l.TotalFees)
	assert.Equal(t, "0", l.TotalCoins)
	assert.NotNil(t, l.Transactions)
	assert.Empty(t, l.Transactions)
}
