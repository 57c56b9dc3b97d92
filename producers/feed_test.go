package producers

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xrpscan/explorer/classify"
	"github.com/xrpscan/explorer/summary"
)

func ledgerWith(index uint32, types ...string) summary.Ledger {
	l := summary.Ledger{LedgerIndex: index}
	for i, txType := range types {
		l.Transactions = append(l.Transactions, summary.Transaction{
			Hash:        fmt.Sprintf("%d-%d", index, i),
			Type:        txType,
			LedgerIndex: index,
		})
	}
	return l
}

func TestFeedNewestLedgerFirst(t *testing.T) {
	f := NewFeed()
	require.True(t, f.Add(ledgerWith(1, "Payment", "OfferCreate")))
	require.True(t, f.Add(ledgerWith(2, "NFTokenMint")))
	assert.False(t, f.Add(ledgerWith(2, "NFTokenMint")))

	var hashes []string
	for _, tx := range f.Transactions() {
		hashes = append(hashes, tx.Hash)
	}
	assert.Equal(t, []string{"2-0", "1-0", "1-1"}, hashes)
}

func TestFeedOrdersLateLedgersByIndex(t *testing.T) {
	f := NewFeed()
	require.True(t, f.Add(ledgerWith(10, "Payment")))
	require.True(t, f.Add(ledgerWith(12, "Payment", "OfferCreate")))
	require.True(t, f.Add(ledgerWith(11, "TrustSet")))

	var hashes []string
	for _, tx := range f.Transactions() {
		hashes = append(hashes, tx.Hash)
	}
	assert.Equal(t, []string{"12-0", "12-1", "11-0", "10-0"}, hashes)
}

func TestFeedDropsLateLedgerOutsideWindow(t *testing.T) {
	f := NewFeed()
	for i := uint32(2); i <= 26; i++ {
		f.Add(ledgerWith(i, "Payment", "Payment", "Payment", "Payment"))
	}
	require.True(t, f.Add(ledgerWith(1, "Payment")))

	txs := f.Transactions()
	require.Len(t, txs, MaxFeedTransactions)
	assert.Equal(t, uint32(26), txs[0].LedgerIndex)
	assert.Equal(t, uint32(2), txs[len(txs)-1].LedgerIndex)
}

func TestFeedWindowIsBounded(t *testing.T) {
	f := NewFeed()
	for i := uint32(1); i <= 30; i++ {
		f.Add(ledgerWith(i, "Payment", "Payment", "Payment", "Payment"))
	}
	txs := f.Transactions()
	require.Len(t, txs, MaxFeedTransactions)
	assert.Equal(t, uint32(30), txs[0].LedgerIndex)
	assert.Equal(t, uint32(6), txs[len(txs)-1].LedgerIndex)
}

func TestFeedSeenLedgersAreTrimmed(t *testing.T) {
	f := NewFeed()
	for i := uint32(1); i <= seenLedgerLimit; i++ {
		f.Add(ledgerWith(i))
	}
	assert.Equal(t, seenLedgerLimit, f.seenCount())

	f.Add(ledgerWith(seenLedgerLimit + 1))
	assert.Equal(t, seenLedgerKeep, f.seenCount())

	// oldest ledgers were forgotten, recent ones are still known
	assert.True(t, f.Add(ledgerWith(1)))
	assert.False(t, f.Add(ledgerWith(seenLedgerLimit)))
}

func TestFeedBreakdown(t *testing.T) {
	f := NewFeed()
	assert.Equal(t, []classify.CategoryStat{}, f.Breakdown())

	f.Add(ledgerWith(1, "Payment", "Payment", "OfferCreate"))
	stats := f.Breakdown()
	require.Len(t, stats, 2)
	assert.Equal(t, classify.CategoryPayment, stats[0].Category)
	assert.Equal(t, 2, stats[0].Count)
	assert.Equal(t, classify.CategoryDEX, stats[1].Category)
}

func TestFeedTransactionsIsACopy(t *testing.T) {
	f := NewFeed()
	f.Add(ledgerWith(1, "Payment"))
	txs := f.Transactions()
	txs[0].Hash = "changed"
	assert.Equal(t, "1-0", f.Transactions()[0].Hash)
}
