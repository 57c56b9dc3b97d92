package producers

import (
	"sort"
	"sync"

	"github.com/xrpscan/explorer/classify"
	"github.com/xrpscan/explorer/summary"
)

const (
	// MaxFeedTransactions bounds the live transaction window
	MaxFeedTransactions = 100

	seenLedgerLimit = 200
	seenLedgerKeep  = 100
)

// Feed is the live window of the most recent transactions, newest ledger
// first. Each ledger is added at most once. Ledgers may arrive out of order;
// they are placed by ledger index.
type Feed struct {
	mu        sync.RWMutex
	blocks    []feedBlock
	seen      map[uint32]struct{}
	seenOrder []uint32
}

type feedBlock struct {
	ledgerIndex  uint32
	transactions []summary.Transaction
}

func NewFeed() *Feed {
	return &Feed{seen: make(map[uint32]struct{})}
}

// Add places the ledger's transactions ahead of every older ledger in the
// window and reports whether the ledger was new.
func (f *Feed) Add(ledger summary.Ledger) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.seen[ledger.LedgerIndex]; ok {
		return false
	}
	f.seen[ledger.LedgerIndex] = struct{}{}
	f.seenOrder = append(f.seenOrder, ledger.LedgerIndex)
	if len(f.seenOrder) > seenLedgerLimit {
		drop := len(f.seenOrder) - seenLedgerKeep
		for _, index := range f.seenOrder[:drop] {
			delete(f.seen, index)
		}
		f.seenOrder = append([]uint32(nil), f.seenOrder[drop:]...)
	}

	// blocks stay sorted by ledger index, descending
	at := sort.Search(len(f.blocks), func(i int) bool {
		return f.blocks[i].ledgerIndex < ledger.LedgerIndex
	})
	block := feedBlock{ledgerIndex: ledger.LedgerIndex, transactions: ledger.Transactions}
	f.blocks = append(f.blocks, feedBlock{})
	copy(f.blocks[at+1:], f.blocks[at:])
	f.blocks[at] = block
	f.trim()
	return true
}

// trim drops the oldest transactions beyond MaxFeedTransactions.
func (f *Feed) trim() {
	room := MaxFeedTransactions
	for i, b := range f.blocks {
		if room == 0 {
			f.blocks = f.blocks[:i]
			return
		}
		if len(b.transactions) > room {
			f.blocks[i].transactions = b.transactions[:room]
		}
		room -= len(f.blocks[i].transactions)
	}
}

// Transactions returns a copy of the window.
func (f *Feed) Transactions() []summary.Transaction {
	f.mu.RLock()
	defer f.mu.RUnlock()
	window := []summary.Transaction{}
	for _, b := range f.blocks {
		window = append(window, b.transactions...)
	}
	return window
}

// Breakdown groups the window by category.
func (f *Feed) Breakdown() []classify.CategoryStat {
	f.mu.RLock()
	types := make([]string, 0, MaxFeedTransactions)
	for _, b := range f.blocks {
		for _, tx := range b.transactions {
			types = append(types, tx.Type)
		}
	}
	f.mu.RUnlock()
	return classify.Breakdown(types)
}

func (f *Feed) seenCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.seen)
}
