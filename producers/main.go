package producers

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/xrpscan/explorer/config"
	"github.com/xrpscan/explorer/connections"
	"github.com/xrpscan/explorer/logger"
	"github.com/xrpscan/explorer/metrics"
	"github.com/xrpscan/explorer/models"
	"github.com/xrpscan/explorer/socketio"
	"github.com/xrpscan/explorer/summary"
)

const (
	SourceStream   = "stream"
	SourceBackfill = "backfill"

	// Gaps wider than this are logged and not backfilled
	maxBackfillLedgers = 1000
)

type LedgerFetcher interface {
	FetchLedger(ctx context.Context, ledgerIndex uint32) (map[string]interface{}, error)
}

// MessageWriter is satisfied by *kafka.Writer.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Emitter is satisfied by *socketio.Hub.
type Emitter interface {
	EmitLedgerClosed(event socketio.LedgerClosedEvent) int
	EmitLedgerSummary(event socketio.LedgerSummaryEvent) int
}

// LedgerCache is satisfied by *connections.Cache. Raw node results are
// cached, summaries are rebuilt on read.
type LedgerCache interface {
	Set(ctx context.Context, key string, value interface{}) error
}

// Processor turns closed ledgers into summaries and fans them out. Writer,
// Hub, Cache and Metrics are optional.
type Processor struct {
	Node       LedgerFetcher
	Summarizer *summary.Summarizer
	Feed       *Feed
	Writer     MessageWriter
	Hub        Emitter
	Cache      LedgerCache
	Metrics    *metrics.Metrics

	lastSeenLedgerIndex uint32
	wg                  sync.WaitGroup
}

// RunProducers reads the ledger stream of the shared XRPL client until ctx
// is done. The client is looked up again after every message and every
// second, so reconnects are followed.
func RunProducers(ctx context.Context, p *Processor) {
	recheck := time.NewTicker(time.Second)
	defer recheck.Stop()

	for {
		client := connections.GetXrplClient()
		if client == nil {
			select {
			case <-ctx.Done():
				return
			case <-recheck.C:
			}
			continue
		}

		select {
		case <-ctx.Done():
			return
		case message := <-client.StreamLedger:
			p.HandleLedgerMessage(ctx, message)
		case <-client.StreamDefault:
			// ignore
		case <-recheck.C:
		}
	}
}

// HandleLedgerMessage processes one ledger stream message in the background.
// A jump in ledger_index since the previous message schedules a backfill of
// the skipped ledgers.
func (p *Processor) HandleLedgerMessage(ctx context.Context, message []byte) {
	ls, err := models.ParseLedgerStream(message)
	if err != nil {
		logger.Log.Debug().Err(err).Msg("Ignoring ledger stream message")
		return
	}
	logger.Log.Info().
		Uint32("ledger_index", ls.LedgerIndex).
		Str("ledger_hash", ls.LedgerHash).
		Uint32("txn_count", ls.TxnCount).
		Msg("New ledger closed")

	if p.Hub != nil {
		p.Hub.EmitLedgerClosed(socketio.LedgerClosedEvent{
			LedgerIndex: ls.LedgerIndex,
			LedgerHash:  ls.LedgerHash,
			TxnCount:    ls.TxnCount,
			Timestamp:   summary.RippleToUnix(ls.LedgerTime),
		})
	}

	prev := atomic.LoadUint32(&p.lastSeenLedgerIndex)
	if ls.LedgerIndex > prev {
		atomic.StoreUint32(&p.lastSeenLedgerIndex, ls.LedgerIndex)
	}
	if prev != 0 && ls.LedgerIndex > prev+1 {
		p.goBackground(func() { p.backfillMissingRange(ctx, prev+1, ls.LedgerIndex-1) })
	}

	p.goBackground(func() {
		if _, err := p.ProcessLedger(ctx, ls.LedgerIndex, SourceStream); err != nil {
			logger.Log.Error().Uint32("ledger_index", ls.LedgerIndex).Err(err).Msg("Failed to process ledger, skipping")
		}
	})
}

// Wait blocks until background ledger processing has finished.
func (p *Processor) Wait() {
	p.wg.Wait()
}

func (p *Processor) goBackground(fn func()) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		fn()
	}()
}

// backfillMissingRange processes ledgers from..to in order. Backfilled
// ledgers are published and cached but never reach the live feed.
func (p *Processor) backfillMissingRange(ctx context.Context, from, to uint32) {
	if to < from {
		return
	}
	count := to - from + 1
	if count > maxBackfillLedgers {
		logger.Log.Warn().Uint32("from", from).Uint32("to", to).Uint32("count", count).Msg("Ledger gap too wide, not backfilling")
		return
	}
	logger.Log.Info().Uint32("from", from).Uint32("to", to).Uint32("count", count).Msg("Backfilling missing ledger range")
	for i := from; i <= to; i++ {
		if ctx.Err() != nil {
			return
		}
		if _, err := p.ProcessLedger(ctx, i, SourceBackfill); err != nil {
			logger.Log.Error().Uint32("ledger_index", i).Err(err).Msg("Failed to backfill ledger")
		}
	}
}

// ProcessLedger fetches, summarizes and fans out one ledger.
func (p *Processor) ProcessLedger(ctx context.Context, ledgerIndex uint32, source string) (summary.Ledger, error) {
	startTime := time.Now()
	raw, err := p.Node.FetchLedger(ctx, ledgerIndex)
	if err != nil {
		return summary.Ledger{}, fmt.Errorf("fetch ledger %d: %w", ledgerIndex, err)
	}

	ledger := p.Summarizer.SummarizeLedger(ctx, raw)
	p.Metrics.RecordLedger(source, ledger, time.Since(startTime).Seconds())

	logger.Log.Debug().
		Uint32("ledger_index", ledger.LedgerIndex).
		Str("source", source).
		Int("transactions", len(ledger.Transactions)).
		Str("total_fees", ledger.TotalFees).
		Dur("duration", time.Since(startTime)).
		Msg("Ledger summarized")

	p.publish(ctx, ledger)
	if p.Cache != nil {
		if err := p.Cache.Set(ctx, connections.LedgerKey(ledgerIndex), raw); err != nil {
			logger.Log.Warn().Uint32("ledger_index", ledgerIndex).Err(err).Msg("Failed to cache ledger")
		}
	}

	if source == SourceStream && p.Feed != nil && p.Feed.Add(ledger) && p.Hub != nil {
		p.Hub.EmitLedgerSummary(socketio.NewLedgerSummaryEvent(ledger))
	}
	return ledger, nil
}

// publish writes the ledger summary and each transaction summary to Kafka.
func (p *Processor) publish(ctx context.Context, ledger summary.Ledger) {
	if p.Writer == nil {
		return
	}

	ledgerTopic := config.TopicLedgerSummaries()
	txTopic := config.TopicTransactionSummaries()

	messages := make([]kafka.Message, 0, len(ledger.Transactions)+1)
	value, err := json.Marshal(ledger)
	if err != nil {
		logger.Log.Error().Uint32("ledger_index", ledger.LedgerIndex).Err(err).Msg("Failed to marshal ledger summary")
		return
	}
	messages = append(messages, kafka.Message{
		Topic: ledgerTopic,
		Key:   []byte(fmt.Sprint(ledger.LedgerIndex)),
		Value: value,
	})
	for _, tx := range ledger.Transactions {
		value, err := json.Marshal(tx)
		if err != nil {
			logger.Log.Error().Str("tx_hash", tx.Hash).Err(err).Msg("Failed to marshal transaction summary")
			continue
		}
		messages = append(messages, kafka.Message{Topic: txTopic, Key: []byte(tx.Hash), Value: value})
	}

	err = p.Writer.WriteMessages(ctx, messages...)
	p.Metrics.RecordPublish(ledgerTopic, err)
	if err != nil {
		logger.Log.Error().Uint32("ledger_index", ledger.LedgerIndex).Int("messages", len(messages)).Err(err).Msg("Failed to publish summaries")
	}
}
