/**
* This file implements `explorer-cli summarize-ledger` subcommand
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/xrpscan/explorer/connections"
	"github.com/xrpscan/explorer/logger"
	"github.com/xrpscan/explorer/producers"
)

const SummarizeLedgerCommandName = "summarize-ledger"

type SummarizeLedgerCommand struct {
	fs           *flag.FlagSet
	out          io.Writer
	fConfigFile  string
	fXrplServer  string
	fIndexFrom   uint
	fIndexTo     uint
	fLedgers     string
	fLedgersFile string
	fMinDelay    int64
	fPublish     bool
	fIndent      bool
}

func NewSummarizeLedgerCommand(out io.Writer) *SummarizeLedgerCommand {
	cmd := &SummarizeLedgerCommand{
		fs:  flag.NewFlagSet(SummarizeLedgerCommandName, flag.ContinueOnError),
		out: out,
	}

	cmd.fs.UintVar(&cmd.fIndexFrom, "from", 0, "From ledger index")
	cmd.fs.UintVar(&cmd.fIndexTo, "to", 0, "To ledger index (defaults to --from)")
	cmd.fs.StringVar(&cmd.fLedgers, "ledgers", "", "Comma-separated list of ledger indices (overrides --from and --to)")
	cmd.fs.StringVar(&cmd.fLedgersFile, "ledgers-file", "", "File with one ledger index per line (overrides --from and --to)")
	cmd.fs.StringVar(&cmd.fConfigFile, "config", ".env", "Environment config file")
	cmd.fs.StringVar(&cmd.fXrplServer, "server", "", "XRPL protocol compatible server to connect")
	cmd.fs.Int64Var(&cmd.fMinDelay, "delay", 0, "Minimum delay (ms) between ledger requests")
	cmd.fs.BoolVar(&cmd.fPublish, "publish", false, "Publish summaries to Kafka instead of printing them")
	cmd.fs.BoolVar(&cmd.fIndent, "indent", false, "Indent JSON output")
	return cmd
}

func (cmd *SummarizeLedgerCommand) Init(args []string) error {
	if err := cmd.fs.Parse(args); err != nil {
		return err
	}
	return cmd.Validate()
}

func (cmd *SummarizeLedgerCommand) Validate() error {
	if cmd.fLedgers != "" || cmd.fLedgersFile != "" {
		return nil
	}
	if cmd.fIndexFrom == 0 {
		return fmt.Errorf("--from, --ledgers or --ledgers-file is required")
	}
	if cmd.fIndexTo == 0 {
		cmd.fIndexTo = cmd.fIndexFrom
	}
	if cmd.fIndexFrom > cmd.fIndexTo {
		return fmt.Errorf("from ledger (%d) must be less than to ledger (%d)", cmd.fIndexFrom, cmd.fIndexTo)
	}
	return nil
}

func (cmd *SummarizeLedgerCommand) Name() string {
	return cmd.fs.Name()
}

// parseLedgerIndices reads indices separated by sep, skipping blanks and
// lines starting with '#'.
func parseLedgerIndices(s, sep string) ([]uint32, error) {
	parts := strings.Split(s, sep)
	ledgers := make([]uint32, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" || strings.HasPrefix(part, "#") {
			continue
		}
		ledgerIndex, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid ledger index '%s': %w", part, err)
		}
		ledgers = append(ledgers, uint32(ledgerIndex))
	}
	return ledgers, nil
}

func (cmd *SummarizeLedgerCommand) ledgers() ([]uint32, error) {
	switch {
	case cmd.fLedgersFile != "":
		data, err := os.ReadFile(cmd.fLedgersFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read ledgers file: %w", err)
		}
		return parseLedgerIndices(string(data), "\n")
	case cmd.fLedgers != "":
		return parseLedgerIndices(cmd.fLedgers, ",")
	}
	ledgers := make([]uint32, 0, cmd.fIndexTo-cmd.fIndexFrom+1)
	for i := cmd.fIndexFrom; i <= cmd.fIndexTo; i++ {
		ledgers = append(ledgers, uint32(i))
	}
	return ledgers, nil
}

func (cmd *SummarizeLedgerCommand) Run() error {
	ledgers, err := cmd.ledgers()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loadConfig(cmd.fConfigFile)
	p := &producers.Processor{
		Node:       connectNode(cmd.fXrplServer),
		Summarizer: newSummarizer(),
	}
	defer connections.CloseXrplRPCClient()

	if cmd.fPublish {
		connections.NewWriter()
		if connections.KafkaWriter == nil {
			return fmt.Errorf("--publish requires KAFKA_BOOTSTRAP_SERVER")
		}
		p.Writer = connections.KafkaWriter
		defer connections.CloseWriter()
	}

	delay := time.Duration(cmd.fMinDelay) * time.Millisecond
	failed := 0
	for i, ledgerIndex := range ledgers {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if i > 0 && delay > 0 {
			time.Sleep(delay)
		}

		ledger, err := p.ProcessLedger(ctx, ledgerIndex, producers.SourceBackfill)
		if err != nil {
			failed++
			logger.Log.Error().Uint32("ledger_index", ledgerIndex).Err(err).Msg("Failed to summarize ledger")
			continue
		}
		if !cmd.fPublish {
			if err := printJSON(cmd.out, ledger, cmd.fIndent); err != nil {
				return err
			}
		}
	}

	logger.Log.Info().Int("ledgers", len(ledgers)).Int("failed", failed).Msg("Summarize ledger finished")
	if failed > 0 {
		return fmt.Errorf("%d of %d ledgers failed", failed, len(ledgers))
	}
	return nil
}
