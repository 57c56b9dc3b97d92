/**
* This file implements `explorer-cli summarize-tx` subcommand
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"regexp"
	"text/tabwriter"

	"github.com/xrpscan/explorer/connections"
	"github.com/xrpscan/explorer/summary"
)

const SummarizeTxCommandName = "summarize-tx"

const (
	viewSimple   = "simple"
	viewDetailed = "detailed"
	viewJSON     = "json"
)

var txHashRegex = regexp.MustCompile(`^[0-9A-Fa-f]{64}$`)

type SummarizeTxCommand struct {
	fs          *flag.FlagSet
	out         io.Writer
	fConfigFile string
	fXrplServer string
	fHash       string
	fView       string
}

func NewSummarizeTxCommand(out io.Writer) *SummarizeTxCommand {
	cmd := &SummarizeTxCommand{
		fs:  flag.NewFlagSet(SummarizeTxCommandName, flag.ContinueOnError),
		out: out,
	}

	cmd.fs.StringVar(&cmd.fHash, "hash", "", "Transaction hash")
	cmd.fs.StringVar(&cmd.fView, "view", viewSimple, "Output view: simple, detailed or json")
	cmd.fs.StringVar(&cmd.fConfigFile, "config", ".env", "Environment config file")
	cmd.fs.StringVar(&cmd.fXrplServer, "server", "", "XRPL protocol compatible server to connect")
	return cmd
}

func (cmd *SummarizeTxCommand) Init(args []string) error {
	if err := cmd.fs.Parse(args); err != nil {
		return err
	}
	return cmd.Validate()
}

func (cmd *SummarizeTxCommand) Validate() error {
	if !txHashRegex.MatchString(cmd.fHash) {
		return fmt.Errorf("--hash must be a 64 character hex transaction hash")
	}
	switch cmd.fView {
	case viewSimple, viewDetailed, viewJSON:
		return nil
	}
	return fmt.Errorf("unknown view: %s", cmd.fView)
}

func (cmd *SummarizeTxCommand) Name() string {
	return cmd.fs.Name()
}

func (cmd *SummarizeTxCommand) Run() error {
	loadConfig(cmd.fConfigFile)
	node := connectNode(cmd.fXrplServer)
	defer connections.CloseXrplRPCClient()

	ctx := context.Background()
	raw, err := node.FetchTransaction(ctx, cmd.fHash)
	if err != nil {
		return err
	}
	tx := newSummarizer().SummarizeMap(ctx, raw)
	return writeTransaction(cmd.out, tx, cmd.fView)
}

func writeTransaction(out io.Writer, tx summary.Transaction, view string) error {
	var rows []summary.Row
	switch view {
	case viewJSON:
		return printJSON(out, tx, true)
	case viewDetailed:
		rows = tx.Detailed()
	default:
		rows = tx.Simple()
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%s\n", row.Label, row.Value)
	}
	return w.Flush()
}
