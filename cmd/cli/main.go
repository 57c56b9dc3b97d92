package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/xrpscan/explorer/codec"
	"github.com/xrpscan/explorer/config"
	"github.com/xrpscan/explorer/connections"
	"github.com/xrpscan/explorer/logger"
	"github.com/xrpscan/explorer/memo"
	"github.com/xrpscan/explorer/summary"
)

// Command runner interface
type Runner interface {
	Init([]string) error
	Validate() error
	Name() string
	Run() error
}

func commands(out io.Writer) []Runner {
	return []Runner{
		NewSummarizeLedgerCommand(out),
		NewSummarizeTxCommand(out),
		NewDecodeNFTCommand(out),
		NewSearchCommand(out),
	}
}

// command line root
func root(args []string, out io.Writer) error {
	if len(args) < 1 {
		return errors.New("you must pass a sub command")
	}
	subcommand := args[0]

	for _, cmd := range commands(out) {
		if cmd.Name() == subcommand {
			if err := cmd.Init(args[1:]); err != nil {
				return err
			}
			return cmd.Run()
		}
	}

	return fmt.Errorf("unknown subcommand: %s", subcommand)
}

// loadConfig loads the env file when it exists and starts the logger.
func loadConfig(configFile string) {
	if _, err := os.Stat(configFile); err == nil {
		config.EnvLoad(configFile)
	}
	logger.New()
}

// connectNode opens the RPC connection to server, or to the configured
// full-history node when server is empty.
func connectNode(server string) *connections.Node {
	if server == "" {
		connections.NewXrplRPCClient()
	} else {
		connections.NewXrplRPCClientWithURL(server)
	}
	return connections.DefaultNode()
}

func newSummarizer() *summary.Summarizer {
	network := codec.NewNetwork(config.EnvDisplayCurrency(), config.EnvNativeCurrencyCodes())
	return summary.NewSummarizer(network, memo.NewDecoder(memo.DefaultRegistry))
}

func printJSON(out io.Writer, v interface{}, indent bool) error {
	enc := json.NewEncoder(out)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func main() {
	// Recover from panics
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic: %v\n", r)
			os.Exit(1)
		}
	}()

	if err := root(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
