/**
* This file implements `explorer-cli search` subcommand
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/xrpscan/explorer/connections"
	"github.com/xrpscan/explorer/search"
)

const SearchCommandName = "search"

type SearchCommand struct {
	fs          *flag.FlagSet
	out         io.Writer
	fConfigFile string
	fXrplServer string
	fQuery      string
	fOffline    bool
}

func NewSearchCommand(out io.Writer) *SearchCommand {
	cmd := &SearchCommand{
		fs:  flag.NewFlagSet(SearchCommandName, flag.ContinueOnError),
		out: out,
	}
	cmd.fs.StringVar(&cmd.fQuery, "query", "", "Search query")
	cmd.fs.BoolVar(&cmd.fOffline, "offline", false, "Do not ask the node about 64 hex hashes (they resolve to NFTs)")
	cmd.fs.StringVar(&cmd.fConfigFile, "config", ".env", "Environment config file")
	cmd.fs.StringVar(&cmd.fXrplServer, "server", "", "XRPL protocol compatible server to connect")
	return cmd
}

func (cmd *SearchCommand) Init(args []string) error {
	if err := cmd.fs.Parse(args); err != nil {
		return err
	}
	return cmd.Validate()
}

func (cmd *SearchCommand) Validate() error {
	if search.Clean(cmd.fQuery) == "" {
		return fmt.Errorf("--query is required")
	}
	return nil
}

func (cmd *SearchCommand) Name() string {
	return cmd.fs.Name()
}

func (cmd *SearchCommand) Run() error {
	router := search.NewRouter(nil)
	if !cmd.fOffline {
		loadConfig(cmd.fConfigFile)
		router.Lookup = connectNode(cmd.fXrplServer)
		defer connections.CloseXrplRPCClient()
	}

	route := router.Route(context.Background(), cmd.fQuery)
	if route == nil {
		route = &search.Route{Path: search.Fallback(cmd.fQuery)}
	}
	return printJSON(cmd.out, route, false)
}
