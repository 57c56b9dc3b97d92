/**
* This file implements `explorer-cli decode-nft` subcommand
 */

package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/xrpscan/explorer/codec"
)

const DecodeNFTCommandName = "decode-nft"

type DecodeNFTCommand struct {
	fs  *flag.FlagSet
	out io.Writer
	fID string
}

type decodedNFT struct {
	NFTokenID          string   `json:"nftoken_id"`
	Flags              uint16   `json:"flags"`
	FlagNames          []string `json:"flag_names"`
	TransferFee        uint16   `json:"transfer_fee"`
	TransferFeePercent string   `json:"transfer_fee_percent"`
	Issuer             string   `json:"issuer"`
	Taxon              uint32   `json:"taxon"`
	Serial             uint32   `json:"serial"`
}

func NewDecodeNFTCommand(out io.Writer) *DecodeNFTCommand {
	cmd := &DecodeNFTCommand{
		fs:  flag.NewFlagSet(DecodeNFTCommandName, flag.ContinueOnError),
		out: out,
	}
	cmd.fs.StringVar(&cmd.fID, "id", "", "NFTokenID (64 hex characters)")
	return cmd
}

func (cmd *DecodeNFTCommand) Init(args []string) error {
	if err := cmd.fs.Parse(args); err != nil {
		return err
	}
	return cmd.Validate()
}

func (cmd *DecodeNFTCommand) Validate() error {
	if cmd.fID == "" {
		return fmt.Errorf("--id is required")
	}
	return nil
}

func (cmd *DecodeNFTCommand) Name() string {
	return cmd.fs.Name()
}

func (cmd *DecodeNFTCommand) Run() error {
	token, err := codec.DecodeNFTokenID(cmd.fID)
	if err != nil {
		return err
	}
	return printJSON(cmd.out, decodedNFT{
		NFTokenID:          token.ID,
		Flags:              token.Flags,
		FlagNames:          token.FlagNames(),
		TransferFee:        token.TransferFee,
		TransferFeePercent: token.TransferFeePercent(),
		Issuer:             token.IssuerAddress(),
		Taxon:              token.Taxon,
		Serial:             token.Serial,
	}, true)
}
