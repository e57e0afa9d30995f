package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/tendermint/tendermint/types"
	"github.com/yieldswap/releasegate"
	"github.com/yieldswap/releasegate/errors"
)

func cmdSubmitTransaction(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Read binary serialized transaction from standard input and submit it.

Make sure to collect enough signatures before submitting the transaction.
The outcome of a release authorization is printed once the transaction is
part of a block.
`)
		fl.PrintDefaults()
	}
	var (
		tmAddrFl = fl.String("tm", defaultTMAddr(), "Tendermint node address. Use proper NETWORK name. You can use RGCLI_TM_ADDR environment variable to set it.")
	)
	fl.Parse(args)

	tx, _, err := readTx(input)
	if err != nil {
		return fmt.Errorf("cannot read transaction from input: %s", err)
	}
	raw, err := tx.Marshal()
	if err != nil {
		return fmt.Errorf("cannot serialize transaction: %s", err)
	}

	resp, err := newClient(*tmAddrFl).BroadcastTxCommit(types.Tx(raw))
	if err != nil {
		return fmt.Errorf("cannot broadcast transaction: %s", err)
	}
	if resp.CheckTx.IsErr() {
		return errors.Wrap(errors.ABCIError(resp.CheckTx.Code, resp.CheckTx.Log), "check failed")
	}
	if resp.DeliverTx.IsErr() {
		return errors.Wrap(errors.ABCIError(resp.DeliverTx.Code, resp.DeliverTx.Log), "deliver failed")
	}

	fmt.Fprintf(output, "height: %d\nhash: %s\n", resp.Height, resp.Hash)
	if outcome, err := releasegate.ParseBoolResult(resp.DeliverTx.Data); err == nil {
		fmt.Fprintf(output, "result: %t\n", outcome)
	}
	return nil
}
