package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/yieldswap/releasegate"
)

func cmdTransactionView(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Read binary serialized transaction from standard input and print it in a
human readable format.
`)
		fl.PrintDefaults()
	}
	fl.Parse(args)

	tx, _, err := readTx(input)
	if err != nil {
		return fmt.Errorf("cannot read transaction from input: %s", err)
	}
	msg, err := tx.GetMsg()
	if err != nil {
		return err
	}

	view := txView{
		Path:       msg.Path(),
		Msg:        msg,
		ExpiresAt:  tx.ExpiresAt,
		Signatures: make([]sigView, 0, len(tx.Signatures)),
	}
	for _, s := range tx.Signatures {
		view.Signatures = append(view.Signatures, sigView{
			Signer:   s.Address(),
			Sequence: s.Sequence,
		})
	}

	pretty, err := json.MarshalIndent(view, "", "\t")
	if err != nil {
		return fmt.Errorf("cannot JSON serialize: %s", err)
	}
	_, err = output.Write(pretty)
	return err
}

// txView is the JSON presentation of a transaction.
type txView struct {
	Path       string               `json:"path"`
	Msg        releasegate.Msg      `json:"msg"`
	ExpiresAt  releasegate.UnixTime `json:"expires_at,omitempty"`
	Signatures []sigView            `json:"signatures"`
}

type sigView struct {
	Signer   releasegate.Address `json:"signer"`
	Sequence int64               `json:"sequence"`
}
