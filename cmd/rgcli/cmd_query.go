package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
)

func cmdQuery(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Query the application state and print the result as JSON.

Available paths are /admin, /contract, /multisig, /timebound,
/timebound/valid, /conditional, /conditional/complete, /escrow and /auth.
The /auth query requires the -address flag.
`)
		fl.PrintDefaults()
	}
	var (
		tmAddrFl  = fl.String("tm", defaultTMAddr(), "Tendermint node address. Use proper NETWORK name. You can use RGCLI_TM_ADDR environment variable to set it.")
		pathFl    = fl.String("path", "/contract", "Query path.")
		dataFl    = fl.String("data", "", "Optional hex encoded query data.")
		addressFl = flAddress(fl, "address", "", "Optional address used as the query data.")
	)
	fl.Parse(args)

	var data []byte
	switch {
	case len(*addressFl) != 0 && *dataFl != "":
		return fmt.Errorf("only one of -data and -address can be used")
	case len(*addressFl) != 0:
		data = *addressFl
	case *dataFl != "":
		raw, err := hex.DecodeString(*dataFl)
		if err != nil {
			return fmt.Errorf("invalid data: %s", err)
		}
		data = raw
	}

	value, err := abciQuery(*tmAddrFl, *pathFl, data)
	if err != nil {
		return err
	}
	return printJSON(output, value)
}

// printJSON writes given JSON document indented. A missing value is
// printed as null.
func printJSON(output io.Writer, value []byte) error {
	if len(value) == 0 {
		_, err := fmt.Fprintln(output, "null")
		return err
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, value, "", "\t"); err != nil {
		return fmt.Errorf("cannot format response: %s", err)
	}
	_, err := fmt.Fprintln(output, pretty.String())
	return err
}
