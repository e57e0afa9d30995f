package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/yieldswap/releasegate"
	"github.com/yieldswap/releasegate/x/sigs"
)

func cmdSignTransaction(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Read binary serialized transaction from standard input, sign it and write it
back to standard output. A transaction can carry many signatures.

Unless provided, the chain ID is read from the node genesis and the signature
sequence of the key owner is queried from the node.
`)
		fl.PrintDefaults()
	}
	var (
		tmAddrFl  = fl.String("tm", defaultTMAddr(), "Tendermint node address. Use proper NETWORK name. You can use RGCLI_TM_ADDR environment variable to set it.")
		keyPathFl = fl.String("key", defaultKeyPath(), "Path to the private key file that transaction should be signed with. You can use RGCLI_PRIV_KEY environment variable to set it.")
		chainIDFl = fl.String("chain", env("RGCLI_CHAIN_ID", ""), "Chain ID the transaction is signed for. You can use RGCLI_CHAIN_ID environment variable to set it.")
		seqFl     = fl.Int64("seq", -1, "Signature sequence. Negative value means the sequence is queried from the node.")
		expiresFl = flTime(fl, "expires", nil, "Optional expiration of an unsigned transaction, as unix time, RFC3339 or +duration.")
	)
	fl.Parse(args)

	key, err := readPrivateKey(*keyPathFl)
	if err != nil {
		return err
	}

	tx, _, err := readTx(input)
	if err != nil {
		return fmt.Errorf("cannot read transaction from input: %s", err)
	}

	if !expiresFl.IsZero() {
		if len(tx.Signatures) != 0 {
			return fmt.Errorf("cannot set expiration of an already signed transaction")
		}
		tx.ExpiresAt = *expiresFl
	}

	chain := *chainIDFl
	if chain == "" {
		if chain, err = chainID(*tmAddrFl); err != nil {
			return err
		}
	}

	seq := *seqFl
	if seq < 0 {
		if seq, err = querySequence(*tmAddrFl, pubKeyAddress(key)); err != nil {
			return err
		}
	}

	sig, err := sigs.SignTx(key, tx, chain, seq)
	if err != nil {
		return fmt.Errorf("cannot sign transaction: %s", err)
	}
	tx.Signatures = append(tx.Signatures, sig)

	_, err = writeTx(output, tx)
	return err
}

// querySequence returns the sequence the next signature of given address
// must use. An address that never signed starts at zero.
func querySequence(tmAddr string, addr releasegate.Address) (int64, error) {
	raw, err := abciQuery(tmAddr, "/auth", addr)
	if err != nil {
		return 0, err
	}
	if len(raw) == 0 {
		return 0, nil
	}
	var user struct {
		Sequence int64
	}
	if err := json.Unmarshal(raw, &user); err != nil {
		return 0, fmt.Errorf("cannot decode account: %s", err)
	}
	return user.Sequence, nil
}
