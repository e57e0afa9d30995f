package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/yieldswap/releasegate"
	"github.com/yieldswap/releasegate/app"
	"github.com/yieldswap/releasegate/x/admin"
	"github.com/yieldswap/releasegate/x/conditional"
	"github.com/yieldswap/releasegate/x/escrow"
	"github.com/yieldswap/releasegate/x/multisig"
	"github.com/yieldswap/releasegate/x/timebound"
)

// writeMsg validates the message and writes an unsigned transaction
// carrying it.
func writeMsg(output io.Writer, msg releasegate.Msg) error {
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("given data produce an invalid message: %s", err)
	}
	_, err := writeTx(output, app.NewTx(msg))
	return err
}

func cmdInitialize(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction that sets the administrator of the instance. Only the
first initialization succeeds.
`)
		fl.PrintDefaults()
	}
	var (
		adminFl = flAddress(fl, "admin", "", "Address of the administrator.")
	)
	fl.Parse(args)

	return writeMsg(output, &admin.InitializeMsg{Admin: *adminFl})
}

func cmdSetupMultisig(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction that replaces the multi signature configuration. All
previously collected signatures are dropped.
`)
		fl.PrintDefaults()
	}
	var (
		thresholdFl = flUint32(fl, "threshold", 1, "Number of signatures required to authorize a release.")
		signersFl   = flAddressList(fl, "signers", "Comma separated list of signer addresses.")
	)
	fl.Parse(args)

	return writeMsg(output, &multisig.SetupMsg{
		RequiredSignatures: *thresholdFl,
		Signers:            *signersFl,
	})
}

func cmdSignMultisig(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction that records a multi signature approval. The signer must
also sign the transaction.
`)
		fl.PrintDefaults()
	}
	var (
		signerFl = flAddress(fl, "signer", "", "Address of the approving signer.")
	)
	fl.Parse(args)

	return writeMsg(output, &multisig.SignMsg{Signer: *signerFl})
}

func cmdSetTimeLimit(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction that replaces the time bound deadline. A release is
valid while the block time is not past the deadline.
`)
		fl.PrintDefaults()
	}
	var (
		deadlineFl = flTime(fl, "deadline", nil, "Deadline as unix time, RFC3339 or +duration (ie +24h).")
	)
	fl.Parse(args)

	return writeMsg(output, &timebound.SetTimeLimitMsg{Deadline: *deadlineFl})
}

func cmdSetupConditional(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction that replaces the conditional payment. Every condition
starts as not met.
`)
		fl.PrintDefaults()
	}
	var (
		senderFl     = flAddress(fl, "sender", "", "Address of the sender.")
		receiverFl   = flAddress(fl, "receiver", "", "Address of the receiver.")
		amountFl     = flAmount(fl, "amount", "0", "Recorded payment amount.")
		conditionsFl = fl.String("conditions", "", "Semicolon separated list of condition descriptions.")
	)
	fl.Parse(args)

	var conditions []string
	if *conditionsFl != "" {
		conditions = strings.Split(*conditionsFl, ";")
	}
	return writeMsg(output, &conditional.SetupMsg{
		Sender:     *senderFl,
		Receiver:   *receiverFl,
		Amount:     *amountFl,
		Conditions: conditions,
	})
}

func cmdFulfillCondition(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction that marks a single condition of the conditional payment
as met.
`)
		fl.PrintDefaults()
	}
	var (
		indexFl = flUint32(fl, "index", 0, "Zero based position of the condition.")
	)
	fl.Parse(args)

	return writeMsg(output, &conditional.FulfillMsg{Index: *indexFl})
}

func cmdCreateEscrow(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction that replaces the escrow record. The escrow can be
released once the release time is reached.
`)
		fl.PrintDefaults()
	}
	var (
		senderFl      = flAddress(fl, "sender", "", "Address of the sender.")
		receiverFl    = flAddress(fl, "receiver", "", "Address of the receiver.")
		amountFl      = flAmount(fl, "amount", "0", "Recorded escrow amount.")
		releaseTimeFl = flTime(fl, "release-time", nil, "Release time as unix time, RFC3339 or +duration (ie +1h).")
	)
	fl.Parse(args)

	return writeMsg(output, &escrow.CreateMsg{
		Sender:      *senderFl,
		Receiver:    *receiverFl,
		Amount:      *amountFl,
		ReleaseTime: *releaseTimeFl,
	})
}

func cmdReleaseEscrow(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction that releases the escrow.
`)
		fl.PrintDefaults()
	}
	fl.Parse(args)

	return writeMsg(output, &escrow.ReleaseMsg{})
}
