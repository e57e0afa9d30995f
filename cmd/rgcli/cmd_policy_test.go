package main

import (
	"bytes"
	"io"
	"testing"

	"github.com/yieldswap/releasegate"
	"github.com/yieldswap/releasegate/releasetest"
	"github.com/yieldswap/releasegate/releasetest/assert"
	"github.com/yieldswap/releasegate/x/admin"
	"github.com/yieldswap/releasegate/x/conditional"
	"github.com/yieldswap/releasegate/x/escrow"
	"github.com/yieldswap/releasegate/x/multisig"
	"github.com/yieldswap/releasegate/x/timebound"
)

func TestPolicyCommands(t *testing.T) {
	alice, bob := releasetest.NewAddress(), releasetest.NewAddress()

	cases := map[string]struct {
		cmd     func(io.Reader, io.Writer, []string) error
		args    []string
		wantMsg releasegate.Msg
	}{
		"initialize": {
			cmd:     cmdInitialize,
			args:    []string{"-admin", alice.String()},
			wantMsg: &admin.InitializeMsg{Admin: alice},
		},
		"setup multisig": {
			cmd:  cmdSetupMultisig,
			args: []string{"-threshold", "2", "-signers", alice.String() + "," + bob.String()},
			wantMsg: &multisig.SetupMsg{
				RequiredSignatures: 2,
				Signers:            []releasegate.Address{alice, bob},
			},
		},
		"sign multisig": {
			cmd:     cmdSignMultisig,
			args:    []string{"-signer", bob.String()},
			wantMsg: &multisig.SignMsg{Signer: bob},
		},
		"set time limit": {
			cmd:     cmdSetTimeLimit,
			args:    []string{"-deadline", "1600000000"},
			wantMsg: &timebound.SetTimeLimitMsg{Deadline: 1600000000},
		},
		"setup conditional": {
			cmd: cmdSetupConditional,
			args: []string{
				"-sender", alice.String(),
				"-receiver", bob.String(),
				"-amount", "500",
				"-conditions", "goods delivered;invoice paid",
			},
			wantMsg: &conditional.SetupMsg{
				Sender:     alice,
				Receiver:   bob,
				Amount:     releasegate.NewAmount(500),
				Conditions: []string{"goods delivered", "invoice paid"},
			},
		},
		"fulfill condition": {
			cmd:     cmdFulfillCondition,
			args:    []string{"-index", "1"},
			wantMsg: &conditional.FulfillMsg{Index: 1},
		},
		"create escrow": {
			cmd: cmdCreateEscrow,
			args: []string{
				"-sender", alice.String(),
				"-receiver", bob.String(),
				"-amount", "42",
				"-release-time", "2020-09-13T12:26:40Z",
			},
			wantMsg: &escrow.CreateMsg{
				Sender:      alice,
				Receiver:    bob,
				Amount:      releasegate.NewAmount(42),
				ReleaseTime: 1600000000,
			},
		},
		"release escrow": {
			cmd:     cmdReleaseEscrow,
			wantMsg: &escrow.ReleaseMsg{},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var output bytes.Buffer
			assert.Nil(t, tc.cmd(nil, &output, tc.args))

			tx, _, err := readTx(&output)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantMsg, tx.Msg)
			assert.Equal(t, 0, len(tx.Signatures))
		})
	}
}

func TestPolicyCommandRejectsInvalidMessage(t *testing.T) {
	var output bytes.Buffer
	// Receiver is missing.
	err := cmdCreateEscrow(nil, &output, []string{"-sender", releasetest.NewAddress().String()})
	if err == nil {
		t.Fatal("want error")
	}
	assert.Equal(t, 0, output.Len())
}
