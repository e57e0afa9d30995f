package app

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/yieldswap/releasegate"
	"github.com/yieldswap/releasegate/errors"
	"github.com/yieldswap/releasegate/releasetest"
	"github.com/yieldswap/releasegate/x/admin"
	"github.com/yieldswap/releasegate/x/conditional"
	"github.com/yieldswap/releasegate/x/escrow"
	"github.com/yieldswap/releasegate/x/multisig"
	"github.com/yieldswap/releasegate/x/sigs"
	"github.com/yieldswap/releasegate/x/timebound"
	"golang.org/x/crypto/ed25519"
)

const testChainID = "test-chain"

// chain drives a BaseApp block by block.
type chain struct {
	t      *testing.T
	app    BaseApp
	height int64
	now    time.Time
}

func newChain(t *testing.T, admin releasegate.Address, genesisTime time.Time) *chain {
	t.Helper()
	app, err := Application("releasegate", Stack(nil), TxDecoder, "", false)
	require.NoError(t, err)

	state, err := GenesisState(admin)
	require.NoError(t, err)
	app.InitChain(abci.RequestInitChain{
		ChainId:       testChainID,
		Time:          genesisTime,
		AppStateBytes: state,
	})

	c := &chain{t: t, app: app, now: genesisTime}
	c.nextBlock(0)
	return c
}

// nextBlock commits the current block and starts the next one after given
// duration.
func (c *chain) nextBlock(d time.Duration) {
	if c.height > 0 {
		c.app.EndBlock(abci.RequestEndBlock{})
		res := c.app.Commit()
		assert.NotEmpty(c.t, res.Data)
	}
	c.height++
	c.now = c.now.Add(d)
	c.app.BeginBlock(abci.RequestBeginBlock{
		Header: abci.Header{ChainID: testChainID, Height: c.height, Time: c.now},
	})
}

// signedTx builds a transaction for msg signed by all keys, using the next
// sequence of every signer.
func (c *chain) signedTx(msg releasegate.Msg, keys ...ed25519.PrivateKey) []byte {
	c.t.Helper()
	tx := NewTx(msg)
	for _, key := range keys {
		seq, err := sigs.NextSequence(c.app.DeliverStore(), releasetest.KeyAddress(key))
		require.NoError(c.t, err)
		sig, err := sigs.SignTx(key, tx, testChainID, seq)
		require.NoError(c.t, err)
		tx.Signatures = append(tx.Signatures, sig)
	}
	bz, err := tx.Marshal()
	require.NoError(c.t, err)
	return bz
}

// deliver submits msg and returns the decoded result or error.
func (c *chain) deliver(msg releasegate.Msg, keys ...ed25519.PrivateKey) (*releasegate.DeliverResult, error) {
	c.t.Helper()
	return releasegate.ParseDeliverOrError(c.app.DeliverTx(c.signedTx(msg, keys...)))
}

// outcome delivers msg that must succeed and returns its bool result.
func (c *chain) outcome(msg releasegate.Msg, keys ...ed25519.PrivateKey) bool {
	c.t.Helper()
	res, err := c.deliver(msg, keys...)
	require.NoError(c.t, err)
	ok, err := releasegate.ParseBoolResult(res.Data)
	require.NoError(c.t, err)
	return ok
}

// query runs a query against the last committed state and decodes the
// JSON result into dest.
func (c *chain) query(path string, data []byte, dest interface{}) error {
	c.t.Helper()
	res := c.app.Query(abci.RequestQuery{Path: path, Data: data})
	if res.Code != errors.SuccessABCICode {
		return errors.ABCIError(res.Code, res.Log)
	}
	require.NotEmpty(c.t, res.Value)
	return json.Unmarshal(res.Value, dest)
}

func TestGenesis(t *testing.T) {
	adminKey := releasetest.NewKey()
	c := newChain(t, releasetest.KeyAddress(adminKey), time.Unix(1000, 0))
	assert.Equal(t, testChainID, c.app.GetChainID())
	c.nextBlock(time.Second)

	var got admin.Admin
	require.NoError(t, c.query("/admin", nil, &got))
	assert.Equal(t, releasetest.KeyAddress(adminKey), got.Address)

	var data map[string]string
	require.NoError(t, c.query("/contract", nil, &data))
	assert.Equal(t, releasetest.KeyAddress(adminKey).String(), data["admin"])

	// genesis admin cannot be replaced
	other := releasetest.NewKey()
	assert.False(t, c.outcome(&admin.InitializeMsg{Admin: releasetest.KeyAddress(other)}, other))
}

func TestMultiSigScenario(t *testing.T) {
	adminKey := releasetest.NewKey()
	a, b, d := releasetest.NewKey(), releasetest.NewKey(), releasetest.NewKey()
	cAddr := releasetest.NewAddress()
	c := newChain(t, releasetest.KeyAddress(adminKey), time.Unix(1000, 0))

	setup := &multisig.SetupMsg{
		RequiredSignatures: 2,
		Signers:            []releasegate.Address{releasetest.KeyAddress(a), releasetest.KeyAddress(b), cAddr},
	}

	// only the admin may configure the policy
	_, err := c.deliver(setup, a)
	assert.True(t, errors.ErrUnauthorized.Is(err), "got %v", err)
	_, err = c.deliver(setup, adminKey)
	require.NoError(t, err)

	assert.False(t, c.outcome(&multisig.SignMsg{Signer: releasetest.KeyAddress(a)}, a))

	// an outsider is rejected with a distinct error kind
	_, err = c.deliver(&multisig.SignMsg{Signer: releasetest.KeyAddress(d)}, d)
	assert.True(t, multisig.ErrNotAParticipant.Is(err), "got %v", err)

	// claiming another signer's identity is not possible
	_, err = c.deliver(&multisig.SignMsg{Signer: releasetest.KeyAddress(b)}, a)
	assert.True(t, errors.ErrUnauthorized.Is(err), "got %v", err)

	assert.True(t, c.outcome(&multisig.SignMsg{Signer: releasetest.KeyAddress(b)}, b))
	c.nextBlock(time.Second)

	var conf multisig.Config
	require.NoError(t, c.query("/multisig", nil, &conf))
	assert.Equal(t, []bool{true, true, false}, conf.Signed)
}

func TestTimeBoundScenario(t *testing.T) {
	adminKey := releasetest.NewKey()
	start := time.Unix(1000, 0)
	c := newChain(t, releasetest.KeyAddress(adminKey), start)

	// nothing configured yet
	var valid bool
	err := c.query("/timebound/valid", nil, &valid)
	assert.True(t, errors.ErrUninitialized.Is(err), "got %v", err)

	_, err = c.deliver(&timebound.SetTimeLimitMsg{Deadline: releasegate.AsUnixTime(start) + 100}, adminKey)
	require.NoError(t, err)
	c.nextBlock(50 * time.Second)

	require.NoError(t, c.query("/timebound/valid", nil, &valid))
	assert.True(t, valid)

	// a rejected call leaves the deadline untouched
	intruder := releasetest.NewKey()
	_, err = c.deliver(&timebound.SetTimeLimitMsg{Deadline: 1}, intruder)
	assert.True(t, errors.ErrUnauthorized.Is(err), "got %v", err)

	// queries see the time of the last committed block
	c.nextBlock(50 * time.Second)
	c.nextBlock(time.Second)
	var limit timebound.TimeLimit
	require.NoError(t, c.query("/timebound", nil, &limit))
	assert.Equal(t, releasegate.AsUnixTime(start)+100, limit.Deadline)

	// the deadline itself is no longer valid
	require.NoError(t, c.query("/timebound/valid", nil, &valid))
	assert.False(t, valid)
}

func TestConditionalScenario(t *testing.T) {
	adminKey := releasetest.NewKey()
	sender, oracle := releasetest.NewKey(), releasetest.NewKey()
	c := newChain(t, releasetest.KeyAddress(adminKey), time.Unix(1000, 0))

	setup := &conditional.SetupMsg{
		Sender:     releasetest.KeyAddress(sender),
		Receiver:   releasetest.NewAddress(),
		Amount:     releasegate.NewAmount(500),
		Conditions: []string{"kyc", "delivery"},
	}
	_, err := c.deliver(setup, oracle)
	assert.True(t, errors.ErrUnauthorized.Is(err), "got %v", err)
	_, err = c.deliver(setup, sender)
	require.NoError(t, err)

	assert.False(t, c.outcome(&conditional.FulfillMsg{Index: 0}, oracle))
	_, err = c.deliver(&conditional.FulfillMsg{Index: 2}, oracle)
	assert.True(t, conditional.ErrIndexOutOfRange.Is(err), "got %v", err)
	assert.True(t, c.outcome(&conditional.FulfillMsg{Index: 1}, oracle))
	c.nextBlock(time.Second)

	var complete bool
	require.NoError(t, c.query("/conditional/complete", nil, &complete))
	assert.True(t, complete)
}

func TestEscrowScenario(t *testing.T) {
	adminKey := releasetest.NewKey()
	sender, anyone := releasetest.NewKey(), releasetest.NewKey()
	start := time.Unix(1000, 0)
	c := newChain(t, releasetest.KeyAddress(adminKey), start)

	_, err := c.deliver(&escrow.CreateMsg{
		Sender:      releasetest.KeyAddress(sender),
		Receiver:    releasetest.NewAddress(),
		Amount:      releasegate.NewAmount(1000),
		ReleaseTime: releasegate.AsUnixTime(start) + 60,
	}, sender)
	require.NoError(t, err)

	res, err := c.deliver(&escrow.ReleaseMsg{}, anyone)
	require.NoError(t, err)
	assert.Equal(t, releasegate.BoolResult(false), res.Data)
	assert.Equal(t, "release time not reached", res.Log)

	c.nextBlock(60 * time.Second)
	assert.True(t, c.outcome(&escrow.ReleaseMsg{}, anyone))
	// releasing again is harmless
	assert.True(t, c.outcome(&escrow.ReleaseMsg{}, anyone))
	c.nextBlock(time.Second)

	var record escrow.Record
	require.NoError(t, c.query("/escrow", nil, &record))
	assert.True(t, record.Released)
	assert.Equal(t, "1000", record.Amount.String())
}

func TestTransactionGate(t *testing.T) {
	adminKey := releasetest.NewKey()
	c := newChain(t, releasetest.KeyAddress(adminKey), time.Unix(1000, 0))
	msg := &timebound.SetTimeLimitMsg{Deadline: 5000}

	// unsigned transactions are rejected
	unsigned, err := NewTx(msg).Marshal()
	require.NoError(t, err)
	_, err = releasegate.ParseDeliverOrError(c.app.DeliverTx(unsigned))
	assert.True(t, errors.ErrUnauthorized.Is(err), "got %v", err)

	// check runs against committed state, the genesis admin is not
	// visible before the first commit
	signed := c.signedTx(msg, adminKey)
	_, err = releasegate.ParseCheckOrError(c.app.CheckTx(signed))
	assert.True(t, errors.ErrUninitialized.Is(err), "got %v", err)

	// a signed transaction cannot be replayed
	c.nextBlock(time.Second)
	signed = c.signedTx(msg, adminKey)
	_, err = releasegate.ParseCheckOrError(c.app.CheckTx(signed))
	require.NoError(t, err)
	_, err = releasegate.ParseDeliverOrError(c.app.DeliverTx(signed))
	require.NoError(t, err)
	_, err = releasegate.ParseDeliverOrError(c.app.DeliverTx(signed))
	assert.True(t, sigs.ErrInvalidSequence.Is(err), "got %v", err)

	// garbage is not a transaction
	_, err = releasegate.ParseDeliverOrError(c.app.DeliverTx([]byte("not a tx")))
	assert.Error(t, err)

	// expired transactions are rejected
	tx := NewTx(msg)
	tx.ExpiresAt = 1000
	sig, err := sigs.SignTx(adminKey, tx, testChainID, 1)
	require.NoError(t, err)
	tx.Signatures = []*sigs.StdSignature{sig}
	bz, err := tx.Marshal()
	require.NoError(t, err)
	_, err = releasegate.ParseDeliverOrError(c.app.DeliverTx(bz))
	assert.True(t, errors.ErrExpired.Is(err), "got %v", err)

	// the account sequence is visible to clients
	c.nextBlock(time.Second)
	var user sigs.UserData
	require.NoError(t, c.query("/auth", releasetest.KeyAddress(adminKey), &user))
	assert.Equal(t, int64(1), user.Sequence)
}

func TestTagsAndUnknownQuery(t *testing.T) {
	adminKey := releasetest.NewKey()
	c := newChain(t, releasetest.KeyAddress(adminKey), time.Unix(1000, 0))

	res, err := c.deliver(&timebound.SetTimeLimitMsg{Deadline: 5000}, adminKey)
	require.NoError(t, err)
	tags := make(map[string]string)
	for _, tag := range res.Tags {
		tags[string(tag.Key)] = string(tag.Value)
	}
	assert.Equal(t, "timebound/set_limit", tags["action"])
	assert.Equal(t, "s", tags["rg:time_limit"])

	qres := c.app.Query(abci.RequestQuery{Path: "/nothing"})
	assert.Equal(t, errors.ErrNotFound.ABCICode(), qres.Code)
	assert.Equal(t, "releasegate", c.app.Info(abci.RequestInfo{}).Data)
}
