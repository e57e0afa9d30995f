package sigs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yieldswap/releasegate"
	"github.com/yieldswap/releasegate/errors"
	"github.com/yieldswap/releasegate/releasetest"
	"github.com/yieldswap/releasegate/store"
)

func TestDecorator(t *testing.T) {
	kv := store.MemStore()
	checkKv := kv.CacheWrap()
	signers := new(SigCheckHandler)
	d := NewDecorator()
	// releasetest contexts use this chain id
	chainID := "test-chain"
	ctx := releasetest.ContextAt(1000)

	priv := releasetest.NewKey()
	perms := []releasegate.Address{releasetest.KeyAddress(priv)}

	bz := []byte("art")
	tx := newTestTx(bz)
	sig, err := SignTx(priv, tx, chainID, 0)
	require.NoError(t, err)
	sig1, err := SignTx(priv, tx, chainID, 1)
	require.NoError(t, err)

	deliver := func(dec releasegate.Decorator, my releasegate.Tx) error {
		_, err := dec.Deliver(ctx, kv, my, signers)
		return err
	}
	check := func(dec releasegate.Decorator, my releasegate.Tx) error {
		_, err := dec.Check(ctx, checkKv, my, signers)
		return err
	}

	for i, fn := range []func(releasegate.Decorator, releasegate.Tx) error{check, deliver} {
		// test with no sigs
		tx.Signatures = nil
		err := fn(d, tx)
		assert.True(t, errors.ErrUnauthorized.Is(err), "%d", i)

		// test with one
		tx.Signatures = []*StdSignature{sig}
		err = fn(d, tx)
		assert.NoError(t, err, "%d", i)
		assert.Equal(t, perms, signers.Signers)

		// test with replay
		err = fn(d, tx)
		assert.Error(t, err, "%d", i)

		// test allowing none
		ad := d.AllowMissingSigs()
		tx.Signatures = nil
		err = fn(ad, tx)
		assert.NoError(t, err, "%d", i)
		assert.Len(t, signers.Signers, 0)

		// test allowing, with next sequence
		tx.Signatures = []*StdSignature{sig1}
		err = fn(ad, tx)
		assert.NoError(t, err, "%d", i)
		assert.Equal(t, perms, signers.Signers)
	}
}

func TestDecoratorExpiration(t *testing.T) {
	kv := store.MemStore()
	signers := new(SigCheckHandler)
	d := NewDecorator().AllowMissingSigs()

	tx := newTestTx([]byte("late"))

	tx.ExpiresAt = 1000
	_, err := d.Deliver(releasetest.ContextAt(999), kv, tx, signers)
	assert.NoError(t, err)
	// expiration is inclusive
	_, err = d.Deliver(releasetest.ContextAt(1000), kv, tx, signers)
	assert.True(t, errors.ErrExpired.Is(err))
	_, err = d.Check(releasetest.ContextAt(5000), kv, tx, signers)
	assert.True(t, errors.ErrExpired.Is(err))

	// zero never expires
	tx.ExpiresAt = 0
	_, err = d.Deliver(releasetest.ContextAt(5000), kv, tx, signers)
	assert.NoError(t, err)
}

func TestDecoratorGas(t *testing.T) {
	kv := store.MemStore()
	priv := releasetest.NewKey()
	tx := newTestTx([]byte("gas"))
	sig, err := SignTx(priv, tx, "test-chain", 0)
	require.NoError(t, err)
	tx.Signatures = []*StdSignature{sig}

	res, err := NewDecorator().Check(releasetest.ContextAt(1), kv, tx, new(SigCheckHandler))
	require.NoError(t, err)
	assert.EqualValues(t, signatureVerifyCost, res.GasAllocated)
}

func TestAuthenticate(t *testing.T) {
	a, b := releasetest.NewAddress(), releasetest.NewAddress()
	ctx := withSigners(releasetest.ContextAt(1), []releasegate.Address{a})

	auth := Authenticate{}
	assert.True(t, auth.HasAddress(ctx, a))
	assert.False(t, auth.HasAddress(ctx, b))
	assert.Empty(t, auth.GetAddresses(releasetest.ContextAt(1)))
}

//---------------- helpers --------

// SigCheckHandler stores the seen signers on each call
type SigCheckHandler struct {
	Signers []releasegate.Address
}

var _ releasegate.Handler = (*SigCheckHandler)(nil)

func (s *SigCheckHandler) Check(ctx releasegate.Context, store releasegate.KVStore,
	tx releasegate.Tx) (*releasegate.CheckResult, error) {
	s.Signers = Authenticate{}.GetAddresses(ctx)
	return &releasegate.CheckResult{}, nil
}

func (s *SigCheckHandler) Deliver(ctx releasegate.Context, store releasegate.KVStore,
	tx releasegate.Tx) (*releasegate.DeliverResult, error) {
	s.Signers = Authenticate{}.GetAddresses(ctx)
	return &releasegate.DeliverResult{}, nil
}
