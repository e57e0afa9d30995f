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

func TestSignBytes(t *testing.T) {
	bz := []byte("foobar")
	tx := newTestTx(bz)

	bz2 := []byte("blast")
	tx2 := newTestTx(bz2)

	// make sure the values out are sensible
	tbz, err := tx.GetSignBytes()
	assert.NoError(t, err)
	assert.Equal(t, bz, tbz)
	tbz2, err := tx2.GetSignBytes()
	assert.NoError(t, err)
	assert.Equal(t, bz2, tbz2)

	// make sure sign bytes match tx
	chainID := "test-sign-bytes"
	c1, err := BuildSignBytesTx(tx, chainID, 17)
	require.NoError(t, err)
	c1a, err := BuildSignBytes(bz, chainID, 17)
	require.NoError(t, err)
	assert.Equal(t, c1, c1a)
	assert.NotEqual(t, bz, c1)

	// make sure sign bytes change on tx, chain_id and seq
	ct, err := BuildSignBytes(bz2, chainID, 17)
	require.NoError(t, err)
	assert.NotEqual(t, c1, ct)
	c2, err := BuildSignBytes(bz, chainID+"2", 17)
	require.NoError(t, err)
	assert.NotEqual(t, c1, c2)
	c3, err := BuildSignBytes(bz, chainID, 18)
	require.NoError(t, err)
	assert.NotEqual(t, c1, c3)

	_, err = BuildSignBytes(bz, chainID, -1)
	assert.True(t, ErrInvalidSequence.Is(err))
	_, err = BuildSignBytes(bz, "x", 1)
	assert.True(t, errors.ErrInvalidInput.Is(err))
}

func TestVerifySignature(t *testing.T) {
	kv := store.MemStore()
	priv := releasetest.NewKey()
	addr := releasetest.KeyAddress(priv)

	chainID := "emo-music-2345"
	bz := []byte("my special valentine")
	tx := newTestTx(bz)

	sig0, err := SignTx(priv, tx, chainID, 0)
	require.NoError(t, err)
	sig1, err := SignTx(priv, tx, chainID, 1)
	require.NoError(t, err)
	sig2, err := SignTx(priv, tx, chainID, 2)
	require.NoError(t, err)
	sig13, err := SignTx(priv, tx, chainID, 13)
	require.NoError(t, err)
	empty := new(StdSignature)

	// signing should be deterministic
	sig2a, err := SignTx(priv, tx, chainID, 2)
	require.NoError(t, err)
	assert.Equal(t, sig2, sig2a)

	// the first one must have a signature in the store
	_, err = VerifySignature(kv, sig1, bz, chainID)
	assert.True(t, ErrInvalidSequence.Is(err))

	// empty sig
	_, err = VerifySignature(kv, empty, bz, chainID)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	// must start with 0
	signer, err := VerifySignature(kv, sig0, bz, chainID)
	assert.NoError(t, err)
	assert.Equal(t, addr, signer)
	// we can advance one (store in kvstore)
	signer, err = VerifySignature(kv, sig1, bz, chainID)
	assert.NoError(t, err)
	assert.Equal(t, addr, signer)

	seq, err := NextSequence(kv, addr)
	require.NoError(t, err)
	assert.EqualValues(t, 2, seq)

	// jumping and replays are a no-no
	_, err = VerifySignature(kv, sig1, bz, chainID)
	assert.True(t, ErrInvalidSequence.Is(err))
	_, err = VerifySignature(kv, sig13, bz, chainID)
	assert.True(t, ErrInvalidSequence.Is(err))

	// different chain doesn't match
	_, err = VerifySignature(kv, sig2, bz, "metal-music")
	assert.True(t, errors.ErrUnauthorized.Is(err))
	// doesn't match on bad sig
	copy(sig2.Signature, []byte{42, 17, 99})
	_, err = VerifySignature(kv, sig2, bz, chainID)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	// a short public key is rejected before verification
	short := &StdSignature{PubKey: []byte{1, 2, 3}, Signature: sig0.Signature}
	_, err = VerifySignature(kv, short, bz, chainID)
	assert.True(t, errors.ErrUnauthorized.Is(err))
}

func TestVerifyTxSignatures(t *testing.T) {
	kv := store.MemStore()

	priv := releasetest.NewKey()
	addr := releasetest.KeyAddress(priv)
	priv2 := releasetest.NewKey()
	addr2 := releasetest.KeyAddress(priv2)

	chainID := "hot_summer_days"
	bz := []byte("ice cream")
	tx := newTestTx(bz)
	tx2 := newTestTx([]byte(chainID))
	tbz, err := tx.GetSignBytes()
	require.NoError(t, err)
	tbz2, err := tx2.GetSignBytes()
	require.NoError(t, err)
	assert.NotEqual(t, tbz, tbz2)

	// two sigs from the first key
	sig, err := SignTx(priv, tx, chainID, 0)
	require.NoError(t, err)
	sig1, err := SignTx(priv, tx, chainID, 1)
	require.NoError(t, err)
	// one from the second
	sig2, err := SignTx(priv2, tx, chainID, 0)
	require.NoError(t, err)
	// and a signature of wrong info
	badSig, err := SignTx(priv, tx2, chainID, 0)
	require.NoError(t, err)

	// no signers
	signers, err := VerifyTxSignatures(kv, tx, chainID)
	assert.NoError(t, err)
	assert.Empty(t, signers)

	// bad signers
	tx.Signatures = []*StdSignature{badSig}
	_, err = VerifyTxSignatures(kv, tx, chainID)
	assert.Error(t, err)

	// some signers
	tx.Signatures = []*StdSignature{sig}
	signers, err = VerifyTxSignatures(kv, tx, chainID)
	assert.NoError(t, err)
	if assert.Equal(t, 1, len(signers)) {
		assert.Equal(t, addr, signers[0])
	}

	// one signature as replay is blocked
	tx.Signatures = []*StdSignature{sig, sig2}
	_, err = VerifyTxSignatures(kv, tx, chainID)
	assert.Error(t, err)

	// now increment seq and it passes
	tx.Signatures = []*StdSignature{sig1, sig2}
	signers, err = VerifyTxSignatures(kv, tx, chainID)
	assert.NoError(t, err)
	if assert.Equal(t, 2, len(signers)) {
		assert.Equal(t, addr, signers[0])
		assert.Equal(t, addr2, signers[1])
	}
}

func TestCheckAndIncrementSequence(t *testing.T) {
	u := &UserData{PubKey: make([]byte, 32)}
	assert.NoError(t, u.CheckAndIncrementSequence(0))
	assert.EqualValues(t, 1, u.Sequence)
	assert.True(t, ErrInvalidSequence.Is(u.CheckAndIncrementSequence(0)))

	u.Sequence = maxSequenceValue
	assert.True(t, errors.ErrOverflow.Is(u.CheckAndIncrementSequence(maxSequenceValue)))
	assert.EqualValues(t, maxSequenceValue, u.Sequence)
}

func TestUserDataValidate(t *testing.T) {
	cases := map[string]struct {
		user  UserData
		field string
		want  *errors.Error
	}{
		"fresh account": {
			user: UserData{PubKey: make([]byte, 32)},
		},
		"negative sequence": {
			user:  UserData{PubKey: make([]byte, 32), Sequence: -1},
			field: "Sequence",
			want:  ErrInvalidSequence,
		},
		"short key": {
			user:  UserData{PubKey: []byte{1}},
			field: "PubKey",
			want:  errors.ErrInvalidInput,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := tc.user.Validate()
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, tc.want.Is(err), "got %v", err)
			assert.Len(t, errors.FieldErrors(err, tc.field), 1)
		})
	}
}

func TestQueryUser(t *testing.T) {
	kv := store.MemStore()
	priv := releasetest.NewKey()
	addr := releasetest.KeyAddress(priv)

	qr := releasegate.NewQueryRouter()
	RegisterQuery(qr)
	h := qr.Handler("/auth")
	require.NotNil(t, h)

	ctx := releasetest.ContextAt(1000)
	models, err := h.Query(ctx, kv, addr)
	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.Contains(t, string(models[0].Value), `"Sequence":0`)

	sig, err := SignTx(priv, newTestTx([]byte("x")), "test-chain", 0)
	require.NoError(t, err)
	_, err = VerifySignature(kv, sig, []byte("x"), "test-chain")
	require.NoError(t, err)

	models, err = h.Query(ctx, kv, addr)
	require.NoError(t, err)
	assert.Contains(t, string(models[0].Value), `"Sequence":1`)

	_, err = h.Query(ctx, kv, []byte("short"))
	assert.True(t, errors.ErrInvalidInput.Is(err))
}

//----- mock objects for testing...

type testTx struct {
	Payload    []byte
	Signatures []*StdSignature
	ExpiresAt  releasegate.UnixTime
}

var _ SignedTx = (*testTx)(nil)
var _ ExpiringTx = (*testTx)(nil)
var _ releasegate.Tx = (*testTx)(nil)

func newTestTx(payload []byte) *testTx {
	return &testTx{Payload: payload}
}

func (tx *testTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

func (tx *testTx) GetSignBytes() ([]byte, error) {
	return tx.Payload, nil
}

func (tx *testTx) GetExpiresAt() releasegate.UnixTime {
	return tx.ExpiresAt
}

func (tx *testTx) GetMsg() (releasegate.Msg, error) {
	return nil, errors.Wrap(errors.ErrEmpty, "no msg")
}

func (tx *testTx) Marshal() ([]byte, error) {
	return tx.Payload, nil
}

func (tx *testTx) Unmarshal(raw []byte) error {
	tx.Payload = raw
	return nil
}
