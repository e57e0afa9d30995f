package escrow

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yieldswap/releasegate"
	"github.com/yieldswap/releasegate/errors"
	"github.com/yieldswap/releasegate/releasetest"
	"github.com/yieldswap/releasegate/store"
)

type router map[string]releasegate.Handler

func (r router) Handle(path string, h releasegate.Handler) { r[path] = h }

func TestHandlers(t *testing.T) {
	sender, receiver := releasetest.NewAddress(), releasetest.NewAddress()
	auth := &releasetest.CtxAuth{Key: "escrow"}
	r := make(router)
	RegisterRoutes(r, auth)
	qr := releasegate.NewQueryRouter()
	RegisterQuery(qr)
	db := store.MemStore()

	release := &releasetest.Tx{Msg: &ReleaseMsg{}}
	_, err := r[pathReleaseMsg].Check(releasetest.ContextAt(1), db, release)
	assert.True(t, errors.ErrUninitialized.Is(err), "got %v", err)

	amount, err := releasegate.ParseAmount("340282366920938463463374607431768211")
	require.NoError(t, err)
	create := &releasetest.Tx{Msg: &CreateMsg{
		Sender:      sender,
		Receiver:    receiver,
		Amount:      amount,
		ReleaseTime: 1000,
	}}

	cases := map[string]struct {
		signers []releasegate.Address
		wantErr *errors.Error
	}{
		"sender must sign": {
			signers: []releasegate.Address{receiver},
			wantErr: errors.ErrUnauthorized,
		},
		"no signature": {
			wantErr: errors.ErrUnauthorized,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ctx := auth.SetAddresses(releasetest.ContextAt(1), tc.signers...)
			_, err := r[pathCreateMsg].Check(ctx, db, create)
			assert.True(t, tc.wantErr.Is(err), "got %v", err)
			_, err = r[pathCreateMsg].Deliver(ctx, db, create)
			assert.True(t, tc.wantErr.Is(err), "got %v", err)
		})
	}

	ctx := auth.SetAddresses(releasetest.ContextAt(1), sender)
	cres, err := r[pathCreateMsg].Check(ctx, db, create)
	require.NoError(t, err)
	assert.Equal(t, createEscrowCost, cres.GasAllocated)
	_, err = r[pathCreateMsg].Deliver(ctx, db, create)
	require.NoError(t, err)

	// anybody can release
	dres, err := r[pathReleaseMsg].Deliver(releasetest.ContextAt(999), db, release)
	require.NoError(t, err)
	assert.Equal(t, releasegate.BoolResult(false), dres.Data)
	assert.NotEmpty(t, dres.Log)

	dres, err = r[pathReleaseMsg].Deliver(releasetest.ContextAt(1000), db, release)
	require.NoError(t, err)
	assert.Equal(t, releasegate.BoolResult(true), dres.Data)

	res, err := qr.Handler("/escrow").Query(releasetest.ContextAt(1000), db, nil)
	require.NoError(t, err)
	var rec Record
	require.NoError(t, json.Unmarshal(res[0].Value, &rec))
	assert.Equal(t, amount, rec.Amount)
	assert.Equal(t, releasegate.UnixTime(1000), rec.ReleaseTime)
	assert.True(t, rec.Released)
}
