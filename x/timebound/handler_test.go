package timebound

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yieldswap/releasegate"
	"github.com/yieldswap/releasegate/errors"
	"github.com/yieldswap/releasegate/releasetest"
)

type router map[string]releasegate.Handler

func (r router) Handle(path string, h releasegate.Handler) { r[path] = h }

func TestHandlerAndQueries(t *testing.T) {
	db, auth, _ := setup(t)
	r := make(router)
	RegisterRoutes(r, auth)
	h := r[pathSetTimeLimitMsg]
	require.NotNil(t, h)

	qr := releasegate.NewQueryRouter()
	RegisterQuery(qr)

	ctx := releasetest.ContextAt(1000)
	_, err := qr.Handler("/timebound/valid").Query(ctx, db, nil)
	assert.True(t, errors.ErrUninitialized.Is(err))

	tx := &releasetest.Tx{Msg: &SetTimeLimitMsg{Deadline: 2000}}
	cres, err := h.Check(ctx, db, tx)
	require.NoError(t, err)
	assert.Equal(t, setTimeLimitCost, cres.GasAllocated)
	_, err = h.Deliver(ctx, db, tx)
	require.NoError(t, err)

	res, err := qr.Handler("/timebound").Query(ctx, db, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"deadline": 2000}`, string(res[0].Value))

	res, err = qr.Handler("/timebound/valid").Query(ctx, db, nil)
	require.NoError(t, err)
	assert.Equal(t, "true", string(res[0].Value))

	res, err = qr.Handler("/timebound/valid").Query(releasetest.ContextAt(2000), db, nil)
	require.NoError(t, err)
	assert.Equal(t, "false", string(res[0].Value))

	auth.Signer = releasetest.NewAddress()
	_, err = h.Deliver(ctx, db, tx)
	assert.True(t, errors.ErrUnauthorized.Is(err))
}
