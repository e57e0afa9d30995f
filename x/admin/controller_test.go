package admin

import (
	"testing"

	"github.com/yieldswap/releasegate"
	"github.com/yieldswap/releasegate/errors"
	"github.com/yieldswap/releasegate/releasetest"
	"github.com/yieldswap/releasegate/releasetest/assert"
	"github.com/yieldswap/releasegate/store"
)

func TestInitialize(t *testing.T) {
	db := store.MemStore()
	ctx := releasetest.ContextAt(1000)
	first, second := releasetest.NewAddress(), releasetest.NewAddress()

	ctrl := NewController(&releasetest.Auth{})

	_, err := ctrl.Admin(db)
	assert.IsErr(t, errors.ErrUninitialized, err)

	stored, err := ctrl.Initialize(ctx, db, first)
	assert.Nil(t, err)
	assert.Equal(t, true, stored)

	// the second call is silently ignored
	stored, err = ctrl.Initialize(ctx, db, second)
	assert.Nil(t, err)
	assert.Equal(t, false, stored)

	got, err := ctrl.Admin(db)
	assert.Nil(t, err)
	assert.Equal(t, first, got)

	_, err = ctrl.Initialize(ctx, db, releasegate.Address{1, 2})
	assert.IsErr(t, errors.ErrInvalidInput, err)
}

func TestRequireAdmin(t *testing.T) {
	admin, other := releasetest.NewAddress(), releasetest.NewAddress()
	auth := &releasetest.CtxAuth{Key: "auth"}

	cases := map[string]struct {
		init    bool
		signers []releasegate.Address
		wantErr *errors.Error
	}{
		"admin signed": {
			init:    true,
			signers: []releasegate.Address{admin},
		},
		"admin among many signers": {
			init:    true,
			signers: []releasegate.Address{other, admin},
		},
		"someone else signed": {
			init:    true,
			signers: []releasegate.Address{other},
			wantErr: errors.ErrUnauthorized,
		},
		"nobody signed": {
			init:    true,
			wantErr: errors.ErrUnauthorized,
		},
		"no admin": {
			signers: []releasegate.Address{admin},
			wantErr: errors.ErrUninitialized,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctx := releasetest.ContextAt(1000)
			ctrl := NewController(auth)
			if tc.init {
				_, err := ctrl.Initialize(ctx, db, admin)
				assert.Nil(t, err)
			}
			ctx = auth.SetAddresses(ctx, tc.signers...)
			err := ctrl.RequireAdmin(ctx, db)
			if tc.wantErr == nil {
				assert.Nil(t, err)
			} else {
				assert.IsErr(t, tc.wantErr, err)
			}
		})
	}
}

func TestContractData(t *testing.T) {
	db := store.MemStore()
	admin := releasegate.MustParseAddress("GAAACAQDAQCQMBYIBEFAWDANBYHRAEISCMKBKFQXDAMRUGY4DUPB7JZX")

	data, err := ContractData(db)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(data))

	_, err = NewController(nil).Initialize(releasetest.ContextAt(1), db, admin)
	assert.Nil(t, err)

	data, err = ContractData(db)
	assert.Nil(t, err)
	assert.Equal(t, map[string]string{"admin": "GAAACAQDAQCQMBYIBEFAWDANBYHRAEISCMKBKFQXDAMRUGY4DUPB7JZX"}, data)
}
