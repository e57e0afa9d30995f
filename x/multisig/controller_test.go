package multisig

import (
	"fmt"
	"math/rand"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/yieldswap/releasegate"
	"github.com/yieldswap/releasegate/errors"
	"github.com/yieldswap/releasegate/releasetest"
	"github.com/yieldswap/releasegate/releasetest/assert"
	"github.com/yieldswap/releasegate/store"
	"github.com/yieldswap/releasegate/x/admin"
)

// fixture sets up an administrator and returns helpers acting as given
// addresses.
type fixture struct {
	db    releasegate.CacheableKVStore
	auth  *releasetest.CtxAuth
	ctrl  Controller
	admin releasegate.Address
}

func newFixture(t testing.TB) *fixture {
	f := &fixture{
		db:    store.MemStore(),
		auth:  &releasetest.CtxAuth{Key: "multisig"},
		admin: releasetest.NewAddress(),
	}
	f.ctrl = NewController(f.auth)
	if _, err := admin.NewController(f.auth).Initialize(releasetest.ContextAt(1), f.db, f.admin); err != nil {
		t.Fatalf("cannot initialize admin: %s", err)
	}
	return f
}

func (f *fixture) as(addrs ...releasegate.Address) releasegate.Context {
	return f.auth.SetAddresses(releasetest.ContextAt(1000), addrs...)
}

func (f *fixture) sign(t testing.TB, signer releasegate.Address) bool {
	t.Helper()
	ok, err := f.ctrl.Sign(f.as(signer), f.db, signer)
	if err != nil {
		t.Fatalf("cannot sign: %s", err)
	}
	return ok
}

func addresses(n int) []releasegate.Address {
	addrs := make([]releasegate.Address, n)
	for i := range addrs {
		addrs[i] = releasetest.NewAddress()
	}
	return addrs
}

func TestTwoOfThree(t *testing.T) {
	signers := addresses(3)

	f := newFixture(t)
	_, err := f.ctrl.Setup(f.as(f.admin), f.db, 2, signers)
	assert.Nil(t, err)
	assert.Equal(t, false, f.sign(t, signers[0]))
	assert.Equal(t, true, f.sign(t, signers[1]))

	f = newFixture(t)
	_, err = f.ctrl.Setup(f.as(f.admin), f.db, 2, signers)
	assert.Nil(t, err)
	assert.Equal(t, false, f.sign(t, signers[0]))
	assert.Equal(t, true, f.sign(t, signers[2]))
}

func TestSetup(t *testing.T) {
	signers := addresses(2)

	cases := map[string]struct {
		noAdmin bool
		caller  releasegate.Address
		wantErr *errors.Error
	}{
		"admin can setup": {},
		"signer cannot setup": {
			caller:  signers[0],
			wantErr: errors.ErrUnauthorized,
		},
		"no admin": {
			noAdmin: true,
			wantErr: errors.ErrUninitialized,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t)
			if tc.noAdmin {
				f.db = store.MemStore()
			}
			caller := tc.caller
			if caller == nil {
				caller = f.admin
			}
			conf, err := f.ctrl.Setup(f.as(caller), f.db, 1, signers)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				_, err := f.ctrl.Config(f.db)
				assert.IsErr(t, errors.ErrUninitialized, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, []bool{false, false}, conf.Signed)

			stored, err := f.ctrl.Config(f.db)
			assert.Nil(t, err)
			assert.Equal(t, uint32(1), stored.RequiredSignatures)
			assert.Equal(t, signers, stored.Signers)
		})
	}
}

func TestUnreachableThresholdIsStored(t *testing.T) {
	f := newFixture(t)
	signers := addresses(2)
	conf, err := f.ctrl.Setup(f.as(f.admin), f.db, 3, signers)
	assert.Nil(t, err)
	assert.Equal(t, false, conf.Reachable())

	assert.Equal(t, false, f.sign(t, signers[0]))
	assert.Equal(t, false, f.sign(t, signers[1]))
}

func TestSignErrors(t *testing.T) {
	f := newFixture(t)
	signers := addresses(2)
	stranger := releasetest.NewAddress()

	_, err := f.ctrl.Sign(f.as(signers[0]), f.db, signers[0])
	assert.IsErr(t, errors.ErrUninitialized, err)

	_, err = f.ctrl.Setup(f.as(f.admin), f.db, 1, signers)
	assert.Nil(t, err)

	// authorized by someone else
	_, err = f.ctrl.Sign(f.as(signers[1]), f.db, signers[0])
	assert.IsErr(t, errors.ErrUnauthorized, err)

	_, err = f.ctrl.Sign(f.as(stranger), f.db, stranger)
	assert.IsErr(t, ErrNotAParticipant, err)

	conf, err := f.ctrl.Config(f.db)
	assert.Nil(t, err)
	assert.Equal(t, uint32(0), conf.SignatureCount())
}

func TestDuplicatedSignerUsesFirstPosition(t *testing.T) {
	f := newFixture(t)
	a, b := releasetest.NewAddress(), releasetest.NewAddress()
	_, err := f.ctrl.Setup(f.as(f.admin), f.db, 2, []releasegate.Address{a, b, a})
	assert.Nil(t, err)

	assert.Equal(t, false, f.sign(t, a))
	assert.Equal(t, false, f.sign(t, a))

	conf, err := f.ctrl.Config(f.db)
	assert.Nil(t, err)
	assert.Equal(t, []bool{true, false, false}, conf.Signed)
}

func TestQuorumProperties(t *testing.T) {
	Convey("Given N signers and a threshold T <= N", t, func() {
		for n := 1; n <= 5; n++ {
			for threshold := 0; threshold <= n; threshold++ {
				n, threshold := n, threshold
				Convey(fmt.Sprintf("N=%d T=%d", n, threshold), func() {
					f := newFixture(t)
					signers := addresses(n)
					_, err := f.ctrl.Setup(f.as(f.admin), f.db, uint32(threshold), signers)
					So(err, ShouldBeNil)

					Convey("quorum is reached exactly at T distinct signers in any order", func() {
						for i, k := range rand.Perm(n) {
							ok := f.sign(t, signers[k])
							So(ok, ShouldEqual, i+1 >= threshold)

							// signing twice does not change the count
							again := f.sign(t, signers[k])
							So(again, ShouldEqual, ok)
						}
					})

					Convey("a new setup resets all signatures", func() {
						f.sign(t, signers[0])
						_, err := f.ctrl.Setup(f.as(f.admin), f.db, uint32(threshold), signers)
						So(err, ShouldBeNil)
						conf, err := f.ctrl.Config(f.db)
						So(err, ShouldBeNil)
						So(conf.SignatureCount(), ShouldEqual, uint32(0))
						So(conf.QuorumReached(), ShouldEqual, threshold == 0)
					})
				})
			}
		}
	})
}
