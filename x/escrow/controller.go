package escrow

import (
	"github.com/yieldswap/releasegate"
	"github.com/yieldswap/releasegate/errors"
	"github.com/yieldswap/releasegate/x"
)

// Controller implements the escrow policy.
type Controller struct {
	auth   x.Authenticator
	bucket Bucket
}

// NewController returns a controller using auth for the sender check.
func NewController(auth x.Authenticator) Controller {
	return Controller{auth: auth, bucket: NewBucket()}
}

// Create replaces the escrow with a new, not released one. The call must
// be authorized by the sender. A release time in the past is accepted and
// makes the escrow releasable right away.
func (c Controller) Create(
	ctx releasegate.Context,
	db releasegate.KVStore,
	sender, receiver releasegate.Address,
	amount releasegate.Amount,
	releaseTime releasegate.UnixTime,
) (*Record, error) {
	if !c.auth.HasAddress(ctx, sender) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "sender signature required")
	}
	return c.create(ctx, db, &Record{
		Sender:      sender,
		Receiver:    receiver,
		Amount:      amount,
		ReleaseTime: releaseTime,
	})
}

func (c Controller) create(ctx releasegate.Context, db releasegate.KVStore, r *Record) (*Record, error) {
	if err := c.bucket.Save(db, r); err != nil {
		return nil, errors.Wrap(err, "cannot store escrow")
	}
	releasegate.GetLogger(ctx).Debug("escrow created",
		"module", "escrow", "sender", r.Sender, "release_time", r.ReleaseTime)
	return r, nil
}

// Release sets the released flag once the ledger time reached the release
// time. It returns true if the escrow is released, by this call or an
// earlier one. Before the release time nothing is written and false is
// returned.
func (c Controller) Release(ctx releasegate.Context, db releasegate.KVStore) (bool, error) {
	r, err := c.bucket.Get(db)
	if err != nil {
		return false, errors.Wrap(err, "escrow")
	}
	if r.Released {
		return true, nil
	}
	if !releasegate.IsExpired(ctx, r.ReleaseTime) {
		return false, nil
	}
	r.Released = true
	if err := c.bucket.Save(db, r); err != nil {
		return false, errors.Wrap(err, "cannot store escrow")
	}
	releasegate.GetLogger(ctx).Info("escrow released", "module", "escrow", "receiver", r.Receiver, "amount", r.Amount)
	return true, nil
}

// Record returns the stored escrow or ErrUninitialized.
func (c Controller) Record(db releasegate.ReadOnlyKVStore) (*Record, error) {
	return c.bucket.Get(db)
}
