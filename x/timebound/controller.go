package timebound

import (
	"github.com/yieldswap/releasegate"
	"github.com/yieldswap/releasegate/errors"
	"github.com/yieldswap/releasegate/x"
	"github.com/yieldswap/releasegate/x/admin"
)

// Controller implements the deadline policy.
type Controller struct {
	admin  admin.Controller
	bucket Bucket
}

// NewController returns a controller using auth for the admin check.
func NewController(auth x.Authenticator) Controller {
	return Controller{admin: admin.NewController(auth), bucket: NewBucket()}
}

// SetTimeLimit replaces the deadline. Only the administrator can call it.
func (c Controller) SetTimeLimit(ctx releasegate.Context, db releasegate.KVStore, deadline releasegate.UnixTime) error {
	if err := c.admin.RequireAdmin(ctx, db); err != nil {
		return err
	}
	if err := c.bucket.Save(db, &TimeLimit{Deadline: deadline}); err != nil {
		return errors.Wrap(err, "cannot store time limit")
	}
	releasegate.GetLogger(ctx).Debug("time limit set", "module", "timebound", "deadline", deadline)
	return nil
}

// CheckTimeValid returns true while the ledger time is before the deadline.
func (c Controller) CheckTimeValid(ctx releasegate.Context, db releasegate.ReadOnlyKVStore) (bool, error) {
	tl, err := c.bucket.Get(db)
	if err != nil {
		return false, errors.Wrap(err, "time limit")
	}
	now, err := releasegate.BlockTime(ctx)
	if err != nil {
		return false, err
	}
	return releasegate.AsUnixTime(now) < tl.Deadline, nil
}

// TimeLimit returns the stored deadline or ErrUninitialized.
func (c Controller) TimeLimit(db releasegate.ReadOnlyKVStore) (releasegate.UnixTime, error) {
	tl, err := c.bucket.Get(db)
	if err != nil {
		return 0, err
	}
	return tl.Deadline, nil
}
