package conditional

import (
	"github.com/yieldswap/releasegate"
	"github.com/yieldswap/releasegate/errors"
	"github.com/yieldswap/releasegate/x"
)

// Controller implements the conditional payment policy.
type Controller struct {
	auth   x.Authenticator
	bucket Bucket
}

// NewController returns a controller using auth for the sender check.
func NewController(auth x.Authenticator) Controller {
	return Controller{auth: auth, bucket: NewBucket()}
}

// Setup replaces the payment with a new one, none of its conditions
// fulfilled. The call must be authorized by the sender.
func (c Controller) Setup(
	ctx releasegate.Context,
	db releasegate.KVStore,
	sender, receiver releasegate.Address,
	amount releasegate.Amount,
	conditions []string,
) (*Payment, error) {
	if !c.auth.HasAddress(ctx, sender) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "sender signature required")
	}
	p := &Payment{
		Sender:        sender,
		Receiver:      receiver,
		Amount:        amount,
		Conditions:    conditions,
		ConditionsMet: make([]bool, len(conditions)),
	}
	if err := c.bucket.Save(db, p); err != nil {
		return nil, errors.Wrap(err, "cannot store payment")
	}
	releasegate.GetLogger(ctx).Debug("conditional payment created",
		"module", "conditional", "sender", sender, "conditions", len(conditions))
	return p, nil
}

// Fulfill marks the condition at given index as met. Fulfilling a
// condition twice has no further effect.
func (c Controller) Fulfill(ctx releasegate.Context, db releasegate.KVStore, index uint32) error {
	p, err := c.bucket.Get(db)
	if err != nil {
		return errors.Wrap(err, "payment")
	}
	if int64(index) >= int64(len(p.Conditions)) {
		return errors.Wrapf(ErrIndexOutOfRange, "index %d, %d conditions", index, len(p.Conditions))
	}
	p.ConditionsMet[index] = true
	if err := c.bucket.Save(db, p); err != nil {
		return errors.Wrap(err, "cannot store payment")
	}
	return nil
}

// AllMet returns true if every condition of the payment is fulfilled.
func (c Controller) AllMet(db releasegate.ReadOnlyKVStore) (bool, error) {
	p, err := c.bucket.Get(db)
	if err != nil {
		return false, errors.Wrap(err, "payment")
	}
	return p.AllMet(), nil
}

// Payment returns the stored payment or ErrUninitialized.
func (c Controller) Payment(db releasegate.ReadOnlyKVStore) (*Payment, error) {
	return c.bucket.Get(db)
}
