package utils

import (
	"github.com/yieldswap/releasegate"
	"github.com/yieldswap/releasegate/errors"
)

// Recovery turns a panic raised further down the stack into an ErrPanic
// error, so a broken policy call fails the transaction instead of the
// node. The panic is logged with the message path.
type Recovery struct{}

var _ releasegate.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

func (r Recovery) Check(ctx releasegate.Context, store releasegate.KVStore, tx releasegate.Tx, next releasegate.Checker) (_ *releasegate.CheckResult, err error) {
	defer r.handlePanic(ctx, tx, &err)
	return next.Check(ctx, store, tx)
}

func (r Recovery) Deliver(ctx releasegate.Context, store releasegate.KVStore, tx releasegate.Tx, next releasegate.Deliverer) (_ *releasegate.DeliverResult, err error) {
	defer r.handlePanic(ctx, tx, &err)
	return next.Deliver(ctx, store, tx)
}

// handlePanic must be deferred directly, otherwise the builtin recover
// returns nil.
func (Recovery) handlePanic(ctx releasegate.Context, tx releasegate.Tx, err *error) {
	p := recover()
	if p == nil {
		return
	}
	*err = errors.Wrapf(errors.ErrPanic, "%v", p)

	path := "(missing)"
	if tx != nil {
		path = releasegate.GetPath(tx)
	}
	releasegate.GetLogger(ctx).Error("recovered from panic", "path", path, "panic", p)
}
