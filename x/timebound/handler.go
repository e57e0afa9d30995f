package timebound

import (
	"encoding/json"

	"github.com/yieldswap/releasegate"
	"github.com/yieldswap/releasegate/errors"
	"github.com/yieldswap/releasegate/state"
	"github.com/yieldswap/releasegate/x"
)

const (
	setTimeLimitCost int64 = 50
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r releasegate.Registry, auth x.Authenticator) {
	r.Handle(pathSetTimeLimitMsg, SetTimeLimitHandler{ctrl: NewController(auth)})
}

// RegisterQuery registers "/timebound" returning the deadline and
// "/timebound/valid" returning whether the last block time is before it.
// Both are JSON encoded.
func RegisterQuery(qr releasegate.QueryRouter) {
	ctrl := NewController(nil)
	qr.Register("/timebound", releasegate.QueryHandlerFunc(
		func(ctx releasegate.Context, db releasegate.ReadOnlyKVStore, _ []byte) ([]releasegate.Model, error) {
			tl, err := ctrl.bucket.Get(db)
			if err != nil {
				return nil, err
			}
			return jsonModel(state.KeyTimeLimit.DBKey(), tl)
		}))
	qr.Register("/timebound/valid", releasegate.QueryHandlerFunc(
		func(ctx releasegate.Context, db releasegate.ReadOnlyKVStore, _ []byte) ([]releasegate.Model, error) {
			ok, err := ctrl.CheckTimeValid(ctx, db)
			if err != nil {
				return nil, err
			}
			return jsonModel([]byte("valid"), ok)
		}))
}

// SetTimeLimitHandler replaces the deadline.
type SetTimeLimitHandler struct {
	ctrl Controller
}

var _ releasegate.Handler = SetTimeLimitHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h SetTimeLimitHandler) Check(ctx releasegate.Context, db releasegate.KVStore, tx releasegate.Tx) (*releasegate.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &releasegate.CheckResult{GasAllocated: setTimeLimitCost}, nil
}

// Deliver stores the deadline.
func (h SetTimeLimitHandler) Deliver(ctx releasegate.Context, db releasegate.KVStore, tx releasegate.Tx) (*releasegate.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.SetTimeLimit(ctx, db, msg.Deadline); err != nil {
		return nil, err
	}
	return &releasegate.DeliverResult{}, nil
}

func (h SetTimeLimitHandler) validate(ctx releasegate.Context, db releasegate.KVStore, tx releasegate.Tx) (*SetTimeLimitMsg, error) {
	var msg SetTimeLimitMsg
	if err := releasegate.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.admin.RequireAdmin(ctx, db); err != nil {
		return nil, err
	}
	return &msg, nil
}

func jsonModel(key []byte, v interface{}) ([]releasegate.Model, error) {
	bz, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(errors.ErrHuman, err.Error())
	}
	return []releasegate.Model{releasegate.Pair(key, bz)}, nil
}
