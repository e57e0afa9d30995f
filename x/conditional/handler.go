package conditional

import (
	"encoding/json"

	"github.com/yieldswap/releasegate"
	"github.com/yieldswap/releasegate/errors"
	"github.com/yieldswap/releasegate/state"
	"github.com/yieldswap/releasegate/x"
)

const (
	setupCost   int64 = 100
	fulfillCost int64 = 20
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r releasegate.Registry, auth x.Authenticator) {
	ctrl := NewController(auth)
	r.Handle(pathSetupMsg, SetupHandler{ctrl: ctrl})
	r.Handle(pathFulfillMsg, FulfillHandler{ctrl: ctrl})
}

// RegisterQuery registers "/conditional" returning the payment and
// "/conditional/complete" returning whether all conditions are met. Both
// are JSON encoded.
func RegisterQuery(qr releasegate.QueryRouter) {
	ctrl := NewController(nil)
	qr.Register("/conditional", releasegate.QueryHandlerFunc(
		func(ctx releasegate.Context, db releasegate.ReadOnlyKVStore, _ []byte) ([]releasegate.Model, error) {
			p, err := ctrl.Payment(db)
			if err != nil {
				return nil, err
			}
			return jsonModel(state.KeyConditions.DBKey(), p)
		}))
	qr.Register("/conditional/complete", releasegate.QueryHandlerFunc(
		func(ctx releasegate.Context, db releasegate.ReadOnlyKVStore, _ []byte) ([]releasegate.Model, error) {
			ok, err := ctrl.AllMet(db)
			if err != nil {
				return nil, err
			}
			return jsonModel([]byte("complete"), ok)
		}))
}

// SetupHandler replaces the conditional payment.
type SetupHandler struct {
	ctrl Controller
}

var _ releasegate.Handler = SetupHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h SetupHandler) Check(ctx releasegate.Context, db releasegate.KVStore, tx releasegate.Tx) (*releasegate.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &releasegate.CheckResult{GasAllocated: setupCost}, nil
}

// Deliver stores the payment.
func (h SetupHandler) Deliver(ctx releasegate.Context, db releasegate.KVStore, tx releasegate.Tx) (*releasegate.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if _, err := h.ctrl.Setup(ctx, db, msg.Sender, msg.Receiver, msg.Amount, msg.Conditions); err != nil {
		return nil, err
	}
	return &releasegate.DeliverResult{}, nil
}

func (h SetupHandler) validate(ctx releasegate.Context, tx releasegate.Tx) (*SetupMsg, error) {
	var msg SetupMsg
	if err := releasegate.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.ctrl.auth.HasAddress(ctx, msg.Sender) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "sender signature required")
	}
	return &msg, nil
}

// FulfillHandler marks a condition as met. Result data is 1 if all
// conditions are met after this call.
type FulfillHandler struct {
	ctrl Controller
}

var _ releasegate.Handler = FulfillHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h FulfillHandler) Check(ctx releasegate.Context, db releasegate.KVStore, tx releasegate.Tx) (*releasegate.CheckResult, error) {
	var msg FulfillMsg
	if err := releasegate.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &releasegate.CheckResult{GasAllocated: fulfillCost}, nil
}

// Deliver marks the condition as met.
func (h FulfillHandler) Deliver(ctx releasegate.Context, db releasegate.KVStore, tx releasegate.Tx) (*releasegate.DeliverResult, error) {
	var msg FulfillMsg
	if err := releasegate.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.Fulfill(ctx, db, msg.Index); err != nil {
		return nil, err
	}
	complete, err := h.ctrl.AllMet(db)
	if err != nil {
		return nil, err
	}
	return &releasegate.DeliverResult{Data: releasegate.BoolResult(complete)}, nil
}

func jsonModel(key []byte, v interface{}) ([]releasegate.Model, error) {
	bz, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(errors.ErrHuman, err.Error())
	}
	return []releasegate.Model{releasegate.Pair(key, bz)}, nil
}
