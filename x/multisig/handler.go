package multisig

import (
	"encoding/json"
	"fmt"

	"github.com/yieldswap/releasegate"
	"github.com/yieldswap/releasegate/errors"
	"github.com/yieldswap/releasegate/state"
	"github.com/yieldswap/releasegate/x"
)

const (
	setupCost int64 = 100
	signCost  int64 = 50
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r releasegate.Registry, auth x.Authenticator) {
	ctrl := NewController(auth)
	r.Handle(pathSetupMsg, SetupHandler{ctrl: ctrl})
	r.Handle(pathSignMsg, SignHandler{ctrl: ctrl})
}

// RegisterQuery registers the configuration as "/multisig", JSON encoded.
func RegisterQuery(qr releasegate.QueryRouter) {
	qr.Register("/multisig", releasegate.QueryHandlerFunc(queryConfig))
}

// SetupHandler replaces the multi signature configuration.
type SetupHandler struct {
	ctrl Controller
}

var _ releasegate.Handler = SetupHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h SetupHandler) Check(ctx releasegate.Context, db releasegate.KVStore, tx releasegate.Tx) (*releasegate.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &releasegate.CheckResult{GasAllocated: setupCost}, nil
}

// Deliver stores the configuration. An unreachable threshold is reported
// in the result log.
func (h SetupHandler) Deliver(ctx releasegate.Context, db releasegate.KVStore, tx releasegate.Tx) (*releasegate.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	conf, err := h.ctrl.Setup(ctx, db, msg.RequiredSignatures, msg.Signers)
	if err != nil {
		return nil, err
	}
	res := &releasegate.DeliverResult{}
	if !conf.Reachable() {
		res.Log = fmt.Sprintf("quorum unreachable: %d signatures required, %d signers",
			conf.RequiredSignatures, len(conf.Signers))
	}
	return res, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h SetupHandler) validate(ctx releasegate.Context, db releasegate.KVStore, tx releasegate.Tx) (*SetupMsg, error) {
	var msg SetupMsg
	if err := releasegate.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.admin.RequireAdmin(ctx, db); err != nil {
		return nil, err
	}
	return &msg, nil
}

// SignHandler records a signature. Result data is 1 if quorum is reached.
type SignHandler struct {
	ctrl Controller
}

var _ releasegate.Handler = SignHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h SignHandler) Check(ctx releasegate.Context, db releasegate.KVStore, tx releasegate.Tx) (*releasegate.CheckResult, error) {
	var msg SignMsg
	if err := releasegate.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.ctrl.auth.HasAddress(ctx, msg.Signer) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "signer signature required")
	}
	return &releasegate.CheckResult{GasAllocated: signCost}, nil
}

// Deliver marks the signer as signed.
func (h SignHandler) Deliver(ctx releasegate.Context, db releasegate.KVStore, tx releasegate.Tx) (*releasegate.DeliverResult, error) {
	var msg SignMsg
	if err := releasegate.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	reached, err := h.ctrl.Sign(ctx, db, msg.Signer)
	if err != nil {
		return nil, err
	}
	return &releasegate.DeliverResult{Data: releasegate.BoolResult(reached)}, nil
}

func queryConfig(ctx releasegate.Context, db releasegate.ReadOnlyKVStore, data []byte) ([]releasegate.Model, error) {
	conf, err := NewBucket().Get(db)
	if err != nil {
		return nil, err
	}
	bz, err := json.Marshal(conf)
	if err != nil {
		return nil, errors.Wrap(errors.ErrHuman, err.Error())
	}
	return []releasegate.Model{releasegate.Pair(state.KeySigners.DBKey(), bz)}, nil
}
