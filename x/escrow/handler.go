package escrow

import (
	"encoding/json"

	"github.com/yieldswap/releasegate"
	"github.com/yieldswap/releasegate/errors"
	"github.com/yieldswap/releasegate/state"
	"github.com/yieldswap/releasegate/x"
)

const (
	// pay escrow cost up-front
	createEscrowCost  int64 = 300
	releaseEscrowCost int64 = 0
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r releasegate.Registry, auth x.Authenticator) {
	ctrl := NewController(auth)
	r.Handle(pathCreateMsg, CreateEscrowHandler{ctrl: ctrl})
	r.Handle(pathReleaseMsg, ReleaseEscrowHandler{ctrl: ctrl})
}

// RegisterQuery will register the record as "/escrow", JSON encoded.
func RegisterQuery(qr releasegate.QueryRouter) {
	qr.Register("/escrow", releasegate.QueryHandlerFunc(queryEscrow))
}

// CreateEscrowHandler stores a new escrow.
type CreateEscrowHandler struct {
	ctrl Controller
}

var _ releasegate.Handler = CreateEscrowHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h CreateEscrowHandler) Check(ctx releasegate.Context, db releasegate.KVStore, tx releasegate.Tx) (*releasegate.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &releasegate.CheckResult{GasAllocated: createEscrowCost}, nil
}

// Deliver stores the escrow if all preconditions are met.
func (h CreateEscrowHandler) Deliver(ctx releasegate.Context, db releasegate.KVStore, tx releasegate.Tx) (*releasegate.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if _, err := h.ctrl.Create(ctx, db, msg.Sender, msg.Receiver, msg.Amount, msg.ReleaseTime); err != nil {
		return nil, err
	}
	return &releasegate.DeliverResult{}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h CreateEscrowHandler) validate(ctx releasegate.Context, tx releasegate.Tx) (*CreateMsg, error) {
	var msg CreateMsg
	if err := releasegate.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	// Sender must authorize this.
	if !h.ctrl.auth.HasAddress(ctx, msg.Sender) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "sender signature required")
	}
	return &msg, nil
}

// ReleaseEscrowHandler releases the escrow once its release time is
// reached. Result data is 1 if the escrow is released.
type ReleaseEscrowHandler struct {
	ctrl Controller
}

var _ releasegate.Handler = ReleaseEscrowHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it
func (h ReleaseEscrowHandler) Check(ctx releasegate.Context, db releasegate.KVStore, tx releasegate.Tx) (*releasegate.CheckResult, error) {
	var msg ReleaseMsg
	if err := releasegate.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.ctrl.Record(db); err != nil {
		return nil, errors.Wrap(err, "escrow")
	}
	return &releasegate.CheckResult{GasAllocated: releaseEscrowCost}, nil
}

// Deliver flips the released flag if the release time is reached.
func (h ReleaseEscrowHandler) Deliver(ctx releasegate.Context, db releasegate.KVStore, tx releasegate.Tx) (*releasegate.DeliverResult, error) {
	var msg ReleaseMsg
	if err := releasegate.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	released, err := h.ctrl.Release(ctx, db)
	if err != nil {
		return nil, err
	}
	res := &releasegate.DeliverResult{Data: releasegate.BoolResult(released)}
	if !released {
		res.Log = "release time not reached"
	}
	return res, nil
}

func queryEscrow(ctx releasegate.Context, db releasegate.ReadOnlyKVStore, data []byte) ([]releasegate.Model, error) {
	r, err := NewBucket().Get(db)
	if err != nil {
		return nil, err
	}
	bz, err := json.Marshal(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrHuman, err.Error())
	}
	return []releasegate.Model{releasegate.Pair(state.KeyEscrowData.DBKey(), bz)}, nil
}
