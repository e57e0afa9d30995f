package admin

import (
	"encoding/json"

	"github.com/yieldswap/releasegate"
	"github.com/yieldswap/releasegate/errors"
	"github.com/yieldswap/releasegate/state"
	"github.com/yieldswap/releasegate/x"
)

const (
	initializeCost int64 = 100
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r releasegate.Registry, auth x.Authenticator) {
	r.Handle(pathInitializeMsg, InitializeHandler{ctrl: NewController(auth)})
}

// RegisterQuery registers the "/admin" and "/contract" queries. Both
// return JSON.
func RegisterQuery(qr releasegate.QueryRouter) {
	qr.Register("/admin", releasegate.QueryHandlerFunc(queryAdmin))
	qr.Register("/contract", releasegate.QueryHandlerFunc(queryContract))
}

// InitializeHandler sets the administrator on first call.
type InitializeHandler struct {
	ctrl Controller
}

var _ releasegate.Handler = InitializeHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h InitializeHandler) Check(ctx releasegate.Context, db releasegate.KVStore, tx releasegate.Tx) (*releasegate.CheckResult, error) {
	if _, err := h.validate(tx); err != nil {
		return nil, err
	}
	return &releasegate.CheckResult{GasAllocated: initializeCost}, nil
}

// Deliver stores the administrator. Result data is 1 if this call stored
// it, 0 if an administrator was already set.
func (h InitializeHandler) Deliver(ctx releasegate.Context, db releasegate.KVStore, tx releasegate.Tx) (*releasegate.DeliverResult, error) {
	msg, err := h.validate(tx)
	if err != nil {
		return nil, err
	}
	stored, err := h.ctrl.Initialize(ctx, db, msg.Admin)
	if err != nil {
		return nil, err
	}
	res := &releasegate.DeliverResult{Data: releasegate.BoolResult(stored)}
	if !stored {
		res.Log = "admin already initialized"
	}
	return res, nil
}

func (h InitializeHandler) validate(tx releasegate.Tx) (*InitializeMsg, error) {
	var msg InitializeMsg
	if err := releasegate.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &msg, nil
}

func queryAdmin(ctx releasegate.Context, db releasegate.ReadOnlyKVStore, data []byte) ([]releasegate.Model, error) {
	a, err := NewBucket().Get(db)
	if err != nil {
		return nil, err
	}
	return jsonModel(state.KeyAdmin.DBKey(), a)
}

func queryContract(ctx releasegate.Context, db releasegate.ReadOnlyKVStore, data []byte) ([]releasegate.Model, error) {
	cd, err := ContractData(db)
	if err != nil {
		return nil, err
	}
	return jsonModel([]byte("contract"), cd)
}

func jsonModel(key []byte, v interface{}) ([]releasegate.Model, error) {
	bz, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(errors.ErrHuman, err.Error())
	}
	return []releasegate.Model{releasegate.Pair(key, bz)}, nil
}
