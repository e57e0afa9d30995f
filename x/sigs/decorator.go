/*
Package sigs provides basic authentication
middleware to verify the signatures on the transaction,
and maintain nonces for replay protection.
*/
package sigs

import (
	"encoding/json"

	"github.com/yieldswap/releasegate"
	"github.com/yieldswap/releasegate/errors"
)

const (
	signatureVerifyCost = 500
)

// RegisterQuery will register the account query as "/auth".
// Query data is the raw address.
func RegisterQuery(qr releasegate.QueryRouter) {
	qr.Register("/auth", releasegate.QueryHandlerFunc(queryUser))
}

func queryUser(ctx releasegate.Context, db releasegate.ReadOnlyKVStore, data []byte) ([]releasegate.Model, error) {
	addr := releasegate.Address(data)
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	u, err := GetUser(db, addr)
	if err != nil {
		return nil, err
	}
	if u == nil {
		u = &UserData{PubKey: addr}
	}
	bz, err := json.Marshal(u)
	if err != nil {
		return nil, errors.Wrap(errors.ErrHuman, err.Error())
	}
	return []releasegate.Model{releasegate.Pair(data, bz)}, nil
}

//----------------- Decorator ----------------
//
// This is just a binding from the functionality into the
// Application stack, not much business logic here.

// Decorator verifies the signatures and adds them to the context
type Decorator struct {
	allowMissingSigs bool
}

var _ releasegate.Decorator = Decorator{}

// NewDecorator returns a default authentication decorator,
// which appends the chainID before checking the signature,
// and requires at least one signature to be present
func NewDecorator() Decorator {
	return Decorator{
		allowMissingSigs: false,
	}
}

// AllowMissingSigs allows us to pass along items with no signatures
func (d Decorator) AllowMissingSigs() Decorator {
	d.allowMissingSigs = true
	return d
}

// Check verifies signatures before calling down the stack.
func (d Decorator) Check(ctx releasegate.Context, store releasegate.KVStore, tx releasegate.Tx, next releasegate.Checker) (*releasegate.CheckResult, error) {
	ctx, err := d.authenticate(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	res, err := next.Check(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	// The most expensive operation is the signature validation. We must
	// charge gas proportionally to the effort.
	if stx, ok := tx.(SignedTx); ok {
		res.GasAllocated += int64(len(stx.GetSignatures()) * signatureVerifyCost)
	}
	return res, nil
}

// Deliver verifies signatures before calling down the stack.
func (d Decorator) Deliver(ctx releasegate.Context, store releasegate.KVStore, tx releasegate.Tx, next releasegate.Deliverer) (*releasegate.DeliverResult, error) {
	ctx, err := d.authenticate(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, store, tx)
}

func (d Decorator) authenticate(ctx releasegate.Context, store releasegate.KVStore, tx releasegate.Tx) (releasegate.Context, error) {
	if etx, ok := tx.(ExpiringTx); ok {
		if exp := etx.GetExpiresAt(); !exp.IsZero() && releasegate.IsExpired(ctx, exp) {
			return nil, errors.Wrapf(errors.ErrExpired, "transaction valid until %s", exp)
		}
	}

	stx, ok := tx.(SignedTx)
	if !ok {
		if d.allowMissingSigs {
			return ctx, nil
		}
		return nil, errors.Wrap(errors.ErrUnauthorized, "transaction cannot be signed")
	}

	signers, err := VerifyTxSignatures(store, stx, releasegate.GetChainID(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "cannot verify signatures")
	}
	if len(signers) == 0 && !d.allowMissingSigs {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return withSigners(ctx, signers), nil
}
