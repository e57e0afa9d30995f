package sigs

import (
	"context"

	"github.com/yieldswap/releasegate"
	"github.com/yieldswap/releasegate/x"
)

type contextKey int // local to the sigs module

const (
	contextKeySigners contextKey = iota
)

// withSigners is a private method, as only this module
// can add a signer
func withSigners(ctx releasegate.Context, signers []releasegate.Address) releasegate.Context {
	return context.WithValue(ctx, contextKeySigners, signers)
}

// Authenticate implements x.Authenticator over the addresses whose
// signatures were verified by the Decorator.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetAddresses returns who signed the current Context.
// May be empty
func (a Authenticate) GetAddresses(ctx releasegate.Context) []releasegate.Address {
	// (val, ok) form to return nil instead of panic if unset
	val, _ := ctx.Value(contextKeySigners).([]releasegate.Address)
	return val
}

// HasAddress returns true if the given address signed the current Context.
func (a Authenticate) HasAddress(ctx releasegate.Context, addr releasegate.Address) bool {
	for _, s := range a.GetAddresses(ctx) {
		if addr.Equals(s) {
			return true
		}
	}
	return false
}
