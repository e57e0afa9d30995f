package releasetest

import (
	"context"
	"fmt"

	"github.com/yieldswap/releasegate"
)

// Auth is a mock implementing x.Authenticator interface.
//
// This structure authenticates any of referenced addresses.
// You can use either Signer or Signers (or both) attributes to reference
// addresses. This is for the convinience and each time all signers
// (regardless which attribute) are considered.
type Auth struct {
	// Signer represents an authentication of a single signer. This is a
	// convinience attribute when creating an authentication method for a
	// single signer.
	// When authenticating all signers declared on this structure are
	// considered.
	Signer releasegate.Address

	// Signers represents an authentication of multiple signers.
	Signers []releasegate.Address
}

func (a *Auth) GetAddresses(releasegate.Context) []releasegate.Address {
	if a.Signer != nil {
		return append(a.Signers, a.Signer)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx releasegate.Context, addr releasegate.Address) bool {
	for _, s := range a.Signers {
		if addr.Equals(s) {
			return true
		}
	}
	if a.Signer == nil {
		return false
	}
	return addr.Equals(a.Signer)
}

// CtxAuth is a mock implementing x.Authenticator interface.
//
// This implementation is using context to store and retrieve permissions.
type CtxAuth struct {
	// Key used to set and retrieve addresses from the context. For
	// convinience only string type keys are allowed.
	Key string
}

func (a *CtxAuth) SetAddresses(ctx releasegate.Context, addrs ...releasegate.Address) releasegate.Context {
	return context.WithValue(ctx, a.Key, addrs)
}

func (a *CtxAuth) GetAddresses(ctx releasegate.Context) []releasegate.Address {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	addrs, ok := val.([]releasegate.Address)
	if !ok {
		panic(fmt.Sprintf("instead of []releasegate.Address got %T", ctx.Value(a.Key)))
	}
	return addrs
}

func (a *CtxAuth) HasAddress(ctx releasegate.Context, addr releasegate.Address) bool {
	for _, s := range a.GetAddresses(ctx) {
		if addr.Equals(s) {
			return true
		}
	}
	return false
}
