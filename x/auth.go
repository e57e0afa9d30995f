package x

import (
	"github.com/yieldswap/releasegate"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of
// handlers and controllers, so we can plug in another authentication
// system, rather than hard-coding x/sigs for all extensions.
//
// An Authenticator only answers whether the current call is backed by the
// holder of an address. Deciding what an unauthenticated caller may do is
// left to the extension.
type Authenticator interface {
	// GetAddresses reveals all addresses that authorized this call
	GetAddresses(releasegate.Context) []releasegate.Address
	// HasAddress checks if the call is authorized by the holder of
	// this address
	HasAddress(releasegate.Context, releasegate.Address) bool
}

// MultiAuth chains together many Authenticators into one
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetAddresses combines all addresses from all Authenticators
func (m MultiAuth) GetAddresses(ctx releasegate.Context) []releasegate.Address {
	var res []releasegate.Address
	for _, impl := range m.impls {
		add := impl.GetAddresses(ctx)
		if len(add) > 0 {
			res = append(res, add...)
		}
	}
	return res
}

// HasAddress returns true iff any Authenticator support this
func (m MultiAuth) HasAddress(ctx releasegate.Context, addr releasegate.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first address if any, otherwise nil
func MainSigner(ctx releasegate.Context, auth Authenticator) releasegate.Address {
	signers := auth.GetAddresses(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

// HasAllAddresses returns true if all elements in required are
// also in context.
func HasAllAddresses(ctx releasegate.Context, auth Authenticator, required []releasegate.Address) bool {
	for _, r := range required {
		if !auth.HasAddress(ctx, r) {
			return false
		}
	}
	return true
}

// HasNAddresses returns true if at least n elements in requested are
// also in context.
func HasNAddresses(ctx releasegate.Context, auth Authenticator, required []releasegate.Address, n int) bool {
	if n <= 0 {
		return true
	}

	for _, r := range required {
		if auth.HasAddress(ctx, r) {
			n--
			if n == 0 {
				return true
			}
		}
	}
	return false
}
