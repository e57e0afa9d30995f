package releasetest

import (
	"crypto/rand"

	"github.com/yieldswap/releasegate"
	"golang.org/x/crypto/ed25519"
)

// NewKey returns a fresh ed25519 private key.
func NewKey() ed25519.PrivateKey {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		panic(err)
	}
	return priv
}

// KeyAddress returns the address controlled by given key.
func KeyAddress(key ed25519.PrivateKey) releasegate.Address {
	return releasegate.Address(key.Public().(ed25519.PublicKey))
}

// NewAddress returns the address of a fresh key. Use it when the test
// never needs to sign anything.
func NewAddress() releasegate.Address {
	return KeyAddress(NewKey())
}
