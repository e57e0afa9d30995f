package sigs

import (
	"github.com/yieldswap/releasegate"
	"github.com/yieldswap/releasegate/errors"
	"golang.org/x/crypto/ed25519"
)

// SignedTx represents a transaction that contains signatures,
// which can be verified by the sigs.Decorator
type SignedTx interface {
	// GetSignBytes returns the canonical byte representation of the
	// transaction without the signatures.
	GetSignBytes() ([]byte, error)

	// GetSignatures returns the signature of signers who signed the tx.
	GetSignatures() []*StdSignature
}

// ExpiringTx is a transaction that is valid only until a given time.
// A zero value never expires.
type ExpiringTx interface {
	GetExpiresAt() releasegate.UnixTime
}

// StdSignature is an ed25519 signature together with the public key that
// created it and the account sequence it consumes.
type StdSignature struct {
	PubKey    []byte
	Signature []byte
	Sequence  int64
}

// Validate ensures the StdSignature meets basic standards
func (s *StdSignature) Validate() error {
	if s.Sequence < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	if len(s.PubKey) == 0 {
		return errors.Wrap(errors.ErrUnauthorized, "missing public key")
	}
	if len(s.PubKey) != ed25519.PublicKeySize {
		return errors.Wrap(errors.ErrUnauthorized, "invalid public key")
	}
	if len(s.Signature) == 0 {
		return errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return nil
}

// Address returns the address of the signer.
func (s *StdSignature) Address() releasegate.Address {
	return releasegate.Address(s.PubKey)
}
