package sigs

import (
	"bytes"

	"github.com/yieldswap/releasegate"
	"github.com/yieldswap/releasegate/errors"
	"github.com/yieldswap/releasegate/state"
	"golang.org/x/crypto/ed25519"
)

// userPrefix keeps the account sequences apart from the release gate
// keyspace.
const userPrefix = "_rg:sigs:"

// maxSequenceValue is limited by the client. The greatest supported
// nonce value at client side is
//   Number.MAX_SAFE_INTEGER = 9007199254740991 = 2^53 - 1
const maxSequenceValue = (1 << 53) - 1

// UserData tracks the next expected signature sequence of an account.
type UserData struct {
	PubKey   []byte
	Sequence int64
}

func (u *UserData) Marshal() ([]byte, error) { return state.Marshal(u) }

func (u *UserData) Unmarshal(raw []byte) error { return state.Unmarshal(raw, u) }

func (u *UserData) Validate() error {
	var errs error
	if seq := u.Sequence; seq < 0 {
		errs = errors.AppendField(errs, "Sequence", ErrInvalidSequence)
	} else if seq > 0 && len(u.PubKey) == 0 {
		errs = errors.Append(errs, errors.Field("Sequence", ErrInvalidSequence, "needs PubKey"))
	}
	if len(u.PubKey) != 0 && len(u.PubKey) != ed25519.PublicKeySize {
		errs = errors.AppendField(errs, "PubKey", errors.ErrInvalidInput)
	}
	return errs
}

// CheckAndIncrementSequence implements check and increment operation.
// If current sequence value is the same as given expected value then it is
// incremented. Otherwise an error is returned.
// Before incrementing the sequence, this function is testing for a value
// overflow.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", expected, u.Sequence)
	}
	next := u.Sequence + 1
	if next <= 0 || next > maxSequenceValue {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence = next
	return nil
}

// Address returns the address controlled by this account.
func (u *UserData) Address() releasegate.Address {
	return releasegate.Address(u.PubKey)
}

func userKey(addr releasegate.Address) []byte {
	return append([]byte(userPrefix), addr...)
}

// GetUser returns the account data of given address, or nil if the address
// never signed a transaction.
func GetUser(db releasegate.ReadOnlyKVStore, addr releasegate.Address) (*UserData, error) {
	raw, err := db.Get(userKey(addr))
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if raw == nil {
		return nil, nil
	}
	var u UserData
	if err := u.Unmarshal(raw); err != nil {
		return nil, errors.Wrap(err, "user")
	}
	return &u, nil
}

// getOrCreateUser initializes a UserData if none exist for that key
func getOrCreateUser(db releasegate.ReadOnlyKVStore, pubkey []byte) (*UserData, error) {
	u, err := GetUser(db, releasegate.Address(pubkey))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return &UserData{PubKey: pubkey}, nil
	}
	if !bytes.Equal(u.PubKey, pubkey) {
		return nil, errors.Wrap(errors.ErrHuman, "stored public key mismatch")
	}
	return u, nil
}

func saveUser(db releasegate.KVStore, u *UserData) error {
	if err := u.Validate(); err != nil {
		return err
	}
	raw, err := u.Marshal()
	if err != nil {
		return err
	}
	if err := db.Set(userKey(u.Address()), raw); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}
