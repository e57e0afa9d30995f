package state

import (
	"github.com/yieldswap/releasegate/errors"
)

// Key enumerates every storage slot the engine uses.
type Key uint8

const (
	// KeyAdmin holds the administrator identity.
	KeyAdmin Key = iota + 1
	// KeySigners holds the multi signature configuration.
	KeySigners
	// KeyTimeLimit holds the deadline.
	KeyTimeLimit
	// KeyConditions holds the conditional payment.
	KeyConditions
	// KeyEscrowData holds the escrow record.
	KeyEscrowData
)

// dbPrefix separates the engine keyspace from any other data stored by the
// host application.
const dbPrefix = "rg:"

// Keys returns all valid keys.
func Keys() []Key {
	return []Key{KeyAdmin, KeySigners, KeyTimeLimit, KeyConditions, KeyEscrowData}
}

// String returns the name of the key, as used in the database.
func (k Key) String() string {
	switch k {
	case KeyAdmin:
		return "admin"
	case KeySigners:
		return "signers"
	case KeyTimeLimit:
		return "time_limit"
	case KeyConditions:
		return "conditions"
	case KeyEscrowData:
		return "escrow_data"
	default:
		return "invalid"
	}
}

// Validate returns an error if the key is not one of the declared ones.
func (k Key) Validate() error {
	switch k {
	case KeyAdmin, KeySigners, KeyTimeLimit, KeyConditions, KeyEscrowData:
		return nil
	default:
		return errors.Wrapf(errors.ErrInvalidInput, "storage key %d", uint8(k))
	}
}

// DBKey returns the raw key under which the value is stored.
func (k Key) DBKey() []byte {
	return []byte(dbPrefix + k.String())
}
