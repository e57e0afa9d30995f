package app

import (
	"encoding/binary"
	"time"

	"github.com/yieldswap/releasegate"
	"github.com/yieldswap/releasegate/errors"
)

// CommitStore handles loading from a KVCommitStore, maintaining different
// CacheWraps for Deliver and Check, and returning useful state info.
type CommitStore struct {
	committed releasegate.CommitKVStore
	deliver   releasegate.KVCacheWrap
	check     releasegate.KVCacheWrap
}

// NewCommitStore loads the CommitKVStore from disk or panics. It sets up the
// deliver and check caches.
func NewCommitStore(store releasegate.CommitKVStore) *CommitStore {
	err := store.LoadLatestVersion()
	if err != nil {
		panic(err)
	}
	return &CommitStore{
		committed: store,
		deliver:   store.CacheWrap(),
		check:     store.CacheWrap(),
	}
}

// CommitInfo returns the current height and hash
func (cs *CommitStore) CommitInfo() (releasegate.CommitID, error) {
	return cs.committed.LatestVersion()
}

// Commit will flush deliver to the underlying store and commit it
// to disk. It then regenerates new deliver/check caches
func (cs *CommitStore) Commit() (releasegate.CommitID, error) {
	// flush deliver to store and discard check
	if err := cs.deliver.Write(); err != nil {
		return releasegate.CommitID{}, err
	}
	cs.check.Discard()

	// write the store to disk
	res, err := cs.committed.Commit()
	if err != nil {
		return res, err
	}

	// set up new caches
	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
	return res, nil
}

// CheckStore returns a store implementation that must be used during the
// checking phase.
func (cs *CommitStore) CheckStore() releasegate.CacheableKVStore {
	return cs.check
}

// DeliverStore returns a store implementation that must be used during the
// delivery phase.
func (cs *CommitStore) DeliverStore() releasegate.CacheableKVStore {
	return cs.deliver
}

// QueryStore returns a read only view of the last committed state.
func (cs *CommitStore) QueryStore() releasegate.ReadOnlyKVStore {
	return cs.committed.CacheWrap()
}

//------- host metadata ---------

// _rg: is a prefix for host internal data. It never collides with the
// contract keyspace.
const (
	chainIDKey   = "_rg:chainID"
	blockTimeKey = "_rg:blockTime"
)

// mustLoadChainID returns the chain id stored if any
// panics on db error
func mustLoadChainID(kv releasegate.ReadOnlyKVStore) string {
	v, err := kv.Get([]byte(chainIDKey))
	if err != nil {
		panic(err)
	}
	return string(v)
}

// saveChainID stores a chain id in the kv store.
// Returns error if already set, or invalid name
func saveChainID(kv releasegate.KVStore, chainID string) error {
	if !releasegate.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInvalidInput, "chain id: %v", chainID)
	}
	k := []byte(chainIDKey)
	exists, err := kv.Has(k)
	if err != nil {
		return errors.Wrap(err, "load chainId")
	}
	if exists {
		return errors.Wrap(errors.ErrUnauthorized, "can't modify chain id after genesis init")
	}
	err = kv.Set(k, []byte(chainID))
	if err != nil {
		return errors.Wrap(err, "save chainId")
	}
	return nil
}

// loadBlockTime returns the time of the last block that was processed.
// A zero time is returned if no block was seen yet.
func loadBlockTime(kv releasegate.ReadOnlyKVStore) (time.Time, error) {
	raw, err := kv.Get([]byte(blockTimeKey))
	if err != nil {
		return time.Time{}, errors.Wrap(err, "load block time")
	}
	if len(raw) == 0 {
		return time.Time{}, nil
	}
	if len(raw) != 8 {
		return time.Time{}, errors.Wrap(errors.ErrDatabase, "corrupted block time")
	}
	return time.Unix(int64(binary.BigEndian.Uint64(raw)), 0).UTC(), nil
}

// saveBlockTime records the time of the block being processed, so that
// queries can evaluate time dependent state at the ledger time.
func saveBlockTime(kv releasegate.KVStore, t time.Time) error {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, uint64(releasegate.AsUnixTime(t)))
	if err := kv.Set([]byte(blockTimeKey), raw); err != nil {
		return errors.Wrap(err, "save block time")
	}
	return nil
}
