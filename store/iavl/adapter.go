package iavl

import (
	"path/filepath"

	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"
	"github.com/yieldswap/releasegate/errors"
	"github.com/yieldswap/releasegate/store"
)

// TODO: make these configurable?
const (
	// DefaultCacheSize is the number of tree nodes kept in memory.
	DefaultCacheSize = 10000
	// DefaultHistorySize is how many old versions are kept on disk.
	DefaultHistorySize = 20
)

// CommitStore manages a iavl committed state
type CommitStore struct {
	tree       *iavl.MutableTree
	numHistory int64
}

var _ store.CommitKVStore = (*CommitStore)(nil)

// NewCommitStore creates a new store with disk backing
func NewCommitStore(path, name string) *CommitStore {
	// Create the underlying leveldb datastore which will
	// persist the Merkle tree inner & leaf nodes.
	db, err := dbm.NewGoLevelDB(name, filepath.Clean(path))
	if err != nil {
		panic(err)
	}
	return newCommitStore(db)
}

// MockCommitStore creates a new in-memory store for testing
func MockCommitStore() *CommitStore {
	return newCommitStore(dbm.NewMemDB())
}

func newCommitStore(db dbm.DB) *CommitStore {
	return &CommitStore{
		tree:       iavl.NewMutableTree(db, DefaultCacheSize),
		numHistory: DefaultHistorySize,
	}
}

// Get returns the value at last committed state
// returns nil iff key doesn't exist. Panics on nil key.
func (s *CommitStore) Get(key []byte) ([]byte, error) {
	version := s.tree.Version()
	if version == 0 {
		return nil, nil
	}
	_, val := s.tree.GetVersioned(key, version)
	return val, nil
}

// Commit the next version to disk, and returns info
func (s *CommitStore) Commit() (store.CommitID, error) {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		return store.CommitID{}, errors.Wrap(errors.ErrDatabase, err.Error())
	}

	// Release an old version of history
	if s.numHistory > 0 && s.numHistory < version {
		toRelease := version - s.numHistory
		if s.tree.VersionExists(toRelease) {
			if err := s.tree.DeleteVersion(toRelease); err != nil {
				return store.CommitID{}, errors.Wrapf(errors.ErrDatabase, "release version %d: %s", toRelease, err)
			}
		}
	}

	return store.CommitID{
		Version: version,
		Hash:    hash,
	}, nil
}

// LoadLatestVersion loads the latest persisted version.
// If there was a crash during the last commit, it is guaranteed
// to return a stable state, even if older.
func (s *CommitStore) LoadLatestVersion() error {
	if _, err := s.tree.Load(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// LatestVersion returns info on the latest version saved to disk
func (s *CommitStore) LatestVersion() (store.CommitID, error) {
	return store.CommitID{
		Version: s.tree.Version(),
		Hash:    s.tree.Hash(),
	}, nil
}

// Adapter returns a wrapped version of the tree.
//
// Data written here is stored in the tree, but not persisted to disk
// until the next Commit.
func (s *CommitStore) Adapter() store.CacheableKVStore {
	return adapter{s.tree}
}

// CacheWrap wraps the Adapter with a cache, so it may be written
// or discarded as needed.
func (s *CommitStore) CacheWrap() store.KVCacheWrap {
	return s.Adapter().CacheWrap()
}

// adapter converts the working iavl.MutableTree to match these interfaces
type adapter struct {
	tree *iavl.MutableTree
}

var _ store.CacheableKVStore = adapter{}

// Get returns nil iff key doesn't exist. Panics on nil key.
func (a adapter) Get(key []byte) ([]byte, error) {
	_, val := a.tree.Get(key)
	return val, nil
}

// Has checks if a key exists. Panics on nil key.
func (a adapter) Has(key []byte) (bool, error) {
	return a.tree.Has(key), nil
}

// Set adds a new value
func (a adapter) Set(key, value []byte) error {
	a.tree.Set(key, value)
	return nil
}

// Delete removes from the tree
func (a adapter) Delete(key []byte) error {
	a.tree.Remove(key)
	return nil
}

// NewBatch returns a batch that can write multiple ops atomically
func (a adapter) NewBatch() store.Batch {
	return store.NewNonAtomicBatch(a)
}

// CacheWrap wraps us once again, with btree
func (a adapter) CacheWrap() store.KVCacheWrap {
	return store.NewBTreeCacheWrap(a, a.NewBatch(), nil)
}
