package store

import (
	"sort"

	"github.com/tendermint/tendermint/libs/common"
)

// Recorder interface is implemented by anything returned from
// NewRecordingStore
type Recorder interface {
	// KVPairs returns all keys changed through the store. The value is
	// the written value, or nil for a delete.
	KVPairs() map[string][]byte
}

// NewRecordingStore initializes a recording store wrapping this
// base store, using cached alternative if possible
//
// We need to expose this optional functionality through the interface
// wrapper so downstream components (like Savepoint) can still
// CacheWrap.
func NewRecordingStore(db KVStore) KVStore {
	changes := make(map[string][]byte)
	if cached, ok := db.(CacheableKVStore); ok {
		return &cacheableRecordingStore{
			CacheableKVStore: cached,
			changes:          changes,
		}
	}
	return &recordingStore{
		KVStore: db,
		changes: changes,
	}
}

// ChangeTags builds sorted transaction tags out of the keys modified
// through a recording store. The tag value is "s" for set and "d" for
// delete. Nil is returned if db does not record.
func ChangeTags(db KVStore) []common.KVPair {
	rec, ok := db.(Recorder)
	if !ok {
		return nil
	}
	changes := rec.KVPairs()
	keys := make([]string, 0, len(changes))
	for k := range changes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tags := make([]common.KVPair, len(keys))
	for i, k := range keys {
		op := []byte("s")
		if changes[k] == nil {
			op = []byte("d")
		}
		tags[i] = common.KVPair{Key: []byte(k), Value: op}
	}
	return tags
}

//------- non-cached recording store

// recordingStore wraps a normal KVStore and records any change operations
type recordingStore struct {
	KVStore
	changes map[string][]byte
}

var _ KVStore = (*recordingStore)(nil)
var _ Recorder = (*recordingStore)(nil)

func (r *recordingStore) KVPairs() map[string][]byte {
	return r.changes
}

// Set records the changes while performing
func (r *recordingStore) Set(key, value []byte) error {
	r.changes[string(key)] = value
	return r.KVStore.Set(key, value)
}

// Delete records the changes while performing
func (r *recordingStore) Delete(key []byte) error {
	r.changes[string(key)] = nil
	return r.KVStore.Delete(key)
}

// NewBatch makes sure all writes go through this one
func (r *recordingStore) NewBatch() Batch {
	return &recorderBatch{
		changes: r.changes,
		b:       r.KVStore.NewBatch(),
	}
}

//------- cached recording store

// cacheableRecordingStore wraps a CacheableKVStore
// and records any change operations
type cacheableRecordingStore struct {
	CacheableKVStore
	changes map[string][]byte
}

var _ CacheableKVStore = (*cacheableRecordingStore)(nil)
var _ Recorder = (*cacheableRecordingStore)(nil)

func (r *cacheableRecordingStore) KVPairs() map[string][]byte {
	return r.changes
}

// Set records the changes while performing
func (r *cacheableRecordingStore) Set(key, value []byte) error {
	r.changes[string(key)] = value
	return r.CacheableKVStore.Set(key, value)
}

// Delete records the changes while performing
func (r *cacheableRecordingStore) Delete(key []byte) error {
	r.changes[string(key)] = nil
	return r.CacheableKVStore.Delete(key)
}

// NewBatch makes sure all writes go through this one
func (r *cacheableRecordingStore) NewBatch() Batch {
	return &recorderBatch{
		changes: r.changes,
		b:       r.CacheableKVStore.NewBatch(),
	}
}

// CacheWrap makes sure all cached writes also go through this.
// Writes are recorded when the cache is written, so discarded
// changes are never reported.
func (r *cacheableRecordingStore) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(r, r.NewBatch(), nil)
}

//----- batch recording, write to changes map from Recorder

type recorderBatch struct {
	changes map[string][]byte
	b       Batch
	pending []Op
}

var _ Batch = (*recorderBatch)(nil)

func (r *recorderBatch) Set(key, value []byte) error {
	r.pending = append(r.pending, SetOp(key, value))
	return r.b.Set(key, value)
}

// Delete records the changes while performing
func (r *recorderBatch) Delete(key []byte) error {
	r.pending = append(r.pending, DelOp(key))
	return r.b.Delete(key)
}

func (r *recorderBatch) Write() error {
	if err := r.b.Write(); err != nil {
		return err
	}
	for _, op := range r.pending {
		if op.IsSetOp() {
			r.changes[string(op.key)] = op.value
		} else {
			r.changes[string(op.key)] = nil
		}
	}
	r.pending = nil
	return nil
}
