package store

import (
	"testing"

	"github.com/tendermint/tendermint/libs/common"
	"github.com/yieldswap/releasegate/releasetest/assert"
)

func makeBase() (CacheableKVStore, func()) {
	return BTreeCacheable{EmptyKVStore{}}.CacheWrap(), func() {}
}

func TestBTreeCacheGetSet(t *testing.T) {
	NewTestSuite(makeBase).GetSet(t)
}

func TestBTreeCacheConflicts(t *testing.T) {
	NewTestSuite(makeBase).CacheConflicts(t)
}

func TestMemStoreWriteIsNoop(t *testing.T) {
	db := MemStore()
	assert.Nil(t, db.Set([]byte("a"), []byte("b")))

	// writing to the empty base layer drops everything
	wrap := db.(KVCacheWrap)
	assert.Nil(t, wrap.Write())

	got, err := db.Get([]byte("a"))
	assert.Nil(t, err)
	assert.Nil(t, got)
}

func TestNonAtomicBatch(t *testing.T) {
	base := MemStore()
	batch := NewNonAtomicBatch(base)

	assert.Nil(t, batch.Set([]byte("one"), []byte("1")))
	assert.Nil(t, batch.Set([]byte("two"), []byte("2")))
	assert.Nil(t, batch.Delete([]byte("one")))
	assert.Equal(t, 3, len(batch.ShowOps()))

	// nothing visible before the write
	has, err := base.Has([]byte("two"))
	assert.Nil(t, err)
	assert.Equal(t, false, has)

	assert.Nil(t, batch.Write())
	assert.Equal(t, 0, len(batch.ShowOps()))

	has, err = base.Has([]byte("one"))
	assert.Nil(t, err)
	assert.Equal(t, false, has)
	got, err := base.Get([]byte("two"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("2"), got)
}

func TestRecordingStore(t *testing.T) {
	base := MemStore()
	assert.Nil(t, base.Set([]byte("old"), []byte("x")))

	rec := NewRecordingStore(base)
	assert.Nil(t, rec.Set([]byte("b"), []byte("1")))

	// discarded cache writes are never reported
	cached := rec.(CacheableKVStore)
	discarded := cached.CacheWrap()
	assert.Nil(t, discarded.Set([]byte("lost"), []byte("1")))
	discarded.Discard()

	written := cached.CacheWrap()
	assert.Nil(t, written.Set([]byte("a"), []byte("2")))
	assert.Nil(t, written.Delete([]byte("old")))
	assert.Nil(t, written.Write())

	want := []common.KVPair{
		{Key: []byte("a"), Value: []byte("s")},
		{Key: []byte("b"), Value: []byte("s")},
		{Key: []byte("old"), Value: []byte("d")},
	}
	assert.Equal(t, want, ChangeTags(rec))

	// the data reached the wrapped store
	got, err := base.Get([]byte("a"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("2"), got)

	assert.Nil(t, ChangeTags(base))
}
