package store

import (
	"crypto/rand"
	"testing"

	"github.com/yieldswap/releasegate/releasetest/assert"
)

// TestSuite provides many methods that can be called in package-specific
// test code. We just customize the store being tested (pass in
// constructor), the rest of the logic is generic to the CacheableKVStore
// interface.
//
// This removes duplication between btree_test.go and iavl/adapter_test.go,
// but can be used for any implementation of CacheableKVStore.
type TestSuite struct {
	makeBase TestStoreConstructor
}

// TestStoreConstructor returns a fresh, empty store and a function
// releasing its resources.
type TestStoreConstructor func() (base CacheableKVStore, cleanup func())

// NewTestSuite returns a suite running against stores built by constructor.
func NewTestSuite(constructor TestStoreConstructor) *TestSuite {
	return &TestSuite{
		makeBase: constructor,
	}
}

// GetSet does basic sanity checks on our cache
//
// Other tests should handle deletes and setting same value
func (s *TestSuite) GetSet(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	// make sure the btree is empty at start but returns results
	// that are written to it
	k, v := []byte("french"), []byte("fry")
	s.AssertGetHas(t, base, k, nil, false)
	assert.Nil(t, base.Set(k, v))
	s.AssertGetHas(t, base, k, v, true)

	// now layer another btree on top and make sure that we get
	// base data
	cache := base.CacheWrap()
	s.AssertGetHas(t, cache, k, v, true)

	// writing more data is only visible in the cache
	k2, v2 := []byte("LA"), []byte("Dodgers")
	s.AssertGetHas(t, cache, k2, nil, false)
	assert.Nil(t, cache.Set(k2, v2))
	s.AssertGetHas(t, cache, k2, v2, true)
	s.AssertGetHas(t, base, k2, nil, false)

	// we can write the cache to the base layer...
	assert.Nil(t, cache.Write())
	s.AssertGetHas(t, base, k, v, true)
	s.AssertGetHas(t, base, k2, v2, true)

	// we can discard one
	k3, v3 := []byte("Bayern"), []byte("Munich")
	c2 := base.CacheWrap()
	s.AssertGetHas(t, c2, k, v, true)
	s.AssertGetHas(t, c2, k2, v2, true)
	assert.Nil(t, c2.Set(k3, v3))
	c2.Discard()

	// and commit another
	c3 := base.CacheWrap()
	s.AssertGetHas(t, c3, k, v, true)
	s.AssertGetHas(t, c3, k2, v2, true)
	assert.Nil(t, c3.Delete(k))
	assert.Nil(t, c3.Write())

	// make sure it commits proper
	s.AssertGetHas(t, base, k, nil, false)
	s.AssertGetHas(t, base, k2, v2, true)
	s.AssertGetHas(t, base, k3, nil, false)
}

// CacheConflicts checks that we can handle
// overwriting values and deleting underlying values
func (s *TestSuite) CacheConflicts(t *testing.T) {
	// make 10 keys and 20 values....
	ks := randKeys(10, 16)
	vs := randKeys(20, 40)

	cases := map[string]struct {
		parentOps     []Op
		childOps      []Op
		parentQueries []Model // Key is what we query, Value is what we expect
		childQueries  []Model // Key is what we query, Value is what we expect
	}{
		"overwrite one, delete another, add a third": {
			parentOps:     []Op{SetOp(ks[1], vs[1]), SetOp(ks[2], vs[2])},
			childOps:      []Op{SetOp(ks[1], vs[11]), SetOp(ks[3], vs[7]), DelOp(ks[2])},
			parentQueries: []Model{{Key: ks[1], Value: vs[1]}, {Key: ks[2], Value: vs[2]}, {Key: ks[3]}},
			childQueries:  []Model{{Key: ks[1], Value: vs[11]}, {Key: ks[2]}, {Key: ks[3], Value: vs[7]}},
		},
		"overwrite the same key many times": {
			parentOps:     []Op{SetOp(ks[4], vs[4])},
			childOps:      []Op{SetOp(ks[4], vs[5]), SetOp(ks[4], vs[6]), DelOp(ks[4]), SetOp(ks[4], vs[8])},
			parentQueries: []Model{{Key: ks[4], Value: vs[4]}},
			childQueries:  []Model{{Key: ks[4], Value: vs[8]}},
		},
		"delete in the child what parent never had": {
			childOps:      []Op{DelOp(ks[9])},
			parentQueries: []Model{{Key: ks[9]}},
			childQueries:  []Model{{Key: ks[9]}},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			base, cleanup := s.makeBase()
			defer cleanup()

			parent := base.CacheWrap()
			for _, op := range tc.parentOps {
				assert.Nil(t, op.Apply(parent))
			}

			child := parent.CacheWrap()
			for _, op := range tc.childOps {
				assert.Nil(t, op.Apply(child))
			}

			// now check the parent is unaffected
			for _, q := range tc.parentQueries {
				s.AssertGetHas(t, parent, q.Key, q.Value, q.Value != nil)
			}

			// the child shows changes
			for _, q := range tc.childQueries {
				s.AssertGetHas(t, child, q.Key, q.Value, q.Value != nil)
			}

			// write child to parent and make sure it also shows proper data
			assert.Nil(t, child.Write())
			for _, q := range tc.childQueries {
				s.AssertGetHas(t, parent, q.Key, q.Value, q.Value != nil)
			}
		})
	}
}

// AssertGetHas makes sure Get and Has agree with the expected value.
func (s *TestSuite) AssertGetHas(t testing.TB, kv ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	assert.Nil(t, err)
	if val == nil {
		assert.Nil(t, got)
	} else {
		assert.Equal(t, val, got)
	}
	exists, err := kv.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, has, exists)
}

func randBytes(length int) []byte {
	res := make([]byte, length)
	if _, err := rand.Read(res); err != nil {
		panic(err)
	}
	return res
}

// randKeys returns a slice of count keys, all of a given size
func randKeys(count, size int) [][]byte {
	res := make([][]byte, count)
	for i := 0; i < count; i++ {
		res[i] = randBytes(size)
	}
	return res
}
