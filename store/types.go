package store

import "github.com/yieldswap/releasegate"

// Move references for all storage types into this package
// for shorter names everywhere

type (
	ReadOnlyKVStore  = releasegate.ReadOnlyKVStore
	SetDeleter       = releasegate.SetDeleter
	KVStore          = releasegate.KVStore
	Batch            = releasegate.Batch
	CacheableKVStore = releasegate.CacheableKVStore
	KVCacheWrap      = releasegate.KVCacheWrap
	CommitKVStore    = releasegate.CommitKVStore
	CommitID         = releasegate.CommitID
	Model            = releasegate.Model
)
