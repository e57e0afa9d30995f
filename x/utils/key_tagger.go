package utils

import (
	"github.com/yieldswap/releasegate"
	"github.com/yieldswap/releasegate/store"
)

// KeyTagger is a decorate that records all Set/Delete
// operations performed by it's children and adds all those keys
// as DeliverTx tags
type KeyTagger struct{}

var _ releasegate.Decorator = KeyTagger{}

// NewKeyTagger creates a KeyTagger decorator
func NewKeyTagger() KeyTagger {
	return KeyTagger{}
}

// Check does nothing
func (KeyTagger) Check(ctx releasegate.Context, db releasegate.KVStore, tx releasegate.Tx, next releasegate.Checker) (*releasegate.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver passes in a recording KVStore into the child and
// uses that to calculate tags to add to DeliverResult
func (KeyTagger) Deliver(ctx releasegate.Context, db releasegate.KVStore, tx releasegate.Tx, next releasegate.Deliverer) (*releasegate.DeliverResult, error) {
	record := store.NewRecordingStore(db)
	res, err := next.Deliver(ctx, record, tx)
	if err != nil {
		return nil, err
	}
	res.Tags = append(res.Tags, store.ChangeTags(record)...)
	return res, nil
}
