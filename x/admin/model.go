package admin

import (
	"github.com/yieldswap/releasegate"
	"github.com/yieldswap/releasegate/errors"
	"github.com/yieldswap/releasegate/state"
)

// Admin is the administrator identity of a release gate instance.
type Admin struct {
	Address releasegate.Address `json:"address"`
}

var _ state.Model = (*Admin)(nil)

func (a *Admin) Marshal() ([]byte, error) { return state.Marshal(a) }

func (a *Admin) Unmarshal(raw []byte) error { return state.Unmarshal(raw, a) }

// Validate ensures the stored address is well formed.
func (a *Admin) Validate() error {
	return errors.AppendField(nil, "Address", a.Address.Validate())
}

// Bucket gives typed access to the admin slot.
type Bucket struct {
	slot state.Slot
}

// NewBucket returns a bucket bound to state.KeyAdmin.
func NewBucket() Bucket {
	return Bucket{slot: state.NewSlot(state.KeyAdmin, &Admin{})}
}

// Get returns the stored admin or ErrUninitialized.
func (b Bucket) Get(db releasegate.ReadOnlyKVStore) (*Admin, error) {
	var a Admin
	if err := b.slot.Load(db, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Has returns true if an admin was stored.
func (b Bucket) Has(db releasegate.ReadOnlyKVStore) (bool, error) {
	return b.slot.Has(db)
}

// Save writes the admin, replacing any previous value.
func (b Bucket) Save(db releasegate.KVStore, a *Admin) error {
	return b.slot.Save(db, a)
}
