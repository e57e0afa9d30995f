package timebound

import (
	"github.com/yieldswap/releasegate"
	"github.com/yieldswap/releasegate/state"
)

// TimeLimit holds the deadline. Any value is valid.
type TimeLimit struct {
	Deadline releasegate.UnixTime `json:"deadline"`
}

var _ state.Model = (*TimeLimit)(nil)

func (t *TimeLimit) Marshal() ([]byte, error) { return state.Marshal(t) }

func (t *TimeLimit) Unmarshal(raw []byte) error { return state.Unmarshal(raw, t) }

func (t *TimeLimit) Validate() error { return nil }

// Bucket gives typed access to the time limit slot.
type Bucket struct {
	slot state.Slot
}

// NewBucket returns a bucket bound to state.KeyTimeLimit.
func NewBucket() Bucket {
	return Bucket{slot: state.NewSlot(state.KeyTimeLimit, &TimeLimit{})}
}

// Get returns the stored deadline or ErrUninitialized.
func (b Bucket) Get(db releasegate.ReadOnlyKVStore) (*TimeLimit, error) {
	var t TimeLimit
	if err := b.slot.Load(db, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Save writes the deadline, replacing any previous value.
func (b Bucket) Save(db releasegate.KVStore, t *TimeLimit) error {
	return b.slot.Save(db, t)
}
