package escrow

import (
	"github.com/yieldswap/releasegate"
	"github.com/yieldswap/releasegate/errors"
	"github.com/yieldswap/releasegate/state"
)

// Record is the escrow. Released is set once and never cleared.
type Record struct {
	Sender      releasegate.Address  `json:"sender"`
	Receiver    releasegate.Address  `json:"receiver"`
	Amount      releasegate.Amount   `json:"amount"`
	ReleaseTime releasegate.UnixTime `json:"release_time"`
	Released    bool                 `json:"released"`
}

var _ state.Model = (*Record)(nil)

func (r *Record) Marshal() ([]byte, error) { return state.Marshal(r) }

func (r *Record) Unmarshal(raw []byte) error { return state.Unmarshal(raw, r) }

func (r *Record) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Sender", r.Sender.Validate())
	errs = errors.AppendField(errs, "Receiver", r.Receiver.Validate())
	return errs
}

// Bucket gives typed access to the escrow slot.
type Bucket struct {
	slot state.Slot
}

// NewBucket returns a bucket bound to state.KeyEscrowData.
func NewBucket() Bucket {
	return Bucket{slot: state.NewSlot(state.KeyEscrowData, &Record{})}
}

// Get returns the stored record or ErrUninitialized.
func (b Bucket) Get(db releasegate.ReadOnlyKVStore) (*Record, error) {
	var r Record
	if err := b.slot.Load(db, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Save writes the record, replacing any previous value.
func (b Bucket) Save(db releasegate.KVStore, r *Record) error {
	return b.slot.Save(db, r)
}
