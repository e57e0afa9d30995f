package conditional

import (
	"github.com/yieldswap/releasegate"
	"github.com/yieldswap/releasegate/errors"
	"github.com/yieldswap/releasegate/state"
)

// Payment is a conditional payment. ConditionsMet holds one flag per entry
// of Conditions.
type Payment struct {
	Sender        releasegate.Address `json:"sender"`
	Receiver      releasegate.Address `json:"receiver"`
	Amount        releasegate.Amount  `json:"amount"`
	Conditions    []string            `json:"conditions"`
	ConditionsMet []bool              `json:"conditions_met"`
}

var _ state.Model = (*Payment)(nil)

func (p *Payment) Marshal() ([]byte, error) { return state.Marshal(p) }

func (p *Payment) Unmarshal(raw []byte) error { return state.Unmarshal(raw, p) }

func (p *Payment) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Sender", p.Sender.Validate())
	errs = errors.AppendField(errs, "Receiver", p.Receiver.Validate())
	if len(p.ConditionsMet) != len(p.Conditions) {
		errs = errors.Append(errs, errors.Field("ConditionsMet", errors.ErrInvalidModel,
			"%d flags for %d conditions", len(p.ConditionsMet), len(p.Conditions)))
	}
	return errs
}

// AllMet returns true if every condition is fulfilled.
func (p *Payment) AllMet() bool {
	for _, ok := range p.ConditionsMet {
		if !ok {
			return false
		}
	}
	return true
}

// Bucket gives typed access to the conditions slot.
type Bucket struct {
	slot state.Slot
}

// NewBucket returns a bucket bound to state.KeyConditions.
func NewBucket() Bucket {
	return Bucket{slot: state.NewSlot(state.KeyConditions, &Payment{})}
}

// Get returns the stored payment or ErrUninitialized.
func (b Bucket) Get(db releasegate.ReadOnlyKVStore) (*Payment, error) {
	var p Payment
	if err := b.slot.Load(db, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Save writes the payment, replacing any previous value.
func (b Bucket) Save(db releasegate.KVStore, p *Payment) error {
	return b.slot.Save(db, p)
}
