package multisig

import (
	"github.com/yieldswap/releasegate"
	"github.com/yieldswap/releasegate/errors"
	"github.com/yieldswap/releasegate/state"
)

// Config is the multi signature configuration. Signed holds one flag per
// entry of Signers.
type Config struct {
	RequiredSignatures uint32                `json:"required_signatures"`
	Signers            []releasegate.Address `json:"signers"`
	Signed             []bool                `json:"signed"`
}

var _ state.Model = (*Config)(nil)

func (c *Config) Marshal() ([]byte, error) { return state.Marshal(c) }

func (c *Config) Unmarshal(raw []byte) error { return state.Unmarshal(raw, c) }

func (c *Config) Validate() error {
	var errs error
	if len(c.Signed) != len(c.Signers) {
		errs = errors.Append(errs, errors.Field("Signed", errors.ErrInvalidModel,
			"%d flags for %d signers", len(c.Signed), len(c.Signers)))
	}
	for i, s := range c.Signers {
		errs = errors.AppendField(errs, errors.ElemField("Signers", i), s.Validate())
	}
	return errs
}

// SignatureCount returns how many signers have signed.
func (c *Config) SignatureCount() uint32 {
	var n uint32
	for _, ok := range c.Signed {
		if ok {
			n++
		}
	}
	return n
}

// QuorumReached returns true if enough signers have signed.
func (c *Config) QuorumReached() bool {
	return c.SignatureCount() >= c.RequiredSignatures
}

// Reachable returns false if the threshold is greater than the number of
// signers.
func (c *Config) Reachable() bool {
	return int64(c.RequiredSignatures) <= int64(len(c.Signers))
}

// index returns the first position of given signer or -1.
func (c *Config) index(signer releasegate.Address) int {
	for i, s := range c.Signers {
		if s.Equals(signer) {
			return i
		}
	}
	return -1
}

// Bucket gives typed access to the signers slot.
type Bucket struct {
	slot state.Slot
}

// NewBucket returns a bucket bound to state.KeySigners.
func NewBucket() Bucket {
	return Bucket{slot: state.NewSlot(state.KeySigners, &Config{})}
}

// Get returns the stored configuration or ErrUninitialized.
func (b Bucket) Get(db releasegate.ReadOnlyKVStore) (*Config, error) {
	var c Config
	if err := b.slot.Load(db, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Save writes the configuration, replacing any previous value.
func (b Bucket) Save(db releasegate.KVStore, c *Config) error {
	return b.slot.Save(db, c)
}
