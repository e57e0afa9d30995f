package escrow

import (
	"github.com/yieldswap/releasegate"
	"github.com/yieldswap/releasegate/errors"
)

var _ releasegate.Initializer = (*Initializer)(nil)

// Initializer fulfils the Initializer interface to load data from the genesis file
type Initializer struct{}

// FromGenesis will parse an initial escrow from the genesis file under the
// "escrow" key and save it in the database. The genesis file is trusted, no
// sender signature is required.
func (Initializer) FromGenesis(ctx releasegate.Context, opts releasegate.Options, db releasegate.KVStore) error {
	var e *struct {
		Sender      releasegate.Address  `json:"sender"`
		Receiver    releasegate.Address  `json:"receiver"`
		Amount      releasegate.Amount   `json:"amount"`
		ReleaseTime releasegate.UnixTime `json:"release_time"`
	}
	if err := opts.ReadOptions("escrow", &e); err != nil {
		return err
	}
	if e == nil {
		return nil
	}

	r := &Record{
		Sender:      e.Sender,
		Receiver:    e.Receiver,
		Amount:      e.Amount,
		ReleaseTime: e.ReleaseTime,
	}
	if err := r.Validate(); err != nil {
		return errors.Wrap(err, "genesis escrow")
	}
	_, err := NewController(nil).create(ctx, db, r)
	return err
}
