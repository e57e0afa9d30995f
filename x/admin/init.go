package admin

import (
	"github.com/yieldswap/releasegate"
	"github.com/yieldswap/releasegate/errors"
)

var _ releasegate.Initializer = (*Initializer)(nil)

// Initializer fulfils the Initializer interface to load data from the genesis file
type Initializer struct{}

// FromGenesis sets the administrator declared in the genesis file under
// the "admin" key, for example
//
//   {"admin": {"address": "GBZ...X7"}}
//
// The same first writer wins rule as for InitializeMsg applies.
func (Initializer) FromGenesis(ctx releasegate.Context, opts releasegate.Options, db releasegate.KVStore) error {
	var conf struct {
		Address releasegate.Address `json:"address"`
	}
	if err := opts.ReadOptions("admin", &conf); err != nil {
		return err
	}
	if len(conf.Address) == 0 {
		return nil
	}
	// Genesis runs without signatures, the authenticator is never asked.
	ctrl := NewController(nil)
	if _, err := ctrl.Initialize(ctx, db, conf.Address); err != nil {
		return errors.Wrap(err, "genesis admin")
	}
	return nil
}
