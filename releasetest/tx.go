package releasetest

import (
	"github.com/yieldswap/releasegate"
	"github.com/yieldswap/releasegate/errors"
)

// Tx is a transaction wrapping a single message, without signatures. Use
// it together with Auth or CtxAuth to test handlers.
type Tx struct {
	Msg releasegate.Msg
	Err error
}

var _ releasegate.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (releasegate.Msg, error) {
	return tx.Msg, tx.Err
}

func (tx *Tx) Marshal() ([]byte, error) {
	if tx.Msg == nil {
		return nil, nil
	}
	return tx.Msg.Marshal()
}

func (tx *Tx) Unmarshal([]byte) error {
	return errors.Wrap(errors.ErrHuman, "test transaction cannot be unmarshaled")
}
