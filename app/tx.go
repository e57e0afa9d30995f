package app

import (
	amino "github.com/tendermint/go-amino"
	"github.com/yieldswap/releasegate"
	"github.com/yieldswap/releasegate/errors"
	"github.com/yieldswap/releasegate/x/admin"
	"github.com/yieldswap/releasegate/x/conditional"
	"github.com/yieldswap/releasegate/x/escrow"
	"github.com/yieldswap/releasegate/x/multisig"
	"github.com/yieldswap/releasegate/x/sigs"
	"github.com/yieldswap/releasegate/x/timebound"
)

// cdc knows every message the application routes. Each message is
// registered under its path.
var cdc = amino.NewCodec()

func init() {
	cdc.RegisterInterface((*releasegate.Msg)(nil), nil)
	cdc.RegisterConcrete(&admin.InitializeMsg{}, "admin/initialize", nil)
	cdc.RegisterConcrete(&multisig.SetupMsg{}, "multisig/setup", nil)
	cdc.RegisterConcrete(&multisig.SignMsg{}, "multisig/sign", nil)
	cdc.RegisterConcrete(&timebound.SetTimeLimitMsg{}, "timebound/set_limit", nil)
	cdc.RegisterConcrete(&conditional.SetupMsg{}, "conditional/setup", nil)
	cdc.RegisterConcrete(&conditional.FulfillMsg{}, "conditional/fulfill", nil)
	cdc.RegisterConcrete(&escrow.CreateMsg{}, "escrow/create", nil)
	cdc.RegisterConcrete(&escrow.ReleaseMsg{}, "escrow/release", nil)
	cdc.Seal()
}

// Tx is the transaction envelope of the application. It carries exactly
// one message together with the signatures authorizing it.
type Tx struct {
	Msg        releasegate.Msg
	Signatures []*sigs.StdSignature
	// ExpiresAt, if not zero, is the last moment (exclusive) the
	// transaction can be included in a block.
	ExpiresAt releasegate.UnixTime
}

var _ releasegate.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)
var _ sigs.ExpiringTx = (*Tx)(nil)

// NewTx wraps a message in a transaction without signatures.
func NewTx(msg releasegate.Msg) *Tx {
	return &Tx{Msg: msg}
}

// GetMsg returns the single message of this transaction.
func (tx *Tx) GetMsg() (releasegate.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrInvalidMsg, "transaction carries no message")
	}
	return tx.Msg, nil
}

// GetSignatures returns all signatures attached to this transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetExpiresAt implements sigs.ExpiringTx.
func (tx *Tx) GetExpiresAt() releasegate.UnixTime {
	return tx.ExpiresAt
}

// GetSignBytes returns the canonical representation of the transaction
// with the signatures stripped.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	unsigned := Tx{
		Msg:       tx.Msg,
		ExpiresAt: tx.ExpiresAt,
	}
	return unsigned.Marshal()
}

// Marshal serializes the transaction.
func (tx *Tx) Marshal() ([]byte, error) {
	bz, err := cdc.MarshalBinaryBare(tx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidMsg, err.Error())
	}
	return bz, nil
}

// Unmarshal deserializes the transaction. Any previous content is
// dropped.
func (tx *Tx) Unmarshal(raw []byte) error {
	*tx = Tx{}
	if err := cdc.UnmarshalBinaryBare(raw, tx); err != nil {
		return errors.Wrap(errors.ErrInvalidMsg, err.Error())
	}
	return nil
}

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (releasegate.Tx, error) {
	tx := new(Tx)
	err := tx.Unmarshal(bz)
	if err != nil {
		return nil, err
	}
	return tx, nil
}
