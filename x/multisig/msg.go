package multisig

import (
	"github.com/yieldswap/releasegate"
	"github.com/yieldswap/releasegate/errors"
	"github.com/yieldswap/releasegate/state"
)

const (
	pathSetupMsg = "multisig/setup"
	pathSignMsg  = "multisig/sign"
)

var _ releasegate.Msg = (*SetupMsg)(nil)
var _ releasegate.Msg = (*SignMsg)(nil)

// SetupMsg replaces the multi signature configuration.
type SetupMsg struct {
	RequiredSignatures uint32
	Signers            []releasegate.Address
}

// Path fulfills releasegate.Msg interface to allow routing
func (SetupMsg) Path() string {
	return pathSetupMsg
}

func (m *SetupMsg) Marshal() ([]byte, error) { return state.Marshal(m) }

func (m *SetupMsg) Unmarshal(raw []byte) error { return state.Unmarshal(raw, m) }

// Validate checks the signer addresses only. Neither the threshold nor
// duplicated signers are rejected.
func (m *SetupMsg) Validate() error {
	var errs error
	for i, s := range m.Signers {
		errs = errors.AppendField(errs, errors.ElemField("Signers", i), s.Validate())
	}
	return errs
}

// SignMsg records a signature of Signer.
type SignMsg struct {
	Signer releasegate.Address
}

// Path fulfills releasegate.Msg interface to allow routing
func (SignMsg) Path() string {
	return pathSignMsg
}

func (m *SignMsg) Marshal() ([]byte, error) { return state.Marshal(m) }

func (m *SignMsg) Unmarshal(raw []byte) error { return state.Unmarshal(raw, m) }

func (m *SignMsg) Validate() error {
	return errors.AppendField(nil, "Signer", m.Signer.Validate())
}
