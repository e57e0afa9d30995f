package conditional

import (
	"github.com/yieldswap/releasegate"
	"github.com/yieldswap/releasegate/errors"
	"github.com/yieldswap/releasegate/state"
)

const (
	pathSetupMsg   = "conditional/setup"
	pathFulfillMsg = "conditional/fulfill"
)

var _ releasegate.Msg = (*SetupMsg)(nil)
var _ releasegate.Msg = (*FulfillMsg)(nil)

// SetupMsg replaces the conditional payment.
type SetupMsg struct {
	Sender     releasegate.Address
	Receiver   releasegate.Address
	Amount     releasegate.Amount
	Conditions []string
}

// Path fulfills releasegate.Msg interface to allow routing
func (SetupMsg) Path() string {
	return pathSetupMsg
}

func (m *SetupMsg) Marshal() ([]byte, error) { return state.Marshal(m) }

func (m *SetupMsg) Unmarshal(raw []byte) error { return state.Unmarshal(raw, m) }

// Validate makes sure that this is sensible. The amount is not checked.
func (m *SetupMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Sender", m.Sender.Validate())
	errs = errors.AppendField(errs, "Receiver", m.Receiver.Validate())
	return errs
}

// FulfillMsg marks one condition as met.
type FulfillMsg struct {
	Index uint32
}

// Path fulfills releasegate.Msg interface to allow routing
func (FulfillMsg) Path() string {
	return pathFulfillMsg
}

func (m *FulfillMsg) Marshal() ([]byte, error) { return state.Marshal(m) }

func (m *FulfillMsg) Unmarshal(raw []byte) error { return state.Unmarshal(raw, m) }

// Validate accepts any index, the range is checked against the stored
// payment.
func (m *FulfillMsg) Validate() error { return nil }
