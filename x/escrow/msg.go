package escrow

import (
	"github.com/yieldswap/releasegate"
	"github.com/yieldswap/releasegate/errors"
	"github.com/yieldswap/releasegate/state"
)

const (
	pathCreateMsg  = "escrow/create"
	pathReleaseMsg = "escrow/release"
)

var _ releasegate.Msg = (*CreateMsg)(nil)
var _ releasegate.Msg = (*ReleaseMsg)(nil)

// CreateMsg replaces the escrow.
type CreateMsg struct {
	Sender      releasegate.Address
	Receiver    releasegate.Address
	Amount      releasegate.Amount
	ReleaseTime releasegate.UnixTime
}

// Path fulfills releasegate.Msg interface to allow routing
func (CreateMsg) Path() string {
	return pathCreateMsg
}

func (m *CreateMsg) Marshal() ([]byte, error) { return state.Marshal(m) }

func (m *CreateMsg) Unmarshal(raw []byte) error { return state.Unmarshal(raw, m) }

// Validate makes sure that this is sensible
func (m *CreateMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Sender", m.Sender.Validate())
	errs = errors.AppendField(errs, "Receiver", m.Receiver.Validate())
	return errs
}

// ReleaseMsg asks to release the escrow. It has no content.
type ReleaseMsg struct{}

// Path fulfills releasegate.Msg interface to allow routing
func (ReleaseMsg) Path() string {
	return pathReleaseMsg
}

func (m *ReleaseMsg) Marshal() ([]byte, error) { return state.Marshal(m) }

func (m *ReleaseMsg) Unmarshal(raw []byte) error { return state.Unmarshal(raw, m) }

func (m *ReleaseMsg) Validate() error { return nil }
