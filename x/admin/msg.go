package admin

import (
	"github.com/yieldswap/releasegate"
	"github.com/yieldswap/releasegate/errors"
	"github.com/yieldswap/releasegate/state"
)

const (
	pathInitializeMsg = "admin/initialize"
)

var _ releasegate.Msg = (*InitializeMsg)(nil)

// InitializeMsg sets the administrator of the instance.
type InitializeMsg struct {
	Admin releasegate.Address
}

// Path fulfills releasegate.Msg interface to allow routing
func (InitializeMsg) Path() string {
	return pathInitializeMsg
}

func (m *InitializeMsg) Marshal() ([]byte, error) { return state.Marshal(m) }

func (m *InitializeMsg) Unmarshal(raw []byte) error { return state.Unmarshal(raw, m) }

// Validate makes sure that this is sensible
func (m *InitializeMsg) Validate() error {
	return errors.AppendField(nil, "Admin", m.Admin.Validate())
}
