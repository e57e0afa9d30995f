package timebound

import (
	"github.com/yieldswap/releasegate"
	"github.com/yieldswap/releasegate/state"
)

const (
	pathSetTimeLimitMsg = "timebound/set_limit"
)

var _ releasegate.Msg = (*SetTimeLimitMsg)(nil)

// SetTimeLimitMsg replaces the deadline.
type SetTimeLimitMsg struct {
	Deadline releasegate.UnixTime
}

// Path fulfills releasegate.Msg interface to allow routing
func (SetTimeLimitMsg) Path() string {
	return pathSetTimeLimitMsg
}

func (m *SetTimeLimitMsg) Marshal() ([]byte, error) { return state.Marshal(m) }

func (m *SetTimeLimitMsg) Unmarshal(raw []byte) error { return state.Unmarshal(raw, m) }

// Validate accepts any deadline, including one in the past.
func (m *SetTimeLimitMsg) Validate() error { return nil }
