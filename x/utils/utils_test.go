package utils

import (
	"github.com/yieldswap/releasegate"
	"github.com/yieldswap/releasegate/errors"
)

// testMsg is the simplest message that can travel through decorators.
type testMsg struct {
	path string
}

var _ releasegate.Msg = (*testMsg)(nil)

func (m *testMsg) Path() string               { return m.path }
func (m *testMsg) Validate() error            { return nil }
func (m *testMsg) Marshal() ([]byte, error)   { return []byte(m.path), nil }
func (m *testMsg) Unmarshal(raw []byte) error { m.path = string(raw); return nil }

type testTx struct {
	msg releasegate.Msg
	err error
}

var _ releasegate.Tx = (*testTx)(nil)

func (tx *testTx) GetMsg() (releasegate.Msg, error) { return tx.msg, tx.err }
func (tx *testTx) Marshal() ([]byte, error)         { return nil, errors.ErrHuman }
func (tx *testTx) Unmarshal([]byte) error           { return errors.ErrHuman }

func txWithPath(path string) releasegate.Tx {
	return &testTx{msg: &testMsg{path: path}}
}
