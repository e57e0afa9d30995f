package sigs

import "github.com/yieldswap/releasegate/errors"

var (
	ErrInvalidSequence = errors.Register(1020, "invalid sequence number")
)
