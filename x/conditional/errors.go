package conditional

import "github.com/yieldswap/releasegate/errors"

// conditional takes 1040-1049
var (
	ErrIndexOutOfRange = errors.Register(1040, "condition index out of range")
)
