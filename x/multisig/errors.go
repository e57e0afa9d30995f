package multisig

import "github.com/yieldswap/releasegate/errors"

// multisig takes 1030-1039
var (
	ErrNotAParticipant = errors.Register(1030, "not a participant")
)
