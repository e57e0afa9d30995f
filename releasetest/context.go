package releasetest

import (
	"context"
	"time"

	"github.com/yieldswap/releasegate"
)

// Context returns a context carrying a block height, a chain ID and the
// given block time, as the application would build it for a call.
func Context(now time.Time) releasegate.Context {
	ctx := context.Background()
	ctx = releasegate.WithHeight(ctx, 100)
	ctx = releasegate.WithChainID(ctx, "test-chain")
	return releasegate.WithBlockTime(ctx, now)
}

// ContextAt is Context with the block time given as a unix timestamp.
func ContextAt(unix int64) releasegate.Context {
	return Context(time.Unix(unix, 0))
}
