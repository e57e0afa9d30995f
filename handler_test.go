package releasegate

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yieldswap/releasegate/errors"
)

func TestReadOptions(t *testing.T) {
	var opts Options
	require.NoError(t, json.Unmarshal([]byte(`{"admin": {"address": "abc"}, "broken": 7}`), &opts))

	var conf struct {
		Address string `json:"address"`
	}
	require.NoError(t, opts.ReadOptions("admin", &conf))
	assert.Equal(t, "abc", conf.Address)

	// missing key is a no-op
	require.NoError(t, opts.ReadOptions("missing", &conf))
	assert.Equal(t, "abc", conf.Address)

	err := opts.ReadOptions("broken", &conf)
	assert.True(t, errors.ErrInvalidInput.Is(err))
}

type recordingInit struct {
	called *[]string
	name   string
	err    error
}

func (r recordingInit) FromGenesis(ctx Context, opts Options, db KVStore) error {
	*r.called = append(*r.called, r.name)
	return r.err
}

func TestChainInitializers(t *testing.T) {
	var called []string
	chain := ChainInitializers{
		recordingInit{called: &called, name: "a"},
		recordingInit{called: &called, name: "b", err: errors.ErrHuman},
		recordingInit{called: &called, name: "c"},
	}
	err := chain.FromGenesis(context.Background(), Options{}, nil)
	assert.True(t, errors.ErrHuman.Is(err))
	assert.Equal(t, []string{"a", "b"}, called)
}
