package main

import (
	"fmt"

	"github.com/tendermint/tendermint/rpc/client"
	"github.com/yieldswap/releasegate/errors"
)

func newClient(tmAddr string) *client.HTTP {
	return client.NewHTTP(tmAddr, "/websocket")
}

// abciQuery returns the value of the first model found under given path.
// A nil value is returned if nothing was found.
func abciQuery(tmAddr, path string, data []byte) ([]byte, error) {
	resp, err := newClient(tmAddr).ABCIQuery(path, data)
	if err != nil {
		return nil, fmt.Errorf("cannot query %q: %s", path, err)
	}
	if resp.Response.IsErr() {
		return nil, errors.Wrapf(errors.ABCIError(resp.Response.Code, resp.Response.Log), "query %q", path)
	}
	return resp.Response.Value, nil
}

// chainID returns the chain ID as declared in the genesis of the node.
func chainID(tmAddr string) (string, error) {
	resp, err := newClient(tmAddr).Genesis()
	if err != nil {
		return "", fmt.Errorf("cannot fetch genesis: %s", err)
	}
	return resp.Genesis.ChainID, nil
}
