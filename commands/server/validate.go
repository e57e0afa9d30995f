package server

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"time"

	"github.com/yieldswap/releasegate"
	"github.com/yieldswap/releasegate/errors"
	"github.com/yieldswap/releasegate/store"
)

// ValidateGenesis runs the initializer against the app state of every
// given genesis file, discarding the result.
func ValidateGenesis(ini releasegate.Initializer, genesisPaths []string) error {
	for _, path := range genesisPaths {
		if err := validateGenesis(ini, path); err != nil {
			return errors.Wrap(err, path)
		}
	}
	return nil
}

func validateGenesis(ini releasegate.Initializer, genesisPath string) error {
	b, err := ioutil.ReadFile(genesisPath)
	if err != nil {
		return errors.Wrap(errors.ErrHuman, "cannot read genesis file: "+err.Error())
	}

	var genesis struct {
		State releasegate.Options `json:"app_state"`
	}
	if err := json.Unmarshal(b, &genesis); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, "cannot JSON deserialize genesis: "+err.Error())
	}
	return validateState(ini, genesis.State)
}

func validateState(ini releasegate.Initializer, state releasegate.Options) error {
	// Use in memory store because we want to discard the result.
	db := store.MemStore()
	ctx := releasegate.WithBlockTime(context.Background(), time.Now())
	if err := ini.FromGenesis(ctx, state, db); err != nil {
		return errors.Wrap(err, "cannot initialize from genesis")
	}
	return nil
}
