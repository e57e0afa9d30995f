package app

import (
	"encoding/json"

	"github.com/yieldswap/releasegate"
	"github.com/yieldswap/releasegate/errors"
)

// GenesisAdmin is the app state section that installs the administrator
// when the chain starts.
type GenesisAdmin struct {
	Address releasegate.Address `json:"address"`
}

// GenesisState builds the app_state of a genesis file. A nil admin
// produces an empty state, the administrator can then be installed with an
// initialize transaction.
func GenesisState(admin releasegate.Address) (json.RawMessage, error) {
	state := make(map[string]interface{})
	if admin != nil {
		if err := admin.Validate(); err != nil {
			return nil, errors.Wrap(err, "admin")
		}
		state["admin"] = GenesisAdmin{Address: admin}
	}
	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return raw, nil
}
