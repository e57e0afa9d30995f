package server

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"
	"github.com/yieldswap/releasegate"
	"github.com/yieldswap/releasegate/errors"
)

const (
	// FlagHome is the directory holding the configuration and the data.
	FlagHome = "home"
	// FlagAdmin is the administrator address written into the genesis.
	FlagAdmin = "admin"
)

// GenOptions builds the app_state of the genesis file out of the
// administrator address. This is application-specific
type GenOptions func(admin releasegate.Address) (json.RawMessage, error)

// InitCmd will add the app_state to the tendermint genesis file found in
// the home directory. The state is validated with the initializer before
// it is written.
func InitCmd(gen GenOptions, ini releasegate.Initializer, logger log.Logger) *cobra.Command {
	cmd := initCmd{
		gen:    gen,
		ini:    ini,
		logger: logger,
	}
	c := &cobra.Command{
		Use:   "init",
		Short: "Add the application state to the genesis file",
		Long: `Add the application state to the genesis file.

Run "tendermint init" with the same home directory first. The genesis file
is expected under <home>/config/genesis.json.`,
		Args: cobra.NoArgs,
		RunE: cmd.run,
	}
	c.Flags().String(FlagAdmin, "", "administrator address (strkey or hex), leave empty to initialize later")
	return c
}

type initCmd struct {
	gen    GenOptions
	ini    releasegate.Initializer
	logger log.Logger
}

func (c initCmd) run(cmd *cobra.Command, args []string) error {
	var admin releasegate.Address
	if raw, _ := cmd.Flags().GetString(FlagAdmin); raw != "" {
		addr, err := releasegate.ParseAddress(raw)
		if err != nil {
			return errors.Wrap(err, "admin")
		}
		admin = addr
	}

	options, err := c.gen(admin)
	if err != nil {
		return err
	}
	var state releasegate.Options
	if err := json.Unmarshal(options, &state); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	if err := validateState(c.ini, state); err != nil {
		return err
	}

	genFile := GenesisFile(viper.GetString(FlagHome))
	if err := addGenesisOptions(genFile, options); err != nil {
		return err
	}
	c.logger.Info("Genesis app state written", "path", genFile, "admin", admin)
	return nil
}

// GenesisFile returns the path of the tendermint genesis file for given
// home directory.
func GenesisFile(home string) string {
	return filepath.Join(home, "config", "genesis.json")
}

func fileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return !os.IsNotExist(err)
}

// GenesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one line.
type GenesisDoc map[string]json.RawMessage

func addGenesisOptions(filename string, options json.RawMessage) error {
	if !fileExists(filename) {
		return errors.Wrapf(errors.ErrNotFound, "genesis file %s, run tendermint init first", filename)
	}
	bz, err := ioutil.ReadFile(filename)
	if err != nil {
		return errors.Wrap(errors.ErrHuman, err.Error())
	}

	var doc GenesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}

	doc["app_state"] = options
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	if err := ioutil.WriteFile(filename, out, 0600); err != nil {
		return errors.Wrap(errors.ErrHuman, err.Error())
	}
	return nil
}
