package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
	"github.com/yieldswap/releasegate"
	"github.com/yieldswap/releasegate/app"
	"github.com/yieldswap/releasegate/commands/server"
	"github.com/yieldswap/releasegate/errors"
	"github.com/yieldswap/releasegate/x/utils"
)

const (
	flagLogLevel = "log_level"
	envPrefix    = "RELEASEGATE"
)

func main() {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).
		With("module", "releasegate")

	root := rootCmd(logger)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd(logger log.Logger) *cobra.Command {
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".releasegate")

	// filtered is replaced once the configuration is loaded
	filtered := &levelLogger{Logger: logger}
	root := &cobra.Command{
		Use:          "releasegated",
		Short:        "Release gate ABCI application",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := viper.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			if err := loadConfig(viper.GetString(server.FlagHome)); err != nil {
				return err
			}
			return filtered.setLevel(logger, viper.GetString(flagLogLevel))
		},
	}
	root.PersistentFlags().String(server.FlagHome, defaultHome, "directory to store files under")
	root.PersistentFlags().String(flagLogLevel, "info", "log level: debug, info, error or none")

	root.AddCommand(
		server.InitCmd(app.GenesisState, app.Initializers(), filtered),
		server.StartCmd(generateApp, filtered),
		versionCmd(),
	)
	return root
}

// loadConfig reads RELEASEGATE_* environment variables and an optional
// config.yaml from the home directory. Flags set on the command line take
// precedence.
func loadConfig(home string) error {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(home)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return errors.Wrapf(errors.ErrInvalidInput, "config: %s", err)
		}
	}
	return nil
}

// generateApp builds the application with an iavl store in dataDir.
func generateApp(dataDir string, logger log.Logger, debug bool, reg prometheus.Registerer) (abci.Application, error) {
	metrics, err := utils.NewMetrics(reg)
	if err != nil {
		return nil, err
	}
	stack := app.Stack(metrics)
	application, err := app.Application("releasegate", stack, app.TxDecoder, filepath.Join(dataDir, "releasegate.db"), debug)
	if err != nil {
		return nil, err
	}
	application.WithLogger(logger)
	return application, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the app version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(releasegate.Version())
		},
	}
}

// levelLogger is a logger whose level filter is installed after the
// command line is parsed.
type levelLogger struct {
	log.Logger
}

func (l *levelLogger) setLevel(base log.Logger, level string) error {
	opt, err := log.AllowLevel(level)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	l.Logger = log.NewFilter(base, opt)
	return nil
}
