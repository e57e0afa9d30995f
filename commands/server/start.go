package server

import (
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
	"github.com/yieldswap/releasegate/errors"
)

const (
	FlagBind    = "bind"
	FlagDebug   = "debug"
	FlagMetrics = "metrics"
)

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags. Collectors are
// registered with the given registerer.
type AppGenerator func(home string, logger log.Logger, debug bool, reg prometheus.Registerer) (abci.Application, error)

// StartCmd runs the ABCI server until the process receives a termination
// signal.
func StartCmd(gen AppGenerator, logger log.Logger) *cobra.Command {
	c := &cobra.Command{
		Use:   "start",
		Short: "Run the abci server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return start(gen, logger)
		},
	}
	c.Flags().String(FlagBind, "tcp://localhost:26658", "address server listens on")
	c.Flags().Bool(FlagDebug, false, "call stack returned on error")
	c.Flags().String(FlagMetrics, "", "address of the prometheus metrics endpoint, empty to disable")
	return c
}

func start(gen AppGenerator, logger log.Logger) error {
	home := viper.GetString(FlagHome)
	addr := viper.GetString(FlagBind)
	debug := viper.GetBool(FlagDebug)

	reg := prometheus.NewRegistry()
	app, err := gen(filepath.Join(home, "data"), logger, debug, reg)
	if err != nil {
		return err
	}

	if metricsAddr := viper.GetString(FlagMetrics); metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			logger.Info("Serving metrics", "addr", metricsAddr)
			if err := http.ListenAndServe(metricsAddr, mux); err != nil {
				logger.Error("Metrics endpoint stopped", "err", err)
			}
		}()
	}

	logger.Info("Starting ABCI app", "bind", addr)
	svr, err := server.NewServer(addr, "socket", app)
	if err != nil {
		return errors.Wrapf(errors.ErrHuman, "cannot create listener: %s", err)
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrapf(errors.ErrHuman, "cannot start server: %s", err)
	}

	// Wait forever
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	s := <-sig
	logger.Info("Stopping ABCI app", "signal", s.String())
	return svr.Stop()
}
