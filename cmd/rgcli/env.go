package main

import (
	"os"
	"path/filepath"
)

// env returns the value of an environment variable if provided (even if empty)
// or a fallback value.
func env(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return fallback
}

// defaultKeyPath is where the private key is kept unless RGCLI_PRIV_KEY says
// otherwise.
func defaultKeyPath() string {
	return env("RGCLI_PRIV_KEY", filepath.Join(os.Getenv("HOME"), ".releasegate.priv.key"))
}

func defaultTMAddr() string {
	return env("RGCLI_TM_ADDR", "http://localhost:26657")
}
