package main

import (
	flags "github.com/jessevdk/go-flags"
)

const (
	defaultListenAddr = "127.0.0.1:9999"
	defaultDataDir    = "./alphvaultd-data"
)

// config holds the daemon's command line options.
type config struct {
	DataDir string `long:"datadir" description:"Directory holding the persistent device store"`
	Listen  string `long:"listen" description:"Address to serve the APDU transport on"`
	Seed    string `long:"seed" description:"Hex-encoded device master seed"`

	AutoApprove bool `long:"autoapprove" description:"Approve every review prompt without asking"`
	DebugLevel  string `long:"debuglevel" short:"d" description:"Logging level: trace, debug, info, warn, error, critical"`

	ToggleBlindSigning bool `long:"toggleblindsigning" description:"Flip the persisted blind-signing flag and exit"`
}

// loadConfig parses the command line into a config with defaults applied.
func loadConfig() (*config, error) {
	cfg := &config{
		DataDir:    defaultDataDir,
		Listen:     defaultListenAddr,
		DebugLevel: "info",
	}
	if _, err := flags.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
