package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment variable names.
const (
	EnvHome         = "THORSDK_HOME"
	EnvNetwork      = "THORSDK_NETWORK"
	EnvChainTag     = "THORSDK_CHAIN_TAG"
	EnvOutputFormat = "THORSDK_OUTPUT_FORMAT"
	EnvVerbose      = "THORSDK_VERBOSE"
	EnvLogLevel     = "THORSDK_LOG_LEVEL"
	EnvNoColor      = "NO_COLOR"
	EnvSignerCache  = "THORSDK_SIGNER_CACHE"
)

// ApplyEnvironment applies environment variable overrides to cfg.
func ApplyEnvironment(cfg *Config) {
	if v := os.Getenv(EnvHome); v != "" {
		cfg.Home = v
	}

	if v := os.Getenv(EnvNetwork); v != "" {
		cfg.Network.Name = strings.ToLower(strings.TrimSpace(v))
		cfg.Network.ChainTag = ""
	}

	if v := os.Getenv(EnvChainTag); v != "" {
		cfg.Network.ChainTag = strings.TrimSpace(v)
	}

	if v := os.Getenv(EnvOutputFormat); v != "" {
		cfg.Output.DefaultFormat = strings.ToLower(v)
	}

	if v := os.Getenv(EnvVerbose); v != "" {
		cfg.Output.Verbose = parseBool(v)
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}

	if _, ok := os.LookupEnv(EnvNoColor); ok {
		cfg.Output.Color = "never"
	}

	// invalid or negative sizes are ignored
	if v := os.Getenv(EnvSignerCache); v != "" {
		if size, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && size >= 0 {
			cfg.Cache.SignerCacheSize = size
		}
	}
}

func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "1" || s == "true" || s == "yes" || s == "on" {
		return true
	}
	b, _ := strconv.ParseBool(s)
	return b
}
