// Package config provides configuration management for the thorsdk tool.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vechain/vechain-sdk-go/internal/fileutil"
	sdkerr "github.com/vechain/vechain-sdk-go/pkg/errors"
)

// Config represents the application configuration.
type Config struct {
	Version     int               `yaml:"version" json:"version"`
	Home        string            `yaml:"home" json:"home"`
	Network     NetworkConfig     `yaml:"network" json:"network"`
	Transaction TransactionConfig `yaml:"transaction" json:"transaction"`
	Derivation  DerivationConfig  `yaml:"derivation" json:"derivation"`
	Output      OutputConfig      `yaml:"output" json:"output"`
	Logging     LoggingConfig     `yaml:"logging" json:"logging"`
	Cache       CacheConfig       `yaml:"cache" json:"cache"`
}

// NetworkConfig selects the chain a transaction is built for. ChainTag, when
// set, overrides the tag of the named network.
type NetworkConfig struct {
	Name     string `yaml:"name" json:"name"`
	ChainTag string `yaml:"chain_tag,omitempty" json:"chain_tag,omitempty"`
}

// TransactionConfig holds defaults for new transaction bodies.
type TransactionConfig struct {
	Expiration   uint32 `yaml:"expiration" json:"expiration"`
	GasPriceCoef uint8  `yaml:"gas_price_coef" json:"gas_price_coef"`
}

// DerivationConfig defines key derivation settings.
type DerivationConfig struct {
	Path  string `yaml:"path" json:"path"`
	Index uint32 `yaml:"index" json:"index"`
}

// OutputConfig defines output formatting settings.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"`
	Color         string `yaml:"color" json:"color"`
	Verbose       bool   `yaml:"verbose" json:"verbose"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// CacheConfig sizes the transaction signer cache. Zero disables it.
type CacheConfig struct {
	SignerCacheSize int `yaml:"signer_cache_size" json:"signer_cache_size"`
}

// Load reads configuration from path, layered over Defaults.
func Load(path string) (*Config, error) {
	// #nosec G304 -- config file path is from validated user input
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, sdkerr.WithDetails(sdkerr.ErrConfigNotFound, map[string]string{"path": path})
	}
	if err != nil {
		return nil, sdkerr.WithCause(sdkerr.ErrGeneral, err)
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, sdkerr.WithCause(sdkerr.WithDetails(sdkerr.ErrConfigInvalid, map[string]string{"path": path}), err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes configuration to path, creating its directory.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return sdkerr.WithCause(sdkerr.ErrGeneral, err)
	}
	return fileutil.WriteAtomic(path, data, 0o600)
}

// Path returns the config file path under home.
func Path(home string) string {
	return filepath.Join(home, "config.yaml")
}

// DefaultHome returns the default thorsdk home directory.
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".thorsdk"
	}
	return filepath.Join(home, ".thorsdk")
}

// ChainTag resolves the chain tag of the configured network.
func (c *Config) ChainTag() (uint8, error) {
	if c.Network.ChainTag != "" {
		return parseChainTag(c.Network.ChainTag)
	}
	tag, ok := Networks[strings.ToLower(c.Network.Name)]
	if !ok {
		return 0, sdkerr.WithSuggestion(
			sdkerr.WithDetails(sdkerr.ErrConfigInvalid, map[string]string{"network": c.Network.Name}),
			"use one of mainnet, testnet, solo or set network.chain_tag")
	}
	return tag, nil
}

// Validate checks the values that cannot be repaired by defaults.
func (c *Config) Validate() error {
	if _, err := c.ChainTag(); err != nil {
		return err
	}
	if c.Cache.SignerCacheSize < 0 {
		return sdkerr.WithDetails(sdkerr.ErrConfigInvalid, map[string]string{"cache.signer_cache_size": strconv.Itoa(c.Cache.SignerCacheSize)})
	}
	return nil
}

// parseChainTag accepts decimal or 0x-prefixed hex.
func parseChainTag(s string) (uint8, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 0, 8)
	if err != nil {
		return 0, sdkerr.WithCause(
			sdkerr.WithDetails(sdkerr.ErrConfigInvalid, map[string]string{"network.chain_tag": s}), err)
	}
	return uint8(n), nil
}
