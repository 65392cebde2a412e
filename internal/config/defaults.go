package config

import "github.com/vechain/vechain-sdk-go/internal/hdkey"

// Chain tags are the last byte of each network's genesis block ID.
const (
	ChainTagMainnet uint8 = 0x4a
	ChainTagTestnet uint8 = 0x27
	ChainTagSolo    uint8 = 0xf6
)

// Networks maps network names to chain tags.
//
//nolint:gochecknoglobals // lookup table
var Networks = map[string]uint8{
	"mainnet": ChainTagMainnet,
	"testnet": ChainTagTestnet,
	"solo":    ChainTagSolo,
}

// DefaultSignerCacheSize matches the transaction package default.
const DefaultSignerCacheSize = 1024

// Defaults returns the default configuration.
func Defaults() *Config {
	return &Config{
		Version: 1,
		Home:    "~/.thorsdk",
		Network: NetworkConfig{
			Name: "mainnet",
		},
		Transaction: TransactionConfig{
			Expiration:   720,
			GasPriceCoef: 0,
		},
		Derivation: DerivationConfig{
			Path:  hdkey.VETDerivationPath,
			Index: 0,
		},
		Output: OutputConfig{
			DefaultFormat: "auto",
			Color:         "auto",
		},
		Logging: LoggingConfig{
			Level: "error",
			File:  "~/.thorsdk/thorsdk.log",
		},
		Cache: CacheConfig{
			SignerCacheSize: DefaultSignerCacheSize,
		},
	}
}
