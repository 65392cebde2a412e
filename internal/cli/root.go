// Package cli implements the thorsdk command-line interface, a developer
// tool over the SDK packages.
//
// Command state lives in package-level variables, initialized in
// PersistentPreRunE and released in PersistentPostRun.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level state
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vechain/vechain-sdk-go/internal/config"
	"github.com/vechain/vechain-sdk-go/internal/metrics"
	"github.com/vechain/vechain-sdk-go/internal/output"
	"github.com/vechain/vechain-sdk-go/internal/transaction"
	sdkerr "github.com/vechain/vechain-sdk-go/pkg/errors"
)

var (
	// Global flags
	homeDir      string
	outputFormat string
	networkName  string
	verbose      bool

	// Global state initialized in PersistentPreRunE
	cfg       *config.Config
	logger    *config.Logger
	formatter *output.Formatter
)

var rootCmd = &cobra.Command{
	Use:   "thorsdk",
	Short: "VeChainThor transaction, key and certificate toolkit",
	Long: `thorsdk builds, encodes, decodes and signs VeChainThor transactions,
including fee-delegated (VIP-191) and dynamic-fee transactions, and works with
keys, mnemonics and signed certificates offline.

Example:
  thorsdk tx encode body.yaml
  thorsdk tx sign body.yaml
  thorsdk tx decode --signed 0xf8...
  thorsdk key derive --count 5`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return initGlobals(cmd.OutOrStdout())
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		cleanup()
	},
}

// Execute runs the root command and prints any error to stderr.
func Execute() error {
	return execute(os.Stderr)
}

func execute(stderr io.Writer) error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}

	format := output.FormatText
	if formatter != nil && !formatter.IsText() {
		format = formatter.Format()
	}
	if logger != nil {
		logger.Error("%s: %v", rootCmd.CalledAs(), err)
	}
	_ = output.FormatError(stderr, err, format)
	cleanup()
	return err
}

// ExitCode maps err to the process exit code.
func ExitCode(err error) int {
	return sdkerr.ExitCode(err)
}

func initGlobals(stdout io.Writer) error {
	home := homeDir
	if home == "" {
		home = os.Getenv(config.EnvHome)
	}
	if home == "" {
		home = config.DefaultHome()
	}

	var err error
	cfg, err = config.Load(config.Path(home))
	switch {
	case err == nil:
	case errors.Is(err, sdkerr.ErrConfigNotFound):
		cfg = config.Defaults()
		cfg.Home = home
	default:
		return err
	}

	config.ApplyEnvironment(cfg)

	if homeDir != "" {
		cfg.Home = homeDir
	}
	if networkName != "" {
		cfg.Network = config.NetworkConfig{Name: networkName}
	}
	if verbose {
		cfg.Output.Verbose = true
		cfg.Logging.Level = "debug"
	}
	if outputFormat != "" && outputFormat != string(output.FormatAuto) {
		cfg.Output.DefaultFormat = outputFormat
	}

	logger, err = config.NewLogger(config.ParseLogLevel(cfg.Logging.Level), cfg.Logging.File)
	if err != nil {
		logger = config.NullLogger()
	}

	if err := transaction.SetSignerCacheSize(cfg.Cache.SignerCacheSize); err != nil {
		return sdkerr.WithCause(sdkerr.ErrConfigInvalid, err)
	}

	format := output.DetectFormat(stdout, output.ParseFormat(cfg.Output.DefaultFormat))
	formatter = output.NewFormatter(format, stdout)

	logger.Debug("home=%s network=%s format=%s", cfg.Home, cfg.Network.Name, format)
	return nil
}

func cleanup() {
	if logger == nil {
		return
	}
	s := metrics.Global.Snapshot()
	logger.Debug("signatures=%d recoveries=%d cache_hit_rate=%.1f%% decodes=%d decode_errors=%d",
		s.SignaturesTotal, s.RecoveriesTotal, metrics.Global.CacheHitRate(), s.DecodesTotal, s.DecodeErrorsTotal)
	_ = logger.Close()
}

// out writes to w, ignoring write errors.
//
//nolint:errcheck // CLI output writes are intentionally unchecked
func out(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format, args...)
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	rootCmd.PersistentFlags().StringVar(&homeDir, "home", "", "thorsdk data directory (default: ~/.thorsdk)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "auto", "output format: text, json, yaml, auto")
	rootCmd.PersistentFlags().StringVarP(&networkName, "network", "n", "", "network: mainnet, testnet, solo")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
