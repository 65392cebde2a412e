package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vechain/vechain-sdk-go/internal/config"
	"github.com/vechain/vechain-sdk-go/internal/output"
	sdkerr "github.com/vechain/vechain-sdk-go/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var (
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Show or create the thorsdk configuration",
	}

	configShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the configuration after applying the config file, the
THORSDK_* environment variables and the global flags.`,
		Args: cobra.NoArgs,
		RunE: runConfigShow,
	}

	configInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigInit,
	}

	configForce bool
)

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configInitCmd)

	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing config file")
}

// configView prints the configuration as YAML in text mode.
type configView struct {
	cfg *config.Config
}

func (v configView) String() string {
	data, err := yaml.Marshal(v.cfg)
	if err != nil {
		return err.Error()
	}
	return strings.TrimSuffix(string(data), "\n")
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	if formatter.IsText() {
		return formatter.Print(configView{cfg})
	}
	return formatter.Print(cfg)
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	path := config.Path(cfg.Home)
	if _, err := os.Stat(path); err == nil && !configForce {
		return sdkerr.WithSuggestion(
			sdkerr.WithDetails(sdkerr.Newf(sdkerr.ErrGeneral, "config file already exists"), map[string]string{"path": path}),
			"use --force to overwrite it")
	}

	fresh := config.Defaults()
	fresh.Home = cfg.Home
	if err := config.Save(fresh, path); err != nil {
		return sdkerr.WithCause(sdkerr.Newf(sdkerr.ErrGeneral, "cannot write config file"), err)
	}
	logger.Named("config").Info("wrote config %s", path)
	if formatter.IsText() {
		output.Successf(cmd.ErrOrStderr(), "wrote %s", path)
	}
	return formatter.Print(map[string]string{"path": path})
}
