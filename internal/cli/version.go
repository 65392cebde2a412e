package cli

import (
	"github.com/spf13/cobra"

	"github.com/vechain/vechain-sdk-go/internal/version"
	sdkerr "github.com/vechain/vechain-sdk-go/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var (
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the thorsdk build",
		Long: `Print the thorsdk build.

With --min the command fails when this build is older than the given
release, for scripts that need a minimum version.`,
		Args: cobra.NoArgs,
		RunE: runVersion,
	}

	versionMin string
)

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().StringVar(&versionMin, "min", "", "fail unless this build is at least this version")
}

func runVersion(_ *cobra.Command, _ []string) error {
	info := version.Get()
	if versionMin != "" && version.CompareVersions(info.Version, versionMin) < 0 {
		return sdkerr.WithDetails(
			sdkerr.Newf(sdkerr.ErrGeneral, "thorsdk %s is older than %s", info.Version, versionMin),
			map[string]string{"version": info.Version, "required": version.NormalizeVersion(versionMin)})
	}
	return formatter.Print(info)
}
