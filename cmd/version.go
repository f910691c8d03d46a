package cmd

import (
	"github.com/incognito1025/fauna-go/internal/version"

	"github.com/spf13/cobra"
)

// Version information variables that may be set via ldflags on the cmd package.
//
//nolint:gochecknoglobals // Required for build-time injection via ldflags.
var (
	Version   string
	Commit    string
	BuildTime string
)

// newVersionCmd creates and returns the version command. It needs no configuration or storage.
func newVersionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if Version != "" || Commit != "" || BuildTime != "" {
				version.SetBuildVars(Version, Commit, BuildTime)
			}
			return version.Get().Write(cmd.OutOrStdout(), short)
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Show only version number")
	return cmd
}
