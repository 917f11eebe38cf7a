package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wlame/archivist/pkg/version"
)

// newVersionCmd displays version information about the binary
func newVersionCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Display the version, commit hash and build time of archivist.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			info := version.Get()
			fmt.Fprintln(out, info.String())

			if opts.verbose {
				fmt.Fprintln(out)
				fmt.Fprintf(out, "Version:    %s\n", info.Version)
				fmt.Fprintf(out, "Commit:     %s\n", info.Commit)
				fmt.Fprintf(out, "Build Time: %s\n", info.BuildTime)
				fmt.Fprintf(out, "Modified:   %t\n", info.Modified)
				fmt.Fprintf(out, "Go:         %s\n", info.GoVersion)
				fmt.Fprintf(out, "Platform:   %s\n", info.Platform)
			}
		},
	}
}
