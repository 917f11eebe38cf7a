// Package commands implements all CLI commands for archivist.
// It uses the Cobra library which is the standard for CLI applications in Go.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/wlame/archivist/pkg/version"
)

// rootOptions holds the values bound to the root command's flags
type rootOptions struct {
	// cfgFile holds the path to the configuration file (--config)
	cfgFile string

	githubURL      string
	outputPath     string
	branch         string
	token          string
	embeddingsPath string

	verbose bool
	quiet   bool
}

// newRootCmd creates the command tree.
// A fresh tree per call keeps flag state out of package globals, so tests can run commands repeatedly.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "archivist",
		Short: "Fetch a source repository for analysis",
		Long: `archivist fetches a remote source-code repository to a local path so that
code analysis can run against it.

The acquisition runs in three steps and stops at the first failure:
  1. Validate the repository reference (HTTPS, SSH, scp-like or file:// URL)
  2. Make sure the output directory exists (it is created if missing)
  3. Clone the repository into it

Example usage:
  # Clone a public repository
  archivist --github-url https://github.com/org/repo.git --output-path ./repo

  # Clone a branch using a token from the environment
  GITHUB_TOKEN=... archivist -g https://github.com/org/private.git -o ./private -b develop

  # Use settings from a config file
  archivist --config ./archivist.toml`,

		Version: version.Short(),

		// We don't want to show the full usage every time there's an error
		SilenceUsage: true,

		// We'll handle error printing ourselves for better control
		SilenceErrors: true,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, opts)
		},
	}

	cmd.SetVersionTemplate(version.String() + "\n")

	// Flag parse errors exit like any other invalid input; subcommands inherit this
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return invalidInput(err)
	})

	// Persistent flags are available to all subcommands
	cmd.PersistentFlags().StringVarP(&opts.cfgFile, "config", "c", "",
		"config file (default: ./archivist.toml)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "V", false,
		"verbose output")
	cmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false,
		"suppress all output except errors")

	cmd.Flags().StringVarP(&opts.githubURL, "github-url", "g", "",
		"repository URL to clone")
	cmd.Flags().StringVarP(&opts.outputPath, "output-path", "o", "",
		"directory the repository is cloned into")
	cmd.Flags().StringVarP(&opts.branch, "branch", "b", "",
		"branch to clone (default: the remote's default branch)")
	cmd.Flags().StringVarP(&opts.token, "token", "k", "",
		"access token for HTTPS repositories (default: $GITHUB_TOKEN or $GH_TOKEN)")
	cmd.Flags().StringVarP(&opts.embeddingsPath, "embeddings-path", "e", "",
		"output path reserved for vector embeddings")

	cmd.AddCommand(newVersionCmd(opts))
	cmd.AddCommand(newConfigCmd(opts))

	return cmd
}

// Execute is the main entry point for the CLI
// It's called from main.go and executes the root command
func Execute() error {
	return newRootCmd().Execute()
}

// console prints the user-facing [INFO]/[SUCCESS]/[WARN] lines.
// Structured diagnostics go through zap instead.
type console struct {
	out   io.Writer
	err   io.Writer
	quiet bool
}

func newConsole(cmd *cobra.Command, quiet bool) *console {
	return &console{out: cmd.OutOrStdout(), err: cmd.ErrOrStderr(), quiet: quiet}
}

// PrintWarning prints a warning message to stderr
func (c *console) PrintWarning(msg string) {
	if c.quiet {
		return
	}
	fmt.Fprintf(c.err, "[WARN] %s\n", msg)
}

// PrintInfo prints an info message to stdout
func (c *console) PrintInfo(msg string) {
	if c.quiet {
		return
	}
	fmt.Fprintf(c.out, "[INFO] %s\n", msg)
}

// PrintSuccess prints a success message to stdout
func (c *console) PrintSuccess(msg string) {
	if c.quiet {
		return
	}
	fmt.Fprintf(c.out, "[SUCCESS] %s\n", msg)
}

// PrintError prints an error message to stderr
// This is a helper function for consistent error formatting
func PrintError(err error) {
	fmt.Fprintf(os.Stderr, "[ERROR] %v\n", err)
}
