package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/wlame/archivist/internal/acquirer"
	"github.com/wlame/archivist/internal/backend"
	"github.com/wlame/archivist/internal/config"
	gitpkg "github.com/wlame/archivist/internal/git"
	"github.com/wlame/archivist/internal/logging"
	"go.uber.org/zap"
)

// runFetch executes the root command: load and validate the parameters, then
// hand them to one Acquirer and report its result
func runFetch(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	// Nothing to do: behave like `archivist --help`
	if cfg.Source.URL == "" && cfg.Output.Path == "" && cmd.Flags().NFlag() == 0 {
		return cmd.Help()
	}

	if err := cfg.Validate(); err != nil {
		return invalidInput(fmt.Errorf("invalid configuration: %w", err))
	}

	out := newConsole(cmd, cfg.Log.Quiet)

	logger, err := logging.New(logging.Options{
		Debug:   cfg.Debug,
		Verbose: cfg.Log.Verbose,
		Quiet:   cfg.Log.Quiet,
	})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if cfg.File != "" {
		logger.Debug("using config file", zap.String("path", cfg.File))
	}
	if cfg.Output.EmbeddingsPath != "" {
		logger.Debug("embeddings path recorded", zap.String("path", cfg.Output.EmbeddingsPath))
	}

	var progress io.Writer
	if cfg.Log.Verbose {
		progress = cmd.ErrOrStderr()
	}

	cloner, err := backend.NewCloner(cfg, logger, progress)
	if err != nil {
		return invalidInput(fmt.Errorf("failed to create cloner: %w", err))
	}

	validator := acquirer.HostAllowlist(acquirer.URLValidator{}, cfg.Source.AllowedHosts...)

	a, err := acquirer.New(cfg.Source.URL, cfg.Output.Path, cloner,
		acquirer.WithValidator(validator),
		acquirer.WithLogger(logger.Named("acquirer")),
	)
	if err != nil {
		return err
	}

	out.PrintInfo(fmt.Sprintf("Cloning %s into %s (backend: %s)", cfg.Source.URL, cfg.Output.Path, cfg.Transfer.Backend))

	dest, err := a.Run()
	if err != nil {
		return err
	}

	out.PrintSuccess(fmt.Sprintf("Repository cloned to %s", dest))

	summary, err := gitpkg.Inspect(dest)
	if err != nil {
		out.PrintWarning(fmt.Sprintf("Could not read HEAD: %v", err))
		return nil
	}

	head := summary.ShortHead()
	if summary.Branch != "" {
		head = fmt.Sprintf("%s (%s)", head, summary.Branch)
	}
	out.PrintInfo(fmt.Sprintf("HEAD %s: %s", head, summary.Subject))

	return nil
}

// loadConfig loads the config file and environment, then applies explicitly set flags on top
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	if opts.cfgFile != "" {
		if err := config.ValidateFile(opts.cfgFile); err != nil {
			return nil, invalidInput(err)
		}
	}

	cfg, err := config.Load(opts.cfgFile)
	if err != nil {
		return nil, invalidInput(fmt.Errorf("failed to load config: %w", err))
	}

	flags := cmd.Flags()
	if flags.Changed("github-url") {
		cfg.Source.URL = opts.githubURL
	}
	if flags.Changed("output-path") {
		cfg.Output.Path = opts.outputPath
	}
	if flags.Changed("branch") {
		cfg.Source.Branch = opts.branch
	}
	if flags.Changed("token") {
		cfg.Source.Token = opts.token
	}
	if flags.Changed("embeddings-path") {
		cfg.Output.EmbeddingsPath = opts.embeddingsPath
	}
	if flags.Changed("verbose") {
		cfg.Log.Verbose = opts.verbose
	}
	if flags.Changed("quiet") {
		cfg.Log.Quiet = opts.quiet
	}

	return cfg, nil
}

// ErrInvalidInput marks configuration and flag errors
var ErrInvalidInput = errors.New("invalid input")

type inputError struct {
	err error
}

func (e *inputError) Error() string { return e.err.Error() }

func (e *inputError) Unwrap() []error { return []error{ErrInvalidInput, e.err} }

func invalidInput(err error) error {
	return &inputError{err: err}
}
