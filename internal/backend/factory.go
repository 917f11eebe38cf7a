// Package backend selects the transfer mechanism used to clone repositories.
package backend

import (
	"fmt"
	"io"

	"github.com/wlame/archivist/internal/acquirer"
	"github.com/wlame/archivist/internal/config"
	gitpkg "github.com/wlame/archivist/internal/git"
	"go.uber.org/zap"
)

// NewCloner creates the cloner named by cfg.Transfer.Backend.
// This is a factory function; the acquirer only sees the acquirer.Cloner interface.
//
// Supported backends:
//   - "go-git" (default): pure Go clone, no git binary needed
//   - "git": shells out to the git binary found on PATH
//
// Parameters:
//   - cfg: loaded configuration; transfer.* and source.* settings are used
//   - logger: parent logger, may be nil
//   - progress: receives clone progress output, may be nil
//
// Returns:
//   - acquirer.Cloner: the configured transfer mechanism
//   - error: unknown backend name
//
// Example:
//
//	cloner, err := backend.NewCloner(cfg, logger, nil)
//	if err != nil {
//	    return fmt.Errorf("failed to create cloner: %w", err)
//	}
//	a, err := acquirer.New(cfg.Source.URL, cfg.Output.Path, cloner)
func NewCloner(cfg *config.Config, logger *zap.Logger, progress io.Writer) (acquirer.Cloner, error) {
	// Branch, depth, timeout and auth are shared by both backends
	opts := gitpkg.CloneOptionsFromConfig(cfg)
	opts.Progress = progress

	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("transfer")

	switch cfg.Transfer.Backend {
	case config.BackendGoGit, "":
		return gitpkg.NewGoGitCloner(opts, logger), nil

	case config.BackendExec:
		return gitpkg.NewExecCloner(opts, logger), nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s (supported: %s, %s)",
			cfg.Transfer.Backend, config.BackendGoGit, config.BackendExec)
	}
}
