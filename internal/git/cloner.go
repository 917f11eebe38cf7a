package git

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/wlame/archivist/internal/config"
	"go.uber.org/zap"
)

// CloneOptions controls both transfer mechanisms
type CloneOptions struct {
	// Branch to check out; empty means the remote HEAD
	Branch string

	// Depth > 0 makes a shallow clone
	Depth int

	// SingleBranch fetches only the checked-out branch
	SingleBranch bool

	// Timeout bounds the clone; 0 means no limit
	Timeout time.Duration

	// Auth selects credentials
	Auth AuthOptions

	// Progress receives clone progress output when non-nil
	Progress io.Writer
}

// CloneOptionsFromConfig extracts CloneOptions from the loaded configuration
func CloneOptionsFromConfig(cfg *config.Config) CloneOptions {
	return CloneOptions{
		Branch:       cfg.Source.Branch,
		Depth:        cfg.Transfer.Depth,
		SingleBranch: cfg.Transfer.SingleBranch,
		Timeout:      cfg.Transfer.Timeout,
		Auth:         AuthOptionsFromConfig(cfg),
	}
}

// context returns the context a clone runs under. The timeout is imposed from
// outside the acquirer, which has no cancellation point of its own.
func (o CloneOptions) context() (context.Context, context.CancelFunc) {
	if o.Timeout > 0 {
		return context.WithTimeout(context.Background(), o.Timeout)
	}
	return context.WithCancel(context.Background())
}

// GoGitCloner clones with go-git, no git binary required
type GoGitCloner struct {
	opts   CloneOptions
	logger *zap.Logger
}

// NewGoGitCloner creates a go-git based cloner
func NewGoGitCloner(opts CloneOptions, logger *zap.Logger) *GoGitCloner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GoGitCloner{opts: opts, logger: logger}
}

// Clone materializes source into destination.
// destination may already exist; go-git refuses if it already holds a repository.
func (c *GoGitCloner) Clone(source, destination string) error {
	auth, err := ResolveAuth(source, c.opts.Auth)
	if err != nil {
		return fmt.Errorf("failed to resolve Git authentication: %w", err)
	}

	cloneOpts := &git.CloneOptions{
		URL:          source,
		Auth:         auth,
		SingleBranch: c.opts.SingleBranch,
		Depth:        c.opts.Depth,
		Progress:     c.opts.Progress,
	}
	if c.opts.Branch != "" {
		// References in Git are like "refs/heads/main"
		cloneOpts.ReferenceName = plumbing.NewBranchReferenceName(c.opts.Branch)
	}

	c.logger.Debug("cloning with go-git",
		zap.String("auth", GetAuthDescription(auth)),
		zap.String("branch", c.opts.Branch),
		zap.Int("depth", c.opts.Depth),
	)

	ctx, cancel := c.opts.context()
	defer cancel()

	if _, err := git.PlainCloneContext(ctx, destination, false, cloneOpts); err != nil {
		return fmt.Errorf("failed to clone repository %s to %s: %w", source, destination, err)
	}

	return nil
}
