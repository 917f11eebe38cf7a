package git

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/wlame/archivist/internal/config"
	"go.uber.org/zap"
)

// ExecCloner clones by running the git binary
type ExecCloner struct {
	opts   CloneOptions
	logger *zap.Logger

	// binary is the git executable, "git" unless overridden in tests
	binary string
}

// NewExecCloner creates a cloner that shells out to git
func NewExecCloner(opts CloneOptions, logger *zap.Logger) *ExecCloner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExecCloner{opts: opts, logger: logger, binary: "git"}
}

// Clone runs `git clone` for source into destination.
// git's stderr, without progress lines, becomes part of the returned error.
func (c *ExecCloner) Clone(source, destination string) error {
	ctx, cancel := c.opts.context()
	defer cancel()

	args, env, err := c.args(source, destination)
	if err != nil {
		return err
	}

	c.logger.Debug("cloning with git binary",
		zap.String("binary", c.binary),
		zap.String("branch", c.opts.Branch),
		zap.Int("depth", c.opts.Depth),
	)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.binary, args...)
	cmd.Env = append(os.Environ(), env...)
	cmd.Stderr = &stderr
	if c.opts.Progress != nil {
		// git reports progress on stderr
		cmd.Stderr = io.MultiWriter(&stderr, c.opts.Progress)
	}

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("git clone %s: %w", source, ctx.Err())
		}
		return fmt.Errorf("git clone %s: %w", source, execError(err, stderr.String()))
	}
	return nil
}

// args builds the git command line and extra environment
func (c *ExecCloner) args(source, destination string) ([]string, []string, error) {
	var args, env []string

	// Never block on a credential prompt
	env = append(env, "GIT_TERMINAL_PROMPT=0")

	useToken, useSSHKey, err := c.credentials(source)
	if err != nil {
		return nil, nil, err
	}
	if useToken {
		basic := base64.StdEncoding.EncodeToString([]byte("archivist:" + c.opts.Auth.Token))
		args = append(args, "-c", "http.extraHeader=Authorization: Basic "+basic)
	}
	if useSSHKey {
		env = append(env, "GIT_SSH_COMMAND=ssh -i "+strconv.Quote(c.opts.Auth.SSHKeyPath)+" -o IdentitiesOnly=yes")
	}

	args = append(args, "clone")
	if c.opts.Progress != nil {
		args = append(args, "--progress")
	}
	if c.opts.Branch != "" {
		args = append(args, "--branch", c.opts.Branch)
	}
	if c.opts.Depth > 0 {
		args = append(args, "--depth", strconv.Itoa(c.opts.Depth))
	}
	if c.opts.SingleBranch {
		args = append(args, "--single-branch")
	} else if c.opts.Depth > 0 {
		// git implies --single-branch with --depth; keep all branches like go-git does
		args = append(args, "--no-single-branch")
	}
	args = append(args, "--", source, destination)

	return args, env, nil
}

// credentials mirrors ResolveAuth for the git binary. SSH agents and default
// keys are picked up by ssh itself, so only an explicit key path is passed on.
func (c *ExecCloner) credentials(source string) (useToken, useSSHKey bool, err error) {
	a := c.opts.Auth

	switch a.Method {
	case config.AuthNone:
		return false, false, nil
	case config.AuthToken:
		if a.Token == "" {
			return false, false, fmt.Errorf("no token found (set --token, source.token, GITHUB_TOKEN, or GH_TOKEN)")
		}
		return true, false, nil
	case config.AuthSSH:
		return false, a.SSHKeyPath != "", nil
	case config.AuthAuto, "":
		ep, err := transport.NewEndpoint(source)
		if err != nil {
			return false, false, fmt.Errorf("failed to parse endpoint %s: %w", source, err)
		}
		switch ep.Protocol {
		case "http", "https":
			return a.Token != "", false, nil
		case "ssh":
			return false, a.SSHKeyPath != "", nil
		}
		return false, false, nil
	default:
		return false, false, fmt.Errorf("unknown auth method: %s (use 'ssh', 'token', 'none' or 'auto')", a.Method)
	}
}

// execError appends git's stderr to err, minus progress chatter
func execError(err error, stderr string) error {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return err
	}

	msg := cleanStderr(stderr)
	if msg == "" {
		return err
	}
	return fmt.Errorf("%w: %s", err, msg)
}

// progressPrefixes start the status lines git writes while cloning
var progressPrefixes = []string{
	"Cloning into",
	"remote: Enumerating",
	"remote: Counting",
	"remote: Compressing",
	"remote: Total",
	"Receiving objects",
	"Resolving deltas",
	"Updating files",
}

// cleanStderr drops progress lines and blank lines, keeping every other line
// in order. Progress updates overwrite themselves with \r, so only the text
// after the last \r of a line counts.
func cleanStderr(stderr string) string {
	var kept []string
	for _, line := range strings.Split(stderr, "\n") {
		if i := strings.LastIndex(line, "\r"); i >= 0 {
			line = line[i+1:]
		}
		line = strings.TrimSpace(line)
		if line == "" || isProgressLine(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func isProgressLine(line string) bool {
	for _, p := range progressPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}
