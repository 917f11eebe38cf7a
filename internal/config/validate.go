package config

import (
	"fmt"
	"os"
	"slices"
	"strings"
)

// Validate checks if the configuration is valid
// It returns an error if any required fields are missing or invalid
// This should be called after loading the configuration and applying CLI flags
func (c *Config) Validate() error {
	if err := c.Source.Validate(); err != nil {
		return fmt.Errorf("source config: %w", err)
	}

	if err := c.Output.Validate(); err != nil {
		return fmt.Errorf("output config: %w", err)
	}

	if err := c.Transfer.Validate(); err != nil {
		return fmt.Errorf("transfer config: %w", err)
	}

	if c.Log.Verbose && c.Log.Quiet {
		return fmt.Errorf("log config: verbose and quiet are mutually exclusive")
	}

	return nil
}

// Validate checks the source settings. The URL format itself is checked by the
// acquirer; here we only require that one was given.
func (s *SourceConfig) Validate() error {
	if strings.TrimSpace(s.URL) == "" {
		return fmt.Errorf("url is required (set --github-url or source.url)")
	}

	for _, h := range s.AllowedHosts {
		if strings.TrimSpace(h) == "" {
			return fmt.Errorf("allowed_hosts contains an empty entry")
		}
	}

	return nil
}

// Validate checks the output paths
func (o *OutputConfig) Validate() error {
	if strings.TrimSpace(o.Path) == "" {
		return fmt.Errorf("path is required (set --output-path or output.path)")
	}
	if !IsSupportedPath(o.Path) {
		return fmt.Errorf("unsupported characters in path: %s", o.Path)
	}

	// The embeddings path is optional until embedding generation exists
	if o.EmbeddingsPath != "" && !IsSupportedPath(o.EmbeddingsPath) {
		return fmt.Errorf("unsupported characters in embeddings_path: %s", o.EmbeddingsPath)
	}

	return nil
}

// Validate checks the transfer settings
func (t *TransferConfig) Validate() error {
	validBackends := []string{BackendGoGit, BackendExec}
	if !slices.Contains(validBackends, t.Backend) {
		return fmt.Errorf("invalid backend: %s (must be one of: %s)",
			t.Backend, strings.Join(validBackends, ", "))
	}

	validAuthMethods := []string{AuthAuto, AuthSSH, AuthToken, AuthNone}
	if !slices.Contains(validAuthMethods, t.AuthMethod) {
		return fmt.Errorf("invalid auth_method: %s (must be one of: %s)",
			t.AuthMethod, strings.Join(validAuthMethods, ", "))
	}

	if t.Depth < 0 {
		return fmt.Errorf("depth must not be negative: %d", t.Depth)
	}

	if t.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive: %s", t.Timeout)
	}

	return nil
}

// IsSupportedPath reports whether path only uses letters, digits and -_./\
func IsSupportedPath(path string) bool {
	for _, r := range path {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case strings.ContainsRune(`-_./\`, r):
		default:
			return false
		}
	}
	return path != ""
}

// ValidateFile checks that a config file path is acceptable and exists
func ValidateFile(path string) error {
	if !IsSupportedPath(path) {
		return fmt.Errorf("unsupported characters in config path: %s", path)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("config file not found: %s", path)
		}
		return fmt.Errorf("failed to check config file %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("config path is a directory: %s", path)
	}

	return nil
}
