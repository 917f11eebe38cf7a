// Package git implements the transfer mechanisms that materialize a repository on disk.
// The default one uses go-git (a pure Go implementation) which doesn't require the git binary.
package git

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"
	"github.com/wlame/archivist/internal/config"
)

// AuthOptions is the subset of configuration needed to authenticate a clone.
type AuthOptions struct {
	// Method is one of config.AuthAuto, AuthSSH, AuthToken or AuthNone
	Method string

	// Token is used for HTTPS basic auth
	Token string

	// SSHKeyPath overrides the default key lookup
	SSHKeyPath string
}

// AuthOptionsFromConfig extracts AuthOptions from the loaded configuration
func AuthOptionsFromConfig(cfg *config.Config) AuthOptions {
	return AuthOptions{
		Method:     cfg.Transfer.AuthMethod,
		Token:      cfg.Source.Token,
		SSHKeyPath: cfg.Transfer.SSHKeyPath,
	}
}

// ResolveAuth determines the Git authentication method for source.
//
// The method setting controls the strategy:
//   - "ssh": SSH agent, then an SSH key file
//   - "token": HTTPS basic auth with the token
//   - "none": anonymous access
//   - "auto": SSH for ssh and scp-like endpoints, token for HTTP(S) when one is
//     configured, anonymous otherwise
//
// Parameters:
//   - source: repository URL, used to pick SSH or HTTPS in "auto" mode
//   - opts: auth settings from the config file, flags and environment
//
// Returns:
//   - transport.AuthMethod: the authentication to use, nil for anonymous access
//   - error: unparsable source, missing token or unusable SSH key
func ResolveAuth(source string, opts AuthOptions) (transport.AuthMethod, error) {
	switch opts.Method {
	case config.AuthSSH:
		// Explicit SSH authentication
		return ResolveSSHAuth(opts)

	case config.AuthToken:
		// Explicit token authentication
		return ResolveTokenAuth(opts)

	case config.AuthNone:
		// Public repositories and file:// URLs
		return nil, nil

	case config.AuthAuto, "":
		// Let the URL scheme decide
		ep, err := transport.NewEndpoint(source)
		if err != nil {
			return nil, fmt.Errorf("failed to parse endpoint %s: %w", source, err)
		}

		switch ep.Protocol {
		case "ssh":
			return ResolveSSHAuth(opts)
		case "http", "https":
			// No token: try anonymously, public repositories still work
			if opts.Token == "" {
				return nil, nil
			}
			return ResolveTokenAuth(opts)
		default:
			// file:// and git:// have no credentials
			return nil, nil
		}

	default:
		return nil, fmt.Errorf("unknown auth method: %s (use 'ssh', 'token', 'none' or 'auto')", opts.Method)
	}
}

// ResolveSSHAuth creates SSH-based authentication
//
// SSH authentication sources (in order):
//  1. SSH agent (if available)
//  2. Explicit key path (transfer.ssh_key_path)
//  3. Default SSH keys (~/.ssh/id_ed25519, ~/.ssh/id_rsa, ~/.ssh/id_ecdsa)
func ResolveSSHAuth(opts AuthOptions) (transport.AuthMethod, error) {
	// The SSH agent holds private keys in memory, no key files needed
	auth, err := ssh.NewSSHAgentAuth("git")
	if err == nil {
		return auth, nil
	}

	keyPath := opts.SSHKeyPath
	if keyPath == "" {
		keyPath, err = findDefaultSSHKey()
		if err != nil {
			return nil, fmt.Errorf("SSH key not found: %w", err)
		}
	}

	// Go doesn't expand ~ like shells do
	if strings.HasPrefix(keyPath, "~") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		keyPath = filepath.Join(homeDir, keyPath[1:])
	}

	// Passphrase-protected keys need the agent
	publicKeys, err := ssh.NewPublicKeysFromFile("git", keyPath, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load SSH key from %s: %w", keyPath, err)
	}

	return publicKeys, nil
}

// ResolveTokenAuth creates token-based authentication for HTTPS
func ResolveTokenAuth(opts AuthOptions) (transport.AuthMethod, error) {
	if opts.Token == "" {
		return nil, fmt.Errorf("no token found (set --token, source.token, GITHUB_TOKEN, or GH_TOKEN)")
	}

	// GitHub and most hosts accept any non-empty username with the token as password
	return &http.BasicAuth{
		Username: "archivist",
		Password: opts.Token,
	}, nil
}

// findDefaultSSHKey searches for SSH keys in standard locations, most modern first
func findDefaultSSHKey() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	keyTypes := []string{"id_ed25519", "id_rsa", "id_ecdsa"}

	for _, keyType := range keyTypes {
		keyPath := filepath.Join(homeDir, ".ssh", keyType)
		if _, err := os.Stat(keyPath); err == nil {
			return keyPath, nil
		}
	}

	return "", fmt.Errorf("no SSH keys found in ~/.ssh/ (tried: %v)", keyTypes)
}

// GetAuthDescription returns a human-readable description of the auth method
// This is useful for logging and debugging (without exposing secrets)
func GetAuthDescription(auth transport.AuthMethod) string {
	if auth == nil {
		return "anonymous"
	}

	switch auth.(type) {
	case *ssh.PublicKeysCallback:
		return "SSH agent"
	case *ssh.PublicKeys:
		return "SSH key"
	case *http.BasicAuth:
		return "HTTPS token"
	default:
		return "unknown"
	}
}
