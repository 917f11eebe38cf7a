// Package config handles loading and managing configuration for archivist.
// It uses Viper to support multiple configuration sources: files, environment variables, and CLI flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the main configuration structure for archivist
// It maps directly to the TOML configuration file structure
type Config struct {
	// Debug selects development behaviour (development logger, caller info).
	// It is an explicit value handed to the components that need it.
	Debug bool `mapstructure:"debug" json:"debug"`

	// Log controls output verbosity
	Log LogConfig `mapstructure:"log" json:"log"`

	// Source describes the repository to acquire
	Source SourceConfig `mapstructure:"source" json:"source"`

	// Output describes where results are written
	Output OutputConfig `mapstructure:"output" json:"output"`

	// Transfer controls how the repository is cloned
	Transfer TransferConfig `mapstructure:"transfer" json:"transfer"`

	// File is the config file that was actually read, empty if none
	File string `mapstructure:"-" json:"file,omitempty"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	// Verbose enables debug output and clone progress
	Verbose bool `mapstructure:"verbose" json:"verbose"`

	// Quiet suppresses everything except errors
	Quiet bool `mapstructure:"quiet" json:"quiet"`
}

// SourceConfig holds the remote repository settings
type SourceConfig struct {
	// URL is the repository reference (HTTPS, SSH, scp-like or file://)
	// Example: "https://github.com/org/repo.git"
	URL string `mapstructure:"url" json:"url"`

	// Branch to check out. Empty means the remote's default branch.
	Branch string `mapstructure:"branch" json:"branch"`

	// Token is used for HTTPS authentication
	// Can also be set via GITHUB_TOKEN or GH_TOKEN environment variables
	// IMPORTANT: For security, prefer environment variables over config file
	Token string `mapstructure:"token" json:"token"`

	// AllowedHosts restricts which hosts may be cloned from. Empty allows all.
	AllowedHosts []string `mapstructure:"allowed_hosts" json:"allowed_hosts"`
}

// OutputConfig holds local path settings
type OutputConfig struct {
	// Path is the directory the repository is cloned into
	Path string `mapstructure:"path" json:"path"`

	// EmbeddingsPath is reserved for vector embedding output
	EmbeddingsPath string `mapstructure:"embeddings_path" json:"embeddings_path"`
}

// TransferConfig holds clone settings
type TransferConfig struct {
	// Backend is "go-git" (pure Go, default) or "git" (the git binary)
	Backend string `mapstructure:"backend" json:"backend"`

	// Depth limits history; 0 clones full history
	Depth int `mapstructure:"depth" json:"depth"`

	// SingleBranch fetches only the selected branch
	SingleBranch bool `mapstructure:"single_branch" json:"single_branch"`

	// Timeout bounds the whole clone
	Timeout time.Duration `mapstructure:"timeout" json:"timeout"`

	// AuthMethod is "auto", "ssh", "token" or "none"
	AuthMethod string `mapstructure:"auth_method" json:"auth_method"`

	// SSHKeyPath is the path to the SSH private key (optional)
	// If empty, the SSH agent or a default key in ~/.ssh is used
	SSHKeyPath string `mapstructure:"ssh_key_path" json:"ssh_key_path"`
}

// Backend names
const (
	BackendGoGit = "go-git"
	BackendExec  = "git"
)

// Auth methods
const (
	AuthAuto  = "auto"
	AuthSSH   = "ssh"
	AuthToken = "token"
	AuthNone  = "none"
)

// DefaultConfigName is the config file looked up in the current directory
const DefaultConfigName = "archivist"

// Load reads the configuration from a file and environment variables
// It follows this precedence order (highest to lowest):
//  1. CLI flags (handled by caller)
//  2. Environment variables
//  3. Configuration file
//  4. Default values
//
// A missing default file is not an error. A missing file given explicitly is.
//
// Parameters:
//   - configPath: path to the configuration file. If empty, "archivist.toml"
//     is looked up in the current directory
//
// Returns:
//   - *Config: the loaded configuration, not yet validated
//   - error: unreadable or unparsable file, or a missing explicit file
func Load(configPath string) (*Config, error) {
	// A fresh Viper instance per call keeps tests independent
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("toml")
		v.AddConfigPath(".")
	}

	// Example: ARCHIVIST_SOURCE_URL=https://github.com/org/repo.git
	v.SetEnvPrefix("ARCHIVIST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults must be registered before reading so Unmarshal sees every key
	setDefaults(v)

	// Read the config file, if any
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && configPath == "":
			// No config file; defaults and environment variables only
		case configPath != "" && os.IsNotExist(err):
			return nil, fmt.Errorf("config file not found: %s", configPath)
		default:
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Unmarshal into the struct; durations like "5m" are decoded by Viper's hooks
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	// GITHUB_TOKEN and GH_TOKEN are used when no token was configured
	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// setDefaults sets default values for configuration options
func setDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)

	v.SetDefault("log.verbose", false)
	v.SetDefault("log.quiet", false)

	v.SetDefault("source.url", "")
	v.SetDefault("source.branch", "")
	v.SetDefault("source.token", "")
	v.SetDefault("source.allowed_hosts", []string{})

	v.SetDefault("output.path", "")
	v.SetDefault("output.embeddings_path", "")

	v.SetDefault("transfer.backend", BackendGoGit)
	v.SetDefault("transfer.depth", 0)
	v.SetDefault("transfer.single_branch", false)
	v.SetDefault("transfer.timeout", 10*time.Minute)
	v.SetDefault("transfer.auth_method", AuthAuto)
	v.SetDefault("transfer.ssh_key_path", "")
}

// applyEnvOverrides fills the token from the conventional GitHub variables
// when neither the file nor ARCHIVIST_SOURCE_TOKEN set it
func applyEnvOverrides(cfg *Config) {
	if cfg.Source.Token == "" {
		if token := os.Getenv("GITHUB_TOKEN"); token != "" {
			cfg.Source.Token = token
		} else if token := os.Getenv("GH_TOKEN"); token != "" {
			cfg.Source.Token = token
		}
	}
}

// Redacted returns a copy safe for display
func (c Config) Redacted() Config {
	if c.Source.Token != "" {
		c.Source.Token = "********"
	}
	return c
}
