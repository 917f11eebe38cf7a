package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearTokenEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GH_TOKEN", "")
	t.Setenv("ARCHIVIST_SOURCE_TOKEN", "")
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "archivist.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearTokenEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.False(t, cfg.Debug)
	assert.Equal(t, BackendGoGit, cfg.Transfer.Backend)
	assert.Equal(t, AuthAuto, cfg.Transfer.AuthMethod)
	assert.Equal(t, 0, cfg.Transfer.Depth)
	assert.Equal(t, 10*time.Minute, cfg.Transfer.Timeout)
	assert.Empty(t, cfg.Source.URL)
	assert.Empty(t, cfg.File)
}

func TestLoad_File(t *testing.T) {
	clearTokenEnv(t)

	path := writeConfig(t, `
debug = true

[source]
url = "https://github.com/sample/repo.git"
branch = "develop"
allowed_hosts = ["github.com"]

[output]
path = "./out/repo"
embeddings_path = "./out/embeddings"

[transfer]
backend = "git"
depth = 1
single_branch = true
timeout = "30s"
auth_method = "none"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, "https://github.com/sample/repo.git", cfg.Source.URL)
	assert.Equal(t, "develop", cfg.Source.Branch)
	assert.Equal(t, []string{"github.com"}, cfg.Source.AllowedHosts)
	assert.Equal(t, "./out/repo", cfg.Output.Path)
	assert.Equal(t, "./out/embeddings", cfg.Output.EmbeddingsPath)
	assert.Equal(t, BackendExec, cfg.Transfer.Backend)
	assert.Equal(t, 1, cfg.Transfer.Depth)
	assert.True(t, cfg.Transfer.SingleBranch)
	assert.Equal(t, 30*time.Second, cfg.Transfer.Timeout)
	assert.Equal(t, AuthNone, cfg.Transfer.AuthMethod)
	assert.Equal(t, path, cfg.File)
	require.NoError(t, cfg.Validate())
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearTokenEnv(t)
	t.Setenv("ARCHIVIST_SOURCE_URL", "git@github.com:org/repo.git")
	t.Setenv("GH_TOKEN", "gh-token")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "git@github.com:org/repo.git", cfg.Source.URL)
	assert.Equal(t, "gh-token", cfg.Source.Token)

	t.Setenv("GITHUB_TOKEN", "github-token")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "github-token", cfg.Source.Token, "GITHUB_TOKEN wins over GH_TOKEN")
}

func TestRedacted(t *testing.T) {
	cfg := Config{Source: SourceConfig{Token: "secret"}}
	assert.Equal(t, "********", cfg.Redacted().Source.Token)
	assert.Equal(t, "secret", cfg.Source.Token)
}

func validConfig() Config {
	return Config{
		Source: SourceConfig{URL: "https://github.com/sample/repo.git"},
		Output: OutputConfig{Path: "/tmp/out"},
		Transfer: TransferConfig{
			Backend:    BackendGoGit,
			AuthMethod: AuthAuto,
			Timeout:    time.Minute,
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing url", func(c *Config) { c.Source.URL = " " }, "url is required"},
		{"empty allowed host", func(c *Config) { c.Source.AllowedHosts = []string{""} }, "allowed_hosts"},
		{"missing path", func(c *Config) { c.Output.Path = "" }, "path is required"},
		{"bad path chars", func(c *Config) { c.Output.Path = "/tmp/out;rm -rf" }, "unsupported characters in path"},
		{"windows path", func(c *Config) { c.Output.Path = `C\repos\out` }, ""},
		{"bad embeddings path", func(c *Config) { c.Output.EmbeddingsPath = "emb$" }, "embeddings_path"},
		{"bad backend", func(c *Config) { c.Transfer.Backend = "svn" }, "invalid backend"},
		{"bad auth", func(c *Config) { c.Transfer.AuthMethod = "kerberos" }, "invalid auth_method"},
		{"negative depth", func(c *Config) { c.Transfer.Depth = -1 }, "depth"},
		{"zero timeout", func(c *Config) { c.Transfer.Timeout = 0 }, "timeout"},
		{"verbose and quiet", func(c *Config) { c.Log.Verbose, c.Log.Quiet = true, true }, "mutually exclusive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateFile(t *testing.T) {
	path := writeConfig(t, "debug = false\n")
	assert.NoError(t, ValidateFile(path))

	assert.ErrorContains(t, ValidateFile(filepath.Join(t.TempDir(), "missing.toml")), "not found")
	assert.ErrorContains(t, ValidateFile(t.TempDir()), "directory")
	assert.ErrorContains(t, ValidateFile("conf ig.toml"), "unsupported characters")
}
