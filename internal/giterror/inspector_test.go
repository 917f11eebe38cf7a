package giterror

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	inspector := NewInspector()

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{
			name: "go-git authentication required",
			err:  fmt.Errorf("failed to clone: %w", transport.ErrAuthenticationRequired),
			want: KindAuth,
		},
		{
			name: "go-git authorization failed",
			err:  transport.ErrAuthorizationFailed,
			want: KindAuth,
		},
		{
			name: "git binary auth prompt disabled",
			err:  errors.New("fatal: could not read Username for 'https://github.com': terminal prompts disabled"),
			want: KindAuth,
		},
		{
			name: "ssh key rejected",
			err:  errors.New("git@github.com: Permission denied (publickey)."),
			want: KindAuth,
		},
		{
			name: "git binary http 403",
			err:  errors.New("fatal: unable to access 'https://github.com/org/repo.git/': The requested URL returned error: 403"),
			want: KindAuth,
		},
		{
			name: "digits in a path are not a status",
			err:  errors.New("failed to clone repository to /tmp/out403: something went wrong"),
			want: KindUnknown,
		},
		{
			name: "go-git repository not found",
			err:  fmt.Errorf("clone: %w", transport.ErrRepositoryNotFound),
			want: KindNotFound,
		},
		{
			name: "go-git missing branch",
			err:  fmt.Errorf("clone: %w", plumbing.ErrReferenceNotFound),
			want: KindNotFound,
		},
		{
			name: "git binary missing repository",
			err:  errors.New("fatal: '/srv/missing' does not appear to be a git repository"),
			want: KindNotFound,
		},
		{
			name: "git binary missing branch",
			err:  errors.New("fatal: Remote branch nope not found in upstream origin"),
			want: KindNotFound,
		},
		{
			name: "go-git existing repository",
			err:  fmt.Errorf("clone: %w", git.ErrRepositoryAlreadyExists),
			want: KindConflict,
		},
		{
			name: "git binary non-empty destination",
			err:  errors.New("fatal: destination path '/tmp/out' already exists and is not an empty directory."),
			want: KindConflict,
		},
		{
			name: "deadline",
			err:  fmt.Errorf("git clone: %w", context.DeadlineExceeded),
			want: KindNetwork,
		},
		{
			name: "dns failure",
			err:  errors.New("dial tcp: lookup example.invalid: no such host"),
			want: KindNetwork,
		},
		{
			name: "git binary dns failure",
			err:  errors.New("fatal: unable to access 'https://example.invalid/r.git/': Could not resolve host: example.invalid"),
			want: KindNetwork,
		},
		{
			name: "dial timeout",
			err:  errors.New("dial tcp 10.0.0.1:443: i/o timeout"),
			want: KindNetwork,
		},
		{
			name: "git binary connect timeout",
			err:  errors.New("ssh: connect to host example.com port 22: Connection timed out"),
			want: KindNetwork,
		},
		{
			name: "timeout in a path is not a network error",
			err:  errors.New("failed to clone repository to /srv/timeout-tests/out: something went wrong"),
			want: KindUnknown,
		},
		{
			name: "git binary missing repository with advice",
			err: errors.New("exit status 128: fatal: '/tmp/missing' does not appear to be a git repository\n" +
				"fatal: Could not read from remote repository.\n" +
				"Please make sure you have the correct access rights\nand the repository exists."),
			want: KindNotFound,
		},
		{
			name: "unrelated",
			err:  errors.New("something went wrong"),
			want: KindUnknown,
		},
		{
			name: "nil",
			err:  nil,
			want: KindUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(inspector, tt.err))
		})
	}
}

func TestMessageInspector_NilSafe(t *testing.T) {
	i := &MessageInspector{}
	assert.False(t, i.IsAuthError(nil))
	assert.False(t, i.IsNotFoundError(nil))
	assert.False(t, i.IsConflictError(nil))
	assert.False(t, i.IsNetworkError(nil))
}
