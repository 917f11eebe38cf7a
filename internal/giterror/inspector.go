package giterror

import (
	"context"
	"errors"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
)

// Inspector provides methods for analyzing clone errors.
type Inspector interface {
	// IsAuthError returns true if the remote rejected or required credentials.
	IsAuthError(err error) bool

	// IsNotFoundError returns true if the repository or branch does not exist.
	IsNotFoundError(err error) bool

	// IsConflictError returns true if the destination already holds a repository.
	IsConflictError(err error) bool

	// IsNetworkError returns true if the remote could not be reached.
	IsNetworkError(err error) bool
}

// Kind is a coarse classification of a clone error.
type Kind string

const (
	KindAuth     Kind = "auth"
	KindNotFound Kind = "not-found"
	KindConflict Kind = "conflict"
	KindNetwork  Kind = "network"
	KindUnknown  Kind = "unknown"
)

// Classify returns the first matching kind, checked in the order auth,
// not found, conflict, network.
func Classify(i Inspector, err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case i.IsAuthError(err):
		return KindAuth
	case i.IsNotFoundError(err):
		return KindNotFound
	case i.IsConflictError(err):
		return KindConflict
	case i.IsNetworkError(err):
		return KindNetwork
	default:
		return KindUnknown
	}
}

// MessageInspector implements Inspector by matching error text, which is all
// the git binary gives us.
type MessageInspector struct{}

// NewInspector returns the default inspector: typed go-git errors first,
// then message matching.
func NewInspector() Inspector {
	return NewErrorChainInspector(&MessageInspector{})
}

func contains(err error, needles ...string) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, n := range needles {
		if strings.Contains(msg, n) {
			return true
		}
	}
	return false
}

// IsAuthError checks if the error is an authentication or authorization error.
func (i *MessageInspector) IsAuthError(err error) bool {
	return contains(err,
		"authentication required",
		"authentication failed",
		"authorization failed",
		"could not read username",
		"permission denied (publickey",
		"returned error: 401",
		"returned error: 403",
	)
}

// IsNotFoundError checks if the error is a not found error.
func (i *MessageInspector) IsNotFoundError(err error) bool {
	return contains(err,
		"repository not found",
		"does not appear to be a git repository",
		"reference not found",
		"remote branch",
		"returned error: 404",
	)
}

// IsConflictError checks if the destination was already in use.
func (i *MessageInspector) IsConflictError(err error) bool {
	return contains(err,
		"repository already exists",
		"already exists and is not an empty directory",
	)
}

// IsNetworkError checks if the error is a network connectivity error.
func (i *MessageInspector) IsNetworkError(err error) bool {
	return contains(err,
		"connection refused",
		"no such host",
		"could not resolve host",
		"i/o timeout",
		"operation timed out",
		"connection timed out",
		"temporary failure",
		"dial tcp",
		"tls handshake",
		"network is unreachable",
		"deadline exceeded",
	)
}

// ErrorChainInspector wraps a base inspector and adds support for checking errors
// in the error chain using errors.Is.
type ErrorChainInspector struct {
	base Inspector
}

// NewErrorChainInspector creates a new ErrorChainInspector that checks both
// the error chain and falls back to the base inspector.
func NewErrorChainInspector(base Inspector) Inspector {
	return &ErrorChainInspector{base: base}
}

// IsAuthError checks the error chain first, then falls back to base inspector.
func (e *ErrorChainInspector) IsAuthError(err error) bool {
	if errors.Is(err, transport.ErrAuthenticationRequired) ||
		errors.Is(err, transport.ErrAuthorizationFailed) ||
		errors.Is(err, transport.ErrInvalidAuthMethod) {
		return true
	}
	return e.base.IsAuthError(err)
}

// IsNotFoundError checks the error chain first, then falls back to base inspector.
func (e *ErrorChainInspector) IsNotFoundError(err error) bool {
	if errors.Is(err, transport.ErrRepositoryNotFound) ||
		errors.Is(err, plumbing.ErrReferenceNotFound) ||
		errors.Is(err, transport.ErrEmptyRemoteRepository) {
		return true
	}
	return e.base.IsNotFoundError(err)
}

// IsConflictError checks the error chain first, then falls back to base inspector.
func (e *ErrorChainInspector) IsConflictError(err error) bool {
	if errors.Is(err, git.ErrRepositoryAlreadyExists) {
		return true
	}
	return e.base.IsConflictError(err)
}

// IsNetworkError checks the error chain first, then falls back to base inspector.
func (e *ErrorChainInspector) IsNetworkError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return e.base.IsNetworkError(err)
}
