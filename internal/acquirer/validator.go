package acquirer

import (
	"strings"
	"unicode"

	"github.com/go-git/go-git/v5/plumbing/transport"
)

// Validator decides whether a reference is a syntactically well-formed repository locator.
// Implementations must be pure: no filesystem or network access.
type Validator interface {
	IsWellFormed(reference string) bool
}

// ValidatorFunc adapts a plain function to the Validator interface.
type ValidatorFunc func(reference string) bool

// IsWellFormed calls f(reference).
func (f ValidatorFunc) IsWellFormed(reference string) bool {
	return f(reference)
}

// URLValidator accepts the locator forms git understands:
//
//	https://host/org/repo.git   http, https, ssh and git schemes
//	git@host:org/repo.git       scp-like ssh
//	file:///srv/repo.git        local repositories, scheme required
//
// Bare local paths are rejected so that arbitrary text is never mistaken for a repository.
type URLValidator struct{}

// IsWellFormed reports whether reference parses as a remote endpoint.
func (URLValidator) IsWellFormed(reference string) bool {
	_, ok := parseEndpoint(reference)
	return ok
}

// HostAllowlist returns a Validator that applies next and then requires the endpoint host
// to be one of hosts. An empty list allows every host.
func HostAllowlist(next Validator, hosts ...string) Validator {
	if len(hosts) == 0 {
		return next
	}

	allowed := make(map[string]struct{}, len(hosts))
	for _, h := range hosts {
		allowed[strings.ToLower(strings.TrimSpace(h))] = struct{}{}
	}

	return ValidatorFunc(func(reference string) bool {
		if !next.IsWellFormed(reference) {
			return false
		}
		ep, ok := parseEndpoint(reference)
		if !ok {
			return false
		}
		_, ok = allowed[strings.ToLower(ep.Host)]
		return ok
	})
}

var remoteProtocols = map[string]bool{
	"http":  true,
	"https": true,
	"ssh":   true,
	"git":   true,
}

func parseEndpoint(reference string) (*transport.Endpoint, bool) {
	if reference == "" || strings.IndexFunc(reference, unicode.IsSpace) >= 0 {
		return nil, false
	}

	ep, err := transport.NewEndpoint(reference)
	if err != nil {
		return nil, false
	}

	// go-git treats anything it cannot parse as a local path.
	if ep.Protocol == "file" {
		if !strings.HasPrefix(strings.ToLower(reference), "file://") {
			return nil, false
		}
		return ep, strings.Trim(ep.Path, "/") != ""
	}

	if !remoteProtocols[ep.Protocol] || ep.Host == "" {
		return nil, false
	}
	return ep, strings.Trim(ep.Path, "/") != ""
}
