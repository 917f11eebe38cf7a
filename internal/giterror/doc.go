// Package giterror classifies errors reported by the transfer mechanisms.
// It recognizes go-git's typed errors first and falls back to matching the
// messages printed by the git binary, so callers never inspect strings themselves.
package giterror
