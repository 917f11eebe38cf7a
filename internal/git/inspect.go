package git

import (
	"fmt"
	"time"

	"github.com/go-git/go-git/v5"
)

// Summary describes the checked-out state of a cloned repository
type Summary struct {
	// Root is the working tree root
	Root string `json:"root"`

	// Head is the full commit hash HEAD points at
	Head string `json:"head"`

	// Branch is the checked-out branch, empty for a detached HEAD
	Branch string `json:"branch,omitempty"`

	// Subject is the first line of the HEAD commit message
	Subject string `json:"subject"`

	// Author and When describe the HEAD commit
	Author string    `json:"author"`
	When   time.Time `json:"when"`
}

// ShortHead returns the first 8 characters of the HEAD hash
func (s *Summary) ShortHead() string {
	if len(s.Head) < 8 {
		return s.Head
	}
	return s.Head[:8]
}

// Inspect opens the repository at path and summarizes HEAD.
// It does not touch the remote.
func Inspect(path string) (*Summary, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository at %s: %w", path, err)
	}

	ref, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	commit, err := repo.CommitObject(ref.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to read HEAD commit: %w", err)
	}

	summary := &Summary{
		Root:    path,
		Head:    ref.Hash().String(),
		Subject: firstLine(commit.Message),
		Author:  commit.Author.Name,
		When:    commit.Author.When,
	}
	if ref.Name().IsBranch() {
		summary.Branch = ref.Name().Short()
	}

	// The worktree knows the real root when path was relative
	if w, err := repo.Worktree(); err == nil {
		summary.Root = w.Filesystem.Root()
	}

	return summary, nil
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' || r == '\r' {
			return s[:i]
		}
	}
	return s
}
