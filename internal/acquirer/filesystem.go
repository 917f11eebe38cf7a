package acquirer

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
)

// Filesystem is the part of the filesystem the Acquirer touches.
type Filesystem interface {
	// IsDir reports whether path exists and is a directory.
	// A missing path is not an error.
	IsDir(path string) (bool, error)

	// MkdirAll creates path and any missing parents.
	MkdirAll(path string) error
}

// AferoFilesystem implements Filesystem on top of an afero.Fs.
type AferoFilesystem struct {
	fs afero.Fs
}

// NewFilesystem wraps fs. Use afero.NewOsFs() for the real disk.
func NewFilesystem(fs afero.Fs) *AferoFilesystem {
	return &AferoFilesystem{fs: fs}
}

// IsDir reports whether path is an existing directory.
func (a *AferoFilesystem) IsDir(path string) (bool, error) {
	info, err := a.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return info.IsDir(), nil
}

// MkdirAll creates the directory with mode 0755.
func (a *AferoFilesystem) MkdirAll(path string) error {
	return a.fs.MkdirAll(path, 0o755)
}
