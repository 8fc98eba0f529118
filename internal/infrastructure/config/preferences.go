package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/doeshing/aih-go/internal/ports"
)

// FilePreferences reads the optional preference document (~/.aih/commands.md).
type FilePreferences struct {
	path string
}

// NewFilePreferences builds a preference source over path.
func NewFilePreferences(path string) *FilePreferences {
	return &FilePreferences{path: path}
}

// Load implements ports.PreferenceSource.
func (p *FilePreferences) Load() (string, error) {
	if p.path == "" {
		return "", nil
	}
	data, err := os.ReadFile(p.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return string(data), nil
}

// Path returns the document location.
func (p *FilePreferences) Path() string {
	return p.path
}

var _ ports.PreferenceSource = (*FilePreferences)(nil)
