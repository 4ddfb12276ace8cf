package export

import (
	"fmt"
	"os"
	"path/filepath"
)

// Sink receives encoded images for saving. It returns where the bytes ended
// up.
type Sink interface {
	Save(name string, data []byte) (string, error)
}

// FileSink writes downloads into Dir. An empty Dir means the working
// directory.
type FileSink struct {
	Dir string
}

// Save writes data to Dir/name, creating Dir if needed. Only the base name of
// name is used so a download cannot escape Dir.
func (s FileSink) Save(name string, data []byte) (string, error) {
	if name == "" {
		name = DefaultFilename
	}
	name = filepath.Base(name)

	path := name
	if s.Dir != "" {
		if err := os.MkdirAll(s.Dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create save directory: %w", err)
		}
		path = filepath.Join(s.Dir, name)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}
	return path, nil
}
