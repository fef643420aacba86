package gen

import (
	"bytes"
	"fmt"
	"os"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes generated files into their package directories. Files
// whose content is already on disk are left untouched so their modification
// time does not change. It returns the paths actually written.
func WriteFiles(files []*GeneratedFile) ([]string, error) {
	var written []string

	for _, file := range files {
		if file == nil {
			continue
		}

		path := file.Path()

		existing, err := os.ReadFile(path)
		if err == nil && bytes.Equal(existing, file.Content) {
			continue
		}

		if err := os.MkdirAll(file.Dir, dirPerm); err != nil {
			return written, fmt.Errorf("creating directory %s: %w", file.Dir, err)
		}

		if err := os.WriteFile(path, file.Content, filePerm); err != nil {
			return written, fmt.Errorf("writing file %s: %w", path, err)
		}

		written = append(written, path)
	}

	return written, nil
}
