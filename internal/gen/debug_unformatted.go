package gen

import (
	"os"
	"path/filepath"
	"strings"
)

// writeDebugUnformatted writes unformatted code to a sidecar file next to the
// intended output. It is best-effort.
func writeDebugUnformatted(dir, filename string, content []byte) error {
	if dir == "" || filename == "" {
		return nil
	}

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return err
	}

	// The sidecar must not end in .go, or the next load would compile it.
	debugName := strings.TrimSuffix(filename, ".go") + ".go.unformatted"

	return os.WriteFile(filepath.Join(dir, debugName), content, filePerm)
}
