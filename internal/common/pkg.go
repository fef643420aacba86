package common

import (
	"path/filepath"
	"strconv"
)

// UniqueName returns name, or name followed by the smallest number >= 2 that
// taken reports as free.
func UniqueName(name string, taken func(string) bool) string {
	if !taken(name) {
		return name
	}

	for i := 2; ; i++ {
		candidate := name + strconv.Itoa(i)
		if !taken(candidate) {
			return candidate
		}
	}
}

// SameFile reports whether filename has the base name base.
func SameFile(filename, base string) bool {
	return filename != "" && filepath.Base(filename) == base
}
