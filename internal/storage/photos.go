package storage

import (
	"os"
	"path/filepath"
)

// PhotoDir resolves staff photo filenames against a fixed directory. A
// missing or unreadable file means "no photo".
type PhotoDir struct {
	Dir string
}

func (p PhotoDir) Resolve(filename string) string {
	if filename == "" {
		return ""
	}
	path := filepath.Join(p.Dir, filename)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
