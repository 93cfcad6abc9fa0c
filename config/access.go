package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// CheckDirAccess ensures dir is a readable directory, and a writable one when
// write is set.
func CheckDirAccess(dir string, write bool) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNoAccess, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrNoAccess, dir)
	}
	return access(dir, write)
}

// CheckFileAccess ensures the file at path can be written, or created when it
// does not exist yet.
func CheckFileAccess(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return CheckDirAccess(filepath.Dir(path), true)
	}
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNoAccess, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrNoAccess, path)
	}
	return access(path, true)
}
