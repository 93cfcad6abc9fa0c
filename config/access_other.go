//go:build !linux

package config

import (
	"fmt"
	"os"
)

// owner permission bits only, the effective user is not known here
func access(path string, write bool) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNoAccess, err)
	}
	perm := info.Mode().Perm()
	if perm&0400 == 0 {
		return fmt.Errorf("%w: %s is not readable", ErrNoAccess, path)
	}
	if write && perm&0200 == 0 {
		return fmt.Errorf("%w: %s is not writable", ErrNoAccess, path)
	}
	return nil
}
