package config

import (
	"fmt"

	"golang.org/x/sys/unix"
)

func access(path string, write bool) error {
	mode := uint32(unix.R_OK)
	if write {
		mode |= unix.W_OK
	}
	if err := unix.Access(path, mode); err != nil {
		return fmt.Errorf("%w: %s: %s", ErrNoAccess, path, err)
	}
	return nil
}
