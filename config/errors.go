package config

import "errors"

var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrInvalidDate   = errors.New("invalid date")
	ErrDateOrder     = errors.New("from date is after to date")
	ErrNoAccess      = errors.New("no access")
)
