package scopeconfig

import "errors"

var (
	// ErrNotFound is returned when no value is configured for a path in any
	// scope checked.
	ErrNotFound = errors.New("config value not found")
	// ErrInvalidScope is returned for an unknown scope name.
	ErrInvalidScope = errors.New("invalid config scope")

	ErrQueryFailed = errors.New("config query failed")
	ErrCacheFailed = errors.New("config cache failure")
)
