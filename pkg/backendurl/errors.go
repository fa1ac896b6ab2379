package backendurl

import "errors"

var (
	ErrUnknownRoute  = errors.New("unknown backend route")
	ErrInvalidConfig = errors.New("invalid backend url config")
)
