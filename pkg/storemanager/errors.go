package storemanager

import "errors"

var (
	ErrStoreNotFound  = errors.New("store not found")
	ErrNoDefaultStore = errors.New("no default store configured")
	ErrInvalidStores  = errors.New("invalid stores definition")
	ErrFailedToLoad   = errors.New("failed to load stores file")
	ErrDuplicateStore = errors.New("duplicate store")
)
