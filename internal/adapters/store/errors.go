package store

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrNotFound      = errors.New("policy snapshot not found")
	ErrLoadSnapshot  = errors.New("load policy snapshot failed")
	ErrSaveSnapshot  = errors.New("save policy snapshot failed")
	ErrWatchSnapshot = errors.New("watch policy snapshot failed")
)
