package validate

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrEmptyName        = errors.New("empty name")
	ErrInvalidScore     = errors.New("invalid score")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
)
