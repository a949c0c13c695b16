package policy

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidTimeFormat = errors.New("invalid time format")
	ErrInvalidPercent    = errors.New("invalid max percent")
	ErrWindowNotPositive = errors.New("penalty window not positive")
)
