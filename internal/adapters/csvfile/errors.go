package csvfile

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrEmptyFile = errors.New("empty csv file")
	ErrDecode    = errors.New("csv decode failed")
)
