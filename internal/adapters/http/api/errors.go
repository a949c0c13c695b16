package api

import (
	"errors"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest     = errors.New("bad request")
	ErrMissingFile    = errors.New("no file was uploaded")
	ErrFileTooLarge   = errors.New("uploaded file exceeds the size limit")
	ErrNotCSV         = errors.New("only CSV files are accepted")
	ErrNoValidRecords = errors.New("no valid students found in the file")
)
