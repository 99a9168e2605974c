package service

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for auth and ingestion flows. Handlers map these to 4xx
// responses; anything else is treated as an opaque internal failure.
var (
	ErrDuplicateUser      = errors.New("username already registered")
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrMalformedFile      = errors.New("file is not valid UTF-8 text")
)

// MissingColumnsError reports required CSV columns absent from the header.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return "CSV is missing required columns: " + strings.Join(e.Columns, ", ")
}

// InvalidRowError reports the first invalid data row. Rows are 1-indexed,
// excluding the header. One bad row aborts the whole upload.
type InvalidRowError struct {
	Row    int
	Reason string
}

func (e *InvalidRowError) Error() string {
	return fmt.Sprintf("invalid data in row %d: %s", e.Row, e.Reason)
}
