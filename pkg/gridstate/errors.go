package gridstate

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input is not a readable xlsx or dataset document.
var ErrInvalidFormat = errors.New("invalid dataset format")

// ErrNoHeader indicates the sheet has no header row to derive columns from.
var ErrNoHeader = errors.New("no header row")

// LoadError represents an error while loading a dataset.
type LoadError struct {
	Sheet     string
	Component string // "rows", "header", "region", "document"
	Err       error
}

func (e *LoadError) Error() string {
	if e.Sheet == "" {
		return fmt.Sprintf("load error (%s): %v", e.Component, e.Err)
	}
	return fmt.Sprintf("load error in sheet %q (%s): %v", e.Sheet, e.Component, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// NewLoadError creates a new LoadError.
func NewLoadError(sheet, component string, err error) *LoadError {
	return &LoadError{
		Sheet:     sheet,
		Component: component,
		Err:       err,
	}
}
