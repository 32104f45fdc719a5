package xlsxparser

import "fmt"

// SourceReadError reports a BOM source that could not be opened or whose
// tabular structure could not be read. It aborts the whole comparison.
type SourceReadError struct {
	// Path is the source that failed.
	Path string

	// Err is the underlying reader error.
	Err error
}

// Error implements the error interface.
func (e *SourceReadError) Error() string {
	return fmt.Sprintf("cannot read BOM %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *SourceReadError) Unwrap() error {
	return e.Err
}
