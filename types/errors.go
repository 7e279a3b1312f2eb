package types

import "fmt"

// ExtractionError reports an unreadable or corrupt source document. It is
// unrecoverable for that document and is surfaced to the caller; it never
// crashes the process.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
