package dictionary

import (
	"errors"
	"fmt"
)

// Ingestion error categories. Loader errors wrap one of these.
var (
	ErrMalformedRecord = errors.New("malformed record")
	ErrUnexpectedEOF   = errors.New("unexpected end of input")
)

// IngestError reports where in a corpus a record could not be read.
type IngestError struct {
	Path string
	Line int
	Err  error
}

func (e *IngestError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *IngestError) Unwrap() error {
	return e.Err
}
