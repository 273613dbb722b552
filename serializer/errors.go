package serializer

import "fmt"

// WriterError reports an invalid URI or a non-serializable node encountered
// during output.
type WriterError struct {
	Message string
}

func (e *WriterError) Error() string { return e.Message }

func writerErrorf(format string, args ...interface{}) *WriterError {
	return &WriterError{Message: fmt.Sprintf(format, args...)}
}
