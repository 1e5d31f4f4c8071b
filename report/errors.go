package report

import "fmt"

// SourceReadError indicates that the transaction log could not be opened or
// a read failed partway. It is fatal for the whole pipeline invocation and
// is never retried.
type SourceReadError struct {
	Source string // identifier of the source object
	Err    error  // the underlying cause
}

// Make sure SourceReadError implements the error interface
func (e SourceReadError) Error() string {
	return fmt.Sprintf("cannot read data from source %s: %v", e.Source, e.Err)
}

// Allow unwrapping to get the underlying cause
func (e SourceReadError) Unwrap() error {
	return e.Err
}

// SinkWriteError indicates that the report destination could not be opened
// or written. It is fatal and never retried.
type SinkWriteError struct {
	Dest string // identifier of the destination object
	Err  error  // the underlying cause
}

// Make sure SinkWriteError implements the error interface
func (e SinkWriteError) Error() string {
	return fmt.Sprintf("cannot write report to destination %s: %v", e.Dest, e.Err)
}

// Allow unwrapping to get the underlying cause
func (e SinkWriteError) Unwrap() error {
	return e.Err
}
