package model

import "fmt"

// RejectionError is returned by the validation gate when the row set is
// not a revenue table. It is the only hard failure mode: the caller's
// result becomes the JSON literal null.
type RejectionError struct {
	Reason string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("not a revenue table: %s", e.Reason)
}

// NewRejectionError creates a new rejection error
func NewRejectionError(reason string) *RejectionError {
	return &RejectionError{Reason: reason}
}

// IngestError represents a failure converting source material into rows
type IngestError struct {
	Source  string
	Message string
	Cause   error
}

func (e *IngestError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ingest failed [%s]: %s (%v)", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("ingest failed [%s]: %s", e.Source, e.Message)
}

func (e *IngestError) Unwrap() error {
	return e.Cause
}

// NewIngestError creates a new ingest error
func NewIngestError(source, message string, cause error) *IngestError {
	return &IngestError{
		Source:  source,
		Message: message,
		Cause:   cause,
	}
}
