package tracker

import "fmt"

// ValidationError reports input that cannot be served as given. Retrying
// without changing the input will not help; the HTTP layer maps it to 400.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// StorageError reports a failed read or write against the backing store.
// The core does not retry; retry policy belongs to the store client.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("store %s: %v", e.Op, e.Err) }

func (e *StorageError) Unwrap() error { return e.Err }
