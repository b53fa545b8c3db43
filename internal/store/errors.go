package store

import "fmt"

// ColorNotFoundError is returned when a lookup matches no record.
type ColorNotFoundError struct {
	Key string
}

func (e *ColorNotFoundError) Error() string {
	return fmt.Sprintf("color %q not found", e.Key)
}

// StoreReadError reports a store file that is missing or not a JSON object.
type StoreReadError struct {
	Path string
	Err  error
}

func (e *StoreReadError) Error() string {
	return fmt.Sprintf("cannot read color store %s: %v", e.Path, e.Err)
}

func (e *StoreReadError) Unwrap() error { return e.Err }

// EntryError reports a single store entry that could not be resolved.
// Loading skips such entries.
type EntryError struct {
	Key string
	Err error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("entry %q: %v", e.Key, e.Err)
}

func (e *EntryError) Unwrap() error { return e.Err }
