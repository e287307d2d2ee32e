package internal

import (
	"errors"
	"fmt"
)

// RootError means the storage root itself is missing or unreadable.
// It is the only failure that aborts a whole query.
type RootError struct {
	Path string
	Err  error
}

func (e *RootError) Error() string {
	return fmt.Sprintf("storage root unavailable: %s: %v", e.Path, e.Err)
}

func (e *RootError) Unwrap() error {
	return e.Err
}

// StorageError represents errors accessing a single store file
type StorageError struct {
	Path string
	Op   string // "open", "read", "scan"
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ParseError represents errors decoding a single record
type ParseError struct {
	Source string // "globalStorage", "workspaceStorage"
	Key    string // storage key or file path
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error [%s] %s: %v", e.Source, e.Key, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NotFoundError is returned when a requested entity has no matching record,
// as opposed to an entity that exists but is empty.
type NotFoundError struct {
	Kind string // "conversation", "project"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// IsNotFound reports whether err is a NotFoundError
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
