package trash

import (
	"errors"
	"fmt"
)

// Common errors returned by trash operations
var (
	// ErrNotFound is returned when the path to trash does not exist
	ErrNotFound = errors.New("no such file or directory")

	// ErrAlreadyInTrash is returned when attempting to trash the trash
	// directory itself or an item already inside one
	ErrAlreadyInTrash = errors.New("already in trash")

	// ErrCrossDevice is returned when source and trash directory turn out to
	// be on different filesystems
	ErrCrossDevice = errors.New("cross-device move not supported")

	// ErrDestinationExists is returned when a restore target already exists;
	// restoration never overwrites
	ErrDestinationExists = errors.New("destination already exists")

	// ErrDestinationUnavailable is returned when the parent directory of a
	// restore target no longer exists
	ErrDestinationUnavailable = errors.New("destination directory no longer exists")

	// ErrTrashedItemMissing is returned when the payload for a trash entry is
	// gone from files/
	ErrTrashedItemMissing = errors.New("trashed item not found")
)

// IntegrityError indicates that a candidate trash root cannot be trusted,
// e.g. because it is a symbolic link. Such a directory is never used, with
// no fallback.
type IntegrityError struct {
	Path   string
	Reason string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("trash directory %s is untrusted: %s", e.Path, e.Reason)
}

// DecodeError indicates a malformed .trashinfo record. Field names the
// offending part of the record.
type DecodeError struct {
	Path  string
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("malformed trash info %s: %s", e.Path, e.Field)
	}
	return fmt.Sprintf("malformed trash info %s: %s: %v", e.Path, e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// StorageError wraps an error with additional context about the trash
// operation that produced it.
type StorageError struct {
	// Op is the operation that failed (e.g., "put", "restore", "purge")
	Op string

	// Path is the path of the file that caused the error
	Path string

	// Err is the underlying error
	Err error
}

func (e *StorageError) Error() string {
	if e.Path == "" {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error { return e.Err }

// NewStorageError creates a new StorageError
func NewStorageError(op, path string, err error) error {
	return &StorageError{
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// IsNotFound returns true if the error is ErrNotFound
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyInTrash returns true if the error is ErrAlreadyInTrash
func IsAlreadyInTrash(err error) bool {
	return errors.Is(err, ErrAlreadyInTrash)
}

// IsCrossDevice returns true if the error is ErrCrossDevice
func IsCrossDevice(err error) bool {
	return errors.Is(err, ErrCrossDevice)
}

// IsDestinationExists returns true if the error is ErrDestinationExists
func IsDestinationExists(err error) bool {
	return errors.Is(err, ErrDestinationExists)
}
