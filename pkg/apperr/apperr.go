// Package apperr defines the typed error taxonomy shared by the service and
// handler layers. Every repository operation returns either a value or one of
// these errors; nothing in the vault panics on a failure path.
package apperr

import (
	"errors"
	"fmt"
)

// Sentinel errors for conflict conditions discovered at commit time.
var (
	// ErrDuplicateName is returned when a create would violate a
	// case-sensitive name uniqueness rule (e.g. two galleries named the
	// same). Recoverable: the caller can prompt for a new name.
	ErrDuplicateName = errors.New("duplicate name")

	// ErrConflictingDelete is returned when an update discovers at commit
	// time that the target entity was concurrently deleted. The entity is
	// neither resurrected nor silently discarded; the caller decides.
	ErrConflictingDelete = errors.New("entity deleted by concurrent operation")
)

// ValidationError reports malformed or missing required input. It is always
// raised before any I/O, so a validation failure has no side effects.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Reason
	}

	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

// Validation builds a ValidationError for a single field.
func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// BlobStoreError reports a failure against the file-backed blob layer.
type BlobStoreError struct {
	Op       string // put, get, delete, mkdir
	Category string
	Key      string
	Err      error
}

func (e *BlobStoreError) Error() string {
	return fmt.Sprintf("blob %s %s/%s: %v", e.Op, e.Category, e.Key, e.Err)
}

func (e *BlobStoreError) Unwrap() error { return e.Err }

// BlobStore builds a BlobStoreError.
func BlobStore(op, category, key string, err error) error {
	return &BlobStoreError{Op: op, Category: category, Key: key, Err: err}
}

// PersistenceError reports a failed commit against the entity graph: the
// transaction rolled back and no partial mutation is visible.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Persistence wraps err as a PersistenceError unless it already carries a
// taxonomy type, in which case it is passed through unchanged.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}

	var (
		ve *ValidationError
		be *BlobStoreError
		pe *PersistenceError
		ne *NotFoundError
	)

	if errors.As(err, &ve) || errors.As(err, &be) || errors.As(err, &pe) || errors.As(err, &ne) ||
		errors.Is(err, ErrDuplicateName) || errors.Is(err, ErrConflictingDelete) {
		return err
	}

	return &PersistenceError{Op: op, Err: err}
}

// NotFoundError reports a lookup by identifier that yielded no entity or blob.
type NotFoundError struct {
	Entity string // artwork, gallery, project, projectUpdate, reference, componentTag, blob
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s: not found", e.Entity, e.ID)
}

// NotFound builds a NotFoundError.
func NotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsBlobStore reports whether err is a BlobStoreError.
func IsBlobStore(err error) bool {
	var be *BlobStoreError
	return errors.As(err, &be)
}
