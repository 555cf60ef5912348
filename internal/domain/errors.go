package domain

import "fmt"

// ValidationError reports a missing or unusable required field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// DuplicateError reports a url+category collision against a live
// (non-trashed) bookmark, or a duplicate category name.
type DuplicateError struct {
	URL      string
	Category string
}

func (e *DuplicateError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("category %q already exists", e.Category)
	}
	return fmt.Sprintf("bookmark %q already exists in category %q", e.URL, e.Category)
}

// NotFoundError reports an operation targeting an unknown bookmark id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("bookmark not found: %s", e.ID)
}

// ParseError reports malformed JSON or an otherwise unreadable container.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("parse failed: %s", e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

// DecryptionError reports an authentication failure while decrypting an
// encrypted export: wrong password or corrupted ciphertext. It is kept
// distinct from ParseError so callers can tell the two apart.
type DecryptionError struct {
	Err error
}

func (e *DecryptionError) Error() string {
	return fmt.Sprintf("decryption failed (wrong password or corrupt file): %v", e.Err)
}

func (e *DecryptionError) Unwrap() error { return e.Err }
