package domain

import (
	"errors" // Error inspection
	"fmt"    // Message formatting
)

// Kind classifies an Error
type Kind int

// Error kinds surfaced to the API boundary
const (
	KindValidation Kind = iota + 1 // Malformed or missing input
	KindConflict                   // Invariant violation
	KindNotFound                   // Referenced entity absent or not owned by the caller
	KindAuth                       // Missing credential or insufficient role
	KindStorage                    // Backing store failure
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindAuth:
		return "auth"
	case KindStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// Conflict reasons
const (
	ReasonDuplicateName       = "duplicate_name"
	ReasonDependentVocabulary = "dependent_vocabulary"
	ReasonAlreadySaved        = "already_saved"
	ReasonDuplicateEmail      = "duplicate_email"
)

// Entities named in error context
const (
	EntityCategory   = "category"
	EntityVocabulary = "vocabulary"
	EntitySavedWord  = "saved_word"
	EntityUser       = "user"
)

// Error is the single error type returned by stores and services
type Error struct {
	Kind   Kind   // Error classification
	Entity string // Entity involved, if any
	ID     string // Entity identifier, if any
	Field  string // Offending input field, if any
	Reason string // Machine readable reason
	Err    error  // Underlying cause
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Entity != "" {
		msg += " " + e.Entity
	}
	if e.ID != "" {
		msg += " " + e.ID
	}
	if e.Field != "" {
		msg += " field=" + e.Field
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// Validation reports an invalid input field
func Validation(field, reason string) *Error {
	return &Error{Kind: KindValidation, Field: field, Reason: reason}
}

// Conflict reports an invariant violation on an entity
func Conflict(entity, id, reason string) *Error {
	return &Error{Kind: KindConflict, Entity: entity, ID: id, Reason: reason}
}

// NotFound reports a missing or foreign entity
func NotFound(entity, id string) *Error {
	return &Error{Kind: KindNotFound, Entity: entity, ID: id}
}

// Auth reports a credential or role failure
func Auth(reason string) *Error {
	return &Error{Kind: KindAuth, Reason: reason}
}

// Storage wraps a backing store failure
func Storage(op string, err error) *Error {
	return &Error{Kind: KindStorage, Reason: op, Err: err}
}

// KindOf returns the kind of err, or zero when err is not an *Error
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsKind reports whether err is an *Error of kind k
func IsKind(err error, k Kind) bool {
	return KindOf(err) == k
}

// ReasonOf returns the reason carried by err, or an empty string
func ReasonOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Reason
	}
	return ""
}

// Errorf wraps err with a formatted storage context
func Errorf(op string, err error, args ...any) *Error {
	return Storage(fmt.Sprintf(op, args...), err)
}
