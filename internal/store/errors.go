package store

import (
	"errors"  // Error inspection
	"strings" // Driver message probing

	"gorm.io/gorm" // GORM ORM library
)

// isDuplicateKey reports a unique index violation. Translated gorm errors are
// preferred; the message probe covers drivers without an error translator.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "unique constraint") || strings.Contains(s, "duplicate entry")
}

// isForeignKeyViolation reports a foreign key constraint failure
func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint")
}

// isNotFound reports a missing record
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
