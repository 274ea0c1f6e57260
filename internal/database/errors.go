package database

import (
	"errors"

	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

var (
	// ErrNotInitialized is returned by every operation that runs before Initialize.
	ErrNotInitialized = errors.New("store not initialized")

	// ErrStorageUnavailable means the database file could not be opened or migrated.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrDuplicateName is returned when a collection or tag name is already taken.
	ErrDuplicateName = errors.New("name already exists")

	// ErrNotFound is returned when an update targets a row that does not exist.
	ErrNotFound = errors.New("not found")
)

// IsUniqueViolation reports whether err comes from a UNIQUE or PRIMARY KEY constraint.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// IsForeignKeyViolation reports whether err comes from a FOREIGN KEY constraint.
func IsForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	return false
}
