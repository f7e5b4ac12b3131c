// Package store implements the account-scoped data access layer: the
// identity gate, the three master-data registries and the two transaction
// ledgers. Every method takes the owning user ID and only ever sees that
// account's rows.
package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrDuplicateKey is returned when a natural key (username, email,
	// product SKU, supplier or customer name) already exists for the
	// owning account.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrInvalidCredentials is returned on any authentication failure.
	// Unknown username and wrong password are deliberately
	// indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError reports a missing required field or unparseable input.
// Nothing is written when a save fails validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func missingField(field string) error {
	return &ValidationError{Field: field, Reason: "is required"}
}

func invalidNumber(field string) error {
	return &ValidationError{Field: field, Reason: "must be a valid number"}
}

// Store wraps the database handle shared by all registries.
type Store struct {
	db *gorm.DB

	// ImagesDir is where product images are copied. Empty disables
	// image storage.
	ImagesDir string
}

// New creates a Store on top of an open database.
func New(db *gorm.DB, imagesDir string) *Store {
	return &Store{db: db, ImagesDir: imagesDir}
}
