package store

import "errors"

// Predefined errors for the store layer.
var (
	// ErrNotFound indicates that an id-based lookup matched no record.
	ErrNotFound = errors.New("record not found")

	// ErrEmptyUpdate indicates a partial update with no fields to apply.
	ErrEmptyUpdate = errors.New("no fields to update")
)
