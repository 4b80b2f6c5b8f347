// Package store defines the persistence interfaces for feedback records.
package store

import (
	"context"

	"github.com/tritorc/feedback-service/types"
)

// FeedbackStore handles all feedback data operations.
type FeedbackStore interface {
	// Create persists a validated submission, assigning id and timestamps,
	// and returns the stored row.
	Create(ctx context.Context, req *types.FeedbackCreate) (*types.Feedback, error)

	// List returns every stored record, most recent first.
	List(ctx context.Context) ([]*types.Feedback, error)

	// GetByID returns ErrNotFound when no record has the given id.
	GetByID(ctx context.Context, id int64) (*types.Feedback, error)

	// Update applies only the fields present in the partial payload and
	// always refreshes updated_at. Returns ErrEmptyUpdate for an empty
	// payload and ErrNotFound when the id does not exist.
	Update(ctx context.Context, id int64, req *types.FeedbackUpdate) (*types.Feedback, error)

	// Delete reports whether a row was removed; a missing id is not an
	// error.
	Delete(ctx context.Context, id int64) (bool, error)

	// Analytics computes response counts and per-rating means over the
	// whole collection.
	Analytics(ctx context.Context) (*types.FeedbackAnalytics, error)

	// Ping verifies database connectivity for readiness checks.
	Ping(ctx context.Context) error
}
