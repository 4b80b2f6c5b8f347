// Package postgres implements the feedback store on PostgreSQL via pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/tritorc/feedback-service/internal/store"
	"github.com/tritorc/feedback-service/types"
)

// DB is the subset of pgxpool.Pool the store needs. Tests substitute a
// pgxmock pool through this interface.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// Ensure FeedbackStore implements store.FeedbackStore.
var _ store.FeedbackStore = (*FeedbackStore)(nil)

// FeedbackStore implements store.FeedbackStore using PostgreSQL.
type FeedbackStore struct {
	db DB
}

// NewFeedbackStore creates a feedback store backed by the given pool.
func NewFeedbackStore(db DB) *FeedbackStore {
	return &FeedbackStore{db: db}
}

// feedbackColumns is the canonical column list for reads. The date column is
// selected as text so the wire format stays YYYY-MM-DD.
const feedbackColumns = `id, email, date::text, email_id, contact_name, company_name, country,
		tool_build_quality, packaging, on_time_delivery, after_sales_support,
		product_usability, recommendation_likelihood, suggestions, created_at, updated_at`

func scanFeedback(row pgx.Row) (*types.Feedback, error) {
	fb := &types.Feedback{}
	err := row.Scan(
		&fb.ID,
		&fb.Email,
		&fb.Date,
		&fb.SecondaryEmail,
		&fb.ContactName,
		&fb.CompanyName,
		&fb.Country,
		&fb.ToolBuildQuality,
		&fb.Packaging,
		&fb.OnTimeDelivery,
		&fb.AfterSalesSupport,
		&fb.ProductUsability,
		&fb.RecommendationLikelihood,
		&fb.Suggestions,
		&fb.CreatedAt,
		&fb.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return fb, nil
}

// Create inserts a new feedback row and returns it with the generated id and
// timestamps.
func (s *FeedbackStore) Create(ctx context.Context, req *types.FeedbackCreate) (*types.Feedback, error) {
	query := `
		INSERT INTO feedback (
			email, date, email_id, contact_name, company_name, country,
			tool_build_quality, packaging, on_time_delivery, after_sales_support,
			product_usability, recommendation_likelihood, suggestions
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + feedbackColumns

	row := s.db.QueryRow(ctx, query,
		req.Email,
		req.Date,
		req.SecondaryEmail,
		req.ContactName,
		req.CompanyName,
		req.Country,
		req.ToolBuildQuality,
		req.Packaging,
		req.OnTimeDelivery,
		req.AfterSalesSupport,
		req.ProductUsability,
		req.RecommendationLikelihood,
		req.Suggestions,
	)

	fb, err := scanFeedback(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}
	return fb, nil
}

// List retrieves all feedback, newest first.
func (s *FeedbackStore) List(ctx context.Context) ([]*types.Feedback, error) {
	query := `SELECT ` + feedbackColumns + ` FROM feedback ORDER BY created_at DESC`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	defer rows.Close()

	var result []*types.Feedback
	for rows.Next() {
		fb, err := scanFeedback(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan feedback row: %w", err)
		}
		result = append(result, fb)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read feedback rows: %w", err)
	}
	return result, nil
}

// GetByID retrieves one record, returning store.ErrNotFound if absent.
func (s *FeedbackStore) GetByID(ctx context.Context, id int64) (*types.Feedback, error) {
	query := `SELECT ` + feedbackColumns + ` FROM feedback WHERE id = $1`

	fb, err := scanFeedback(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get feedback: %w", err)
	}
	return fb, nil
}

// Update applies the supplied fields only. The SET list is assembled from an
// explicit per-field mapping rather than a runtime name transform, so a
// column mismatch cannot slip through silently.
func (s *FeedbackStore) Update(ctx context.Context, id int64, req *types.FeedbackUpdate) (*types.Feedback, error) {
	var (
		set  []string
		args []any
	)
	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.Email != nil {
		add("email", *req.Email)
	}
	if req.Date != nil {
		add("date", *req.Date)
	}
	if req.SecondaryEmail != nil {
		add("email_id", *req.SecondaryEmail)
	}
	if req.ContactName != nil {
		add("contact_name", *req.ContactName)
	}
	if req.CompanyName != nil {
		add("company_name", *req.CompanyName)
	}
	if req.Country != nil {
		add("country", *req.Country)
	}
	if req.ToolBuildQuality != nil {
		add("tool_build_quality", *req.ToolBuildQuality)
	}
	if req.Packaging != nil {
		add("packaging", *req.Packaging)
	}
	if req.OnTimeDelivery != nil {
		add("on_time_delivery", *req.OnTimeDelivery)
	}
	if req.AfterSalesSupport != nil {
		add("after_sales_support", *req.AfterSalesSupport)
	}
	if req.ProductUsability != nil {
		add("product_usability", *req.ProductUsability)
	}
	if req.RecommendationLikelihood != nil {
		add("recommendation_likelihood", *req.RecommendationLikelihood)
	}
	if req.Suggestions != nil {
		add("suggestions", *req.Suggestions)
	}

	if len(args) == 0 {
		return nil, store.ErrEmptyUpdate
	}

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE feedback
		SET %s, updated_at = NOW()
		WHERE id = $%d
		RETURNING %s`,
		strings.Join(set, ", "), len(args), feedbackColumns)

	fb, err := scanFeedback(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update feedback: %w", err)
	}
	return fb, nil
}

// Delete removes one record; a missing id yields (false, nil).
func (s *FeedbackStore) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM feedback WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete feedback: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Analytics computes the response count, the mean of each rating column and
// the mean of the per-record rating average. With no rows every value is
// zero. Averages are rounded to one decimal place.
func (s *FeedbackStore) Analytics(ctx context.Context) (*types.FeedbackAnalytics, error) {
	query := `
		SELECT
			COUNT(*) AS total_responses,
			COALESCE(AVG(tool_build_quality), 0)::float8 AS avg_tool_quality,
			COALESCE(AVG(packaging), 0)::float8 AS avg_packaging,
			COALESCE(AVG(on_time_delivery), 0)::float8 AS avg_delivery,
			COALESCE(AVG(after_sales_support), 0)::float8 AS avg_support,
			COALESCE(AVG(product_usability), 0)::float8 AS avg_usability,
			COALESCE(AVG(recommendation_likelihood), 0)::float8 AS avg_recommendation,
			COALESCE(AVG((tool_build_quality + packaging + on_time_delivery +
				after_sales_support + product_usability + recommendation_likelihood) / 6.0), 0)::float8 AS avg_overall
		FROM feedback`

	a := &types.FeedbackAnalytics{}
	err := s.db.QueryRow(ctx, query).Scan(
		&a.TotalResponses,
		&a.AvgToolQuality,
		&a.AvgPackaging,
		&a.AvgDelivery,
		&a.AvgSupport,
		&a.AvgUsability,
		&a.AvgRecommendation,
		&a.AvgOverall,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute analytics: %w", err)
	}

	a.AvgToolQuality = round1(a.AvgToolQuality)
	a.AvgPackaging = round1(a.AvgPackaging)
	a.AvgDelivery = round1(a.AvgDelivery)
	a.AvgSupport = round1(a.AvgSupport)
	a.AvgUsability = round1(a.AvgUsability)
	a.AvgRecommendation = round1(a.AvgRecommendation)
	a.AvgOverall = round1(a.AvgOverall)
	return a, nil
}

// Ping verifies database connectivity.
func (s *FeedbackStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func round1(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(1).Float64()
	return f
}
