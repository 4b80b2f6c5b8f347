package router

import (
	"context"
	"math"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tritorc/feedback-service/client"
	"github.com/tritorc/feedback-service/config"
	"github.com/tritorc/feedback-service/handlers"
	"github.com/tritorc/feedback-service/internal/store"
	"github.com/tritorc/feedback-service/types"
)

// memStore is an in-memory store.FeedbackStore so the whole HTTP surface can
// be exercised against one consistent state.
type memStore struct {
	mu      sync.Mutex
	nextID  int64
	records []*types.Feedback
}

func newMemStore() *memStore {
	return &memStore{nextID: 1}
}

func (m *memStore) Create(ctx context.Context, req *types.FeedbackCreate) (*types.Feedback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	fb := &types.Feedback{
		ID:                       m.nextID,
		Email:                    req.Email,
		Date:                     req.Date,
		SecondaryEmail:           req.SecondaryEmail,
		ContactName:              req.ContactName,
		CompanyName:              req.CompanyName,
		Country:                  req.Country,
		ToolBuildQuality:         req.ToolBuildQuality,
		Packaging:                req.Packaging,
		OnTimeDelivery:           req.OnTimeDelivery,
		AfterSalesSupport:        req.AfterSalesSupport,
		ProductUsability:         req.ProductUsability,
		RecommendationLikelihood: req.RecommendationLikelihood,
		Suggestions:              req.Suggestions,
		CreatedAt:                now,
		UpdatedAt:                now,
	}
	m.nextID++
	m.records = append(m.records, fb)
	return fb, nil
}

func (m *memStore) List(ctx context.Context) ([]*types.Feedback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*types.Feedback, len(m.records))
	copy(out, m.records)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) GetByID(ctx context.Context, id int64) (*types.Feedback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, fb := range m.records {
		if fb.ID == id {
			return fb, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memStore) Update(ctx context.Context, id int64, req *types.FeedbackUpdate) (*types.Feedback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, fb := range m.records {
		if fb.ID == id {
			if req.Packaging != nil {
				fb.Packaging = *req.Packaging
			}
			if req.Suggestions != nil {
				fb.Suggestions = *req.Suggestions
			}
			fb.UpdatedAt = time.Now().UTC()
			return fb, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memStore) Delete(ctx context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, fb := range m.records {
		if fb.ID == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) Analytics(ctx context.Context) (*types.FeedbackAnalytics, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a := &types.FeedbackAnalytics{TotalResponses: int64(len(m.records))}
	if len(m.records) == 0 {
		return a, nil
	}

	var quality, packaging, delivery, support, usability, recommendation, overall float64
	for _, fb := range m.records {
		quality += float64(fb.ToolBuildQuality)
		packaging += float64(fb.Packaging)
		delivery += float64(fb.OnTimeDelivery)
		support += float64(fb.AfterSalesSupport)
		usability += float64(fb.ProductUsability)
		recommendation += float64(fb.RecommendationLikelihood)
		overall += float64(fb.ToolBuildQuality+fb.Packaging+fb.OnTimeDelivery+
			fb.AfterSalesSupport+fb.ProductUsability+fb.RecommendationLikelihood) / 6.0
	}

	n := float64(len(m.records))
	round1 := func(v float64) float64 { return math.Round(v/n*10) / 10 }
	a.AvgToolQuality = round1(quality)
	a.AvgPackaging = round1(packaging)
	a.AvgDelivery = round1(delivery)
	a.AvgSupport = round1(support)
	a.AvgUsability = round1(usability)
	a.AvgRecommendation = round1(recommendation)
	a.AvgOverall = round1(overall)
	return a, nil
}

func (m *memStore) Ping(ctx context.Context) error { return nil }

var _ store.FeedbackStore = (*memStore)(nil)

func newTestService(t *testing.T) *client.Client {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{
			Environment:    config.EnvDevelopment,
			AllowedOrigins: []string{"*"},
		},
	}
	s := newMemStore()
	r := SetupRouter(Dependencies{
		Config:          cfg,
		FeedbackHandler: handlers.NewFeedbackHandler(s),
		HealthHandler:   handlers.NewHealthHandler(s, "test"),
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return client.NewClient(srv.URL + "/api")
}

// The full submission lifecycle through the real HTTP stack: submit, read
// back, and verify the analytics reflect the stored record.
func TestFeedbackLifecycle(t *testing.T) {
	c := newTestService(t)
	ctx := context.Background()

	submission := &types.FeedbackCreate{
		Email:                    "a@x.com",
		Date:                     "2024-01-01",
		SecondaryEmail:           "b@x.com",
		ContactName:              "Jane",
		CompanyName:              "Acme",
		Country:                  "Canada",
		ToolBuildQuality:         8,
		Packaging:                7,
		OnTimeDelivery:           9,
		AfterSalesSupport:        6,
		ProductUsability:         8,
		RecommendationLikelihood: 9,
		Suggestions:              "Great product overall.",
	}

	created, err := c.SubmitFeedback(ctx, submission)
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "a@x.com", created.Email)
	assert.False(t, created.CreatedAt.IsZero())

	list, err := c.GetAllFeedback(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	fetched, err := c.GetFeedbackByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Great product overall.", fetched.Suggestions)

	analytics, err := c.GetAnalytics(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), analytics.TotalResponses)
	assert.Equal(t, 8.0, analytics.AvgToolQuality)
	assert.Equal(t, 7.0, analytics.AvgPackaging)
	assert.Equal(t, 9.0, analytics.AvgDelivery)
	// (8+7+9+6+8+9)/6 = 7.8333..., rounded to one decimal.
	assert.Equal(t, 7.8, analytics.AvgOverall)

	require.NoError(t, c.DeleteFeedback(ctx, created.ID))

	analytics, err = c.GetAnalytics(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), analytics.TotalResponses)
	assert.Zero(t, analytics.AvgOverall)
}

// An invalid submission is rejected by the server with the full detail list,
// even if a client skipped its own validation.
func TestFeedbackLifecycleRejectsInvalidSubmission(t *testing.T) {
	c := newTestService(t)

	_, err := c.SubmitFeedback(context.Background(), &types.FeedbackCreate{
		Email: "not-an-email",
	})
	require.Error(t, err)

	apiErr, ok := err.(*client.APIError)
	require.True(t, ok)
	assert.Equal(t, "Validation failed", apiErr.Message)
	assert.Contains(t, apiErr.Details, "Please enter a valid email address")

	list, err := c.GetAllFeedback(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}
