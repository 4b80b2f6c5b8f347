// Package dashboard backs the admin view of collected feedback: a loaded
// snapshot of all records with search, deletion, CSV export and the
// aggregate analytics summary.
package dashboard

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/tritorc/feedback-service/types"
)

// API is the slice of the feedback client the dashboard needs.
type API interface {
	GetAllFeedback(ctx context.Context) ([]*types.Feedback, error)
	DeleteFeedback(ctx context.Context, id int64) error
	GetAnalytics(ctx context.Context) (*types.FeedbackAnalytics, error)
}

// Dashboard holds one loaded snapshot of the feedback collection. It is not
// safe for concurrent use; callers drive it from a single UI loop.
type Dashboard struct {
	api       API
	records   []*types.Feedback
	analytics *types.FeedbackAnalytics
	loaded    bool
}

func New(api API) *Dashboard {
	return &Dashboard{api: api}
}

// Load fetches all records and the analytics summary, replacing any previous
// snapshot.
func (d *Dashboard) Load(ctx context.Context) error {
	records, err := d.api.GetAllFeedback(ctx)
	if err != nil {
		return fmt.Errorf("failed to load feedback: %w", err)
	}

	analytics, err := d.api.GetAnalytics(ctx)
	if err != nil {
		return fmt.Errorf("failed to load analytics: %w", err)
	}

	d.records = records
	d.analytics = analytics
	d.loaded = true
	return nil
}

// Loaded reports whether a snapshot has been fetched.
func (d *Dashboard) Loaded() bool {
	return d.loaded
}

// Records returns the current snapshot, newest first.
func (d *Dashboard) Records() []*types.Feedback {
	return d.records
}

// Analytics returns the aggregate summary from the last Load.
func (d *Dashboard) Analytics() *types.FeedbackAnalytics {
	return d.analytics
}

// Search filters the snapshot by a case-insensitive substring match over
// contact name, company name and email. A blank query returns everything.
func (d *Dashboard) Search(query string) []*types.Feedback {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return d.records
	}

	var matched []*types.Feedback
	for _, fb := range d.records {
		if strings.Contains(strings.ToLower(fb.ContactName), query) ||
			strings.Contains(strings.ToLower(fb.CompanyName), query) ||
			strings.Contains(strings.ToLower(fb.Email), query) {
			matched = append(matched, fb)
		}
	}
	return matched
}

// Delete removes a record after the confirm callback approves it. The local
// snapshot is updated on success so the view stays consistent without a
// reload.
func (d *Dashboard) Delete(ctx context.Context, id int64, confirm func() bool) (bool, error) {
	if confirm != nil && !confirm() {
		return false, nil
	}

	if err := d.api.DeleteFeedback(ctx, id); err != nil {
		return false, fmt.Errorf("failed to delete feedback: %w", err)
	}

	for i, fb := range d.records {
		if fb.ID == id {
			d.records = append(d.records[:i], d.records[i+1:]...)
			break
		}
	}
	return true, nil
}

// csvHeader is the column order of the CSV export.
var csvHeader = []string{
	"ID", "Email", "Date", "Secondary Email", "Contact Name", "Company",
	"Country", "Tool Quality", "Packaging", "Delivery", "Support",
	"Usability", "Recommendation", "Suggestions", "Created At",
}

// ExportCSV writes the current snapshot as CSV. Quoting and escaping are
// handled by encoding/csv, so suggestions containing commas or newlines
// survive a round trip through a spreadsheet.
func (d *Dashboard) ExportCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, fb := range d.records {
		row := []string{
			strconv.FormatInt(fb.ID, 10),
			fb.Email,
			fb.Date,
			fb.SecondaryEmail,
			fb.ContactName,
			fb.CompanyName,
			fb.Country,
			strconv.Itoa(fb.ToolBuildQuality),
			strconv.Itoa(fb.Packaging),
			strconv.Itoa(fb.OnTimeDelivery),
			strconv.Itoa(fb.AfterSalesSupport),
			strconv.Itoa(fb.ProductUsability),
			strconv.Itoa(fb.RecommendationLikelihood),
			fb.Suggestions,
			fb.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// AverageRating formats one average from the analytics summary for display,
// always with one decimal place. An unloaded or empty dashboard shows "0.0".
func (d *Dashboard) AverageRating(selector func(*types.FeedbackAnalytics) float64) string {
	if d.analytics == nil {
		return "0.0"
	}
	return strconv.FormatFloat(selector(d.analytics), 'f', 1, 64)
}
