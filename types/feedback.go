package types

import "time"

// Feedback is one customer's stored survey response. JSON field names match
// the persisted snake_case column names; every read endpoint returns this
// shape. The secondary email keeps its historical wire name "email_id".
type Feedback struct {
	ID                       int64     `json:"id"`
	Email                    string    `json:"email"`
	Date                     string    `json:"date"`
	SecondaryEmail           string    `json:"email_id"`
	ContactName              string    `json:"contact_name"`
	CompanyName              string    `json:"company_name"`
	Country                  string    `json:"country"`
	ToolBuildQuality         int       `json:"tool_build_quality"`
	Packaging                int       `json:"packaging"`
	OnTimeDelivery           int       `json:"on_time_delivery"`
	AfterSalesSupport        int       `json:"after_sales_support"`
	ProductUsability         int       `json:"product_usability"`
	RecommendationLikelihood int       `json:"recommendation_likelihood"`
	Suggestions              string    `json:"suggestions"`
	CreatedAt                time.Time `json:"created_at"`
	UpdatedAt                time.Time `json:"updated_at"`
}

// FeedbackCreate is the submission payload. Write requests use camelCase
// field names while reads return snake_case; the asymmetry is part of the
// existing wire contract and is preserved for compatibility.
type FeedbackCreate struct {
	Email                    string `json:"email"`
	Date                     string `json:"date"`
	SecondaryEmail           string `json:"emailId"`
	ContactName              string `json:"contactName"`
	CompanyName              string `json:"companyName"`
	Country                  string `json:"country"`
	ToolBuildQuality         int    `json:"toolBuildQuality"`
	Packaging                int    `json:"packaging"`
	OnTimeDelivery           int    `json:"onTimeDelivery"`
	AfterSalesSupport        int    `json:"afterSalesSupport"`
	ProductUsability         int    `json:"productUsability"`
	RecommendationLikelihood int    `json:"recommendationLikelihood"`
	Suggestions              string `json:"suggestions"`
}

// FeedbackUpdate is the partial-update payload. Nil fields are left
// unchanged; updated_at is refreshed on every applied update.
type FeedbackUpdate struct {
	Email                    *string `json:"email,omitempty"`
	Date                     *string `json:"date,omitempty"`
	SecondaryEmail           *string `json:"emailId,omitempty"`
	ContactName              *string `json:"contactName,omitempty"`
	CompanyName              *string `json:"companyName,omitempty"`
	Country                  *string `json:"country,omitempty"`
	ToolBuildQuality         *int    `json:"toolBuildQuality,omitempty"`
	Packaging                *int    `json:"packaging,omitempty"`
	OnTimeDelivery           *int    `json:"onTimeDelivery,omitempty"`
	AfterSalesSupport        *int    `json:"afterSalesSupport,omitempty"`
	ProductUsability         *int    `json:"productUsability,omitempty"`
	RecommendationLikelihood *int    `json:"recommendationLikelihood,omitempty"`
	Suggestions              *string `json:"suggestions,omitempty"`
}

// IsEmpty reports whether the update carries no fields at all.
func (u *FeedbackUpdate) IsEmpty() bool {
	return u.Email == nil &&
		u.Date == nil &&
		u.SecondaryEmail == nil &&
		u.ContactName == nil &&
		u.CompanyName == nil &&
		u.Country == nil &&
		u.ToolBuildQuality == nil &&
		u.Packaging == nil &&
		u.OnTimeDelivery == nil &&
		u.AfterSalesSupport == nil &&
		u.ProductUsability == nil &&
		u.RecommendationLikelihood == nil &&
		u.Suggestions == nil
}

// FeedbackAnalytics summarizes the whole collection. Averages are rounded to
// one decimal place; an empty collection yields zero for every field.
type FeedbackAnalytics struct {
	TotalResponses    int64   `json:"total_responses"`
	AvgToolQuality    float64 `json:"avg_tool_quality"`
	AvgPackaging      float64 `json:"avg_packaging"`
	AvgDelivery       float64 `json:"avg_delivery"`
	AvgSupport        float64 `json:"avg_support"`
	AvgUsability      float64 `json:"avg_usability"`
	AvgRecommendation float64 `json:"avg_recommendation"`
	AvgOverall        float64 `json:"avg_overall"`
}
