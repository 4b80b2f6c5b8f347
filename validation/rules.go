// Package validation holds the single declarative rule table for feedback
// submissions. The API handlers run it as the authoritative check and the
// form controller runs the same table per section, so the two sides cannot
// drift apart.
package validation

import (
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/tritorc/feedback-service/types"
)

// Kind classifies how a field's value is checked.
type Kind int

const (
	KindEmail Kind = iota
	KindDate
	KindText
	KindRating
)

// Rule describes one field: its camelCase wire name, the snake_case column
// it maps to, and the fixed messages reported when it is violated.
type Rule struct {
	Field    string
	Column   string
	Kind     Kind
	MinLen   int
	MaxLen   int
	Required string
	Invalid  string
	TooLong  string
}

// Rules lists every validated field in wire order. Messages are the exact
// strings the API has always returned.
var Rules = []Rule{
	{Field: "email", Column: "email", Kind: KindEmail,
		Required: "Email is required",
		Invalid:  "Please enter a valid email address"},
	{Field: "date", Column: "date", Kind: KindDate,
		Required: "Date is required",
		Invalid:  "Please enter a valid date"},
	{Field: "emailId", Column: "email_id", Kind: KindEmail,
		Required: "Secondary email is required",
		Invalid:  "Please enter a valid secondary email address"},
	{Field: "contactName", Column: "contact_name", Kind: KindText, MinLen: 1, MaxLen: 255,
		Required: "Contact name is required",
		Invalid:  "Contact name is required",
		TooLong:  "Contact name must be less than 255 characters"},
	{Field: "companyName", Column: "company_name", Kind: KindText, MinLen: 1, MaxLen: 255,
		Required: "Company name is required",
		Invalid:  "Company name is required",
		TooLong:  "Company name must be less than 255 characters"},
	{Field: "country", Column: "country", Kind: KindText, MinLen: 1, MaxLen: 100,
		Required: "Country is required",
		Invalid:  "Country is required",
		TooLong:  "Country name must be less than 100 characters"},
	{Field: "toolBuildQuality", Column: "tool_build_quality", Kind: KindRating,
		Required: "Tool build quality rating is required",
		Invalid:  "Tool build quality rating must be between 1 and 10"},
	{Field: "packaging", Column: "packaging", Kind: KindRating,
		Required: "Packaging rating is required",
		Invalid:  "Packaging rating must be between 1 and 10"},
	{Field: "onTimeDelivery", Column: "on_time_delivery", Kind: KindRating,
		Required: "On-time delivery rating is required",
		Invalid:  "On-time delivery rating must be between 1 and 10"},
	{Field: "afterSalesSupport", Column: "after_sales_support", Kind: KindRating,
		Required: "After sales support rating is required",
		Invalid:  "After sales support rating must be between 1 and 10"},
	{Field: "productUsability", Column: "product_usability", Kind: KindRating,
		Required: "Product usability rating is required",
		Invalid:  "Product usability rating must be between 1 and 10"},
	{Field: "recommendationLikelihood", Column: "recommendation_likelihood", Kind: KindRating,
		Required: "Recommendation likelihood rating is required",
		Invalid:  "Recommendation likelihood rating must be between 1 and 10"},
	{Field: "suggestions", Column: "suggestions", Kind: KindText, MinLen: 10, MaxLen: 5000,
		Required: "Suggestions are required",
		Invalid:  "Please provide at least 10 characters of feedback",
		TooLong:  "Suggestions must be less than 5000 characters"},
}

// Sections groups the wire field names into the four form sections, in the
// order the form presents them.
var Sections = [][]string{
	{"email", "date", "emailId", "contactName", "companyName", "country"},
	{"toolBuildQuality", "packaging", "onTimeDelivery"},
	{"afterSalesSupport", "productUsability", "recommendationLikelihood"},
	{"suggestions"},
}

// FieldError is one violated rule: the wire field name and its message.
type FieldError struct {
	Field   string
	Message string
}

// formats checks format primitives (email, ISO date) so the rule table does
// not re-implement them.
var formats = validator.New()

// RuleFor returns the rule for a wire field name.
func RuleFor(field string) (Rule, bool) {
	for _, r := range Rules {
		if r.Field == field {
			return r, true
		}
	}
	return Rule{}, false
}

// ValidateCreate checks a full submission and returns every violated rule in
// table order. A nil return means the submission is valid.
func ValidateCreate(req *types.FeedbackCreate) []FieldError {
	var errs []FieldError
	for _, r := range Rules {
		if msg := checkCreateField(req, r); msg != "" {
			errs = append(errs, FieldError{Field: r.Field, Message: msg})
		}
	}
	return errs
}

// ValidateFields checks only the named fields of a submission; the form
// controller uses it to validate one section at a time.
func ValidateFields(req *types.FeedbackCreate, fields []string) []FieldError {
	var errs []FieldError
	for _, name := range fields {
		r, ok := RuleFor(name)
		if !ok {
			continue
		}
		if msg := checkCreateField(req, r); msg != "" {
			errs = append(errs, FieldError{Field: r.Field, Message: msg})
		}
	}
	return errs
}

// ValidateUpdate checks a partial payload. Absent (nil) fields are skipped;
// any field that is present must satisfy its full rule.
func ValidateUpdate(req *types.FeedbackUpdate) []FieldError {
	var errs []FieldError
	for _, r := range Rules {
		s, n := updateValue(req, r.Field)
		var msg string
		switch {
		case s != nil:
			msg = checkString(r, *s)
		case n != nil:
			msg = checkRating(r, *n)
		default:
			continue
		}
		if msg != "" {
			errs = append(errs, FieldError{Field: r.Field, Message: msg})
		}
	}
	return errs
}

// Messages flattens field errors into the details array the API returns.
func Messages(errs []FieldError) []string {
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Message
	}
	return msgs
}

func checkCreateField(req *types.FeedbackCreate, r Rule) string {
	switch r.Kind {
	case KindRating:
		return checkRating(r, ratingValue(req, r.Field))
	default:
		return checkString(r, stringValue(req, r.Field))
	}
}

func checkString(r Rule, v string) string {
	if v == "" {
		return r.Required
	}
	switch r.Kind {
	case KindEmail:
		if formats.Var(v, "email") != nil {
			return r.Invalid
		}
	case KindDate:
		if formats.Var(v, "datetime=2006-01-02") != nil {
			return r.Invalid
		}
	case KindText:
		n := utf8.RuneCountInString(v)
		if n < r.MinLen {
			return r.Invalid
		}
		if n > r.MaxLen {
			return r.TooLong
		}
	}
	return ""
}

func checkRating(r Rule, v int) string {
	if v == 0 {
		return r.Required
	}
	if v < 1 || v > 10 {
		return r.Invalid
	}
	return ""
}

// stringValue and ratingValue are the exhaustive wire-name translation
// tables for the create payload; a rule added without a case here simply
// validates the zero value, which the tests catch.
func stringValue(req *types.FeedbackCreate, field string) string {
	switch field {
	case "email":
		return req.Email
	case "date":
		return req.Date
	case "emailId":
		return req.SecondaryEmail
	case "contactName":
		return req.ContactName
	case "companyName":
		return req.CompanyName
	case "country":
		return req.Country
	case "suggestions":
		return req.Suggestions
	}
	return ""
}

func ratingValue(req *types.FeedbackCreate, field string) int {
	switch field {
	case "toolBuildQuality":
		return req.ToolBuildQuality
	case "packaging":
		return req.Packaging
	case "onTimeDelivery":
		return req.OnTimeDelivery
	case "afterSalesSupport":
		return req.AfterSalesSupport
	case "productUsability":
		return req.ProductUsability
	case "recommendationLikelihood":
		return req.RecommendationLikelihood
	}
	return 0
}

func updateValue(req *types.FeedbackUpdate, field string) (*string, *int) {
	switch field {
	case "email":
		return req.Email, nil
	case "date":
		return req.Date, nil
	case "emailId":
		return req.SecondaryEmail, nil
	case "contactName":
		return req.ContactName, nil
	case "companyName":
		return req.CompanyName, nil
	case "country":
		return req.Country, nil
	case "toolBuildQuality":
		return nil, req.ToolBuildQuality
	case "packaging":
		return nil, req.Packaging
	case "onTimeDelivery":
		return nil, req.OnTimeDelivery
	case "afterSalesSupport":
		return nil, req.AfterSalesSupport
	case "productUsability":
		return nil, req.ProductUsability
	case "recommendationLikelihood":
		return nil, req.RecommendationLikelihood
	case "suggestions":
		return req.Suggestions, nil
	}
	return nil, nil
}
