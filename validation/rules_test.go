package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tritorc/feedback-service/types"
)

func validCreate() *types.FeedbackCreate {
	return &types.FeedbackCreate{
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
}

func TestValidateCreateAcceptsValidSubmission(t *testing.T) {
	assert.Empty(t, ValidateCreate(validCreate()))
}

func TestRatingBounds(t *testing.T) {
	tests := []struct {
		value   int
		message string
	}{
		{1, ""},
		{10, ""},
		{0, "Packaging rating is required"},
		{11, "Packaging rating must be between 1 and 10"},
		{-3, "Packaging rating must be between 1 and 10"},
	}

	for _, tt := range tests {
		req := validCreate()
		req.Packaging = tt.value
		errs := ValidateCreate(req)
		if tt.message == "" {
			assert.Empty(t, errs, "value %d should be accepted", tt.value)
		} else {
			require.Len(t, errs, 1, "value %d", tt.value)
			assert.Equal(t, "packaging", errs[0].Field)
			assert.Equal(t, tt.message, errs[0].Message)
		}
	}
}

func TestSuggestionsLengthBounds(t *testing.T) {
	tests := []struct {
		length int
		valid  bool
	}{
		{9, false},
		{10, true},
		{5000, true},
		{5001, false},
	}

	for _, tt := range tests {
		req := validCreate()
		req.Suggestions = strings.Repeat("x", tt.length)
		errs := ValidateCreate(req)
		if tt.valid {
			assert.Empty(t, errs, "length %d should be accepted", tt.length)
		} else {
			require.Len(t, errs, 1, "length %d", tt.length)
			assert.Equal(t, "suggestions", errs[0].Field)
		}
	}
}

func TestEmailFormat(t *testing.T) {
	req := validCreate()
	req.Email = "not-an-email"
	errs := ValidateCreate(req)
	require.Len(t, errs, 1)
	assert.Equal(t, "Please enter a valid email address", errs[0].Message)

	req = validCreate()
	req.SecondaryEmail = "also wrong"
	errs = ValidateCreate(req)
	require.Len(t, errs, 1)
	assert.Equal(t, "Please enter a valid secondary email address", errs[0].Message)
}

func TestDateFormat(t *testing.T) {
	req := validCreate()
	req.Date = "01/02/2024"
	errs := ValidateCreate(req)
	require.Len(t, errs, 1)
	assert.Equal(t, "Please enter a valid date", errs[0].Message)
}

func TestValidateCreateEnumeratesEveryViolation(t *testing.T) {
	errs := ValidateCreate(&types.FeedbackCreate{})
	// Every field is required, so the empty submission violates all of them.
	assert.Len(t, errs, len(Rules))

	// Violations come back in rule-table order.
	assert.Equal(t, "Email is required", errs[0].Message)
	assert.Equal(t, "Suggestions are required", errs[len(errs)-1].Message)
}

func TestTextFieldUpperBounds(t *testing.T) {
	req := validCreate()
	req.ContactName = strings.Repeat("n", 256)
	errs := ValidateCreate(req)
	require.Len(t, errs, 1)
	assert.Equal(t, "Contact name must be less than 255 characters", errs[0].Message)

	req = validCreate()
	req.Country = strings.Repeat("c", 101)
	errs = ValidateCreate(req)
	require.Len(t, errs, 1)
	assert.Equal(t, "Country name must be less than 100 characters", errs[0].Message)

	// Long but in-bounds names are valid all the way to the limit.
	req = validCreate()
	req.ContactName = strings.Repeat("n", 150)
	req.CompanyName = strings.Repeat("m", 250)
	assert.Empty(t, ValidateCreate(req))
}

func TestValidateUpdateSkipsAbsentFields(t *testing.T) {
	// Only packaging is present, and it is out of bounds.
	bad := 12
	errs := ValidateUpdate(&types.FeedbackUpdate{Packaging: &bad})
	require.Len(t, errs, 1)
	assert.Equal(t, "Packaging rating must be between 1 and 10", errs[0].Message)

	// A valid present field alongside absent ones passes.
	ok := 3
	name := "New Contact"
	assert.Empty(t, ValidateUpdate(&types.FeedbackUpdate{Packaging: &ok, ContactName: &name}))

	// An entirely empty update has nothing to validate; emptiness is
	// rejected separately as an invalid argument.
	assert.Empty(t, ValidateUpdate(&types.FeedbackUpdate{}))
	assert.True(t, (&types.FeedbackUpdate{}).IsEmpty())
}

func TestValidateFieldsChecksOnlyNamedFields(t *testing.T) {
	req := &types.FeedbackCreate{} // everything missing

	errs := ValidateFields(req, Sections[0])
	assert.Len(t, errs, 6)

	errs = ValidateFields(req, Sections[3])
	require.Len(t, errs, 1)
	assert.Equal(t, "Suggestions are required", errs[0].Message)
}

func TestSectionsCoverEveryRuleExactlyOnce(t *testing.T) {
	seen := map[string]int{}
	for _, section := range Sections {
		for _, f := range section {
			_, ok := RuleFor(f)
			assert.True(t, ok, "section field %q has no rule", f)
			seen[f]++
		}
	}
	assert.Len(t, seen, len(Rules))
	for f, n := range seen {
		assert.Equal(t, 1, n, "field %q appears in more than one section", f)
	}
}

func TestColumnsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, r := range Rules {
		assert.False(t, seen[r.Column], "duplicate column %q", r.Column)
		seen[r.Column] = true
	}
}
