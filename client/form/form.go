// Package form drives the multi-section feedback survey. It owns the answers
// being collected, gates section navigation on the shared validation rules
// and submits the finished survey through the API client.
package form

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/tritorc/feedback-service/client"
	"github.com/tritorc/feedback-service/types"
	"github.com/tritorc/feedback-service/validation"
)

// Section identifies one step of the survey, in presentation order.
type Section int

const (
	SectionContactInfo Section = iota
	SectionProductRatings
	SectionServiceRatings
	SectionAdditionalFeedback
)

// sectionCount mirrors validation.Sections; navigation is bounded by it.
var sectionCount = Section(len(validation.Sections))

// defaultRating is the midpoint starting position of every rating slider.
const defaultRating = 5

// SubmitAPI is the slice of the API client the form needs.
type SubmitAPI interface {
	SubmitFeedback(ctx context.Context, req *types.FeedbackCreate) (*types.Feedback, error)
}

// Controller holds the survey state. It is safe for concurrent use so a UI
// event loop and a submission goroutine cannot corrupt it.
type Controller struct {
	mu         sync.Mutex
	api        SubmitAPI
	data       types.FeedbackCreate
	section    Section
	fieldErrs  map[string]string
	submitErr  string
	submitting bool
	submitted  *types.Feedback
}

// NewController creates a survey starting at the contact section with the
// date preset to today and every rating at the slider midpoint.
func NewController(api SubmitAPI) *Controller {
	c := &Controller{api: api}
	c.reset()
	return c
}

func (c *Controller) reset() {
	c.data = types.FeedbackCreate{
		Date:                     time.Now().Format("2006-01-02"),
		ToolBuildQuality:         defaultRating,
		Packaging:                defaultRating,
		OnTimeDelivery:           defaultRating,
		AfterSalesSupport:        defaultRating,
		ProductUsability:         defaultRating,
		RecommendationLikelihood: defaultRating,
	}
	c.section = SectionContactInfo
	c.fieldErrs = nil
	c.submitErr = ""
	c.submitted = nil
}

// Section returns the step currently presented.
func (c *Controller) Section() Section {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.section
}

// Progress reports the 1-based step number and the total number of steps.
func (c *Controller) Progress() (step, total int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return int(c.section) + 1, int(sectionCount)
}

// Data returns a copy of the answers collected so far.
func (c *Controller) Data() types.FeedbackCreate {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data
}

// Set applies a mutation to the answers. Field errors for the current
// section are cleared so the user is not shouted at while still typing.
func (c *Controller) Set(mutate func(*types.FeedbackCreate)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	mutate(&c.data)
	c.fieldErrs = nil
}

// Errors returns the validation messages from the last failed navigation or
// submission attempt, keyed by wire field name.
func (c *Controller) Errors() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]string, len(c.fieldErrs))
	for k, v := range c.fieldErrs {
		out[k] = v
	}
	return out
}

// SubmitError returns the message from the last failed submission, empty when
// none.
func (c *Controller) SubmitError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitErr
}

// Next validates the current section and advances past it. It returns false,
// leaving the section unchanged, when the section has invalid answers or the
// survey is already on its last section.
func (c *Controller) Next() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.section >= sectionCount-1 {
		return false
	}
	if !c.validateSection(c.section) {
		return false
	}
	c.section++
	return true
}

// Back moves to the previous section without validating; partially filled
// answers are kept.
func (c *Controller) Back() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.section == SectionContactInfo {
		return false
	}
	c.section--
	c.fieldErrs = nil
	return true
}

// validateSection runs the shared rules for one section and records any
// violations. Caller holds the lock.
func (c *Controller) validateSection(s Section) bool {
	errs := validation.ValidateFields(&c.data, validation.Sections[s])
	if len(errs) == 0 {
		c.fieldErrs = nil
		return true
	}
	c.fieldErrs = make(map[string]string, len(errs))
	for _, e := range errs {
		c.fieldErrs[e.Field] = e.Message
	}
	return false
}

// Submit sends the survey. It is only available from the final section; the
// full rule set runs first so answers invalidated after an earlier Next are
// still caught. On a validation rejection from either side the controller
// stays on its current section with the messages available through Errors.
// Only one submission may be in flight at a time; a second call while one is
// pending returns false immediately.
func (c *Controller) Submit(ctx context.Context) bool {
	c.mu.Lock()
	if c.submitting || c.submitted != nil {
		c.mu.Unlock()
		return false
	}
	if c.section != sectionCount-1 {
		c.mu.Unlock()
		return false
	}

	if errs := validation.ValidateCreate(&c.data); len(errs) > 0 {
		c.fieldErrs = make(map[string]string, len(errs))
		for _, e := range errs {
			c.fieldErrs[e.Field] = e.Message
		}
		c.mu.Unlock()
		return false
	}

	c.submitting = true
	req := c.data
	c.mu.Unlock()

	fb, err := c.api.SubmitFeedback(ctx, &req)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitting = false

	if err != nil {
		if apiErr, ok := err.(*client.APIError); ok {
			c.submitErr = apiErr.Message
			if len(apiErr.Details) > 0 {
				c.submitErr = apiErr.Message + ": " + strings.Join(apiErr.Details, "; ")
			}
		} else {
			c.submitErr = "Could not reach the feedback service. Please try again."
		}
		return false
	}

	c.submitErr = ""
	c.fieldErrs = nil
	c.submitted = fb
	return true
}

// Submitted returns the stored record once the survey has been accepted, nil
// before that.
func (c *Controller) Submitted() *types.Feedback {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitted
}

// Reset discards all answers and starts a fresh survey.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}
