package form

import (
	"errors"
	"fmt"
	"time"

	"itsupport/internal/app/ds"

	"github.com/google/uuid"
)

// Step is a named state of the request form. The form always moves along
// contact -> details -> review; review is left only by submitting.
type Step string

const (
	StepContact Step = "contact"
	StepDetails Step = "details"
	StepReview  Step = "review"
)

var (
	// ErrContactIncomplete blocks leaving the contact step while a required
	// field is empty. Only presence is checked, never format.
	ErrContactIncomplete = errors.New("veuillez remplir tous les champs obligatoires")
	ErrAlreadyAtReview   = errors.New("draft is already at the review step")
)

// Draft is the mutable state of one in-progress service request. It lives in
// Redis until submitted or expired; submission writes the persistent record
// and deletes the draft.
type Draft struct {
	ID        string    `json:"id"`
	Step      Step      `json:"step"`
	CreatedAt time.Time `json:"created_at"`

	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Company  string `json:"company"`

	ServiceType ds.ServiceType `json:"service_type"`
	Plan        ds.Plan        `json:"plan"`
	Description string         `json:"description"`
}

// NewDraft starts a draft at the contact step. serviceType and plan come
// from deep-link query parameters; invalid values are dropped silently so a
// stale link still opens a blank form.
func NewDraft(serviceType ds.ServiceType, plan ds.Plan) *Draft {
	d := &Draft{
		ID:        uuid.New().String(),
		Step:      StepContact,
		CreatedAt: time.Now(),
	}
	if serviceType.Valid() {
		d.ServiceType = serviceType
	}
	if plan.Valid() {
		d.Plan = plan
	}
	return d
}

// Advance moves the draft to the next step. The contact step is the only
// gated one; the details step carries optional fields only.
func (d *Draft) Advance() error {
	switch d.Step {
	case StepContact:
		if d.FullName == "" || d.Email == "" || d.Phone == "" {
			return ErrContactIncomplete
		}
		d.Step = StepDetails
		return nil
	case StepDetails:
		d.Step = StepReview
		return nil
	case StepReview:
		return ErrAlreadyAtReview
	default:
		return fmt.Errorf("unknown form step %q", d.Step)
	}
}

// Back returns to the previous step. Going back never blocks and never
// loses entered data; at the contact step it is a no-op.
func (d *Draft) Back() {
	switch d.Step {
	case StepReview:
		d.Step = StepDetails
	case StepDetails:
		d.Step = StepContact
	}
}

// Summary is the computed recap shown on the review step.
type Summary struct {
	ServiceLabel string  `json:"service_label,omitempty"`
	PlanLabel    string  `json:"plan_label,omitempty"`
	TotalAmount  float64 `json:"total_amount"`
	TotalLabel   string  `json:"total_label"`
}

func (d *Draft) Summary() Summary {
	s := Summary{
		ServiceLabel: d.ServiceType.Label(),
		PlanLabel:    d.Plan.Label(),
		TotalAmount:  d.Plan.Amount(),
	}
	if d.Plan.Valid() {
		s.TotalLabel = fmt.Sprintf("%.0f DH", s.TotalAmount)
	} else {
		s.TotalLabel = "À déterminer"
	}
	return s
}
