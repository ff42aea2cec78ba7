package form

import (
	"errors"
	"testing"

	"itsupport/internal/app/ds"
)

func TestNewDraftPrefill(t *testing.T) {
	d := NewDraft(ds.ServiceSecurity, ds.PlanPro)
	if d.Step != StepContact {
		t.Fatalf("new draft should start at contact, got %s", d.Step)
	}
	if d.ServiceType != ds.ServiceSecurity || d.Plan != ds.PlanPro {
		t.Errorf("prefill lost: %s %s", d.ServiceType, d.Plan)
	}
	if d.ID == "" {
		t.Error("draft should have an id")
	}
}

func TestNewDraftDropsInvalidPrefill(t *testing.T) {
	// A stale deep link must still open a blank form.
	d := NewDraft(ds.ServiceType("cloud"), ds.Plan("enterprise"))
	if d.ServiceType != "" {
		t.Errorf("invalid service type should be dropped, got %q", d.ServiceType)
	}
	if d.Plan != "" {
		t.Errorf("invalid plan should be dropped, got %q", d.Plan)
	}
}

func TestAdvanceGatesContactStep(t *testing.T) {
	d := NewDraft("", "")

	if err := d.Advance(); !errors.Is(err, ErrContactIncomplete) {
		t.Fatalf("expected ErrContactIncomplete, got %v", err)
	}
	if d.Step != StepContact {
		t.Fatalf("failed advance must not move the step, got %s", d.Step)
	}

	d.FullName = "Amina El Fassi"
	d.Email = "amina@example.com"
	if err := d.Advance(); !errors.Is(err, ErrContactIncomplete) {
		t.Fatalf("phone still missing, expected ErrContactIncomplete, got %v", err)
	}

	d.Phone = "+212600000000"
	if err := d.Advance(); err != nil {
		t.Fatalf("complete contact step should advance, got %v", err)
	}
	if d.Step != StepDetails {
		t.Fatalf("expected details step, got %s", d.Step)
	}
}

func TestAdvanceDetailsNeverBlocks(t *testing.T) {
	d := &Draft{Step: StepDetails}
	if err := d.Advance(); err != nil {
		t.Fatalf("details step carries optional fields only, got %v", err)
	}
	if d.Step != StepReview {
		t.Fatalf("expected review step, got %s", d.Step)
	}

	if err := d.Advance(); !errors.Is(err, ErrAlreadyAtReview) {
		t.Fatalf("expected ErrAlreadyAtReview, got %v", err)
	}
}

func TestBack(t *testing.T) {
	d := &Draft{
		Step:     StepReview,
		FullName: "Amina El Fassi",
		Plan:     ds.PlanStandard,
	}

	d.Back()
	if d.Step != StepDetails {
		t.Fatalf("expected details, got %s", d.Step)
	}
	d.Back()
	if d.Step != StepContact {
		t.Fatalf("expected contact, got %s", d.Step)
	}
	// No-op at the first step.
	d.Back()
	if d.Step != StepContact {
		t.Fatalf("back at contact must be a no-op, got %s", d.Step)
	}

	if d.FullName != "Amina El Fassi" || d.Plan != ds.PlanStandard {
		t.Error("going back must not lose entered data")
	}
}

func TestSummaryWithPlan(t *testing.T) {
	d := &Draft{Step: StepReview, ServiceType: ds.ServiceAudit, Plan: ds.PlanStandard}

	s := d.Summary()
	if s.TotalAmount != 1200 {
		t.Errorf("expected 1200, got %.0f", s.TotalAmount)
	}
	if s.TotalLabel != "1200 DH" {
		t.Errorf("unexpected total label %q", s.TotalLabel)
	}
	if s.PlanLabel != "Forfait Standard" {
		t.Errorf("unexpected plan label %q", s.PlanLabel)
	}
	if s.ServiceLabel != "Audit informatique" {
		t.Errorf("unexpected service label %q", s.ServiceLabel)
	}
}

func TestSummaryWithoutPlan(t *testing.T) {
	d := &Draft{Step: StepReview}

	s := d.Summary()
	if s.TotalAmount != 0 {
		t.Errorf("expected 0, got %.0f", s.TotalAmount)
	}
	if s.TotalLabel != "À déterminer" {
		t.Errorf("unexpected total label %q", s.TotalLabel)
	}
}
