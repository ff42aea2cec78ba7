package ds

import "testing"

func TestPlanAmount(t *testing.T) {
	cases := []struct {
		plan   Plan
		amount float64
	}{
		{PlanBasic, 600},
		{PlanStandard, 1200},
		{PlanPro, 2000},
		{Plan(""), 0},
		{Plan("enterprise"), 0},
	}

	for _, c := range cases {
		if got := c.plan.Amount(); got != c.amount {
			t.Errorf("%q: expected %.0f, got %.0f", c.plan, c.amount, got)
		}
	}
}

func TestPlanValid(t *testing.T) {
	for _, p := range []Plan{PlanBasic, PlanStandard, PlanPro} {
		if !p.Valid() {
			t.Errorf("%s should be valid", p)
		}
	}
	if Plan("enterprise").Valid() {
		t.Error("enterprise is not a known plan")
	}
}

func TestServiceTypeValid(t *testing.T) {
	for _, s := range []ServiceType{ServiceAudit, ServiceMaintenance, ServiceRemote, ServiceHardware, ServiceSecurity, ServiceNetwork} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if ServiceType("cloud").Valid() {
		t.Error("cloud is not a known service type")
	}
}

func TestServiceTypeLabel(t *testing.T) {
	if got := ServiceRemote.Label(); got != "Support à distance" {
		t.Errorf("unexpected label %q", got)
	}
	if got := ServiceType("cloud").Label(); got != "" {
		t.Errorf("unknown service type should have no label, got %q", got)
	}
}
