package ds

// Status is the admin-controlled workflow state of a service request.
type Status string

const (
	StatusPending    Status = "pending"
	StatusApproved   Status = "approved"
	StatusRejected   Status = "rejected"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// statusFlow lists the transitions offered out of each state. Absent or
// empty entries are terminal: rejected and completed never move again.
var statusFlow = map[Status][]Status{
	StatusPending:    {StatusApproved, StatusRejected},
	StatusApproved:   {StatusInProgress},
	StatusInProgress: {StatusCompleted},
	StatusRejected:   {},
	StatusCompleted:  {},
}

func (s Status) Valid() bool {
	_, ok := statusFlow[s]
	return ok
}

// CanTransitionTo reports whether next is directly reachable from s.
// Unknown statuses cannot transition anywhere.
func (s Status) CanTransitionTo(next Status) bool {
	for _, candidate := range statusFlow[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// NextStatuses returns the transitions currently offered, in a fixed order.
func (s Status) NextStatuses() []Status {
	flow := statusFlow[s]
	out := make([]Status, len(flow))
	copy(out, flow)
	return out
}

func (s Status) Terminal() bool {
	return len(statusFlow[s]) == 0
}

// Label returns the display label shown in the dashboard. Statuses outside
// the known set fall back to their raw value.
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "En attente"
	case StatusApproved:
		return "Approuvé"
	case StatusRejected:
		return "Refusé"
	case StatusInProgress:
		return "En cours"
	case StatusCompleted:
		return "Terminé"
	default:
		return string(s)
	}
}

// PaymentStatus tracks payment separately from the request workflow. It is
// stored on every request but no in-scope operation transitions it; payment
// is a manual follow-up.
type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

func (p PaymentStatus) Label() string {
	switch p {
	case PaymentUnpaid:
		return "Non payé"
	case PaymentPaid:
		return "Payé"
	default:
		return string(p)
	}
}
