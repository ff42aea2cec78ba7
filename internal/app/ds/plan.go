package ds

// Plan is a named service tier with a fixed monthly price.
type Plan string

const (
	PlanBasic    Plan = "basic"
	PlanStandard Plan = "standard"
	PlanPro      Plan = "pro"
)

func (p Plan) Valid() bool {
	switch p {
	case PlanBasic, PlanStandard, PlanPro:
		return true
	}
	return false
}

// Amount returns the monthly price in DH. The amount is derived exactly once
// at submission time and stored on the request; an absent or unknown plan
// prices at 0.
func (p Plan) Amount() float64 {
	switch p {
	case PlanBasic:
		return 600
	case PlanStandard:
		return 1200
	case PlanPro:
		return 2000
	default:
		return 0
	}
}

func (p Plan) Label() string {
	switch p {
	case PlanBasic:
		return "Forfait Basic"
	case PlanStandard:
		return "Forfait Standard"
	case PlanPro:
		return "Forfait Pro"
	default:
		return ""
	}
}

// ServiceType is the category of IT service being requested. The value
// "remote" keeps the wire value used by existing clients for remote support.
type ServiceType string

const (
	ServiceAudit       ServiceType = "audit"
	ServiceMaintenance ServiceType = "maintenance"
	ServiceRemote      ServiceType = "remote"
	ServiceHardware    ServiceType = "hardware"
	ServiceSecurity    ServiceType = "security"
	ServiceNetwork     ServiceType = "network"
)

func (t ServiceType) Valid() bool {
	switch t {
	case ServiceAudit, ServiceMaintenance, ServiceRemote, ServiceHardware, ServiceSecurity, ServiceNetwork:
		return true
	}
	return false
}

func (t ServiceType) Label() string {
	switch t {
	case ServiceAudit:
		return "Audit informatique"
	case ServiceMaintenance:
		return "Maintenance mensuelle"
	case ServiceRemote:
		return "Support à distance"
	case ServiceHardware:
		return "Remplacement matériel"
	case ServiceSecurity:
		return "Sécurité informatique"
	case ServiceNetwork:
		return "Gestion de réseau"
	default:
		return ""
	}
}
