package role

// Role separates ordinary clients from dashboard administrators.
type Role int

const (
	Client Role = iota
	Admin
)

func (r Role) String() string {
	switch r {
	case Client:
		return "client"
	case Admin:
		return "admin"
	default:
		return "unknown"
	}
}
