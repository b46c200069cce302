package actor

// Role is the authenticated caller's role within its organization.
type Role string

const (
	RoleFarmAdmin    Role = "FARM_ADMIN"
	RoleFieldManager Role = "FIELD_MANAGER"
)

// Actor is the already-authenticated identity every orchestrator
// operation runs as. The HTTP layer builds it from the token; the core
// never parses credentials itself.
type Actor struct {
	UserID         string
	OrganizationID string
	Role           Role
}

func (a Actor) IsFarmAdmin() bool    { return a.Role == RoleFarmAdmin }
func (a Actor) IsFieldManager() bool { return a.Role == RoleFieldManager }
