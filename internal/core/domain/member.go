package domain

// Role is the caller's membership level on the task's owning project.
// Membership administration lives outside this service; roles are only
// read here to gate tracking and review operations.
type Role string

const (
	RoleNone     Role = ""
	RoleMember   Role = "member"
	RoleReviewer Role = "reviewer"
	RoleAdmin    Role = "admin"
)

func (r Role) CanTrack() bool {
	return r != RoleNone
}

func (r Role) CanReview() bool {
	return r == RoleReviewer || r == RoleAdmin
}
