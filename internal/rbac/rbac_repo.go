package rbac

import "go-staffhub/internal/authz"

const (
	ResourceTime     = "time"
	ResourceTimeOff  = "timeoff"
	ResourceRsvp     = "rsvp"
	ResourceCalendar = "calendar"
	ResourceRBAC     = "rbac"
	ResourceEvent    = "event"
	ResourceOrder    = "order_request"

	ActionRead    = "read"
	ActionWrite   = "write"
	ActionDelete  = "delete"
	ActionApprove = "approve"
)

type RolePermissionRow struct {
	Role     string
	Resource string
	Action   string
}

type RoleInheritanceRow struct {
	Role   string
	Parent string
}

//go:generate mockgen -source=rbac_repo.go -destination=mock/rbac_repo_mock.go -package=mock
type Repository interface {
	GetRolePermissions() ([]RolePermissionRow, error)
	GetRoleInheritance() ([]RoleInheritanceRow, error)
}

// staticRepository serves the built-in route policy. Record-level checks
// (ownership, approval) live in authz and run inside the services.
type staticRepository struct{}

func NewRepository() Repository {
	return staticRepository{}
}

func (staticRepository) GetRolePermissions() ([]RolePermissionRow, error) {
	return []RolePermissionRow{
		{authz.RoleEmployee, ResourceTime, ActionRead},
		{authz.RoleEmployee, ResourceTime, ActionWrite},
		{authz.RoleEmployee, ResourceTimeOff, ActionRead},
		{authz.RoleEmployee, ResourceTimeOff, ActionWrite},
		{authz.RoleEmployee, ResourceTimeOff, ActionDelete},
		{authz.RoleEmployee, ResourceRsvp, ActionRead},
		{authz.RoleEmployee, ResourceRsvp, ActionWrite},
		{authz.RoleEmployee, ResourceRsvp, ActionDelete},
		{authz.RoleEmployee, ResourceCalendar, ActionRead},
		{authz.RoleEmployee, ResourceRBAC, ActionRead},
		{authz.RoleEmployee, ResourceEvent, ActionRead},
		{authz.RoleEmployee, ResourceOrder, ActionRead},
		{authz.RoleEmployee, ResourceOrder, ActionWrite},
		{authz.RoleEmployee, ResourceOrder, ActionDelete},
		{authz.RoleManager, ResourceTimeOff, ActionApprove},
		{authz.RoleManager, ResourceEvent, ActionWrite},
		{authz.RoleManager, ResourceEvent, ActionDelete},
		{authz.RoleManager, ResourceOrder, ActionApprove},
	}, nil
}

func (staticRepository) GetRoleInheritance() ([]RoleInheritanceRow, error) {
	return []RoleInheritanceRow{
		{Role: authz.RoleManager, Parent: authz.RoleEmployee},
		{Role: authz.RoleAdmin, Parent: authz.RoleManager},
	}, nil
}
