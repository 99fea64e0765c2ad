// Package authz holds the role and ownership rules shared by every
// module. Roles are an open set of tags; only MANAGER and ADMIN carry
// privileges and anything unrecognized behaves like EMPLOYEE.
package authz

import (
	"strings"

	"github.com/google/uuid"
)

const (
	RoleEmployee = "EMPLOYEE"
	RoleManager  = "MANAGER"
	RoleAdmin    = "ADMIN"
)

func NormalizeRole(role string) string {
	return strings.ToUpper(strings.TrimSpace(role))
}

func IsPrivileged(role string) bool {
	switch NormalizeRole(role) {
	case RoleManager, RoleAdmin:
		return true
	default:
		return false
	}
}

// EffectiveRole maps a role tag to the role used for route permissions.
func EffectiveRole(role string) string {
	switch r := NormalizeRole(role); r {
	case RoleManager, RoleAdmin:
		return r
	default:
		return RoleEmployee
	}
}

func CanApproveOrDeny(role string) bool {
	return IsPrivileged(role)
}

func CanDeleteTimeOff(actorID, actorRole, ownerID string) bool {
	return isOwner(actorID, ownerID) || IsPrivileged(actorRole)
}

// CanViewTimeOffHistory guards the audit trail of a single request.
func CanViewTimeOffHistory(actorID, actorRole, ownerID string) bool {
	return isOwner(actorID, ownerID) || IsPrivileged(actorRole)
}

func CanManageRsvpEntry(actorID, actorRole, entryOwnerID string) bool {
	return isOwner(actorID, entryOwnerID) || IsPrivileged(actorRole)
}

// CanManageEvents guards creating, editing and removing company events.
func CanManageEvents(role string) bool {
	return IsPrivileged(role)
}

func CanMarkOrdered(role string) bool {
	return IsPrivileged(role)
}

func CanDeleteOrderRequest(actorID, actorRole, requesterID string) bool {
	return isOwner(actorID, requesterID) || IsPrivileged(actorRole)
}

// isOwner compares ids as UUIDs when both parse, so case, braces and the
// urn:uuid: prefix do not matter. Other ids must match exactly.
func isOwner(actorID, ownerID string) bool {
	actorID = strings.TrimSpace(actorID)
	ownerID = strings.TrimSpace(ownerID)
	if actorID == "" || ownerID == "" {
		return false
	}
	a, aErr := uuid.Parse(actorID)
	o, oErr := uuid.Parse(ownerID)
	if aErr == nil && oErr == nil {
		return a == o
	}
	return actorID == ownerID
}
