// Package auth holds the authorization policy for forum content.
//
// All role checks live here so the decision rules cannot drift between
// route handlers. The functions are pure: no I/O, no side effects.
package auth

import (
	"github.com/emrekoc/schoolforum/internal/app/models"
)

// CanModify reports whether an actor may update or delete a resource:
// the owner always may, and moderators (teachers, admins) may regardless
// of ownership.
func CanModify(actorRole models.Role, actorID, resourceOwnerID int64) bool {
	if actorID == resourceOwnerID {
		return true
	}
	switch actorRole {
	case models.RoleTeacher, models.RoleAdmin:
		return true
	case models.RoleStudent:
		return false
	}
	return false
}

// CanModerate reports whether an actor may pin/lock posts and manage
// categories.
func CanModerate(actorRole models.Role) bool {
	switch actorRole {
	case models.RoleTeacher, models.RoleAdmin:
		return true
	case models.RoleStudent:
		return false
	}
	return false
}

// CanManageUsers reports whether an actor may administer user accounts.
func CanManageUsers(actorRole models.Role) bool {
	switch actorRole {
	case models.RoleAdmin:
		return true
	case models.RoleStudent, models.RoleTeacher:
		return false
	}
	return false
}
