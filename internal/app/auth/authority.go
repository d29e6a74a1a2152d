package auth

import (
	"github.com/maxskaink/EventManager-sub001/internal/app/models"
)

// Action is a permission-checked operation name.
type Action string

const (
	ActionViewAny        Action = "viewAny"
	ActionViewOwned      Action = "viewOwned"
	ActionCreate         Action = "create"
	ActionUpdate         Action = "update"
	ActionDelete         Action = "delete"
	ActionGrantAccess    Action = "grantAccess"
	ActionChangeRole     Action = "changeRole"
	ActionMarkAttendance Action = "markAttendance"
)

// permissions is the single place role capabilities are enumerated.
// Services consult this table instead of re-encoding role lists inline.
// Ownership checks (an author acting on their own resource) are layered on
// top by the calling service; this table answers role capability only.
var permissions = map[models.RoleType]map[Action]bool{
	models.RoleInterested: {
		ActionViewOwned: true,
	},
	models.RoleMember: {
		ActionViewOwned: true,
		ActionCreate:    true,
	},
	models.RoleCoordinator: {
		ActionViewAny:        true,
		ActionViewOwned:      true,
		ActionCreate:         true,
		ActionUpdate:         true,
		ActionDelete:         true,
		ActionGrantAccess:    true,
		ActionMarkAttendance: true,
	},
	models.RoleMentor: {
		ActionViewAny:        true,
		ActionViewOwned:      true,
		ActionCreate:         true,
		ActionUpdate:         true,
		ActionDelete:         true,
		ActionGrantAccess:    true,
		ActionChangeRole:     true,
		ActionMarkAttendance: true,
	},
}

// Can reports whether the given role may perform the given action.
// Pure lookup: no I/O, no side effects, never an error. Unknown roles and
// unknown actions are simply not permitted.
func Can(role models.RoleType, action Action) bool {
	actions, ok := permissions[role]
	if !ok {
		return false
	}
	return actions[action]
}

// CanChangeRole reports whether actor may change the role of the user with
// targetID. Only mentors hold the changeRole capability, and no user may
// change their own role.
func CanChangeRole(actor models.Actor, targetID int64) bool {
	if actor.ID == targetID {
		return false
	}
	return Can(actor.Role, ActionChangeRole)
}
