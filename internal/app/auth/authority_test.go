package auth

import (
	"testing"

	"github.com/maxskaink/EventManager-sub001/internal/app/models"
)

func TestStaffRolesHoldResourceWideActions(t *testing.T) {
	staff := []models.RoleType{models.RoleCoordinator, models.RoleMentor}
	actions := []Action{ActionViewAny, ActionUpdate, ActionDelete, ActionGrantAccess, ActionMarkAttendance}

	for _, role := range staff {
		for _, action := range actions {
			if !Can(role, action) {
				t.Errorf("expected %s to be allowed %s", role, action)
			}
		}
	}
}

func TestNonStaffRolesAreScopedToOwnedResources(t *testing.T) {
	for _, role := range []models.RoleType{models.RoleInterested, models.RoleMember} {
		if !Can(role, ActionViewOwned) {
			t.Errorf("expected %s to view owned resources", role)
		}
		for _, action := range []Action{ActionViewAny, ActionGrantAccess, ActionChangeRole, ActionMarkAttendance} {
			if Can(role, action) {
				t.Errorf("expected %s to be denied %s", role, action)
			}
		}
	}
}

func TestOnlyMembersAndStaffCreate(t *testing.T) {
	if Can(models.RoleInterested, ActionCreate) {
		t.Error("interested users must not create resources")
	}
	for _, role := range []models.RoleType{models.RoleMember, models.RoleCoordinator, models.RoleMentor} {
		if !Can(role, ActionCreate) {
			t.Errorf("expected %s to create resources", role)
		}
	}
}

func TestChangeRoleIsMentorOnly(t *testing.T) {
	if Can(models.RoleCoordinator, ActionChangeRole) {
		t.Error("coordinators must not change roles")
	}
	if !Can(models.RoleMentor, ActionChangeRole) {
		t.Error("mentors must change roles")
	}
}

func TestCanChangeRoleNeverAllowsSelf(t *testing.T) {
	mentor := models.Actor{ID: 7, Role: models.RoleMentor}
	if CanChangeRole(mentor, mentor.ID) {
		t.Error("a mentor must not change their own role")
	}
	if !CanChangeRole(mentor, 8) {
		t.Error("a mentor must be able to change another user's role")
	}
	coordinator := models.Actor{ID: 3, Role: models.RoleCoordinator}
	if CanChangeRole(coordinator, 8) {
		t.Error("a coordinator must not change roles")
	}
}

func TestUnknownRoleIsDeniedEverything(t *testing.T) {
	if Can(models.RoleType("admin"), ActionViewOwned) {
		t.Error("unknown roles must be denied")
	}
}
