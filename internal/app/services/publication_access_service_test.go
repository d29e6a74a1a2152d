package services

import (
	"context"
	"errors"
	"testing"

	"github.com/maxskaink/EventManager-sub001/internal/app/models"
	"github.com/maxskaink/EventManager-sub001/internal/pkg/apperrors"
)

func newAccessFixture() (*PublicationAccessService, *fakePublicationStore, *fakeAccessStore, *fakeRoleRoster) {
	pubs := newFakePublicationStore()
	accesses := newFakeAccessStore()
	roster := &fakeRoleRoster{holders: make(map[models.RoleType][]int64)}
	return NewPublicationAccessService(pubs, accesses, roster), pubs, accesses, roster
}

func TestCanViewAuthorSeesOwnWorkRegardlessOfState(t *testing.T) {
	svc, pubs, _, _ := newAccessFixture()
	ctx := context.Background()

	author := models.Actor{ID: 1, Role: models.RoleMember}
	pubs.add(&models.Publication{ID: 10, AuthorID: 1, Status: models.PublicationDraft, Visibility: models.VisibilityPrivate})

	ok, err := svc.CanView(ctx, author, 10)
	if err != nil {
		t.Fatalf("CanView failed: %v", err)
	}
	if !ok {
		t.Fatal("author should see their own draft private publication")
	}
}

func TestCanViewPublicActiveVisibleToEveryone(t *testing.T) {
	svc, pubs, _, _ := newAccessFixture()
	ctx := context.Background()

	pubs.add(&models.Publication{ID: 10, AuthorID: 1, Status: models.PublicationActive, Visibility: models.VisibilityPublic})

	ok, err := svc.CanView(ctx, models.Actor{ID: 99, Role: models.RoleInterested}, 10)
	if err != nil {
		t.Fatalf("CanView failed: %v", err)
	}
	if !ok {
		t.Fatal("public active publication should be visible to any user")
	}
}

func TestCanViewPublicDraftHiddenFromOthers(t *testing.T) {
	svc, pubs, _, _ := newAccessFixture()
	ctx := context.Background()

	pubs.add(&models.Publication{ID: 10, AuthorID: 1, Status: models.PublicationDraft, Visibility: models.VisibilityPublic})

	ok, err := svc.CanView(ctx, models.Actor{ID: 99, Role: models.RoleInterested}, 10)
	if err != nil {
		t.Fatalf("CanView failed: %v", err)
	}
	if ok {
		t.Fatal("public visibility should not expose a draft")
	}
}

func TestCanViewStaffSeeEverything(t *testing.T) {
	svc, pubs, _, _ := newAccessFixture()
	ctx := context.Background()

	pubs.add(&models.Publication{ID: 10, AuthorID: 1, Status: models.PublicationDraft, Visibility: models.VisibilityPrivate})

	for _, role := range []models.RoleType{models.RoleCoordinator, models.RoleMentor} {
		ok, err := svc.CanView(ctx, models.Actor{ID: 99, Role: role}, 10)
		if err != nil {
			t.Fatalf("CanView failed for %s: %v", role, err)
		}
		if !ok {
			t.Fatalf("%s should see a draft private publication", role)
		}
	}
}

func TestCanViewPrivateRequiresGrant(t *testing.T) {
	svc, pubs, _, _ := newAccessFixture()
	ctx := context.Background()

	pubs.add(&models.Publication{ID: 10, AuthorID: 1, Status: models.PublicationActive, Visibility: models.VisibilityPrivate})
	viewer := models.Actor{ID: 2, Role: models.RoleInterested}

	ok, err := svc.CanView(ctx, viewer, 10)
	if err != nil {
		t.Fatalf("CanView failed: %v", err)
	}
	if ok {
		t.Fatal("private publication should be hidden before any grant")
	}

	mentor := models.Actor{ID: 50, Role: models.RoleMentor}
	if _, err := svc.Grant(ctx, mentor, 10, []int64{2}, nil); err != nil {
		t.Fatalf("Grant failed: %v", err)
	}

	ok, err = svc.CanView(ctx, viewer, 10)
	if err != nil {
		t.Fatalf("CanView failed after grant: %v", err)
	}
	if !ok {
		t.Fatal("explicit grant should make the publication visible")
	}
}

func TestGrantIsIdempotent(t *testing.T) {
	svc, pubs, accesses, _ := newAccessFixture()
	ctx := context.Background()

	pubs.add(&models.Publication{ID: 10, AuthorID: 1, Status: models.PublicationActive, Visibility: models.VisibilityPrivate})
	mentor := models.Actor{ID: 50, Role: models.RoleMentor}

	first, err := svc.Grant(ctx, mentor, 10, []int64{2, 2, 3}, nil)
	if err != nil {
		t.Fatalf("first grant failed: %v", err)
	}
	if len(first.Granted) != 2 {
		t.Fatalf("expected 2 new grants, got %v", first.Granted)
	}
	if len(first.AlreadyGranted) != 0 {
		t.Fatalf("expected no pre-existing grants, got %v", first.AlreadyGranted)
	}

	second, err := svc.Grant(ctx, mentor, 10, []int64{2}, nil)
	if err != nil {
		t.Fatalf("second grant failed: %v", err)
	}
	if len(second.Granted) != 0 || len(second.AlreadyGranted) != 1 {
		t.Fatalf("re-grant should report alreadyGranted, got %+v", second)
	}

	if len(accesses.grants) != 2 {
		t.Fatalf("expected exactly 2 grant rows, got %d", len(accesses.grants))
	}
}

func TestGrantByRoleSnapshotsCurrentHolders(t *testing.T) {
	svc, pubs, _, roster := newAccessFixture()
	ctx := context.Background()

	pubs.add(&models.Publication{ID: 10, AuthorID: 1, Status: models.PublicationActive, Visibility: models.VisibilityPrivate})
	roster.holders[models.RoleMember] = []int64{2, 3}
	mentor := models.Actor{ID: 50, Role: models.RoleMentor}

	resp, err := svc.Grant(ctx, mentor, 10, nil, []string{"member"})
	if err != nil {
		t.Fatalf("role grant failed: %v", err)
	}
	if len(resp.Granted) != 2 {
		t.Fatalf("expected the 2 current members granted, got %v", resp.Granted)
	}

	// A user promoted to member after the grant is not covered
	roster.holders[models.RoleMember] = append(roster.holders[models.RoleMember], 4)
	ok, err := svc.CanView(ctx, models.Actor{ID: 4, Role: models.RoleMember}, 10)
	if err != nil {
		t.Fatalf("CanView failed: %v", err)
	}
	if ok {
		t.Fatal("users joining the role after the grant should not gain access")
	}
}

func TestGrantRejectsStaffRoles(t *testing.T) {
	svc, pubs, _, _ := newAccessFixture()
	ctx := context.Background()

	pubs.add(&models.Publication{ID: 10, AuthorID: 1, Status: models.PublicationActive, Visibility: models.VisibilityPrivate})
	mentor := models.Actor{ID: 50, Role: models.RoleMentor}

	for _, role := range []string{"coordinator", "mentor", "bogus"} {
		_, err := svc.Grant(ctx, mentor, 10, nil, []string{role})
		if !errors.Is(err, apperrors.ErrInvalidRole) {
			t.Fatalf("expected ErrInvalidRole for role %q, got %v", role, err)
		}
	}
}

func TestGrantRequiresGrantCapability(t *testing.T) {
	svc, pubs, _, _ := newAccessFixture()
	ctx := context.Background()

	pubs.add(&models.Publication{ID: 10, AuthorID: 1, Status: models.PublicationActive, Visibility: models.VisibilityPrivate})

	_, err := svc.Grant(ctx, models.Actor{ID: 1, Role: models.RoleMember}, 10, []int64{2}, nil)
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied for member, got %v", err)
	}
}

func TestRevokeNeverGrantedIsNoOp(t *testing.T) {
	svc, pubs, _, _ := newAccessFixture()
	ctx := context.Background()

	pubs.add(&models.Publication{ID: 10, AuthorID: 1, Status: models.PublicationActive, Visibility: models.VisibilityPrivate})
	mentor := models.Actor{ID: 50, Role: models.RoleMentor}

	resp, err := svc.Revoke(ctx, mentor, 10, []int64{2}, nil)
	if err != nil {
		t.Fatalf("revoke of a missing grant should not fail: %v", err)
	}
	if len(resp.Revoked) != 0 {
		t.Fatalf("expected nothing revoked, got %v", resp.Revoked)
	}
}

func TestRevokeRemovesGrant(t *testing.T) {
	svc, pubs, _, _ := newAccessFixture()
	ctx := context.Background()

	pubs.add(&models.Publication{ID: 10, AuthorID: 1, Status: models.PublicationActive, Visibility: models.VisibilityPrivate})
	mentor := models.Actor{ID: 50, Role: models.RoleMentor}
	viewer := models.Actor{ID: 2, Role: models.RoleInterested}

	if _, err := svc.Grant(ctx, mentor, 10, []int64{2}, nil); err != nil {
		t.Fatalf("Grant failed: %v", err)
	}

	resp, err := svc.Revoke(ctx, mentor, 10, []int64{2}, nil)
	if err != nil {
		t.Fatalf("Revoke failed: %v", err)
	}
	if len(resp.Revoked) != 1 || resp.Revoked[0] != 2 {
		t.Fatalf("expected user 2 revoked, got %v", resp.Revoked)
	}

	ok, err := svc.CanView(ctx, viewer, 10)
	if err != nil {
		t.Fatalf("CanView failed: %v", err)
	}
	if ok {
		t.Fatal("revoked user should no longer see the publication")
	}
}

func TestCanViewUnknownPublication(t *testing.T) {
	svc, _, _, _ := newAccessFixture()

	_, err := svc.CanView(context.Background(), models.Actor{ID: 1, Role: models.RoleMentor}, 404)
	if !errors.Is(err, apperrors.ErrPublicationNotFound) {
		t.Fatalf("expected ErrPublicationNotFound, got %v", err)
	}
}
