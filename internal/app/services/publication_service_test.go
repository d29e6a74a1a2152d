package services

import (
	"context"
	"errors"
	"testing"

	"github.com/maxskaink/EventManager-sub001/internal/app/models"
	"github.com/maxskaink/EventManager-sub001/internal/app/models/dto"
	"github.com/maxskaink/EventManager-sub001/internal/pkg/apperrors"
)

func newPublicationFixture() (*PublicationService, *fakePublicationStore, *fakeAccessStore, *fakeEnqueuer) {
	pubs := newFakePublicationStore()
	accesses := newFakeAccessStore()
	roster := &fakeRoleRoster{holders: make(map[models.RoleType][]int64)}
	access := NewPublicationAccessService(pubs, accesses, roster)
	fanout := &fakeEnqueuer{}
	return NewPublicationService(pubs, access, fanout), pubs, accesses, fanout
}

func strPtr(v string) *string { return &v }

func TestCreateStartsAsDraft(t *testing.T) {
	svc, _, _, fanout := newPublicationFixture()
	ctx := context.Background()
	author := models.Actor{ID: 1, Role: models.RoleMember}

	pub, err := svc.Create(ctx, author, &dto.CreatePublicationRequest{
		Title:       "Go Generics",
		Content:     "A walkthrough",
		Visibility:  string(models.VisibilityPublic),
		InterestIDs: []int64{5},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if pub.Status != models.PublicationDraft {
		t.Fatalf("expected draft status, got %s", pub.Status)
	}
	if pub.AuthorID != 1 {
		t.Fatalf("expected author 1, got %d", pub.AuthorID)
	}
	if fanout.count() != 0 {
		t.Fatalf("draft creation must not enqueue fanout, got %d", fanout.count())
	}
}

func TestStatusTransitionRules(t *testing.T) {
	cases := []struct {
		from    models.PublicationStatus
		to      models.PublicationStatus
		allowed bool
	}{
		{models.PublicationDraft, models.PublicationPending, true},
		{models.PublicationDraft, models.PublicationActive, true},
		{models.PublicationDraft, models.PublicationArchived, false},
		{models.PublicationPending, models.PublicationDraft, true},
		{models.PublicationPending, models.PublicationActive, true},
		{models.PublicationActive, models.PublicationArchived, true},
		{models.PublicationActive, models.PublicationDraft, false},
		{models.PublicationArchived, models.PublicationActive, false},
		{models.PublicationArchived, models.PublicationDraft, false},
	}

	for _, tc := range cases {
		svc, pubs, _, _ := newPublicationFixture()
		pubs.add(&models.Publication{ID: 10, AuthorID: 1, Status: tc.from, Visibility: models.VisibilityPublic})

		author := models.Actor{ID: 1, Role: models.RoleMember}
		_, err := svc.UpdateStatus(context.Background(), author, 10, tc.to)
		if tc.allowed && err != nil {
			t.Fatalf("%s -> %s should be allowed, got %v", tc.from, tc.to, err)
		}
		if !tc.allowed && !errors.Is(err, apperrors.ErrInvalidPublicationStatus) {
			t.Fatalf("%s -> %s should be rejected, got %v", tc.from, tc.to, err)
		}
	}
}

func TestActivationTriggersFanout(t *testing.T) {
	svc, pubs, _, fanout := newPublicationFixture()
	ctx := context.Background()
	pubs.add(&models.Publication{ID: 10, AuthorID: 1, Status: models.PublicationDraft, Visibility: models.VisibilityPublic})

	author := models.Actor{ID: 1, Role: models.RoleMember}
	if _, err := svc.UpdateStatus(ctx, author, 10, models.PublicationActive); err != nil {
		t.Fatalf("activation failed: %v", err)
	}
	if fanout.count() != 1 {
		t.Fatalf("expected 1 fanout enqueue on activation, got %d", fanout.count())
	}

	if _, err := svc.UpdateStatus(ctx, author, 10, models.PublicationArchived); err != nil {
		t.Fatalf("archive failed: %v", err)
	}
	if fanout.count() != 1 {
		t.Fatalf("archiving must not enqueue fanout, got %d", fanout.count())
	}
}

func TestInterestChangeTriggersFanoutOnlyWhileActive(t *testing.T) {
	svc, pubs, _, fanout := newPublicationFixture()
	ctx := context.Background()
	author := models.Actor{ID: 1, Role: models.RoleMember}

	pubs.add(&models.Publication{ID: 10, AuthorID: 1, Status: models.PublicationDraft, Visibility: models.VisibilityPublic})
	pubs.add(&models.Publication{ID: 11, AuthorID: 1, Status: models.PublicationActive, Visibility: models.VisibilityPublic})

	if _, err := svc.Update(ctx, author, 10, &dto.UpdatePublicationRequest{InterestIDs: []int64{5}}); err != nil {
		t.Fatalf("draft update failed: %v", err)
	}
	if fanout.count() != 0 {
		t.Fatalf("interest change on a draft must not enqueue fanout, got %d", fanout.count())
	}

	if _, err := svc.Update(ctx, author, 11, &dto.UpdatePublicationRequest{InterestIDs: []int64{5, 6}}); err != nil {
		t.Fatalf("active update failed: %v", err)
	}
	if fanout.count() != 1 {
		t.Fatalf("interest change on an active publication must enqueue fanout, got %d", fanout.count())
	}

	// A title-only edit touches no interests and stays quiet
	if _, err := svc.Update(ctx, author, 11, &dto.UpdatePublicationRequest{Title: strPtr("Renamed")}); err != nil {
		t.Fatalf("title update failed: %v", err)
	}
	if fanout.count() != 1 {
		t.Fatalf("title edit must not enqueue fanout, got %d", fanout.count())
	}
}

func TestUpdateDeniedForNonAuthorNonStaff(t *testing.T) {
	svc, pubs, _, _ := newPublicationFixture()
	ctx := context.Background()
	pubs.add(&models.Publication{ID: 10, AuthorID: 1, Status: models.PublicationActive, Visibility: models.VisibilityPublic})

	stranger := models.Actor{ID: 2, Role: models.RoleMember}
	_, err := svc.Update(ctx, stranger, 10, &dto.UpdatePublicationRequest{Title: strPtr("Hijacked")})
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}

	staff := models.Actor{ID: 3, Role: models.RoleCoordinator}
	if _, err := svc.Update(ctx, staff, 10, &dto.UpdatePublicationRequest{Title: strPtr("Moderated")}); err != nil {
		t.Fatalf("staff update failed: %v", err)
	}
}

func TestGetByIDEnforcesVisibility(t *testing.T) {
	svc, pubs, accesses, _ := newPublicationFixture()
	ctx := context.Background()
	pubs.add(&models.Publication{ID: 10, AuthorID: 1, Status: models.PublicationActive, Visibility: models.VisibilityPrivate})

	reader := models.Actor{ID: 2, Role: models.RoleMember}
	if _, err := svc.GetByID(ctx, reader, 10); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied without a grant, got %v", err)
	}

	if _, err := accesses.Upsert(ctx, 10, 2, 1); err != nil {
		t.Fatalf("granting failed: %v", err)
	}
	pub, err := svc.GetByID(ctx, reader, 10)
	if err != nil {
		t.Fatalf("granted read failed: %v", err)
	}
	if pub.ID != 10 {
		t.Fatalf("unexpected publication: %+v", pub)
	}
}

func TestListFiltersUnreadablePublications(t *testing.T) {
	svc, pubs, _, _ := newPublicationFixture()
	ctx := context.Background()

	pubs.add(&models.Publication{ID: 10, AuthorID: 1, Status: models.PublicationActive, Visibility: models.VisibilityPublic})
	pubs.add(&models.Publication{ID: 11, AuthorID: 1, Status: models.PublicationDraft, Visibility: models.VisibilityPublic})
	pubs.add(&models.Publication{ID: 12, AuthorID: 1, Status: models.PublicationActive, Visibility: models.VisibilityPrivate})

	reader := models.Actor{ID: 2, Role: models.RoleMember}
	visible, _, err := svc.List(ctx, reader, nil, nil, 1, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(visible) != 1 || visible[0].ID != 10 {
		t.Fatalf("expected only the public active publication, got %+v", visible)
	}

	author := models.Actor{ID: 1, Role: models.RoleMember}
	visible, _, err = svc.List(ctx, author, nil, nil, 1, 10)
	if err != nil {
		t.Fatalf("author list failed: %v", err)
	}
	if len(visible) != 3 {
		t.Fatalf("expected the author to see all 3, got %d", len(visible))
	}
}

func TestDeleteRequiresAuthorOrStaff(t *testing.T) {
	svc, pubs, _, _ := newPublicationFixture()
	ctx := context.Background()
	pubs.add(&models.Publication{ID: 10, AuthorID: 1, Status: models.PublicationActive, Visibility: models.VisibilityPublic})

	stranger := models.Actor{ID: 2, Role: models.RoleMember}
	if err := svc.Delete(ctx, stranger, 10); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}

	author := models.Actor{ID: 1, Role: models.RoleMember}
	if err := svc.Delete(ctx, author, 10); err != nil {
		t.Fatalf("author delete failed: %v", err)
	}
	if _, err := svc.GetByID(ctx, author, 10); !errors.Is(err, apperrors.ErrPublicationNotFound) {
		t.Fatalf("expected ErrPublicationNotFound after delete, got %v", err)
	}
}
