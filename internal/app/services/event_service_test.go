package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/maxskaink/EventManager-sub001/internal/app/models"
	"github.com/maxskaink/EventManager-sub001/internal/app/models/dto"
	"github.com/maxskaink/EventManager-sub001/internal/pkg/apperrors"
)

func newEventFixture() (*EventService, *fakeEventStore, *fakeParticipationStore) {
	events := newFakeEventStore()
	participations := newFakeParticipationStore(events)
	return NewEventService(events, participations), events, participations
}

func intPtr(v int) *int { return &v }

func scheduledEvent(id int64, capacity *int) *models.Event {
	return &models.Event{
		ID:       id,
		Name:     "ML Talk",
		StartsAt: time.Now().Add(24 * time.Hour),
		EndsAt:   time.Now().Add(26 * time.Hour),
		Modality: models.ModalityInPerson,
		Status:   models.EventScheduled,
		Capacity: capacity,
	}
}

func TestEnrollCapacityLifecycle(t *testing.T) {
	svc, events, _ := newEventFixture()
	ctx := context.Background()
	events.add(scheduledEvent(1, intPtr(2)))

	userA := models.Actor{ID: 10, Role: models.RoleInterested}
	userB := models.Actor{ID: 11, Role: models.RoleInterested}
	userC := models.Actor{ID: 12, Role: models.RoleInterested}

	if err := svc.Enroll(ctx, userA, 1); err != nil {
		t.Fatalf("user A enroll failed: %v", err)
	}
	if err := svc.Enroll(ctx, userB, 1); err != nil {
		t.Fatalf("user B enroll failed: %v", err)
	}
	if err := svc.Enroll(ctx, userC, 1); !errors.Is(err, apperrors.ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded for user C, got %v", err)
	}

	if err := svc.CancelEnrollment(ctx, userA, 1); err != nil {
		t.Fatalf("user A cancel failed: %v", err)
	}
	if err := svc.Enroll(ctx, userC, 1); err != nil {
		t.Fatalf("user C enroll after freed seat failed: %v", err)
	}

	_, enrolled, err := svc.GetByID(ctx, 1)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if enrolled != 2 {
		t.Fatalf("expected 2 active enrollments, got %d", enrolled)
	}
}

func TestEnrollTwiceRejected(t *testing.T) {
	svc, events, _ := newEventFixture()
	ctx := context.Background()
	events.add(scheduledEvent(1, nil))

	user := models.Actor{ID: 10, Role: models.RoleInterested}
	if err := svc.Enroll(ctx, user, 1); err != nil {
		t.Fatalf("enroll failed: %v", err)
	}
	if err := svc.Enroll(ctx, user, 1); !errors.Is(err, apperrors.ErrAlreadyEnrolled) {
		t.Fatalf("expected ErrAlreadyEnrolled, got %v", err)
	}
}

func TestReEnrollAfterCancelAndAbsent(t *testing.T) {
	svc, events, participations := newEventFixture()
	ctx := context.Background()
	events.add(scheduledEvent(1, intPtr(1)))
	staff := models.Actor{ID: 1, Role: models.RoleCoordinator}
	user := models.Actor{ID: 10, Role: models.RoleInterested}

	if err := svc.Enroll(ctx, user, 1); err != nil {
		t.Fatalf("enroll failed: %v", err)
	}
	if err := svc.CancelEnrollment(ctx, user, 1); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if err := svc.Enroll(ctx, user, 1); err != nil {
		t.Fatalf("re-enroll after cancel failed: %v", err)
	}

	report, err := svc.MarkAbsent(ctx, staff, 1, []int64{10})
	if err != nil {
		t.Fatalf("mark absent failed: %v", err)
	}
	if len(report.Succeeded) != 1 {
		t.Fatalf("expected absence recorded, got %+v", report)
	}

	// An absent row does not hold the seat and does not block re-enrollment
	if err := svc.Enroll(ctx, user, 1); err != nil {
		t.Fatalf("re-enroll after absent failed: %v", err)
	}

	count, err := participations.CountActive(ctx, 1)
	if err != nil {
		t.Fatalf("CountActive failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single active row, got %d", count)
	}
}

func TestCancelWithoutEnrollment(t *testing.T) {
	svc, events, _ := newEventFixture()
	ctx := context.Background()
	events.add(scheduledEvent(1, nil))

	err := svc.CancelEnrollment(ctx, models.Actor{ID: 10, Role: models.RoleInterested}, 1)
	if !errors.Is(err, apperrors.ErrNotEnrolled) {
		t.Fatalf("expected ErrNotEnrolled, got %v", err)
	}
}

func TestEnrollClosedEventRejected(t *testing.T) {
	svc, events, _ := newEventFixture()
	ctx := context.Background()

	event := scheduledEvent(1, nil)
	event.Status = models.EventCancelled
	events.add(event)

	err := svc.Enroll(ctx, models.Actor{ID: 10, Role: models.RoleInterested}, 1)
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("expected conflict for a cancelled event, got %v", err)
	}
}

func TestConcurrentEnrollmentNeverOverbooks(t *testing.T) {
	svc, events, participations := newEventFixture()
	ctx := context.Background()
	capacity := 3
	events.add(scheduledEvent(1, intPtr(capacity)))

	attempts := capacity + 5
	results := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			actor := models.Actor{ID: int64(100 + i), Role: models.RoleInterested}
			results[i] = svc.Enroll(ctx, actor, 1)
		}(i)
	}
	wg.Wait()

	succeeded, full := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, apperrors.ErrCapacityExceeded):
			full++
		default:
			t.Fatalf("unexpected enroll error: %v", err)
		}
	}
	if succeeded != capacity || full != attempts-capacity {
		t.Fatalf("expected %d successes and %d rejections, got %d and %d", capacity, attempts-capacity, succeeded, full)
	}

	count, err := participations.CountActive(ctx, 1)
	if err != nil {
		t.Fatalf("CountActive failed: %v", err)
	}
	if count != capacity {
		t.Fatalf("expected %d active rows, got %d", capacity, count)
	}
}

func TestMarkAttendedPartialReport(t *testing.T) {
	svc, events, _ := newEventFixture()
	ctx := context.Background()
	events.add(scheduledEvent(1, nil))
	staff := models.Actor{ID: 1, Role: models.RoleMentor}

	if err := svc.Enroll(ctx, models.Actor{ID: 10, Role: models.RoleInterested}, 1); err != nil {
		t.Fatalf("enroll failed: %v", err)
	}

	report, err := svc.MarkAttended(ctx, staff, 1, []int64{10, 99})
	if err != nil {
		t.Fatalf("mark attended failed: %v", err)
	}
	if len(report.Succeeded) != 1 || report.Succeeded[0] != 10 {
		t.Fatalf("expected user 10 to succeed, got %+v", report)
	}
	if len(report.Failed) != 1 || report.Failed[0] != 99 {
		t.Fatalf("expected user 99 to fail, got %+v", report)
	}
}

func TestMarkAttendanceRequiresStaff(t *testing.T) {
	svc, events, _ := newEventFixture()
	ctx := context.Background()
	events.add(scheduledEvent(1, nil))

	_, err := svc.MarkAttended(ctx, models.Actor{ID: 10, Role: models.RoleMember}, 1, []int64{11})
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestCreateValidatesDates(t *testing.T) {
	svc, _, _ := newEventFixture()
	ctx := context.Background()

	start := time.Now().Add(48 * time.Hour)
	req := &dto.CreateEventRequest{
		Name:     "Backwards",
		StartsAt: start,
		EndsAt:   start.Add(-time.Hour),
		Modality: string(models.ModalityVirtual),
	}

	_, err := svc.Create(ctx, models.Actor{ID: 1, Role: models.RoleCoordinator}, req)
	if !errors.Is(err, apperrors.ErrInvalidEventDates) {
		t.Fatalf("expected ErrInvalidEventDates, got %v", err)
	}
}

func TestRosterRequiresStaff(t *testing.T) {
	svc, events, _ := newEventFixture()
	ctx := context.Background()
	events.add(scheduledEvent(1, nil))

	_, err := svc.Roster(ctx, models.Actor{ID: 10, Role: models.RoleMember}, 1)
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}

	if err := svc.Enroll(ctx, models.Actor{ID: 10, Role: models.RoleMember}, 1); err != nil {
		t.Fatalf("enroll failed: %v", err)
	}
	roster, err := svc.Roster(ctx, models.Actor{ID: 1, Role: models.RoleCoordinator}, 1)
	if err != nil {
		t.Fatalf("roster failed: %v", err)
	}
	if len(roster.Participants) != 1 || roster.Participants[0].UserID != 10 {
		t.Fatalf("unexpected roster: %+v", roster)
	}
}
