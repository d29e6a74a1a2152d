package services

import (
	"context"
	"errors"
	"testing"

	"github.com/maxskaink/EventManager-sub001/internal/app/models"
	"github.com/maxskaink/EventManager-sub001/internal/pkg/apperrors"
)

func newNotificationFixture() (*NotificationService, *fakeMatcher, *fakeNotificationStore) {
	matcher := newFakeMatcher()
	store := newFakeNotificationStore()
	return NewNotificationService(matcher, store), matcher, store
}

func TestDispatchCreatesOneRowPerMatchedUser(t *testing.T) {
	svc, matcher, store := newNotificationFixture()
	ctx := context.Background()
	matcher.setMatched(1, 10, 11, 12)

	created, err := svc.Dispatch(ctx, 1)
	if err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}
	if created != 3 {
		t.Fatalf("expected 3 notifications, got %d", created)
	}

	for _, userID := range []int64{10, 11, 12} {
		unread, err := store.CountUnread(ctx, userID)
		if err != nil {
			t.Fatalf("CountUnread failed: %v", err)
		}
		if unread != 1 {
			t.Fatalf("expected 1 unread for user %d, got %d", userID, unread)
		}
	}
}

func TestDispatchIsIdempotent(t *testing.T) {
	svc, matcher, _ := newNotificationFixture()
	ctx := context.Background()
	matcher.setMatched(1, 10, 11)

	if _, err := svc.Dispatch(ctx, 1); err != nil {
		t.Fatalf("first dispatch failed: %v", err)
	}
	created, err := svc.Dispatch(ctx, 1)
	if err != nil {
		t.Fatalf("second dispatch failed: %v", err)
	}
	if created != 0 {
		t.Fatalf("expected no new notifications on re-dispatch, got %d", created)
	}
}

func TestDispatchReachesOnlyNewlyMatchedUsers(t *testing.T) {
	svc, matcher, _ := newNotificationFixture()
	ctx := context.Background()
	matcher.setMatched(1, 10, 11)

	if _, err := svc.Dispatch(ctx, 1); err != nil {
		t.Fatalf("first dispatch failed: %v", err)
	}

	// User 12 picks up a matching interest after the first fanout
	matcher.setMatched(1, 10, 11, 12)
	created, err := svc.Dispatch(ctx, 1)
	if err != nil {
		t.Fatalf("re-dispatch failed: %v", err)
	}
	if created != 1 {
		t.Fatalf("expected exactly 1 new notification, got %d", created)
	}
}

func TestDispatchNoMatchesIsNoOp(t *testing.T) {
	svc, _, _ := newNotificationFixture()

	created, err := svc.Dispatch(context.Background(), 99)
	if err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}
	if created != 0 {
		t.Fatalf("expected no notifications, got %d", created)
	}
}

func TestMarkReadScopedToRecipient(t *testing.T) {
	svc, matcher, store := newNotificationFixture()
	ctx := context.Background()
	matcher.setMatched(1, 10)

	if _, err := svc.Dispatch(ctx, 1); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}
	rows, _, err := store.ListByUser(ctx, 10, 0, 10)
	if err != nil || len(rows) != 1 {
		t.Fatalf("expected one notification for user 10, got %d (%v)", len(rows), err)
	}
	id := rows[0].ID

	intruder := models.Actor{ID: 11, Role: models.RoleMember}
	if err := svc.MarkRead(ctx, intruder, id); !errors.Is(err, apperrors.ErrNotificationNotFound) {
		t.Fatalf("expected ErrNotificationNotFound for another user, got %v", err)
	}

	recipient := models.Actor{ID: 10, Role: models.RoleMember}
	if err := svc.MarkRead(ctx, recipient, id); err != nil {
		t.Fatalf("recipient mark read failed: %v", err)
	}

	unread, err := store.CountUnread(ctx, 10)
	if err != nil {
		t.Fatalf("CountUnread failed: %v", err)
	}
	if unread != 0 {
		t.Fatalf("expected no unread notifications, got %d", unread)
	}
}

func TestListReportsUnreadCount(t *testing.T) {
	svc, matcher, store := newNotificationFixture()
	ctx := context.Background()
	matcher.setMatched(1, 10)
	matcher.setMatched(2, 10)

	if _, err := svc.Dispatch(ctx, 1); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}
	if _, err := svc.Dispatch(ctx, 2); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}

	actor := models.Actor{ID: 10, Role: models.RoleMember}
	resp, _, err := svc.List(ctx, actor, 1, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(resp.Notifications) != 2 || resp.UnreadCount != 2 {
		t.Fatalf("expected 2 notifications all unread, got %d/%d", len(resp.Notifications), resp.UnreadCount)
	}

	if err := svc.MarkRead(ctx, actor, resp.Notifications[0].ID); err != nil {
		t.Fatalf("mark read failed: %v", err)
	}

	unread, err := store.CountUnread(ctx, 10)
	if err != nil {
		t.Fatalf("CountUnread failed: %v", err)
	}
	if unread != 1 {
		t.Fatalf("expected 1 unread after marking one read, got %d", unread)
	}
}
