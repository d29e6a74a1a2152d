package services

import (
	"context"
	"fmt"

	"github.com/maxskaink/EventManager-sub001/internal/app/models"
	"github.com/maxskaink/EventManager-sub001/internal/app/models/dto"
	"github.com/maxskaink/EventManager-sub001/internal/pkg/helpers"
	"github.com/maxskaink/EventManager-sub001/internal/pkg/logger"
)

type interestMatcher interface {
	MatchedUserIDs(ctx context.Context, publicationID int64) ([]int64, error)
}

type notificationStore interface {
	CreateMissing(ctx context.Context, publicationID int64, userIDs []int64) ([]int64, error)
	ListByUser(ctx context.Context, userID int64, offset uint64, limit int) ([]*models.Notification, int64, error)
	MarkRead(ctx context.Context, notificationID, userID int64) error
	CountUnread(ctx context.Context, userID int64) (int64, error)
}

// NotificationService matches publications to interested users and fans out
// notification rows. Delivery to an external channel is a downstream
// consumer's job; this service only persists.
type NotificationService struct {
	matcher       interestMatcher
	notifications notificationStore
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(matcher interestMatcher, notifications notificationStore) *NotificationService {
	return &NotificationService{
		matcher:       matcher,
		notifications: notifications,
	}
}

// MatchedUsers returns the active users whose profile interests intersect
// the publication's interests, excluding the author.
func (s *NotificationService) MatchedUsers(ctx context.Context, publicationID int64) ([]int64, error) {
	return s.matcher.MatchedUserIDs(ctx, publicationID)
}

// Dispatch creates one notification per matched user. Pairs that already
// have a row are skipped, so re-running fanout for a publication only
// reaches users matched since the previous run.
func (s *NotificationService) Dispatch(ctx context.Context, publicationID int64) (int, error) {
	matched, err := s.matcher.MatchedUserIDs(ctx, publicationID)
	if err != nil {
		return 0, fmt.Errorf("error matching users for publication %d: %w", publicationID, err)
	}
	if len(matched) == 0 {
		return 0, nil
	}

	inserted, err := s.notifications.CreateMissing(ctx, publicationID, matched)
	if err != nil {
		return 0, fmt.Errorf("error creating notifications for publication %d: %w", publicationID, err)
	}

	logger.Info().
		Int64("publication_id", publicationID).
		Int("matched", len(matched)).
		Int("notified", len(inserted)).
		Msg("Notification fanout dispatched")

	return len(inserted), nil
}

// List returns the actor's own notifications together with the unread count
func (s *NotificationService) List(ctx context.Context, actor models.Actor, page, pageSize int) (*dto.NotificationListResponse, *dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	notifications, total, err := s.notifications.ListByUser(ctx, actor.ID, offset, limit)
	if err != nil {
		return nil, nil, err
	}

	unread, err := s.notifications.CountUnread(ctx, actor.ID)
	if err != nil {
		return nil, nil, err
	}

	resp := &dto.NotificationListResponse{
		Notifications: make([]dto.NotificationResponse, 0, len(notifications)),
		UnreadCount:   int(unread),
	}
	for _, n := range notifications {
		resp.Notifications = append(resp.Notifications, dto.FromNotification(n))
	}

	pagination := helpers.NewPaginationInfo(total, page, pageSize)
	return resp, &pagination, nil
}

// MarkRead marks one of the actor's notifications as read. A notification
// belonging to someone else is indistinguishable from a missing one.
func (s *NotificationService) MarkRead(ctx context.Context, actor models.Actor, notificationID int64) error {
	return s.notifications.MarkRead(ctx, notificationID, actor.ID)
}
