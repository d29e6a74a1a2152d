package dto

import (
	"time"

	"github.com/maxskaink/EventManager-sub001/internal/app/models"
)

// NotificationResponse represents a notification delivered to a user
type NotificationResponse struct {
	ID            int64     `json:"id"`
	PublicationID int64     `json:"publicationId"`
	Read          bool      `json:"read"`
	CreatedAt     time.Time `json:"createdAt"`
}

// FromNotification converts a models.Notification to a NotificationResponse
func FromNotification(n *models.Notification) NotificationResponse {
	if n == nil {
		return NotificationResponse{}
	}
	return NotificationResponse{
		ID:            n.ID,
		PublicationID: n.PublicationID,
		Read:          n.Read,
		CreatedAt:     n.CreatedAt,
	}
}

// NotificationListResponse represents a user's notification feed
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int                    `json:"unreadCount"`
}
