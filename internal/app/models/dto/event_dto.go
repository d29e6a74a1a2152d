package dto

import (
	"time"

	"github.com/maxskaink/EventManager-sub001/internal/app/models"
)

// --- Request DTOs ---

// CreateEventRequest represents event creation data
type CreateEventRequest struct {
	Name        string    `json:"name" binding:"required,min=2,max=255"`
	Description string    `json:"description"`
	StartsAt    time.Time `json:"startsAt" binding:"required"`
	EndsAt      time.Time `json:"endsAt" binding:"required"`
	Modality    string    `json:"modality" binding:"required,oneof=in_person virtual hybrid"`
	Capacity    *int      `json:"capacity" binding:"omitempty,gt=0"`
}

// UpdateEventRequest represents event update data
type UpdateEventRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=2,max=255"`
	Description *string    `json:"description"`
	StartsAt    *time.Time `json:"startsAt"`
	EndsAt      *time.Time `json:"endsAt"`
	Modality    *string    `json:"modality" binding:"omitempty,oneof=in_person virtual hybrid"`
	Status      *string    `json:"status" binding:"omitempty,oneof=scheduled cancelled finished"`
	Capacity    *int       `json:"capacity" binding:"omitempty,gt=0"`
}

// AttendanceRequest carries the user ids for a bulk attendance transition
type AttendanceRequest struct {
	Users []int64 `json:"users" binding:"required,min=1"`
}

// --- Response DTOs ---

// EventResponse represents event information
type EventResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartsAt    time.Time `json:"startsAt"`
	EndsAt      time.Time `json:"endsAt"`
	Modality    string    `json:"modality"`
	Status      string    `json:"status"`
	Capacity    *int      `json:"capacity,omitempty"`
	Enrolled    int       `json:"enrolled"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// FromEvent converts a models.Event to an EventResponse
func FromEvent(event *models.Event, enrolled int) EventResponse {
	if event == nil {
		return EventResponse{}
	}
	return EventResponse{
		ID:          event.ID,
		Name:        event.Name,
		Description: event.Description,
		StartsAt:    event.StartsAt,
		EndsAt:      event.EndsAt,
		Modality:    string(event.Modality),
		Status:      string(event.Status),
		Capacity:    event.Capacity,
		Enrolled:    enrolled,
		CreatedAt:   event.CreatedAt,
		UpdatedAt:   event.UpdatedAt,
	}
}

// EventListResponse represents a paginated list of events
type EventListResponse struct {
	Events     []EventResponse `json:"events"`
	Pagination PaginationInfo  `json:"pagination"`
}

// ParticipationResponse represents one enrollment row
type ParticipationResponse struct {
	UserID    int64     `json:"userId"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RosterResponse represents the participant roster of an event
type RosterResponse struct {
	EventID      int64                   `json:"eventId"`
	Participants []ParticipationResponse `json:"participants"`
}

// AttendanceReport is the partial-success result of a bulk transition.
// Failed ids had no active enrollment; the batch never aborts as a whole.
type AttendanceReport struct {
	Succeeded []int64 `json:"succeeded"`
	Failed    []int64 `json:"failed"`
}
