package models

import "time"

// Modality defines how an event is held
type Modality string

const (
	ModalityInPerson Modality = "in_person"
	ModalityVirtual  Modality = "virtual"
	ModalityHybrid   Modality = "hybrid"
)

// Valid reports whether the modality is a known value.
func (m Modality) Valid() bool {
	switch m {
	case ModalityInPerson, ModalityVirtual, ModalityHybrid:
		return true
	}
	return false
}

// EventStatus defines the lifecycle state of an event
type EventStatus string

const (
	EventScheduled EventStatus = "scheduled"
	EventCancelled EventStatus = "cancelled"
	EventFinished  EventStatus = "finished"
)

// Valid reports whether the status is a known event status.
func (s EventStatus) Valid() bool {
	switch s {
	case EventScheduled, EventCancelled, EventFinished:
		return true
	}
	return false
}

// Event represents a capacity-constrained community event
type Event struct {
	ID          int64       `json:"id" db:"id"`
	Name        string      `json:"name" db:"name"`
	Description string      `json:"description" db:"description"`
	StartsAt    time.Time   `json:"startsAt" db:"starts_at"`
	EndsAt      time.Time   `json:"endsAt" db:"ends_at"`
	Modality    Modality    `json:"modality" db:"modality"`
	Status      EventStatus `json:"status" db:"status"`
	Capacity    *int        `json:"capacity,omitempty" db:"capacity"` // nil means unbounded
	CreatedAt   time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time   `json:"updatedAt" db:"updated_at"`
}

// ParticipationStatus defines the enrollment state of a user for an event
type ParticipationStatus string

const (
	ParticipationEnrolled  ParticipationStatus = "enrolled"
	ParticipationAttended  ParticipationStatus = "attended"
	ParticipationAbsent    ParticipationStatus = "absent"
	ParticipationCancelled ParticipationStatus = "cancelled"
)

// Active reports whether the status counts against event capacity.
// Attendance implies prior enrollment, so both states hold a seat.
func (s ParticipationStatus) Active() bool {
	return s == ParticipationEnrolled || s == ParticipationAttended
}

// Participation represents one user's enrollment cycle for one event.
// The (event_id, user_id) pair is unique; re-enrollment updates the row.
type Participation struct {
	ID        int64               `json:"id" db:"id"`
	EventID   int64               `json:"eventId" db:"event_id"`
	UserID    int64               `json:"userId" db:"user_id"`
	Status    ParticipationStatus `json:"status" db:"status"`
	CreatedAt time.Time           `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time           `json:"updatedAt" db:"updated_at"`

	// Related entities
	User *User `json:"user,omitempty"`
}
