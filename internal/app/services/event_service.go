package services

import (
	"context"

	"github.com/maxskaink/EventManager-sub001/internal/app/auth"
	"github.com/maxskaink/EventManager-sub001/internal/app/models"
	"github.com/maxskaink/EventManager-sub001/internal/app/models/dto"
	"github.com/maxskaink/EventManager-sub001/internal/pkg/apperrors"
	"github.com/maxskaink/EventManager-sub001/internal/pkg/helpers"
	"github.com/maxskaink/EventManager-sub001/internal/pkg/logger"
)

type eventStore interface {
	Create(ctx context.Context, event *models.Event) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	List(ctx context.Context, status *models.EventStatus, offset uint64, limit int) ([]*models.Event, int64, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id int64) error
}

type participationStore interface {
	Enroll(ctx context.Context, eventID, userID int64) error
	Cancel(ctx context.Context, eventID, userID int64) error
	SetStatusFromEnrolled(ctx context.Context, eventID, userID int64, status models.ParticipationStatus) (bool, error)
	CountActive(ctx context.Context, eventID int64) (int, error)
	ListByEvent(ctx context.Context, eventID int64) ([]*models.Participation, error)
}

// EventService orchestrates event CRUD and the enrollment lifecycle
type EventService struct {
	events         eventStore
	participations participationStore
}

// NewEventService creates a new EventService
func NewEventService(events eventStore, participations participationStore) *EventService {
	return &EventService{
		events:         events,
		participations: participations,
	}
}

// Create creates a new scheduled event
func (s *EventService) Create(ctx context.Context, actor models.Actor, req *dto.CreateEventRequest) (*models.Event, error) {
	if !auth.Can(actor.Role, auth.ActionCreate) {
		return nil, apperrors.ErrPermissionDenied
	}
	if req.EndsAt.Before(req.StartsAt) {
		return nil, apperrors.ErrInvalidEventDates
	}

	event := &models.Event{
		Name:        req.Name,
		Description: req.Description,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Modality:    models.Modality(req.Modality),
		Status:      models.EventScheduled,
		Capacity:    req.Capacity,
	}

	id, err := s.events.Create(ctx, event)
	if err != nil {
		return nil, err
	}
	event.ID = id

	logger.Info().Int64("event_id", id).Str("name", event.Name).Msg("Event created")

	return event, nil
}

// GetByID retrieves an event with its active enrollment count
func (s *EventService) GetByID(ctx context.Context, id int64) (*models.Event, int, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, 0, err
	}

	enrolled, err := s.participations.CountActive(ctx, id)
	if err != nil {
		return nil, 0, err
	}

	return event, enrolled, nil
}

// List retrieves events, optionally filtered by status
func (s *EventService) List(ctx context.Context, status *models.EventStatus, page, pageSize int) ([]*models.Event, dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	events, total, err := s.events.List(ctx, status, offset, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	return events, helpers.NewPaginationInfo(total, page, pageSize), nil
}

// Update applies a partial update to an event
func (s *EventService) Update(ctx context.Context, actor models.Actor, id int64, req *dto.UpdateEventRequest) (*models.Event, error) {
	if !auth.Can(actor.Role, auth.ActionUpdate) {
		return nil, apperrors.ErrPermissionDenied
	}

	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		event.Name = *req.Name
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.StartsAt != nil {
		event.StartsAt = *req.StartsAt
	}
	if req.EndsAt != nil {
		event.EndsAt = *req.EndsAt
	}
	if req.Modality != nil {
		event.Modality = models.Modality(*req.Modality)
	}
	if req.Status != nil {
		event.Status = models.EventStatus(*req.Status)
	}
	if req.Capacity != nil {
		event.Capacity = req.Capacity
	}

	if event.EndsAt.Before(event.StartsAt) {
		return nil, apperrors.ErrInvalidEventDates
	}

	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

// Delete removes an event and, through the schema, its participations
func (s *EventService) Delete(ctx context.Context, actor models.Actor, id int64) error {
	if !auth.Can(actor.Role, auth.ActionDelete) {
		return apperrors.ErrPermissionDenied
	}
	return s.events.Delete(ctx, id)
}

// Enroll enrolls the actor in an event. Capacity is enforced atomically by
// the participation store; a full event yields ErrCapacityExceeded and a
// live enrollment yields ErrAlreadyEnrolled.
func (s *EventService) Enroll(ctx context.Context, actor models.Actor, eventID int64) error {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event.Status != models.EventScheduled {
		return apperrors.NewConflictError("event is not open for enrollment")
	}

	if err := s.participations.Enroll(ctx, eventID, actor.ID); err != nil {
		return err
	}

	logger.Info().Int64("event_id", eventID).Int64("user_id", actor.ID).Msg("User enrolled")
	return nil
}

// CancelEnrollment transitions the actor's enrollment to cancelled,
// freeing the seat
func (s *EventService) CancelEnrollment(ctx context.Context, actor models.Actor, eventID int64) error {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return err
	}
	return s.participations.Cancel(ctx, eventID, actor.ID)
}

// MarkAttended bulk-transitions enrolled users to attended
func (s *EventService) MarkAttended(ctx context.Context, actor models.Actor, eventID int64, userIDs []int64) (*dto.AttendanceReport, error) {
	return s.markFromEnrolled(ctx, actor, eventID, userIDs, models.ParticipationAttended)
}

// MarkAbsent bulk-transitions enrolled users to absent
func (s *EventService) MarkAbsent(ctx context.Context, actor models.Actor, eventID int64, userIDs []int64) (*dto.AttendanceReport, error) {
	return s.markFromEnrolled(ctx, actor, eventID, userIDs, models.ParticipationAbsent)
}

// markFromEnrolled applies a bulk status transition with per-id outcome.
// An id without an enrolled row is reported in failed; the batch keeps going.
func (s *EventService) markFromEnrolled(ctx context.Context, actor models.Actor, eventID int64, userIDs []int64, status models.ParticipationStatus) (*dto.AttendanceReport, error) {
	if !auth.Can(actor.Role, auth.ActionMarkAttendance) {
		return nil, apperrors.ErrPermissionDenied
	}
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	report := &dto.AttendanceReport{Succeeded: []int64{}, Failed: []int64{}}
	for _, userID := range userIDs {
		ok, err := s.participations.SetStatusFromEnrolled(ctx, eventID, userID, status)
		if err != nil {
			return nil, err
		}
		if ok {
			report.Succeeded = append(report.Succeeded, userID)
		} else {
			report.Failed = append(report.Failed, userID)
		}
	}

	return report, nil
}

// Roster lists every participation row of an event. Staff only.
func (s *EventService) Roster(ctx context.Context, actor models.Actor, eventID int64) (*dto.RosterResponse, error) {
	if !auth.Can(actor.Role, auth.ActionViewAny) {
		return nil, apperrors.ErrPermissionDenied
	}
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	participations, err := s.participations.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	resp := &dto.RosterResponse{EventID: eventID, Participants: []dto.ParticipationResponse{}}
	for _, p := range participations {
		resp.Participants = append(resp.Participants, dto.ParticipationResponse{
			UserID:    p.UserID,
			Status:    string(p.Status),
			UpdatedAt: p.UpdatedAt,
		})
	}

	return resp, nil
}
