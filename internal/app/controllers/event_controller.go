package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxskaink/EventManager-sub001/internal/app/models"
	"github.com/maxskaink/EventManager-sub001/internal/app/models/dto"
	"github.com/maxskaink/EventManager-sub001/internal/app/services"
	"github.com/maxskaink/EventManager-sub001/internal/middleware"
	"github.com/maxskaink/EventManager-sub001/internal/pkg/helpers"
)

// EventController handles event CRUD and the enrollment lifecycle
type EventController struct {
	eventService *services.EventService
}

// NewEventController creates a new EventController
func NewEventController(eventService *services.EventService) *EventController {
	return &EventController{eventService: eventService}
}

// Create creates a scheduled event
// @Summary Create an event
// @Description Creates a scheduled event. Member role or above.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEventRequest true "Event data"
// @Success 201 {object} dto.APIResponse{data=dto.EventResponse} "Event created"
// @Failure 400 {object} dto.ErrorResponse "Invalid dates"
// @Failure 409 {object} dto.ErrorResponse "Event name already exists"
// @Router /events [post]
func (c *EventController) Create(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}

	var req dto.CreateEventRequest
	if !bindJSON(ctx, &req) {
		return
	}

	event, err := c.eventService.Create(ctx, actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.FromEvent(event, 0)))
}

// GetByID retrieves one event
// @Summary Get an event
// @Description Retrieves an event with its active enrollment count
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.EventResponse} "Event retrieved"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [get]
func (c *EventController) GetByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	event, enrolled, err := c.eventService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromEvent(event, enrolled)))
}

// List retrieves events
// @Summary List events
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status" Enums(scheduled, cancelled, finished)
// @Param page query int false "Page number (1-based)" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.EventListResponse} "Events retrieved"
// @Router /events [get]
func (c *EventController) List(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)

	var status *models.EventStatus
	if statusStr := ctx.Query("status"); statusStr != "" {
		s := models.EventStatus(statusStr)
		if !s.Valid() {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid status filter")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		status = &s
	}

	events, pagination, err := c.eventService.List(ctx, status, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.EventListResponse{Events: make([]dto.EventResponse, 0, len(events)), Pagination: pagination}
	for _, event := range events {
		resp.Events = append(resp.Events, dto.FromEvent(event, 0))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// Update applies a partial update
// @Summary Update an event
// @Description Staff only
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body dto.UpdateEventRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.EventResponse} "Event updated"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [patch]
func (c *EventController) Update(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateEventRequest
	if !bindJSON(ctx, &req) {
		return
	}

	event, err := c.eventService.Update(ctx, actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromEvent(event, 0)))
}

// Delete removes an event
// @Summary Delete an event
// @Description Staff only
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse "Event deleted"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [delete]
func (c *EventController) Delete(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.eventService.Delete(ctx, actor, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil))
}

// Enroll enrolls the caller in an event
// @Summary Enroll in an event
// @Description Enrolls the caller, enforcing capacity atomically
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 201 {object} dto.APIResponse "Enrolled"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 409 {object} dto.ErrorResponse "Capacity exceeded or already enrolled"
// @Router /events/{id}/participation [post]
func (c *EventController) Enroll(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.eventService.Enroll(ctx, actor, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(nil))
}

// CancelEnrollment cancels the caller's enrollment
// @Summary Cancel own enrollment
// @Description Frees the seat; the caller may enroll again later
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse "Enrollment cancelled"
// @Failure 404 {object} dto.ErrorResponse "No active enrollment"
// @Router /events/{id}/participation [delete]
func (c *EventController) CancelEnrollment(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.eventService.CancelEnrollment(ctx, actor, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil))
}

// MarkAttended bulk-transitions enrolled users to attended
// @Summary Mark attendance
// @Description Transitions enrolled users to attended with a per-id outcome report. Staff only.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body dto.AttendanceRequest true "User ids"
// @Success 200 {object} dto.APIResponse{data=dto.AttendanceReport} "Report"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Router /events/{id}/participation/attend [patch]
func (c *EventController) MarkAttended(ctx *gin.Context) {
	c.markParticipation(ctx, c.eventService.MarkAttended)
}

// MarkAbsent bulk-transitions enrolled users to absent
// @Summary Mark absence
// @Description Transitions enrolled users to absent with a per-id outcome report. Staff only.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body dto.AttendanceRequest true "User ids"
// @Success 200 {object} dto.APIResponse{data=dto.AttendanceReport} "Report"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Router /events/{id}/participation/absent [patch]
func (c *EventController) MarkAbsent(ctx *gin.Context) {
	c.markParticipation(ctx, c.eventService.MarkAbsent)
}

func (c *EventController) markParticipation(ctx *gin.Context, mark func(ctx context.Context, actor models.Actor, eventID int64, userIDs []int64) (*dto.AttendanceReport, error)) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.AttendanceRequest
	if !bindJSON(ctx, &req) {
		return
	}

	report, err := mark(ctx, actor, id, req.Users)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(report))
}

// Roster lists every participation row of an event
// @Summary Get event roster
// @Description Lists participants with their statuses. Staff only.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.RosterResponse} "Roster retrieved"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id}/roster [get]
func (c *EventController) Roster(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	roster, err := c.eventService.Roster(ctx, actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(roster))
}
