package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/maxskaink/EventManager-sub001/internal/app/models"
	"github.com/maxskaink/EventManager-sub001/internal/app/models/dto"
	"github.com/maxskaink/EventManager-sub001/internal/app/services"
	"github.com/maxskaink/EventManager-sub001/internal/middleware"
	"github.com/maxskaink/EventManager-sub001/internal/pkg/helpers"
)

// PublicationController handles publication CRUD, lifecycle and access grants
type PublicationController struct {
	publicationService *services.PublicationService
	accessService      *services.PublicationAccessService
}

// NewPublicationController creates a new PublicationController
func NewPublicationController(publicationService *services.PublicationService, accessService *services.PublicationAccessService) *PublicationController {
	return &PublicationController{
		publicationService: publicationService,
		accessService:      accessService,
	}
}

// Create creates a draft publication
// @Summary Create a publication
// @Description Creates a draft publication authored by the caller. Member role or above.
// @Tags publications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePublicationRequest true "Publication data"
// @Success 201 {object} dto.APIResponse{data=dto.PublicationResponse} "Publication created"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Router /publications [post]
func (c *PublicationController) Create(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}

	var req dto.CreatePublicationRequest
	if !bindJSON(ctx, &req) {
		return
	}

	pub, err := c.publicationService.Create(ctx, actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.FromPublication(pub)))
}

// GetByID retrieves one publication
// @Summary Get a publication
// @Description Retrieves a publication the caller may read
// @Tags publications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Publication ID"
// @Success 200 {object} dto.APIResponse{data=dto.PublicationResponse} "Publication retrieved"
// @Failure 403 {object} dto.ErrorResponse "Not visible to caller"
// @Failure 404 {object} dto.ErrorResponse "Publication not found"
// @Router /publications/{id} [get]
func (c *PublicationController) GetByID(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	pub, err := c.publicationService.GetByID(ctx, actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromPublication(pub)))
}

// List retrieves publications visible to the caller
// @Summary List publications
// @Tags publications
// @Produce json
// @Security BearerAuth
// @Param authorId query int false "Filter by author"
// @Param status query string false "Filter by status" Enums(draft, pending, active, archived)
// @Param page query int false "Page number (1-based)" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PublicationListResponse} "Publications retrieved"
// @Router /publications [get]
func (c *PublicationController) List(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}

	page, pageSize := helpers.ParsePaginationParams(ctx)

	var authorID *int64
	if authorStr := ctx.Query("authorId"); authorStr != "" {
		if id, err := strconv.ParseInt(authorStr, 10, 64); err == nil {
			authorID = &id
		}
	}

	var status *models.PublicationStatus
	if statusStr := ctx.Query("status"); statusStr != "" {
		s := models.PublicationStatus(statusStr)
		if !s.Valid() {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid status filter")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		status = &s
	}

	publications, pagination, err := c.publicationService.List(ctx, actor, authorID, status, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.PublicationListResponse{
		Publications: make([]dto.PublicationResponse, 0, len(publications)),
		Pagination:   pagination,
	}
	for _, pub := range publications {
		resp.Publications = append(resp.Publications, dto.FromPublication(pub))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// Update applies a partial update
// @Summary Update a publication
// @Description Authors update their own publications; staff update any
// @Tags publications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Publication ID"
// @Param request body dto.UpdatePublicationRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.PublicationResponse} "Publication updated"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Publication not found"
// @Router /publications/{id} [patch]
func (c *PublicationController) Update(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdatePublicationRequest
	if !bindJSON(ctx, &req) {
		return
	}

	pub, err := c.publicationService.Update(ctx, actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromPublication(pub)))
}

// UpdateStatus moves a publication through its lifecycle
// @Summary Change publication status
// @Description Applies a lifecycle transition. Entering active triggers notification fanout.
// @Tags publications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Publication ID"
// @Param request body dto.UpdatePublicationStatusRequest true "Target status"
// @Success 200 {object} dto.APIResponse{data=dto.PublicationResponse} "Status changed"
// @Failure 400 {object} dto.ErrorResponse "Invalid transition"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Router /publications/{id}/status [patch]
func (c *PublicationController) UpdateStatus(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdatePublicationStatusRequest
	if !bindJSON(ctx, &req) {
		return
	}

	pub, err := c.publicationService.UpdateStatus(ctx, actor, id, models.PublicationStatus(req.Status))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromPublication(pub)))
}

// Delete removes a publication
// @Summary Delete a publication
// @Tags publications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Publication ID"
// @Success 200 {object} dto.APIResponse "Publication deleted"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Publication not found"
// @Router /publications/{id} [delete]
func (c *PublicationController) Delete(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.publicationService.Delete(ctx, actor, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil))
}

// GrantAccess grants read access to users and role snapshots
// @Summary Grant publication access
// @Description Upserts access rows for the listed users and for current holders of the listed roles. Staff only.
// @Tags publications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Publication ID"
// @Param request body dto.AccessChangeRequest true "Users and roles"
// @Success 200 {object} dto.APIResponse{data=dto.AccessGrantResponse} "Grants applied"
// @Failure 400 {object} dto.ErrorResponse "Invalid role"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Publication not found"
// @Router /publications/{id}/access/grant [post]
func (c *PublicationController) GrantAccess(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.AccessChangeRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.accessService.Grant(ctx, actor, id, req.UserIDs, req.Roles)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// RevokeAccess removes read access
// @Summary Revoke publication access
// @Description Deletes access rows. Revoking a never-granted pair is a no-op. Staff only.
// @Tags publications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Publication ID"
// @Param request body dto.AccessChangeRequest true "Users and roles"
// @Success 200 {object} dto.APIResponse{data=dto.AccessRevokeResponse} "Revocations applied"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Publication not found"
// @Router /publications/{id}/access/revoke [post]
func (c *PublicationController) RevokeAccess(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.AccessChangeRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.accessService.Revoke(ctx, actor, id, req.UserIDs, req.Roles)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
