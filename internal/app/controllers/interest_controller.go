package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxskaink/EventManager-sub001/internal/app/models/dto"
	"github.com/maxskaink/EventManager-sub001/internal/app/services"
	"github.com/maxskaink/EventManager-sub001/internal/middleware"
)

// InterestController handles the interest catalog and profile tagging
type InterestController struct {
	interestService *services.InterestService
}

// NewInterestController creates a new InterestController
func NewInterestController(interestService *services.InterestService) *InterestController {
	return &InterestController{interestService: interestService}
}

// Create adds a keyword to the interest catalog
// @Summary Create an interest
// @Description Adds a keyword to the catalog. Staff only.
// @Tags interests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateInterestRequest true "Keyword"
// @Success 201 {object} dto.APIResponse{data=dto.InterestResponse} "Interest created"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 409 {object} dto.ErrorResponse "Keyword already exists"
// @Router /interests [post]
func (c *InterestController) Create(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}

	var req dto.CreateInterestRequest
	if !bindJSON(ctx, &req) {
		return
	}

	interest, err := c.interestService.Create(ctx, actor, req.Keyword)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.FromInterest(interest)))
}

// List returns the whole interest catalog
// @Summary List interests
// @Tags interests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.InterestResponse} "Interests retrieved"
// @Router /interests [get]
func (c *InterestController) List(ctx *gin.Context) {
	interests, err := c.interestService.GetAll(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := make([]dto.InterestResponse, 0, len(interests))
	for _, interest := range interests {
		resp = append(resp, dto.FromInterest(interest))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// Delete removes a keyword from the catalog
// @Summary Delete an interest
// @Description Removes a keyword. Staff only.
// @Tags interests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Interest ID"
// @Success 200 {object} dto.APIResponse "Interest deleted"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Interest not found"
// @Router /interests/{id} [delete]
func (c *InterestController) Delete(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.interestService.Delete(ctx, actor, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil))
}

// AddToProfile tags the caller's profile with an interest
// @Summary Add an interest to own profile
// @Description Tags the caller's profile. Tagging twice is a no-op.
// @Tags interests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Interest ID"
// @Success 200 {object} dto.APIResponse "Interest added"
// @Failure 404 {object} dto.ErrorResponse "Interest not found"
// @Router /interests/{id}/profile [post]
func (c *InterestController) AddToProfile(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.interestService.AddToProfile(ctx, actor, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil))
}

// RemoveFromProfile untags the caller's profile
// @Summary Remove an interest from own profile
// @Tags interests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Interest ID"
// @Success 200 {object} dto.APIResponse "Interest removed"
// @Router /interests/{id}/profile [delete]
func (c *InterestController) RemoveFromProfile(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.interestService.RemoveFromProfile(ctx, actor, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil))
}

// ProfileInterests lists the interests on a user's profile
// @Summary List a user's profile interests
// @Description Users read their own profile; staff read anyone's.
// @Tags interests
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.InterestResponse} "Interests retrieved"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Router /users/{id}/interests [get]
func (c *InterestController) ProfileInterests(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	interests, err := c.interestService.ProfileInterests(ctx, actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := make([]dto.InterestResponse, 0, len(interests))
	for _, interest := range interests {
		resp = append(resp, dto.FromInterest(interest))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
