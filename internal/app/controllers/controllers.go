package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/maxskaink/EventManager-sub001/internal/app/models"
	"github.com/maxskaink/EventManager-sub001/internal/app/models/dto"
	"github.com/maxskaink/EventManager-sub001/internal/app/services"
	"github.com/maxskaink/EventManager-sub001/internal/middleware"
)

// Controllers holds every controller instance
type Controllers struct {
	Auth         *AuthController
	User         *UserController
	Interest     *InterestController
	Publication  *PublicationController
	Event        *EventController
	Notification *NotificationController
}

// NewControllers creates all controllers on top of the services
func NewControllers(svc *services.Services) *Controllers {
	return &Controllers{
		Auth:         NewAuthController(svc.Auth),
		User:         NewUserController(svc.User),
		Interest:     NewInterestController(svc.Interest),
		Publication:  NewPublicationController(svc.Publication, svc.Access),
		Event:        NewEventController(svc.Event),
		Notification: NewNotificationController(svc.Notification),
	}
}

// parseIDParam reads a path parameter as an int64 id. On failure it writes
// the 400 response and reports false.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter")
		errorDetail = errorDetail.WithDetails(name + " must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// mustActor reads the caller identity placed by the auth middleware. On
// failure it writes the 401 response and reports false.
func mustActor(ctx *gin.Context) (models.Actor, bool) {
	actor, err := middleware.ActorFromContext(ctx)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return models.Actor{}, false
	}
	return actor, true
}

// bindJSON binds the request body. On failure it writes the 400 response
// and reports false.
func bindJSON(ctx *gin.Context, obj interface{}) bool {
	if err := ctx.ShouldBindJSON(obj); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request body")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return false
	}
	return true
}
