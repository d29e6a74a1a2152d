package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxskaink/EventManager-sub001/internal/app/controllers"
	"github.com/maxskaink/EventManager-sub001/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	ctrl *controllers.Controllers,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", ctrl.Auth.Register)
		auth.POST("/login", ctrl.Auth.Login)
		auth.POST("/refresh", ctrl.Auth.RefreshToken)
		auth.POST("/logout", ctrl.Auth.Logout)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		users := authenticated.Group("/users")
		{
			users.GET("/me", ctrl.User.GetMe)
			users.GET("/:id", ctrl.User.GetByID)
			users.GET("/:id/interests", ctrl.Interest.ProfileInterests)
			users.DELETE("/:id", ctrl.User.Deactivate)

			usersStaff := users.Group("")
			usersStaff.Use(authMiddleware.StaffRequired())
			{
				usersStaff.GET("", ctrl.User.List)
			}
			// Role changes are mentor-gated inside the service
			users.PATCH("/:id/role", ctrl.User.ChangeRole)
		}

		interests := authenticated.Group("/interests")
		{
			interests.GET("", ctrl.Interest.List)
			interests.POST("/:id/profile", ctrl.Interest.AddToProfile)
			interests.DELETE("/:id/profile", ctrl.Interest.RemoveFromProfile)

			interestsStaff := interests.Group("")
			interestsStaff.Use(authMiddleware.StaffRequired())
			{
				interestsStaff.POST("", ctrl.Interest.Create)
				interestsStaff.DELETE("/:id", ctrl.Interest.Delete)
			}
		}

		publications := authenticated.Group("/publications")
		{
			publications.GET("", ctrl.Publication.List)
			publications.GET("/:id", ctrl.Publication.GetByID)
			publications.POST("", ctrl.Publication.Create)
			publications.PATCH("/:id", ctrl.Publication.Update)
			publications.PATCH("/:id/status", ctrl.Publication.UpdateStatus)
			publications.DELETE("/:id", ctrl.Publication.Delete)

			publicationsStaff := publications.Group("")
			publicationsStaff.Use(authMiddleware.StaffRequired())
			{
				publicationsStaff.POST("/:id/access/grant", ctrl.Publication.GrantAccess)
				publicationsStaff.POST("/:id/access/revoke", ctrl.Publication.RevokeAccess)
			}
		}

		events := authenticated.Group("/events")
		{
			events.GET("", ctrl.Event.List)
			events.GET("/:id", ctrl.Event.GetByID)
			events.POST("", ctrl.Event.Create)
			events.POST("/:id/participation", ctrl.Event.Enroll)
			events.DELETE("/:id/participation", ctrl.Event.CancelEnrollment)

			eventsStaff := events.Group("")
			eventsStaff.Use(authMiddleware.StaffRequired())
			{
				eventsStaff.PATCH("/:id", ctrl.Event.Update)
				eventsStaff.DELETE("/:id", ctrl.Event.Delete)
				eventsStaff.PATCH("/:id/participation/attend", ctrl.Event.MarkAttended)
				eventsStaff.PATCH("/:id/participation/absent", ctrl.Event.MarkAbsent)
				eventsStaff.GET("/:id/roster", ctrl.Event.Roster)
			}
		}

		notifications := authenticated.Group("/notifications")
		{
			notifications.GET("", ctrl.Notification.List)
			notifications.PATCH("/:id/read", ctrl.Notification.MarkRead)
		}
	}
}
