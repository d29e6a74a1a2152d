package services

import (
	"github.com/maxskaink/EventManager-sub001/internal/app/repositories"
	"github.com/maxskaink/EventManager-sub001/internal/pkg/auth"
)

// Services holds every service instance
type Services struct {
	Auth         *AuthService
	User         *UserService
	Interest     *InterestService
	Publication  *PublicationService
	Access       *PublicationAccessService
	Event        *EventService
	Notification *NotificationService
}

// NewServices wires all services on top of the repositories. The fanout
// enqueuer is injected separately so the queue client stays optional in
// tests and in the worker process.
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, fanout fanoutEnqueuer) *Services {
	accessService := NewPublicationAccessService(repos.Publication, repos.PublicationAccess, repos.User)

	return &Services{
		Auth:         NewAuthService(repos.User, repos.Token, jwtService),
		User:         NewUserService(repos.User),
		Interest:     NewInterestService(repos.Interest),
		Publication:  NewPublicationService(repos.Publication, accessService, fanout),
		Access:       accessService,
		Event:        NewEventService(repos.Event, repos.Participation),
		Notification: NewNotificationService(repos.Interest, repos.Notification),
	}
}
