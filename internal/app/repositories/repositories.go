package repositories

import (
	"github.com/maxskaink/EventManager-sub001/internal/db"
)

// Repositories holds every repository instance
type Repositories struct {
	User              *UserRepository
	Token             *TokenRepository
	Interest          *InterestRepository
	Publication       *PublicationRepository
	PublicationAccess *PublicationAccessRepository
	Event             *EventRepository
	Participation     *ParticipationRepository
	Notification      *NotificationRepository
}

// NewRepositories creates all repositories backed by the given database
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		User:              NewUserRepository(database.Pool),
		Token:             NewTokenRepository(database.Pool),
		Interest:          NewInterestRepository(database.Pool),
		Publication:       NewPublicationRepository(database.Pool),
		PublicationAccess: NewPublicationAccessRepository(database.Pool),
		Event:             NewEventRepository(database.Pool),
		Participation:     NewParticipationRepository(database),
		Notification:      NewNotificationRepository(database.Pool),
	}
}
