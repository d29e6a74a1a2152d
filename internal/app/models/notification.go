package models

import "time"

// Notification is a generated record telling a user a publication matched
// their declared interests. At most one row exists per (user, publication).
type Notification struct {
	ID            int64     `json:"id" db:"id"`
	UserID        int64     `json:"userId" db:"user_id"`
	PublicationID int64     `json:"publicationId" db:"publication_id"`
	Read          bool      `json:"read" db:"read"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`

	// Related entities
	Publication *Publication `json:"publication,omitempty"`
}
