package models

import "time"

// PublicationStatus defines the lifecycle state of a publication
type PublicationStatus string

const (
	PublicationDraft    PublicationStatus = "draft"
	PublicationPending  PublicationStatus = "pending"
	PublicationActive   PublicationStatus = "active"
	PublicationArchived PublicationStatus = "archived"
)

// Valid reports whether the status is a known publication status.
func (s PublicationStatus) Valid() bool {
	switch s {
	case PublicationDraft, PublicationPending, PublicationActive, PublicationArchived:
		return true
	}
	return false
}

// Visibility defines who may read a publication by default
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// Valid reports whether the visibility is a known value.
func (v Visibility) Valid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

// Publication represents an authored content item
type Publication struct {
	ID         int64             `json:"id" db:"id"`
	Title      string            `json:"title" db:"title"`
	Content    string            `json:"content" db:"content"`
	Status     PublicationStatus `json:"status" db:"status"`
	Visibility Visibility        `json:"visibility" db:"visibility"`
	AuthorID   int64             `json:"authorId" db:"author_id"`
	CreatedAt  time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time         `json:"updatedAt" db:"updated_at"`

	// Related entities
	Author    *User      `json:"author,omitempty"`
	Interests []*Interest `json:"interests,omitempty"`
}

// PublicationAccess is an explicit per-user read grant for one publication
type PublicationAccess struct {
	ID            int64     `json:"id" db:"id"`
	PublicationID int64     `json:"publicationId" db:"publication_id"`
	UserID        int64     `json:"userId" db:"user_id"`
	GrantedBy     int64     `json:"grantedBy" db:"granted_by"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}
