package models

import (
	"time"
)

// RoleType defines the membership role of a user
type RoleType string

const (
	RoleInterested  RoleType = "interested"
	RoleMember      RoleType = "member"
	RoleCoordinator RoleType = "coordinator"
	RoleMentor      RoleType = "mentor"
)

// Valid reports whether the role is one of the fixed role values.
func (r RoleType) Valid() bool {
	switch r {
	case RoleInterested, RoleMember, RoleCoordinator, RoleMentor:
		return true
	}
	return false
}

// IsStaff reports whether the role carries staff-level privileges.
// Mentors and coordinators may act on any resource of a given type.
func (r RoleType) IsStaff() bool {
	return r == RoleMentor || r == RoleCoordinator
}

// User defines the user model based on the 'users' table
type User struct {
	ID            int64      `json:"id" db:"id" example:"1"`                                            // Unique identifier for the user
	Email         string     `json:"email" db:"email" example:"user@community.org"`                     // User's email address
	Password      string     `json:"-" db:"password"`                                                   // User's hashed password (excluded from JSON)
	FirstName     string     `json:"firstName" db:"first_name" example:"John"`                          // User's first name
	LastName      string     `json:"lastName" db:"last_name" example:"Doe"`                             // User's last name
	Role          RoleType   `json:"role" db:"role" example:"member"`                                   // User's membership role
	IsActive      bool       `json:"isActive" db:"is_active" example:"true"`                            // Whether the user account is active
	DeactivatedAt *time.Time `json:"deactivatedAt,omitempty" db:"deactivated_at"`                       // Timestamp of soft deletion (nullable)
	CreatedAt     time.Time  `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`          // Timestamp when the user was created
	UpdatedAt     time.Time  `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"`          // Timestamp when the user was last updated
	LastLoginAt   *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at" example:"2024-04-20T18:00:00Z"` // Timestamp of the last login (nullable)
}

// Actor identifies the caller of an operation. Every service operation
// receives the acting user explicitly; nothing reads an ambient session.
type Actor struct {
	ID   int64
	Role RoleType
}
