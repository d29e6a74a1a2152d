package dto

import (
	"time"

	"github.com/maxskaink/EventManager-sub001/internal/app/models"
)

// UserResponse represents user information returned by the API
type UserResponse struct {
	ID            int64      `json:"id"`
	Email         string     `json:"email"`
	FirstName     string     `json:"firstName"`
	LastName      string     `json:"lastName"`
	Role          string     `json:"role"`
	IsActive      bool       `json:"isActive"`
	DeactivatedAt *time.Time `json:"deactivatedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// FromUser converts a models.User to a UserResponse
func FromUser(user *models.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:            user.ID,
		Email:         user.Email,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		Role:          string(user.Role),
		IsActive:      user.IsActive,
		DeactivatedAt: user.DeactivatedAt,
		CreatedAt:     user.CreatedAt,
	}
}

// UserListResponse represents a paginated list of users
type UserListResponse struct {
	Users      []UserResponse `json:"users"`
	Pagination PaginationInfo `json:"pagination"`
}

// ChangeRoleRequest represents a role change payload
type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=interested member coordinator mentor"`
}

// UserFilterRequest represents user listing filters.
// Deactivated accounts are excluded unless explicitly requested.
type UserFilterRequest struct {
	Role                *string `form:"role"`
	IncludeDeactivated  bool    `form:"includeDeactivated"`
	Page                int     `form:"page"`
	PageSize            int     `form:"size"`
}
