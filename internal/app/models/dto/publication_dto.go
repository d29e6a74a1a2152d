package dto

import (
	"time"

	"github.com/maxskaink/EventManager-sub001/internal/app/models"
)

// --- Request DTOs ---

// CreatePublicationRequest represents publication creation data
type CreatePublicationRequest struct {
	Title       string  `json:"title" binding:"required,min=2,max=255"`
	Content     string  `json:"content" binding:"required"`
	Visibility  string  `json:"visibility" binding:"required,oneof=public private"`
	InterestIDs []int64 `json:"interestIds"`
}

// UpdatePublicationRequest represents publication update data
type UpdatePublicationRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=2,max=255"`
	Content     *string `json:"content"`
	Visibility  *string `json:"visibility" binding:"omitempty,oneof=public private"`
	InterestIDs []int64 `json:"interestIds"`
}

// UpdatePublicationStatusRequest represents a status transition request
type UpdatePublicationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=draft pending active archived"`
}

// AccessChangeRequest is the body for grant and revoke operations.
// Roles are restricted to the non-staff roles; staff see everything already.
type AccessChangeRequest struct {
	UserIDs []int64  `json:"userIds"`
	Roles   []string `json:"roles" binding:"omitempty,dive,oneof=interested member"`
}

// --- Response DTOs ---

// PublicationResponse represents publication information
type PublicationResponse struct {
	ID         int64              `json:"id"`
	Title      string             `json:"title"`
	Content    string             `json:"content"`
	Status     string             `json:"status"`
	Visibility string             `json:"visibility"`
	AuthorID   int64              `json:"authorId"`
	Author     *UserResponse      `json:"author,omitempty"`
	Interests  []InterestResponse `json:"interests,omitempty"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}

// FromPublication converts a models.Publication to a PublicationResponse
func FromPublication(pub *models.Publication) PublicationResponse {
	if pub == nil {
		return PublicationResponse{}
	}

	resp := PublicationResponse{
		ID:         pub.ID,
		Title:      pub.Title,
		Content:    pub.Content,
		Status:     string(pub.Status),
		Visibility: string(pub.Visibility),
		AuthorID:   pub.AuthorID,
		CreatedAt:  pub.CreatedAt,
		UpdatedAt:  pub.UpdatedAt,
	}

	if pub.Author != nil {
		author := FromUser(pub.Author)
		resp.Author = &author
	}

	for _, interest := range pub.Interests {
		resp.Interests = append(resp.Interests, FromInterest(interest))
	}

	return resp
}

// PublicationListResponse represents a paginated list of publications
type PublicationListResponse struct {
	Publications []PublicationResponse `json:"publications"`
	Pagination   PaginationInfo        `json:"pagination"`
}

// AccessGrantResponse reports the outcome of a grant operation.
// AlreadyGranted ids are reported separately; they are not failures.
type AccessGrantResponse struct {
	Granted        []int64 `json:"granted"`
	AlreadyGranted []int64 `json:"alreadyGranted"`
}

// AccessRevokeResponse reports the outcome of a revoke operation
type AccessRevokeResponse struct {
	Revoked []int64 `json:"revoked"`
}
