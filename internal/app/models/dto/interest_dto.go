package dto

import (
	"time"

	"github.com/maxskaink/EventManager-sub001/internal/app/models"
)

// CreateInterestRequest represents interest creation data
type CreateInterestRequest struct {
	Keyword string `json:"keyword" binding:"required,min=2,max=50"`
}

// InterestResponse represents an interest keyword
type InterestResponse struct {
	ID        int64     `json:"id"`
	Keyword   string    `json:"keyword"`
	CreatedAt time.Time `json:"createdAt"`
}

// FromInterest converts a models.Interest to an InterestResponse
func FromInterest(interest *models.Interest) InterestResponse {
	if interest == nil {
		return InterestResponse{}
	}
	return InterestResponse{
		ID:        interest.ID,
		Keyword:   interest.Keyword,
		CreatedAt: interest.CreatedAt,
	}
}

// ProfileInterestRequest represents adding an interest to the caller's profile
type ProfileInterestRequest struct {
	InterestID int64 `json:"interestId" binding:"required,gt=0"`
}
