package models

import "time"

// Interest represents a keyword tag users can declare and publications can carry
type Interest struct {
	ID        int64     `json:"id" db:"id"`
	Keyword   string    `json:"keyword" db:"keyword"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// ProfileInterest links a user to a declared interest
type ProfileInterest struct {
	ID         int64     `json:"id" db:"id"`
	UserID     int64     `json:"userId" db:"user_id"`
	InterestID int64     `json:"interestId" db:"interest_id"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`

	// Related entities
	Interest *Interest `json:"interest,omitempty"`
}
