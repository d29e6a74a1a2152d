package services

import (
	"context"
	"strings"

	"github.com/maxskaink/EventManager-sub001/internal/app/auth"
	"github.com/maxskaink/EventManager-sub001/internal/app/models"
	"github.com/maxskaink/EventManager-sub001/internal/app/repositories"
	"github.com/maxskaink/EventManager-sub001/internal/pkg/apperrors"
	"github.com/maxskaink/EventManager-sub001/internal/pkg/validation"
)

// InterestService manages the interest catalog and per-user interest profiles
type InterestService struct {
	interests *repositories.InterestRepository
}

// NewInterestService creates a new InterestService
func NewInterestService(interests *repositories.InterestRepository) *InterestService {
	return &InterestService{interests: interests}
}

// Create adds a keyword to the catalog. Staff only; keywords are stored
// lowercased so matching is case-insensitive.
func (s *InterestService) Create(ctx context.Context, actor models.Actor, keyword string) (*models.Interest, error) {
	if !auth.Can(actor.Role, auth.ActionUpdate) {
		return nil, apperrors.ErrPermissionDenied
	}

	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if !validation.IsValidKeyword(keyword) {
		return nil, apperrors.ErrValidationFailed
	}

	id, err := s.interests.Create(ctx, keyword)
	if err != nil {
		return nil, err
	}

	return s.interests.GetByID(ctx, id)
}

// GetAll lists the whole interest catalog
func (s *InterestService) GetAll(ctx context.Context) ([]*models.Interest, error) {
	return s.interests.GetAll(ctx)
}

// Delete removes a keyword from the catalog. Staff only.
func (s *InterestService) Delete(ctx context.Context, actor models.Actor, id int64) error {
	if !auth.Can(actor.Role, auth.ActionDelete) {
		return apperrors.ErrPermissionDenied
	}
	return s.interests.Delete(ctx, id)
}

// AddToProfile tags the actor's own profile with an interest. Adding an
// interest twice is a no-op.
func (s *InterestService) AddToProfile(ctx context.Context, actor models.Actor, interestID int64) error {
	_, err := s.interests.AddProfileInterest(ctx, actor.ID, interestID)
	return err
}

// RemoveFromProfile untags the actor's own profile
func (s *InterestService) RemoveFromProfile(ctx context.Context, actor models.Actor, interestID int64) error {
	return s.interests.RemoveProfileInterest(ctx, actor.ID, interestID)
}

// ProfileInterests lists the interests tagged on a user's profile. Users
// read their own profile; staff read anyone's.
func (s *InterestService) ProfileInterests(ctx context.Context, actor models.Actor, userID int64) ([]*models.Interest, error) {
	if actor.ID != userID && !auth.Can(actor.Role, auth.ActionViewAny) {
		return nil, apperrors.ErrPermissionDenied
	}
	return s.interests.GetProfileInterests(ctx, userID)
}
