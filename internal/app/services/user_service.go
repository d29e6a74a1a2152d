package services

import (
	"context"

	"github.com/maxskaink/EventManager-sub001/internal/app/auth"
	"github.com/maxskaink/EventManager-sub001/internal/app/models"
	"github.com/maxskaink/EventManager-sub001/internal/app/models/dto"
	"github.com/maxskaink/EventManager-sub001/internal/app/repositories"
	"github.com/maxskaink/EventManager-sub001/internal/pkg/apperrors"
	"github.com/maxskaink/EventManager-sub001/internal/pkg/helpers"
	"github.com/maxskaink/EventManager-sub001/internal/pkg/logger"
)

// UserService handles user listing, role changes and deactivation
type UserService struct {
	users *repositories.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(users *repositories.UserRepository) *UserService {
	return &UserService{users: users}
}

// GetByID retrieves a user. Users see themselves; staff see anyone.
func (s *UserService) GetByID(ctx context.Context, actor models.Actor, id int64) (*models.User, error) {
	if actor.ID != id && !auth.Can(actor.Role, auth.ActionViewAny) {
		return nil, apperrors.ErrPermissionDenied
	}
	return s.users.GetByID(ctx, id)
}

// List retrieves users with optional role filtering. Deactivated accounts
// only appear when includeDeactivated is set; there is no implicit scope.
func (s *UserService) List(ctx context.Context, actor models.Actor, role *models.RoleType, includeDeactivated bool, page, pageSize int) ([]*models.User, dto.PaginationInfo, error) {
	if !auth.Can(actor.Role, auth.ActionViewAny) {
		return nil, dto.PaginationInfo{}, apperrors.ErrPermissionDenied
	}

	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	users, total, err := s.users.List(ctx, role, includeDeactivated, offset, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	return users, helpers.NewPaginationInfo(total, page, pageSize), nil
}

// ChangeRole sets a user's role. Mentor only, and never on oneself.
func (s *UserService) ChangeRole(ctx context.Context, actor models.Actor, targetID int64, role models.RoleType) (*models.User, error) {
	if !role.Valid() {
		return nil, apperrors.ErrInvalidRole
	}
	if actor.ID == targetID {
		return nil, apperrors.ErrSelfRoleChange
	}
	if !auth.CanChangeRole(actor, targetID) {
		return nil, apperrors.ErrPermissionDenied
	}

	if err := s.users.UpdateRole(ctx, targetID, role); err != nil {
		return nil, err
	}

	logger.Info().
		Int64("actor_id", actor.ID).
		Int64("user_id", targetID).
		Str("role", string(role)).
		Msg("User role changed")

	return s.users.GetByID(ctx, targetID)
}

// Deactivate soft-deletes a user account. Staff may deactivate anyone;
// users may deactivate themselves.
func (s *UserService) Deactivate(ctx context.Context, actor models.Actor, targetID int64) error {
	if actor.ID != targetID && !auth.Can(actor.Role, auth.ActionDelete) {
		return apperrors.ErrPermissionDenied
	}

	if err := s.users.Deactivate(ctx, targetID); err != nil {
		return err
	}

	logger.Info().Int64("actor_id", actor.ID).Int64("user_id", targetID).Msg("User deactivated")
	return nil
}
