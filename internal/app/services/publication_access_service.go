package services

import (
	"context"
	"fmt"

	"github.com/maxskaink/EventManager-sub001/internal/app/auth"
	"github.com/maxskaink/EventManager-sub001/internal/app/models"
	"github.com/maxskaink/EventManager-sub001/internal/app/models/dto"
	"github.com/maxskaink/EventManager-sub001/internal/pkg/apperrors"
)

type publicationReader interface {
	GetByID(ctx context.Context, id int64) (*models.Publication, error)
}

type accessStore interface {
	Upsert(ctx context.Context, publicationID, userID, grantedBy int64) (bool, error)
	Delete(ctx context.Context, publicationID, userID int64) (bool, error)
	Exists(ctx context.Context, publicationID, userID int64) (bool, error)
}

type roleRoster interface {
	GetActiveIDsByRole(ctx context.Context, role models.RoleType) ([]int64, error)
}

// PublicationAccessService resolves who may read a publication and manages
// explicit per-user grants
type PublicationAccessService struct {
	publications publicationReader
	accesses     accessStore
	users        roleRoster
}

// NewPublicationAccessService creates a new PublicationAccessService
func NewPublicationAccessService(publications publicationReader, accesses accessStore, users roleRoster) *PublicationAccessService {
	return &PublicationAccessService{
		publications: publications,
		accesses:     accesses,
		users:        users,
	}
}

// CanView reports whether the actor may read the publication. Rules are
// checked in order, first match wins:
//  1. active and public
//  2. the actor authored it
//  3. the actor holds a staff role
//  4. an explicit grant row exists
func (s *PublicationAccessService) CanView(ctx context.Context, actor models.Actor, publicationID int64) (bool, error) {
	pub, err := s.publications.GetByID(ctx, publicationID)
	if err != nil {
		return false, err
	}
	return s.canViewPublication(ctx, actor, pub)
}

func (s *PublicationAccessService) canViewPublication(ctx context.Context, actor models.Actor, pub *models.Publication) (bool, error) {
	if pub.Status == models.PublicationActive && pub.Visibility == models.VisibilityPublic {
		return true, nil
	}
	if actor.ID == pub.AuthorID {
		return true, nil
	}
	if auth.Can(actor.Role, auth.ActionViewAny) {
		return true, nil
	}

	granted, err := s.accesses.Exists(ctx, pub.ID, actor.ID)
	if err != nil {
		return false, fmt.Errorf("error checking access grant: %w", err)
	}
	return granted, nil
}

// Grant upserts an access row for each listed user and for every current
// active holder of each listed role. Granting an existing pair is reported
// as alreadyGranted, never as an error.
func (s *PublicationAccessService) Grant(ctx context.Context, actor models.Actor, publicationID int64, userIDs []int64, roles []string) (*dto.AccessGrantResponse, error) {
	targets, err := s.resolveTargets(ctx, actor, publicationID, userIDs, roles)
	if err != nil {
		return nil, err
	}

	resp := &dto.AccessGrantResponse{Granted: []int64{}, AlreadyGranted: []int64{}}
	for _, userID := range targets {
		created, err := s.accesses.Upsert(ctx, publicationID, userID, actor.ID)
		if err != nil {
			return nil, fmt.Errorf("error granting access to user %d: %w", userID, err)
		}
		if created {
			resp.Granted = append(resp.Granted, userID)
		} else {
			resp.AlreadyGranted = append(resp.AlreadyGranted, userID)
		}
	}

	return resp, nil
}

// Revoke deletes access rows for the listed users and for current active
// holders of the listed roles. Revoking a pair that was never granted is a
// no-op.
func (s *PublicationAccessService) Revoke(ctx context.Context, actor models.Actor, publicationID int64, userIDs []int64, roles []string) (*dto.AccessRevokeResponse, error) {
	targets, err := s.resolveTargets(ctx, actor, publicationID, userIDs, roles)
	if err != nil {
		return nil, err
	}

	resp := &dto.AccessRevokeResponse{Revoked: []int64{}}
	for _, userID := range targets {
		removed, err := s.accesses.Delete(ctx, publicationID, userID)
		if err != nil {
			return nil, fmt.Errorf("error revoking access from user %d: %w", userID, err)
		}
		if removed {
			resp.Revoked = append(resp.Revoked, userID)
		}
	}

	return resp, nil
}

// resolveTargets authorizes the actor, validates the roles and expands the
// request into a deduplicated target user list. Role grants snapshot the
// users holding the role right now; users who gain the role later are not
// covered retroactively.
func (s *PublicationAccessService) resolveTargets(ctx context.Context, actor models.Actor, publicationID int64, userIDs []int64, roles []string) ([]int64, error) {
	if !auth.Can(actor.Role, auth.ActionGrantAccess) {
		return nil, apperrors.ErrPermissionDenied
	}

	if _, err := s.publications.GetByID(ctx, publicationID); err != nil {
		return nil, err
	}

	seen := make(map[int64]bool)
	var targets []int64
	add := func(id int64) {
		if !seen[id] {
			seen[id] = true
			targets = append(targets, id)
		}
	}

	for _, id := range userIDs {
		add(id)
	}

	for _, role := range roles {
		r := models.RoleType(role)
		if r != models.RoleInterested && r != models.RoleMember {
			return nil, apperrors.ErrInvalidRole
		}
		holders, err := s.users.GetActiveIDsByRole(ctx, r)
		if err != nil {
			return nil, fmt.Errorf("error resolving holders of role %s: %w", role, err)
		}
		for _, id := range holders {
			add(id)
		}
	}

	return targets, nil
}
