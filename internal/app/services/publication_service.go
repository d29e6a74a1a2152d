package services

import (
	"context"

	"github.com/maxskaink/EventManager-sub001/internal/app/auth"
	"github.com/maxskaink/EventManager-sub001/internal/app/models"
	"github.com/maxskaink/EventManager-sub001/internal/app/models/dto"
	"github.com/maxskaink/EventManager-sub001/internal/pkg/apperrors"
	"github.com/maxskaink/EventManager-sub001/internal/pkg/helpers"
	"github.com/maxskaink/EventManager-sub001/internal/pkg/logger"
)

type publicationStore interface {
	Create(ctx context.Context, pub *models.Publication) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Publication, error)
	List(ctx context.Context, authorID *int64, status *models.PublicationStatus, offset uint64, limit int) ([]*models.Publication, int64, error)
	Update(ctx context.Context, pub *models.Publication) error
	UpdateStatus(ctx context.Context, id int64, status models.PublicationStatus) error
	Delete(ctx context.Context, id int64) error
	SetInterests(ctx context.Context, publicationID int64, interestIDs []int64) error
}

// fanoutEnqueuer hands a publication off to the background queue for
// notification fanout
type fanoutEnqueuer interface {
	EnqueueFanout(ctx context.Context, publicationID int64) error
}

// statusTransitions enumerates the legal publication lifecycle moves
var statusTransitions = map[models.PublicationStatus][]models.PublicationStatus{
	models.PublicationDraft:    {models.PublicationPending, models.PublicationActive},
	models.PublicationPending:  {models.PublicationDraft, models.PublicationActive},
	models.PublicationActive:   {models.PublicationArchived},
	models.PublicationArchived: {},
}

func transitionAllowed(from, to models.PublicationStatus) bool {
	for _, s := range statusTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// PublicationService orchestrates publication CRUD, lifecycle transitions
// and the notification fanout trigger
type PublicationService struct {
	publications publicationStore
	access       *PublicationAccessService
	fanout       fanoutEnqueuer
}

// NewPublicationService creates a new PublicationService
func NewPublicationService(publications publicationStore, access *PublicationAccessService, fanout fanoutEnqueuer) *PublicationService {
	return &PublicationService{
		publications: publications,
		access:       access,
		fanout:       fanout,
	}
}

// Create creates a draft publication authored by the actor
func (s *PublicationService) Create(ctx context.Context, actor models.Actor, req *dto.CreatePublicationRequest) (*models.Publication, error) {
	if !auth.Can(actor.Role, auth.ActionCreate) {
		return nil, apperrors.ErrPermissionDenied
	}

	pub := &models.Publication{
		Title:      req.Title,
		Content:    req.Content,
		Status:     models.PublicationDraft,
		Visibility: models.Visibility(req.Visibility),
		AuthorID:   actor.ID,
	}

	id, err := s.publications.Create(ctx, pub)
	if err != nil {
		return nil, err
	}
	pub.ID = id

	if len(req.InterestIDs) > 0 {
		if err := s.publications.SetInterests(ctx, id, req.InterestIDs); err != nil {
			return nil, err
		}
	}

	logger.Info().Int64("publication_id", id).Int64("author_id", actor.ID).Msg("Publication created")

	return s.publications.GetByID(ctx, id)
}

// GetByID retrieves a publication the actor is allowed to read
func (s *PublicationService) GetByID(ctx context.Context, actor models.Actor, id int64) (*models.Publication, error) {
	pub, err := s.publications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	allowed, err := s.access.canViewPublication(ctx, actor, pub)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperrors.ErrPermissionDenied
	}

	return pub, nil
}

// List retrieves a page of publications, keeping only those the actor may
// read. A filtered-out row still consumes its slot in the page.
func (s *PublicationService) List(ctx context.Context, actor models.Actor, authorID *int64, status *models.PublicationStatus, page, pageSize int) ([]*models.Publication, dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	publications, total, err := s.publications.List(ctx, authorID, status, offset, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	visible := make([]*models.Publication, 0, len(publications))
	for _, pub := range publications {
		allowed, err := s.access.canViewPublication(ctx, actor, pub)
		if err != nil {
			return nil, dto.PaginationInfo{}, err
		}
		if allowed {
			visible = append(visible, pub)
		}
	}

	return visible, helpers.NewPaginationInfo(total, page, pageSize), nil
}

// Update applies a partial update. Authors may edit their own publications;
// staff may edit any.
func (s *PublicationService) Update(ctx context.Context, actor models.Actor, id int64, req *dto.UpdatePublicationRequest) (*models.Publication, error) {
	pub, err := s.publications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.ID != pub.AuthorID && !auth.Can(actor.Role, auth.ActionUpdate) {
		return nil, apperrors.ErrPermissionDenied
	}

	if req.Title != nil {
		pub.Title = *req.Title
	}
	if req.Content != nil {
		pub.Content = *req.Content
	}
	if req.Visibility != nil {
		pub.Visibility = models.Visibility(*req.Visibility)
	}

	if err := s.publications.Update(ctx, pub); err != nil {
		return nil, err
	}

	if req.InterestIDs != nil {
		if err := s.publications.SetInterests(ctx, id, req.InterestIDs); err != nil {
			return nil, err
		}
		// New tags on a live publication can match users the first fanout
		// missed; existing pairs are deduplicated downstream.
		if pub.Status == models.PublicationActive {
			s.enqueueFanout(ctx, id)
		}
	}

	return s.publications.GetByID(ctx, id)
}

// UpdateStatus moves a publication through its lifecycle. Entering active
// triggers notification fanout.
func (s *PublicationService) UpdateStatus(ctx context.Context, actor models.Actor, id int64, status models.PublicationStatus) (*models.Publication, error) {
	pub, err := s.publications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.ID != pub.AuthorID && !auth.Can(actor.Role, auth.ActionUpdate) {
		return nil, apperrors.ErrPermissionDenied
	}
	if !transitionAllowed(pub.Status, status) {
		return nil, apperrors.ErrInvalidPublicationStatus
	}

	if err := s.publications.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	if status == models.PublicationActive {
		s.enqueueFanout(ctx, id)
	}

	pub.Status = status
	return pub, nil
}

// Delete removes a publication. Authors may delete their own; staff any.
func (s *PublicationService) Delete(ctx context.Context, actor models.Actor, id int64) error {
	pub, err := s.publications.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if actor.ID != pub.AuthorID && !auth.Can(actor.Role, auth.ActionDelete) {
		return apperrors.ErrPermissionDenied
	}

	return s.publications.Delete(ctx, id)
}

// enqueueFanout submits the publication to the notification queue. Enqueue
// failures are logged, not propagated: the status transition already
// committed and fanout can be re-triggered safely.
func (s *PublicationService) enqueueFanout(ctx context.Context, publicationID int64) {
	if s.fanout == nil {
		return
	}
	if err := s.fanout.EnqueueFanout(ctx, publicationID); err != nil {
		logger.Error().Err(err).Int64("publication_id", publicationID).Msg("Failed to enqueue notification fanout")
	}
}
