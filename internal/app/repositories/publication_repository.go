package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxskaink/EventManager-sub001/internal/app/models"
	"github.com/maxskaink/EventManager-sub001/internal/pkg/apperrors"
	"github.com/maxskaink/EventManager-sub001/internal/pkg/logger"
)

var publicationColumns = []string{
	"id", "title", "content", "status", "visibility", "author_id", "created_at", "updated_at",
}

// PublicationRepository handles publication database operations
type PublicationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPublicationRepository creates a new PublicationRepository
func NewPublicationRepository(db *pgxpool.Pool) *PublicationRepository {
	return &PublicationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanPublication(row pgx.Row) (*models.Publication, error) {
	var pub models.Publication
	err := row.Scan(
		&pub.ID,
		&pub.Title,
		&pub.Content,
		&pub.Status,
		&pub.Visibility,
		&pub.AuthorID,
		&pub.CreatedAt,
		&pub.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &pub, nil
}

// Create inserts a new publication and returns the generated id
func (r *PublicationRepository) Create(ctx context.Context, pub *models.Publication) (int64, error) {
	sql, args, err := r.sb.Insert("publications").
		Columns("title", "content", "status", "visibility", "author_id").
		Values(pub.Title, pub.Content, pub.Status, pub.Visibility, pub.AuthorID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create publication query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create publication query")
		return 0, fmt.Errorf("error creating publication: %w", err)
	}

	return id, nil
}

// GetByID retrieves a publication by id, including its tagged interests
func (r *PublicationRepository) GetByID(ctx context.Context, id int64) (*models.Publication, error) {
	sql, args, err := r.sb.Select(publicationColumns...).
		From("publications").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get publication query: %w", err)
	}

	pub, err := scanPublication(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPublicationNotFound
		}
		return nil, fmt.Errorf("error getting publication: %w", err)
	}

	interests, err := r.getInterests(ctx, id)
	if err != nil {
		return nil, err
	}
	pub.Interests = interests

	return pub, nil
}

func (r *PublicationRepository) getInterests(ctx context.Context, publicationID int64) ([]*models.Interest, error) {
	sql, args, err := r.sb.Select("i.id", "i.keyword", "i.created_at").
		From("publication_interests pubi").
		Join("interests i ON i.id = pubi.interest_id").
		Where(squirrel.Eq{"pubi.publication_id": publicationID}).
		OrderBy("i.keyword ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build publication interests query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing publication interests query: %w", err)
	}
	defer rows.Close()

	var interests []*models.Interest
	for rows.Next() {
		var interest models.Interest
		if err := rows.Scan(&interest.ID, &interest.Keyword, &interest.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning publication interest row: %w", err)
		}
		interests = append(interests, &interest)
	}

	return interests, nil
}

// List retrieves publications with optional author/status filters and pagination
func (r *PublicationRepository) List(ctx context.Context, authorID *int64, status *models.PublicationStatus, offset uint64, limit int) ([]*models.Publication, int64, error) {
	base := r.sb.Select(publicationColumns...).From("publications")
	countQuery := r.sb.Select("COUNT(*)").From("publications")

	if authorID != nil {
		base = base.Where(squirrel.Eq{"author_id": *authorID})
		countQuery = countQuery.Where(squirrel.Eq{"author_id": *authorID})
	}
	if status != nil {
		base = base.Where(squirrel.Eq{"status": *status})
		countQuery = countQuery.Where(squirrel.Eq{"status": *status})
	}

	sql, args, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count publications query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting publications: %w", err)
	}

	sql, args, err = base.
		OrderBy("created_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list publications query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing list publications query: %w", err)
	}
	defer rows.Close()

	var pubs []*models.Publication
	for rows.Next() {
		pub, err := scanPublication(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning publication row: %w", err)
		}
		pubs = append(pubs, pub)
	}

	return pubs, total, nil
}

// Update modifies a publication's mutable fields
func (r *PublicationRepository) Update(ctx context.Context, pub *models.Publication) error {
	sql, args, err := r.sb.Update("publications").
		Set("title", pub.Title).
		Set("content", pub.Content).
		Set("visibility", pub.Visibility).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": pub.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update publication query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating publication: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrPublicationNotFound
	}

	return nil
}

// UpdateStatus transitions a publication to a new status
func (r *PublicationRepository) UpdateStatus(ctx context.Context, id int64, status models.PublicationStatus) error {
	sql, args, err := r.sb.Update("publications").
		Set("status", status).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update status query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating publication status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrPublicationNotFound
	}

	return nil
}

// Delete removes a publication and, through cascades, its edges
func (r *PublicationRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("publications").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete publication query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting publication: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrPublicationNotFound
	}

	return nil
}

// SetInterests replaces the publication's interest tags with the given set
func (r *PublicationRepository) SetInterests(ctx context.Context, publicationID int64, interestIDs []int64) error {
	sql, args, err := r.sb.Delete("publication_interests").
		Where(squirrel.Eq{"publication_id": publicationID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build clear publication interests query: %w", err)
	}
	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error clearing publication interests: %w", err)
	}

	if len(interestIDs) == 0 {
		return nil
	}

	insert := r.sb.Insert("publication_interests").Columns("publication_id", "interest_id")
	for _, interestID := range interestIDs {
		insert = insert.Values(publicationID, interestID)
	}
	sql, args, err = insert.
		Suffix("ON CONFLICT ON CONSTRAINT publication_interests_pub_interest_key DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build set publication interests query: %w", err)
	}
	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error setting publication interests: %w", err)
	}

	return nil
}
