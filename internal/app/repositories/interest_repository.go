package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxskaink/EventManager-sub001/internal/app/models"
	"github.com/maxskaink/EventManager-sub001/internal/pkg/apperrors"
	"github.com/maxskaink/EventManager-sub001/internal/pkg/dberrors"
)

// InterestRepository handles interest keywords and the profile-interest edges
type InterestRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewInterestRepository creates a new InterestRepository
func NewInterestRepository(db *pgxpool.Pool) *InterestRepository {
	return &InterestRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new interest keyword
func (r *InterestRepository) Create(ctx context.Context, keyword string) (int64, error) {
	sql, args, err := r.sb.Insert("interests").
		Columns("keyword").
		Values(keyword).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create interest query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "interests_keyword_key") {
			return 0, apperrors.ErrInterestAlreadyExists
		}
		return 0, fmt.Errorf("error creating interest: %w", err)
	}

	return id, nil
}

// GetByID retrieves an interest by id
func (r *InterestRepository) GetByID(ctx context.Context, id int64) (*models.Interest, error) {
	sql, args, err := r.sb.Select("id", "keyword", "created_at").
		From("interests").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get interest query: %w", err)
	}

	var interest models.Interest
	err = r.db.QueryRow(ctx, sql, args...).Scan(&interest.ID, &interest.Keyword, &interest.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInterestNotFound
		}
		return nil, fmt.Errorf("error getting interest: %w", err)
	}

	return &interest, nil
}

// GetAll retrieves all interest keywords
func (r *InterestRepository) GetAll(ctx context.Context) ([]*models.Interest, error) {
	sql, args, err := r.sb.Select("id", "keyword", "created_at").
		From("interests").
		OrderBy("keyword ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list interests query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing list interests query: %w", err)
	}
	defer rows.Close()

	var interests []*models.Interest
	for rows.Next() {
		var interest models.Interest
		if err := rows.Scan(&interest.ID, &interest.Keyword, &interest.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning interest row: %w", err)
		}
		interests = append(interests, &interest)
	}

	return interests, nil
}

// Delete removes an interest keyword
func (r *InterestRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("interests").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete interest query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting interest: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrInterestNotFound
	}

	return nil
}

// AddProfileInterest links an interest to a user's profile.
// Returns false when the pair already existed.
func (r *InterestRepository) AddProfileInterest(ctx context.Context, userID, interestID int64) (bool, error) {
	sql, args, err := r.sb.Insert("profile_interests").
		Columns("user_id", "interest_id").
		Values(userID, interestID).
		Suffix("ON CONFLICT ON CONSTRAINT profile_interests_user_interest_key DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build add profile interest query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return false, apperrors.ErrInterestNotFound
		}
		return false, fmt.Errorf("error adding profile interest: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// RemoveProfileInterest unlinks an interest from a user's profile.
// Removing a missing link is a no-op.
func (r *InterestRepository) RemoveProfileInterest(ctx context.Context, userID, interestID int64) error {
	sql, args, err := r.sb.Delete("profile_interests").
		Where(squirrel.Eq{"user_id": userID, "interest_id": interestID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build remove profile interest query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error removing profile interest: %w", err)
	}

	return nil
}

// GetProfileInterests retrieves the interests a user has declared
func (r *InterestRepository) GetProfileInterests(ctx context.Context, userID int64) ([]*models.Interest, error) {
	sql, args, err := r.sb.Select("i.id", "i.keyword", "i.created_at").
		From("profile_interests pi").
		Join("interests i ON i.id = pi.interest_id").
		Where(squirrel.Eq{"pi.user_id": userID}).
		OrderBy("i.keyword ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build profile interests query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing profile interests query: %w", err)
	}
	defer rows.Close()

	var interests []*models.Interest
	for rows.Next() {
		var interest models.Interest
		if err := rows.Scan(&interest.ID, &interest.Keyword, &interest.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning profile interest row: %w", err)
		}
		interests = append(interests, &interest)
	}

	return interests, nil
}

// MatchedUserIDs computes the ids of active users whose declared interests
// intersect the publication's tagged interests, excluding the author.
func (r *InterestRepository) MatchedUserIDs(ctx context.Context, publicationID int64) ([]int64, error) {
	sql, args, err := r.sb.Select("DISTINCT pi.user_id").
		From("publication_interests pubi").
		Join("profile_interests pi ON pi.interest_id = pubi.interest_id").
		Join("users u ON u.id = pi.user_id").
		Join("publications p ON p.id = pubi.publication_id").
		Where(squirrel.Eq{"pubi.publication_id": publicationID, "u.is_active": true}).
		Where("pi.user_id <> p.author_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build matched users query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing matched users query: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning matched user id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}
