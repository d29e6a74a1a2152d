package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PublicationAccessRepository handles explicit read grants.
// Grants are idempotent by design: the unique (publication_id, user_id)
// constraint makes concurrent duplicate grants safe without locking.
type PublicationAccessRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPublicationAccessRepository creates a new PublicationAccessRepository
func NewPublicationAccessRepository(db *pgxpool.Pool) *PublicationAccessRepository {
	return &PublicationAccessRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Upsert grants access to a user for a publication.
// Returns true when a new grant row was created, false when the grant
// already existed.
func (r *PublicationAccessRepository) Upsert(ctx context.Context, publicationID, userID, grantedBy int64) (bool, error) {
	sql, args, err := r.sb.Insert("publication_accesses").
		Columns("publication_id", "user_id", "granted_by").
		Values(publicationID, userID, grantedBy).
		Suffix("ON CONFLICT ON CONSTRAINT publication_accesses_pub_user_key DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build grant access query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("error granting access: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// Delete revokes a user's grant for a publication.
// Returns true when a row was removed; deleting a missing grant is a no-op.
func (r *PublicationAccessRepository) Delete(ctx context.Context, publicationID, userID int64) (bool, error) {
	sql, args, err := r.sb.Delete("publication_accesses").
		Where(squirrel.Eq{"publication_id": publicationID, "user_id": userID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build revoke access query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("error revoking access: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// Exists checks whether a grant row exists for the pair
func (r *PublicationAccessRepository) Exists(ctx context.Context, publicationID, userID int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("publication_accesses").
		Where(squirrel.Eq{"publication_id": publicationID, "user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build access exists query: %w", err)
	}

	var exists int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error checking access: %w", err)
	}

	return true, nil
}

// ListUserIDs retrieves the ids of users holding a grant for a publication
func (r *PublicationAccessRepository) ListUserIDs(ctx context.Context, publicationID int64) ([]int64, error) {
	sql, args, err := r.sb.Select("user_id").
		From("publication_accesses").
		Where(squirrel.Eq{"publication_id": publicationID}).
		OrderBy("user_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list grants query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing list grants query: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning grant user id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}
