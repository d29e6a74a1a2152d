package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/maxskaink/EventManager-sub001/internal/app/models"
	"github.com/maxskaink/EventManager-sub001/internal/db"
	"github.com/maxskaink/EventManager-sub001/internal/pkg/apperrors"
)

// ParticipationRepository handles enrollment rows.
// Enroll is the only operation in the system that must serialize against
// concurrent callers: the capacity check and the write happen inside one
// transaction holding a row lock on the event.
type ParticipationRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewParticipationRepository creates a new ParticipationRepository
func NewParticipationRepository(database *db.PostgresDB) *ParticipationRepository {
	return &ParticipationRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Enroll enrolls a user in an event, enforcing capacity atomically.
// The event row is locked for the duration of the transaction so two
// concurrent enrollments cannot both pass the capacity check.
func (r *ParticipationRepository) Enroll(ctx context.Context, eventID, userID int64) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var capacity *int
		err := tx.QueryRow(ctx,
			`SELECT capacity FROM events WHERE id = $1 FOR UPDATE`, eventID,
		).Scan(&capacity)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrEventNotFound
			}
			return fmt.Errorf("error locking event row: %w", err)
		}

		var status models.ParticipationStatus
		err = tx.QueryRow(ctx,
			`SELECT status FROM participations WHERE event_id = $1 AND user_id = $2`,
			eventID, userID,
		).Scan(&status)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("error reading participation: %w", err)
		}
		if err == nil && status.Active() {
			return apperrors.ErrAlreadyEnrolled
		}

		if capacity != nil {
			var active int
			err = tx.QueryRow(ctx,
				`SELECT COUNT(*) FROM participations
				 WHERE event_id = $1 AND status IN ('enrolled', 'attended')`,
				eventID,
			).Scan(&active)
			if err != nil {
				return fmt.Errorf("error counting active participations: %w", err)
			}
			if active >= *capacity {
				return apperrors.ErrCapacityExceeded
			}
		}

		// Upsert: a cancelled or absent row starts a fresh enrollment cycle
		_, err = tx.Exec(ctx,
			`INSERT INTO participations (event_id, user_id, status)
			 VALUES ($1, $2, 'enrolled')
			 ON CONFLICT ON CONSTRAINT participations_event_user_key
			 DO UPDATE SET status = 'enrolled', updated_at = NOW()`,
			eventID, userID,
		)
		if err != nil {
			return fmt.Errorf("error upserting participation: %w", err)
		}

		return nil
	})
}

// Cancel transitions an enrolled row to cancelled
func (r *ParticipationRepository) Cancel(ctx context.Context, eventID, userID int64) error {
	sql, args, err := r.sb.Update("participations").
		Set("status", models.ParticipationCancelled).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{
			"event_id": eventID,
			"user_id":  userID,
			"status":   models.ParticipationEnrolled,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build cancel participation query: %w", err)
	}

	result, err := r.db.Pool.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error cancelling participation: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotEnrolled
	}

	return nil
}

// SetStatusFromEnrolled transitions an enrolled row to the given status.
// Returns false when the user had no enrolled row, which bulk callers
// report as a per-id failure instead of aborting.
func (r *ParticipationRepository) SetStatusFromEnrolled(ctx context.Context, eventID, userID int64, status models.ParticipationStatus) (bool, error) {
	sql, args, err := r.sb.Update("participations").
		Set("status", status).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{
			"event_id": eventID,
			"user_id":  userID,
			"status":   models.ParticipationEnrolled,
		}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build status transition query: %w", err)
	}

	result, err := r.db.Pool.Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("error transitioning participation: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// CountActive counts enrolled plus attended rows for an event
func (r *ParticipationRepository) CountActive(ctx context.Context, eventID int64) (int, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("participations").
		Where(squirrel.Eq{"event_id": eventID}).
		Where(squirrel.Eq{"status": []models.ParticipationStatus{
			models.ParticipationEnrolled,
			models.ParticipationAttended,
		}}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count active query: %w", err)
	}

	var count int
	if err := r.db.Pool.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting active participations: %w", err)
	}

	return count, nil
}

// ListByEvent retrieves all participation rows for an event
func (r *ParticipationRepository) ListByEvent(ctx context.Context, eventID int64) ([]*models.Participation, error) {
	sql, args, err := r.sb.Select("id", "event_id", "user_id", "status", "created_at", "updated_at").
		From("participations").
		Where(squirrel.Eq{"event_id": eventID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list participations query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing list participations query: %w", err)
	}
	defer rows.Close()

	var participations []*models.Participation
	for rows.Next() {
		var p models.Participation
		err := rows.Scan(&p.ID, &p.EventID, &p.UserID, &p.Status, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning participation row: %w", err)
		}
		participations = append(participations, &p)
	}

	return participations, nil
}

// Get retrieves one participation row for an event/user pair
func (r *ParticipationRepository) Get(ctx context.Context, eventID, userID int64) (*models.Participation, error) {
	sql, args, err := r.sb.Select("id", "event_id", "user_id", "status", "created_at", "updated_at").
		From("participations").
		Where(squirrel.Eq{"event_id": eventID, "user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get participation query: %w", err)
	}

	var p models.Participation
	err = r.db.Pool.QueryRow(ctx, sql, args...).Scan(
		&p.ID, &p.EventID, &p.UserID, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotEnrolled
		}
		return nil, fmt.Errorf("error getting participation: %w", err)
	}

	return &p, nil
}
