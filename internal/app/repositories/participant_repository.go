package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studybuddy/backend/internal/app/models"
	"github.com/studybuddy/backend/internal/pkg/apperrors"
	"github.com/studybuddy/backend/internal/pkg/dberrors"
)

// IParticipantRepository defines the interface for session participant rows
type IParticipantRepository interface {
	AddParticipant(ctx context.Context, sessionID, userID int64) error
	RemoveParticipant(ctx context.Context, sessionID, userID int64) (bool, error)
	GetConfirmedCountsBySessionIDs(ctx context.Context, sessionIDs []int64) (map[int64]int, error)
	GetStatusesForUser(ctx context.Context, userID int64, sessionIDs []int64) (map[int64]string, error)
}

// ParticipantRepository handles database operations for session participants
type ParticipantRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewParticipantRepository creates a new ParticipantRepository
func NewParticipantRepository(db *pgxpool.Pool) *ParticipantRepository {
	return &ParticipantRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// AddParticipant inserts a confirmed participant row. The unique
// (session_id, user_id) constraint decides races: the losing insert
// gets ErrAlreadyJoined and no duplicate row exists.
func (r *ParticipantRepository) AddParticipant(ctx context.Context, sessionID, userID int64) error {
	sql, args, err := r.sb.Insert("session_participants").
		Columns("session_id", "user_id", "status", "joined_at").
		Values(sessionID, userID, models.ParticipantStatusConfirmed, time.Now()).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build add participant query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "session_participants_session_id_user_id_key") {
			return apperrors.ErrAlreadyJoined
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrSessionNotFound
		}
		return fmt.Errorf("error adding participant: %w", err)
	}

	return nil
}

// RemoveParticipant deletes a participant row if present and reports whether
// one was deleted. Leaving a session the user never joined is not an error.
func (r *ParticipantRepository) RemoveParticipant(ctx context.Context, sessionID, userID int64) (bool, error) {
	sql, args, err := r.sb.Delete("session_participants").
		Where(squirrel.Eq{"session_id": sessionID, "user_id": userID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build remove participant query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("error removing participant: %w", err)
	}

	return cmdTag.RowsAffected() > 0, nil
}

// GetConfirmedCountsBySessionIDs retrieves confirmed participant counts for a
// batch of sessions in one query. Sessions without participants are absent
// from the map.
func (r *ParticipantRepository) GetConfirmedCountsBySessionIDs(ctx context.Context, sessionIDs []int64) (map[int64]int, error) {
	counts := make(map[int64]int)
	if len(sessionIDs) == 0 {
		return counts, nil
	}

	sql, args, err := r.sb.Select("session_id", "COUNT(*)").
		From("session_participants").
		Where(squirrel.Eq{"session_id": sessionIDs, "status": models.ParticipantStatusConfirmed}).
		GroupBy("session_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build participant counts query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing participant counts query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sessionID int64
		var count int
		if err := rows.Scan(&sessionID, &count); err != nil {
			return nil, fmt.Errorf("error scanning participant count row: %w", err)
		}
		counts[sessionID] = count
	}

	return counts, rows.Err()
}

// GetStatusesForUser retrieves the user's participation status per session
// for a batch of sessions. Sessions the user has not joined are absent from
// the map.
func (r *ParticipantRepository) GetStatusesForUser(ctx context.Context, userID int64, sessionIDs []int64) (map[int64]string, error) {
	statuses := make(map[int64]string)
	if len(sessionIDs) == 0 {
		return statuses, nil
	}

	sql, args, err := r.sb.Select("session_id", "status").
		From("session_participants").
		Where(squirrel.Eq{"user_id": userID, "session_id": sessionIDs}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build participant statuses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing participant statuses query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sessionID int64
		var status string
		if err := rows.Scan(&sessionID, &status); err != nil {
			return nil, fmt.Errorf("error scanning participant status row: %w", err)
		}
		statuses[sessionID] = status
	}

	return statuses, rows.Err()
}
