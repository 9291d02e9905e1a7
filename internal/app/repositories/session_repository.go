package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studybuddy/backend/internal/app/models"
	"github.com/studybuddy/backend/internal/pkg/apperrors"
	"github.com/studybuddy/backend/internal/pkg/dberrors"
	"github.com/studybuddy/backend/internal/pkg/helpers"
)

// ISessionRepository defines the interface for study session rows
type ISessionRepository interface {
	Create(ctx context.Context, session *models.StudySession) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.StudySession, error)
	ListUpcomingForUser(ctx context.Context, userID int64, limit uint64) ([]*models.StudySession, error)
}

// SessionRepository handles database operations for study sessions
type SessionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new study session and returns its id
func (r *SessionRepository) Create(ctx context.Context, session *models.StudySession) (int64, error) {
	var description, location interface{}
	if session.Description != nil {
		description = helpers.NullStringFromContent(*session.Description)
	}
	if session.Location != nil {
		location = helpers.NullStringFromContent(*session.Location)
	}

	sql, args, err := r.sb.Insert("study_sessions").
		Columns("creator_id", "course_id", "title", "description", "session_date", "session_time",
			"duration_minutes", "location", "max_participants", "status", "created_at").
		Values(session.CreatorID, session.CourseID, session.Title, description,
			session.SessionDate, session.SessionTime, session.DurationMinutes,
			location, session.MaxParticipants, session.Status, time.Now()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create session query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrCourseNotFound
		}
		return 0, fmt.Errorf("error creating session: %w", err)
	}

	session.ID = id
	return id, nil
}

// GetByID retrieves a single study session
func (r *SessionRepository) GetByID(ctx context.Context, id int64) (*models.StudySession, error) {
	sql, args, err := r.sb.Select(
		"s.id", "s.creator_id", "s.course_id", "s.title", "s.description",
		"s.session_date", "s.session_time::text", "s.duration_minutes",
		"s.location", "s.max_participants", "s.status", "s.created_at").
		From("study_sessions s").
		Where(squirrel.Eq{"s.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get session query: %w", err)
	}

	var session models.StudySession
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&session.ID,
		&session.CreatorID,
		&session.CourseID,
		&session.Title,
		&session.Description,
		&session.SessionDate,
		&session.SessionTime,
		&session.DurationMinutes,
		&session.Location,
		&session.MaxParticipants,
		&session.Status,
		&session.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSessionNotFound
		}
		return nil, fmt.Errorf("error scanning session row: %w", err)
	}

	return &session, nil
}

// ListUpcomingForUser retrieves sessions for the user's enrolled courses
// whose date is today or later, ordered by (session_date, session_time)
// ascending, with course and creator populated. limit 0 means no limit.
func (r *SessionRepository) ListUpcomingForUser(ctx context.Context, userID int64, limit uint64) ([]*models.StudySession, error) {
	query := r.sb.Select(
		"s.id", "s.creator_id", "s.course_id", "s.title", "s.description",
		"s.session_date", "s.session_time::text", "s.duration_minutes",
		"s.location", "s.max_participants", "s.status", "s.created_at",
		"c.course_code", "c.course_name", "c.department",
		"u.username").
		From("study_sessions s").
		Join("courses c ON s.course_id = c.id").
		Join("users u ON s.creator_id = u.id").
		Where("s.course_id IN (SELECT course_id FROM enrollments WHERE user_id = ?)", userID).
		Where("s.session_date >= CURRENT_DATE").
		OrderBy("s.session_date", "s.session_time")
	if limit > 0 {
		query = query.Limit(limit)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build upcoming sessions query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing upcoming sessions query: %w", err)
	}
	defer rows.Close()

	var sessions []*models.StudySession
	for rows.Next() {
		var session models.StudySession
		var course models.Course
		var creator models.User
		err := rows.Scan(
			&session.ID,
			&session.CreatorID,
			&session.CourseID,
			&session.Title,
			&session.Description,
			&session.SessionDate,
			&session.SessionTime,
			&session.DurationMinutes,
			&session.Location,
			&session.MaxParticipants,
			&session.Status,
			&session.CreatedAt,
			&course.CourseCode,
			&course.CourseName,
			&course.Department,
			&creator.Username,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning session row: %w", err)
		}
		course.ID = session.CourseID
		creator.ID = session.CreatorID
		session.Course = &course
		session.Creator = &creator
		sessions = append(sessions, &session)
	}

	return sessions, rows.Err()
}
