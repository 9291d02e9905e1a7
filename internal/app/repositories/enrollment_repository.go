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
)

// IEnrollmentRepository defines the interface for enrollment link rows
type IEnrollmentRepository interface {
	Create(ctx context.Context, userID, courseID int64) error
	Delete(ctx context.Context, userID, courseID int64) (bool, error)
	GetCourseIDsByUserID(ctx context.Context, userID int64) ([]int64, error)
	GetCoursesByUserID(ctx context.Context, userID int64) ([]*models.Course, error)
	IsEnrolled(ctx context.Context, userID, courseID int64) (bool, error)
}

// EnrollmentRepository handles database operations for enrollments
type EnrollmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts an enrollment row. The unique (user_id, course_id)
// constraint is the concurrency-correctness mechanism: when two enrolls
// race, exactly one row survives and the loser gets ErrAlreadyEnrolled.
func (r *EnrollmentRepository) Create(ctx context.Context, userID, courseID int64) error {
	sql, args, err := r.sb.Insert("enrollments").
		Columns("user_id", "course_id", "created_at").
		Values(userID, courseID, time.Now()).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create enrollment query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "enrollments_user_id_course_id_key") {
			return apperrors.ErrAlreadyEnrolled
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrCourseNotFound
		}
		return fmt.Errorf("error creating enrollment: %w", err)
	}

	return nil
}

// Delete removes an enrollment row if present and reports whether a row was
// deleted. Dropping a course the user is not enrolled in is not an error.
func (r *EnrollmentRepository) Delete(ctx context.Context, userID, courseID int64) (bool, error) {
	sql, args, err := r.sb.Delete("enrollments").
		Where(squirrel.Eq{"user_id": userID, "course_id": courseID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build delete enrollment query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("error deleting enrollment: %w", err)
	}

	return cmdTag.RowsAffected() > 0, nil
}

// GetCourseIDsByUserID retrieves the ids of the courses a user is enrolled in
func (r *EnrollmentRepository) GetCourseIDsByUserID(ctx context.Context, userID int64) ([]int64, error) {
	sql, args, err := r.sb.Select("course_id").
		From("enrollments").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build enrolled ids query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing enrolled ids query: %w", err)
	}
	defer rows.Close()

	var courseIDs []int64
	for rows.Next() {
		var courseID int64
		if err := rows.Scan(&courseID); err != nil {
			return nil, fmt.Errorf("error scanning enrollment row: %w", err)
		}
		courseIDs = append(courseIDs, courseID)
	}

	return courseIDs, rows.Err()
}

// GetCoursesByUserID retrieves the full course rows a user is enrolled in,
// ordered by (department, course_code)
func (r *EnrollmentRepository) GetCoursesByUserID(ctx context.Context, userID int64) ([]*models.Course, error) {
	sql, args, err := r.sb.Select("c.id", "c.course_code", "c.course_name", "c.department").
		From("courses c").
		Join("enrollments e ON c.id = e.course_id").
		Where(squirrel.Eq{"e.user_id": userID}).
		OrderBy("c.department", "c.course_code").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build enrolled courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing enrolled courses query: %w", err)
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(&course.ID, &course.CourseCode, &course.CourseName, &course.Department); err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, &course)
	}

	return courses, rows.Err()
}

// IsEnrolled checks if a (user, course) enrollment exists
func (r *EnrollmentRepository) IsEnrolled(ctx context.Context, userID, courseID int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("enrollments").
		Where(squirrel.Eq{"user_id": userID, "course_id": courseID}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build enrollment exists query: %w", err)
	}

	var one int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error executing enrollment exists query: %w", err)
	}
	return true, nil
}
