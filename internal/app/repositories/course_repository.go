package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studybuddy/backend/internal/app/models"
)

// ICourseRepository defines the interface for catalog reads. The catalog is
// seeded at startup and read-only afterwards.
type ICourseRepository interface {
	GetAll(ctx context.Context) ([]*models.Course, error)
	Exists(ctx context.Context, id int64) (bool, error)
	CreateIfMissing(ctx context.Context, course *models.Course) (bool, error)
}

// CourseRepository handles database operations for the course catalog
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetAll retrieves the full catalog ordered by (department, course_code)
func (r *CourseRepository) GetAll(ctx context.Context) ([]*models.Course, error) {
	sql, args, err := r.sb.Select("id", "course_code", "course_name", "department").
		From("courses").
		OrderBy("department", "course_code").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing list courses query: %w", err)
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

// Exists checks if a course id is present in the catalog
func (r *CourseRepository) Exists(ctx context.Context, id int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("courses").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build course exists query: %w", err)
	}

	var one int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error executing course exists query: %w", err)
	}
	return true, nil
}

// CreateIfMissing inserts a catalog entry unless its course_code already
// exists. Returns whether a row was inserted. The seed relies on this for
// idempotency.
func (r *CourseRepository) CreateIfMissing(ctx context.Context, course *models.Course) (bool, error) {
	sql, args, err := r.sb.Insert("courses").
		Columns("course_code", "course_name", "department").
		Values(course.CourseCode, course.CourseName, course.Department).
		Suffix("ON CONFLICT (course_code) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build create course query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("error creating course: %w", err)
	}

	return cmdTag.RowsAffected() > 0, nil
}
