package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/studybuddy/backend/internal/app/models/dto"
	"github.com/studybuddy/backend/internal/app/repositories"
	"github.com/studybuddy/backend/internal/pkg/apperrors"
)

// EnrollmentService handles the course catalog and the caller's enrollments
type EnrollmentService struct {
	courseRepo     repositories.ICourseRepository
	enrollmentRepo repositories.IEnrollmentRepository
	logger         zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(
	courseRepo repositories.ICourseRepository,
	enrollmentRepo repositories.IEnrollmentRepository,
	logger zerolog.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		logger:         logger,
	}
}

// ListCourses returns the full catalog with the caller's enrollment flags
func (s *EnrollmentService) ListCourses(ctx context.Context, userID int64) (*dto.CourseListResponse, error) {
	courses, err := s.courseRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}

	enrolledIDs, err := s.enrollmentRepo.GetCourseIDsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing enrollments: %w", err)
	}

	enrolled := make(map[int64]bool, len(enrolledIDs))
	for _, id := range enrolledIDs {
		enrolled[id] = true
	}

	resp := &dto.CourseListResponse{
		Courses:           make([]dto.CourseResponse, 0, len(courses)),
		EnrolledCourseIDs: enrolledIDs,
	}
	for _, course := range courses {
		resp.Courses = append(resp.Courses, dto.NewCourseResponse(course, enrolled[course.ID]))
	}

	return resp, nil
}

// Enroll adds the user to a course. The course must exist in the catalog;
// enrolling twice fails with ErrAlreadyEnrolled.
func (s *EnrollmentService) Enroll(ctx context.Context, userID, courseID int64) error {
	exists, err := s.courseRepo.Exists(ctx, courseID)
	if err != nil {
		return fmt.Errorf("error checking course: %w", err)
	}
	if !exists {
		return apperrors.ErrCourseNotFound
	}

	if err := s.enrollmentRepo.Create(ctx, userID, courseID); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyEnrolled) {
			return err
		}
		return fmt.Errorf("error creating enrollment: %w", err)
	}

	s.logger.Info().Int64("userId", userID).Int64("courseId", courseID).Msg("User enrolled in course")
	return nil
}

// Drop removes the user's enrollment. Dropping a course the user is not
// enrolled in succeeds without effect.
func (s *EnrollmentService) Drop(ctx context.Context, userID, courseID int64) error {
	deleted, err := s.enrollmentRepo.Delete(ctx, userID, courseID)
	if err != nil {
		return fmt.Errorf("error deleting enrollment: %w", err)
	}

	if deleted {
		s.logger.Info().Int64("userId", userID).Int64("courseId", courseID).Msg("User dropped course")
	}
	return nil
}

// GetEnrolledCourses returns the caller's courses ordered by
// (department, course_code)
func (s *EnrollmentService) GetEnrolledCourses(ctx context.Context, userID int64) ([]dto.EnrolledCourseResponse, error) {
	courses, err := s.enrollmentRepo.GetCoursesByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing enrolled courses: %w", err)
	}

	resp := make([]dto.EnrolledCourseResponse, 0, len(courses))
	for _, course := range courses {
		resp = append(resp, dto.EnrolledCourseResponse{
			ID:         course.ID,
			CourseCode: course.CourseCode,
			CourseName: course.CourseName,
			Department: course.Department,
		})
	}

	return resp, nil
}
