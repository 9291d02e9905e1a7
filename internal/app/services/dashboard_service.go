package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/studybuddy/backend/internal/app/models/dto"
	"github.com/studybuddy/backend/internal/app/repositories"
)

// Number of upcoming sessions shown on the dashboard.
const dashboardSessionLimit = 5

// DashboardService assembles the landing view for a signed-in user
type DashboardService struct {
	userRepo          repositories.IUserRepository
	enrollmentService *EnrollmentService
	sessionService    *SessionService
	logger            zerolog.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	userRepo repositories.IUserRepository,
	enrollmentService *EnrollmentService,
	sessionService *SessionService,
	logger zerolog.Logger,
) *DashboardService {
	return &DashboardService{
		userRepo:          userRepo,
		enrollmentService: enrollmentService,
		sessionService:    sessionService,
		logger:            logger,
	}
}

// GetDashboard returns the caller's enrolled courses and the next five
// upcoming sessions of those courses.
func (s *DashboardService) GetDashboard(ctx context.Context, userID int64) (*dto.DashboardResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	courses, err := s.enrollmentService.GetEnrolledCourses(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading enrolled courses: %w", err)
	}

	sessions, err := s.sessionService.ListUpcomingForUser(ctx, userID, dashboardSessionLimit)
	if err != nil {
		return nil, fmt.Errorf("error loading upcoming sessions: %w", err)
	}

	return &dto.DashboardResponse{
		Username:         user.Username,
		EnrolledCourses:  courses,
		UpcomingSessions: sessions,
	}, nil
}
