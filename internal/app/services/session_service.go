package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/studybuddy/backend/internal/app/models"
	"github.com/studybuddy/backend/internal/app/models/dto"
	"github.com/studybuddy/backend/internal/app/repositories"
	"github.com/studybuddy/backend/internal/pkg/apperrors"
)

const (
	sessionDateLayout = "2006-01-02"
	sessionTimeLayout = "15:04"
)

// SessionService handles study session planning and participation
type SessionService struct {
	sessionRepo     repositories.ISessionRepository
	participantRepo repositories.IParticipantRepository
	courseRepo      repositories.ICourseRepository
	enrollmentRepo  repositories.IEnrollmentRepository
	logger          zerolog.Logger
}

// NewSessionService creates a new SessionService
func NewSessionService(
	sessionRepo repositories.ISessionRepository,
	participantRepo repositories.IParticipantRepository,
	courseRepo repositories.ICourseRepository,
	enrollmentRepo repositories.IEnrollmentRepository,
	logger zerolog.Logger,
) *SessionService {
	return &SessionService{
		sessionRepo:     sessionRepo,
		participantRepo: participantRepo,
		courseRepo:      courseRepo,
		enrollmentRepo:  enrollmentRepo,
		logger:          logger,
	}
}

// ListUpcomingForUser returns the upcoming sessions of the caller's enrolled
// courses, annotated with participant counts and the caller's own status.
// limit 0 means no limit.
func (s *SessionService) ListUpcomingForUser(ctx context.Context, userID int64, limit uint64) ([]dto.SessionResponse, error) {
	sessions, err := s.sessionRepo.ListUpcomingForUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing sessions: %w", err)
	}

	sessionIDs := make([]int64, 0, len(sessions))
	for _, session := range sessions {
		sessionIDs = append(sessionIDs, session.ID)
	}

	counts, err := s.participantRepo.GetConfirmedCountsBySessionIDs(ctx, sessionIDs)
	if err != nil {
		return nil, fmt.Errorf("error counting participants: %w", err)
	}

	statuses, err := s.participantRepo.GetStatusesForUser(ctx, userID, sessionIDs)
	if err != nil {
		return nil, fmt.Errorf("error loading participant statuses: %w", err)
	}

	resp := make([]dto.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		resp = append(resp, s.toSessionResponse(session, userID, counts, statuses))
	}

	return resp, nil
}

// Create records a new study session. The creator is not added as a
// participant; joining is a separate explicit action.
func (s *SessionService) Create(ctx context.Context, userID int64, req *dto.CreateSessionRequest) (int64, error) {
	if strings.TrimSpace(req.Title) == "" || req.CourseID <= 0 ||
		strings.TrimSpace(req.SessionDate) == "" || strings.TrimSpace(req.SessionTime) == "" {
		return 0, apperrors.NewValidationError("course, title, date and time are required")
	}

	sessionDate, err := time.Parse(sessionDateLayout, req.SessionDate)
	if err != nil {
		return 0, apperrors.NewValidationError("session date must be in YYYY-MM-DD format")
	}
	if _, err := time.Parse(sessionTimeLayout, req.SessionTime); err != nil {
		return 0, apperrors.NewValidationError("session time must be in HH:MM format")
	}

	exists, err := s.courseRepo.Exists(ctx, req.CourseID)
	if err != nil {
		return 0, fmt.Errorf("error checking course: %w", err)
	}
	if !exists {
		return 0, apperrors.ErrCourseNotFound
	}

	session := &models.StudySession{
		CreatorID:       userID,
		CourseID:        req.CourseID,
		Title:           strings.TrimSpace(req.Title),
		SessionDate:     sessionDate,
		SessionTime:     req.SessionTime,
		DurationMinutes: req.DurationMinutes,
		MaxParticipants: req.MaxParticipants,
		Status:          models.SessionStatusOpen,
	}
	if session.DurationMinutes <= 0 {
		session.DurationMinutes = models.DefaultSessionDuration
	}
	if session.MaxParticipants <= 0 {
		session.MaxParticipants = models.DefaultMaxParticipants
	}
	if desc := strings.TrimSpace(req.Description); desc != "" {
		session.Description = &desc
	}
	if loc := strings.TrimSpace(req.Location); loc != "" {
		session.Location = &loc
	}

	sessionID, err := s.sessionRepo.Create(ctx, session)
	if err != nil {
		return 0, err
	}

	s.logger.Info().Int64("sessionId", sessionID).Int64("userId", userID).
		Int64("courseId", req.CourseID).Msg("Study session created")
	return sessionID, nil
}

// GetCreateForm returns the data backing the create-session form: the
// caller's enrolled courses.
func (s *SessionService) GetCreateForm(ctx context.Context, userID int64) (*dto.CreateSessionFormResponse, error) {
	courses, err := s.enrollmentRepo.GetCoursesByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing enrolled courses: %w", err)
	}

	resp := &dto.CreateSessionFormResponse{
		Courses: make([]dto.EnrolledCourseResponse, 0, len(courses)),
	}
	for _, course := range courses {
		resp.Courses = append(resp.Courses, dto.EnrolledCourseResponse{
			ID:         course.ID,
			CourseCode: course.CourseCode,
			CourseName: course.CourseName,
			Department: course.Department,
		})
	}

	return resp, nil
}

// Join adds the caller to a session as a confirmed participant. The
// max_participants field is advisory and never blocks a join.
func (s *SessionService) Join(ctx context.Context, userID, sessionID int64) error {
	if _, err := s.sessionRepo.GetByID(ctx, sessionID); err != nil {
		return err
	}

	if err := s.participantRepo.AddParticipant(ctx, sessionID, userID); err != nil {
		return err
	}

	s.logger.Info().Int64("sessionId", sessionID).Int64("userId", userID).Msg("User joined session")
	return nil
}

// Leave removes the caller from a session. Leaving a session the caller
// never joined succeeds without effect.
func (s *SessionService) Leave(ctx context.Context, userID, sessionID int64) error {
	removed, err := s.participantRepo.RemoveParticipant(ctx, sessionID, userID)
	if err != nil {
		return fmt.Errorf("error removing participant: %w", err)
	}

	if removed {
		s.logger.Info().Int64("sessionId", sessionID).Int64("userId", userID).Msg("User left session")
	}
	return nil
}

func (s *SessionService) toSessionResponse(session *models.StudySession, userID int64, counts map[int64]int, statuses map[int64]string) dto.SessionResponse {
	resp := dto.SessionResponse{
		ID:               session.ID,
		CourseID:         session.CourseID,
		Title:            session.Title,
		SessionDate:      session.SessionDate.Format(sessionDateLayout),
		SessionTime:      session.SessionTime,
		DurationMinutes:  session.DurationMinutes,
		MaxParticipants:  session.MaxParticipants,
		Status:           session.Status,
		IsCreator:        session.CreatorID == userID,
		ParticipantCount: counts[session.ID],
		UserStatus:       models.ParticipantStatusNotJoined,
	}
	if session.Description != nil {
		resp.Description = *session.Description
	}
	if session.Location != nil {
		resp.Location = *session.Location
	}
	if session.Course != nil {
		resp.CourseCode = session.Course.CourseCode
		resp.CourseName = session.Course.CourseName
	}
	if session.Creator != nil {
		resp.CreatorName = session.Creator.Username
	}
	if status, ok := statuses[session.ID]; ok {
		resp.UserStatus = status
	}
	return resp
}
