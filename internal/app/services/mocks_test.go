package services

import (
	"context"
	"sort"
	"time"

	"github.com/studybuddy/backend/internal/app/models"
	"github.com/studybuddy/backend/internal/app/repositories"
	"github.com/studybuddy/backend/internal/pkg/apperrors"
)

// In-memory repository fakes. They enforce the same uniqueness rules as the
// database schema so service tests exercise the real conflict paths.

type mockUserRepo struct {
	users  map[int64]*models.User
	nextID int64
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[int64]*models.User), nextID: 1}
}

func (m *mockUserRepo) CreateUser(_ context.Context, user *models.User) (int64, error) {
	for _, u := range m.users {
		if u.Username == user.Username {
			return 0, apperrors.ErrUsernameAlreadyExists
		}
		if u.Email == user.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}
	user.ID = m.nextID
	user.CreatedAt = time.Now()
	m.users[user.ID] = user
	m.nextID++
	return user.ID, nil
}

func (m *mockUserRepo) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserRepo) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (m *mockUserRepo) UsernameExists(_ context.Context, username string) (bool, error) {
	for _, u := range m.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	for _, u := range m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type storedToken struct {
	userID  int64
	expiry  time.Time
	revoked bool
}

type mockTokenRepo struct {
	tokens map[string]*storedToken
}

func newMockTokenRepo() *mockTokenRepo {
	return &mockTokenRepo{tokens: make(map[string]*storedToken)}
}

func (m *mockTokenRepo) CreateToken(_ context.Context, token string, userID int64, expiryDate time.Time) error {
	if _, exists := m.tokens[token]; exists {
		return apperrors.ErrTokenInvalid
	}
	m.tokens[token] = &storedToken{userID: userID, expiry: expiryDate}
	return nil
}

func (m *mockTokenRepo) GetTokenByValue(_ context.Context, token string) (int64, time.Time, error) {
	st, ok := m.tokens[token]
	if !ok {
		return 0, time.Time{}, apperrors.ErrTokenNotFound
	}
	if st.revoked {
		return 0, time.Time{}, apperrors.ErrTokenRevoked
	}
	if st.expiry.Before(time.Now()) {
		return 0, time.Time{}, apperrors.ErrTokenExpired
	}
	return st.userID, st.expiry, nil
}

func (m *mockTokenRepo) RevokeToken(_ context.Context, token string) error {
	st, ok := m.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	st.revoked = true
	return nil
}

func (m *mockTokenRepo) RevokeAllForUser(_ context.Context, userID int64) error {
	for _, st := range m.tokens {
		if st.userID == userID {
			st.revoked = true
		}
	}
	return nil
}

func (m *mockTokenRepo) liveTokenCount(userID int64) int {
	count := 0
	for _, st := range m.tokens {
		if st.userID == userID && !st.revoked {
			count++
		}
	}
	return count
}

type mockCourseRepo struct {
	courses map[int64]*models.Course
	nextID  int64
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{courses: make(map[int64]*models.Course), nextID: 1}
}

func (m *mockCourseRepo) add(code, name, department string) *models.Course {
	course := &models.Course{ID: m.nextID, CourseCode: code, CourseName: name, Department: department}
	m.courses[course.ID] = course
	m.nextID++
	return course
}

func sortCourses(courses []*models.Course) {
	sort.Slice(courses, func(i, j int) bool {
		if courses[i].Department != courses[j].Department {
			return courses[i].Department < courses[j].Department
		}
		return courses[i].CourseCode < courses[j].CourseCode
	})
}

func (m *mockCourseRepo) GetAll(_ context.Context) ([]*models.Course, error) {
	var courses []*models.Course
	for _, c := range m.courses {
		courses = append(courses, c)
	}
	sortCourses(courses)
	return courses, nil
}

func (m *mockCourseRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := m.courses[id]
	return ok, nil
}

func (m *mockCourseRepo) CreateIfMissing(_ context.Context, course *models.Course) (bool, error) {
	for _, c := range m.courses {
		if c.CourseCode == course.CourseCode {
			return false, nil
		}
	}
	course.ID = m.nextID
	m.courses[course.ID] = course
	m.nextID++
	return true, nil
}

type enrollmentKey struct {
	userID   int64
	courseID int64
}

type mockEnrollmentRepo struct {
	rows    map[enrollmentKey]bool
	courses *mockCourseRepo
}

func newMockEnrollmentRepo(courses *mockCourseRepo) *mockEnrollmentRepo {
	return &mockEnrollmentRepo{rows: make(map[enrollmentKey]bool), courses: courses}
}

func (m *mockEnrollmentRepo) Create(_ context.Context, userID, courseID int64) error {
	if _, ok := m.courses.courses[courseID]; !ok {
		return apperrors.ErrCourseNotFound
	}
	key := enrollmentKey{userID, courseID}
	if m.rows[key] {
		return apperrors.ErrAlreadyEnrolled
	}
	m.rows[key] = true
	return nil
}

func (m *mockEnrollmentRepo) Delete(_ context.Context, userID, courseID int64) (bool, error) {
	key := enrollmentKey{userID, courseID}
	if !m.rows[key] {
		return false, nil
	}
	delete(m.rows, key)
	return true, nil
}

func (m *mockEnrollmentRepo) GetCourseIDsByUserID(_ context.Context, userID int64) ([]int64, error) {
	var ids []int64
	for key := range m.rows {
		if key.userID == userID {
			ids = append(ids, key.courseID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (m *mockEnrollmentRepo) GetCoursesByUserID(_ context.Context, userID int64) ([]*models.Course, error) {
	var courses []*models.Course
	for key := range m.rows {
		if key.userID == userID {
			if course, ok := m.courses.courses[key.courseID]; ok {
				courses = append(courses, course)
			}
		}
	}
	sortCourses(courses)
	return courses, nil
}

func (m *mockEnrollmentRepo) IsEnrolled(_ context.Context, userID, courseID int64) (bool, error) {
	return m.rows[enrollmentKey{userID, courseID}], nil
}

type mockSessionRepo struct {
	sessions    map[int64]*models.StudySession
	nextID      int64
	enrollments *mockEnrollmentRepo
	courses     *mockCourseRepo
	users       *mockUserRepo
}

func newMockSessionRepo(enrollments *mockEnrollmentRepo, courses *mockCourseRepo, users *mockUserRepo) *mockSessionRepo {
	return &mockSessionRepo{
		sessions:    make(map[int64]*models.StudySession),
		nextID:      1,
		enrollments: enrollments,
		courses:     courses,
		users:       users,
	}
}

func (m *mockSessionRepo) Create(_ context.Context, session *models.StudySession) (int64, error) {
	if _, ok := m.courses.courses[session.CourseID]; !ok {
		return 0, apperrors.ErrCourseNotFound
	}
	copied := *session
	copied.ID = m.nextID
	copied.CreatedAt = time.Now()
	m.sessions[copied.ID] = &copied
	session.ID = copied.ID
	m.nextID++
	return copied.ID, nil
}

func (m *mockSessionRepo) GetByID(_ context.Context, id int64) (*models.StudySession, error) {
	session, ok := m.sessions[id]
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	return session, nil
}

func (m *mockSessionRepo) ListUpcomingForUser(ctx context.Context, userID int64, limit uint64) ([]*models.StudySession, error) {
	enrolledIDs, _ := m.enrollments.GetCourseIDsByUserID(ctx, userID)
	enrolled := make(map[int64]bool, len(enrolledIDs))
	for _, id := range enrolledIDs {
		enrolled[id] = true
	}

	// Midnight of the local date, matching how session dates are parsed
	today, _ := time.Parse("2006-01-02", time.Now().Format("2006-01-02"))
	var sessions []*models.StudySession
	for _, s := range m.sessions {
		if !enrolled[s.CourseID] || s.SessionDate.Before(today) {
			continue
		}
		copied := *s
		copied.Course = m.courses.courses[s.CourseID]
		if creator, ok := m.users.users[s.CreatorID]; ok {
			copied.Creator = creator
		}
		sessions = append(sessions, &copied)
	}

	sort.Slice(sessions, func(i, j int) bool {
		if !sessions[i].SessionDate.Equal(sessions[j].SessionDate) {
			return sessions[i].SessionDate.Before(sessions[j].SessionDate)
		}
		return sessions[i].SessionTime < sessions[j].SessionTime
	})

	if limit > 0 && uint64(len(sessions)) > limit {
		sessions = sessions[:limit]
	}
	return sessions, nil
}

type mockParticipantRepo struct {
	rows map[int64]map[int64]string // sessionID -> userID -> status
}

func newMockParticipantRepo() *mockParticipantRepo {
	return &mockParticipantRepo{rows: make(map[int64]map[int64]string)}
}

func (m *mockParticipantRepo) AddParticipant(_ context.Context, sessionID, userID int64) error {
	if m.rows[sessionID] == nil {
		m.rows[sessionID] = make(map[int64]string)
	}
	if _, exists := m.rows[sessionID][userID]; exists {
		return apperrors.ErrAlreadyJoined
	}
	m.rows[sessionID][userID] = models.ParticipantStatusConfirmed
	return nil
}

func (m *mockParticipantRepo) RemoveParticipant(_ context.Context, sessionID, userID int64) (bool, error) {
	if _, exists := m.rows[sessionID][userID]; !exists {
		return false, nil
	}
	delete(m.rows[sessionID], userID)
	return true, nil
}

func (m *mockParticipantRepo) GetConfirmedCountsBySessionIDs(_ context.Context, sessionIDs []int64) (map[int64]int, error) {
	counts := make(map[int64]int)
	for _, sessionID := range sessionIDs {
		for _, status := range m.rows[sessionID] {
			if status == models.ParticipantStatusConfirmed {
				counts[sessionID]++
			}
		}
	}
	return counts, nil
}

func (m *mockParticipantRepo) GetStatusesForUser(_ context.Context, userID int64, sessionIDs []int64) (map[int64]string, error) {
	statuses := make(map[int64]string)
	for _, sessionID := range sessionIDs {
		if status, ok := m.rows[sessionID][userID]; ok {
			statuses[sessionID] = status
		}
	}
	return statuses, nil
}

// IsParticipant lets tests assert on row state directly
func (m *mockParticipantRepo) IsParticipant(_ context.Context, sessionID, userID int64) (bool, error) {
	_, ok := m.rows[sessionID][userID]
	return ok, nil
}

// Interface conformance checks.
var (
	_ repositories.IUserRepository        = (*mockUserRepo)(nil)
	_ repositories.ITokenRepository       = (*mockTokenRepo)(nil)
	_ repositories.ICourseRepository      = (*mockCourseRepo)(nil)
	_ repositories.IEnrollmentRepository  = (*mockEnrollmentRepo)(nil)
	_ repositories.ISessionRepository     = (*mockSessionRepo)(nil)
	_ repositories.IParticipantRepository = (*mockParticipantRepo)(nil)
)
