package dto

// CreateSessionRequest represents a study session creation submission.
// Duration and max participants fall back to the schema defaults (60
// minutes, 4 participants) when omitted.
type CreateSessionRequest struct {
	CourseID        int64  `json:"courseId" form:"course_id" binding:"required"`
	Title           string `json:"title" form:"title" binding:"required"`
	Description     string `json:"description" form:"description"`
	SessionDate     string `json:"sessionDate" form:"session_date" binding:"required"`
	SessionTime     string `json:"sessionTime" form:"session_time" binding:"required"`
	DurationMinutes int    `json:"durationMinutes" form:"duration"`
	Location        string `json:"location" form:"location"`
	MaxParticipants int    `json:"maxParticipants" form:"max_participants"`
}

// SessionResponse is one row of the upcoming-sessions view: the session
// annotated with its course, creator name, confirmed participant count and
// the caller's own relationship to it.
type SessionResponse struct {
	ID               int64  `json:"id"`
	CourseID         int64  `json:"courseId"`
	CourseCode       string `json:"courseCode"`
	CourseName       string `json:"courseName"`
	Title            string `json:"title"`
	Description      string `json:"description,omitempty"`
	SessionDate      string `json:"sessionDate"`
	SessionTime      string `json:"sessionTime"`
	DurationMinutes  int    `json:"durationMinutes"`
	Location         string `json:"location,omitempty"`
	MaxParticipants  int    `json:"maxParticipants"`
	Status           string `json:"status"`
	CreatorName      string `json:"creatorName"`
	IsCreator        bool   `json:"isCreator"`
	ParticipantCount int    `json:"participantCount"`
	UserStatus       string `json:"userStatus" example:"not_joined"`
}

// SessionListResponse is the /sessions view
type SessionListResponse struct {
	Sessions []SessionResponse `json:"sessions"`
	Notice   string            `json:"notice,omitempty"`
}

// EnrolledCourseResponse is a catalog entry scoped to the caller, used by
// the dashboard and the create-session form.
type EnrolledCourseResponse struct {
	ID         int64  `json:"id"`
	CourseCode string `json:"courseCode"`
	CourseName string `json:"courseName"`
	Department string `json:"department"`
}

// DashboardResponse is the /dashboard view: enrolled courses plus the next
// five upcoming sessions.
type DashboardResponse struct {
	Username         string                   `json:"username"`
	EnrolledCourses  []EnrolledCourseResponse `json:"enrolledCourses"`
	UpcomingSessions []SessionResponse        `json:"upcomingSessions"`
}

// CreateSessionFormResponse backs the GET /create_session form: the courses
// the caller may create a session for.
type CreateSessionFormResponse struct {
	Courses []EnrolledCourseResponse `json:"courses"`
}
