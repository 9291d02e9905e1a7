package dto

import "github.com/studybuddy/backend/internal/app/models"

// CourseResponse represents a catalog entry with the caller's enrollment flag
type CourseResponse struct {
	ID         int64  `json:"id"`
	CourseCode string `json:"courseCode"`
	CourseName string `json:"courseName"`
	Department string `json:"department"`
	Enrolled   bool   `json:"enrolled"`
}

// CourseListResponse is the /courses view: the full catalog ordered by
// (department, course_code) plus the ids the caller is enrolled in.
type CourseListResponse struct {
	Courses           []CourseResponse `json:"courses"`
	EnrolledCourseIDs []int64          `json:"enrolledCourseIds"`
	Notice            string           `json:"notice,omitempty"`
}

// NewCourseResponse maps a course model to its response form
func NewCourseResponse(course *models.Course, enrolled bool) CourseResponse {
	return CourseResponse{
		ID:         course.ID,
		CourseCode: course.CourseCode,
		CourseName: course.CourseName,
		Department: course.Department,
		Enrolled:   enrolled,
	}
}
