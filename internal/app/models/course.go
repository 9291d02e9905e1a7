package models

// Course represents a catalog entry. The catalog is seeded at startup and
// read-only afterwards.
type Course struct {
	ID         int64  `json:"id" db:"id"`
	CourseCode string `json:"courseCode" db:"course_code"`
	CourseName string `json:"courseName" db:"course_name"`
	Department string `json:"department" db:"department"`
}
