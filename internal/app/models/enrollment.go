package models

import "time"

// Enrollment links a user to a course they study. At most one row may exist
// per (user, course) pair; the database constraint enforces it.
type Enrollment struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	CourseID  int64     `json:"courseId" db:"course_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Related entities
	Course *Course `json:"course,omitempty"`
}
