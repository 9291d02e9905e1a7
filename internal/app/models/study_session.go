package models

import "time"

// Session status values. Sessions are created 'open' and the field is never
// transitioned by the application; it is stored for display.
const (
	SessionStatusOpen = "open"
)

// Participant status values.
const (
	ParticipantStatusConfirmed = "confirmed"
	ParticipantStatusNotJoined = "not_joined"
)

// Defaults applied when a creation request omits the fields.
const (
	DefaultSessionDuration = 60
	DefaultMaxParticipants = 4
)

// StudySession represents a planned group study meeting for a course.
type StudySession struct {
	ID              int64     `json:"id" db:"id"`
	CreatorID       int64     `json:"creatorId" db:"creator_id"`
	CourseID        int64     `json:"courseId" db:"course_id"`
	Title           string    `json:"title" db:"title"`
	Description     *string   `json:"description,omitempty" db:"description"` // Nullable
	SessionDate     time.Time `json:"sessionDate" db:"session_date"`
	SessionTime     string    `json:"sessionTime" db:"session_time"`
	DurationMinutes int       `json:"durationMinutes" db:"duration_minutes"`
	Location        *string   `json:"location,omitempty" db:"location"` // Nullable
	MaxParticipants int       `json:"maxParticipants" db:"max_participants"`
	Status          string    `json:"status" db:"status"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`

	// Related entities (populated when needed)
	Course  *Course `json:"course,omitempty"`
	Creator *User   `json:"creator,omitempty"`
}

// SessionParticipant represents a user attending a study session. At most
// one row may exist per (session, user) pair.
type SessionParticipant struct {
	ID        int64     `json:"id" db:"id"`
	SessionID int64     `json:"sessionId" db:"session_id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Status    string    `json:"status" db:"status"`
	JoinedAt  time.Time `json:"joinedAt" db:"joined_at"`

	// Related entities
	User *User `json:"user,omitempty"`
}
