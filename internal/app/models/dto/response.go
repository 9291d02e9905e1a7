package dto

// APIResponse is the standard success envelope for JSON endpoints
type APIResponse struct {
	Data  interface{}  `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// Notice values carried on redirects, replacing the original flash messages.
// The list views echo the notice back to the client.
const (
	NoticeRegistered         = "registered"
	NoticeLoggedOut          = "logged_out"
	NoticeInvalidCredentials = "invalid_credentials"
	NoticeMissingFields      = "missing_fields"
	NoticeUserExists         = "user_exists"
	NoticeEnrolled           = "enrolled"
	NoticeAlreadyEnrolled    = "already_enrolled"
	NoticeDropped            = "dropped"
	NoticeCourseNotFound     = "course_not_found"
	NoticeSessionCreated     = "session_created"
	NoticeJoined             = "joined"
	NoticeAlreadyJoined      = "already_joined"
	NoticeLeft               = "left"
	NoticeSessionNotFound    = "session_not_found"
)
